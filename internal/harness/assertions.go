package harness

import (
	"fmt"
	"slices"
)

// AssertionError describes one failed expectation.
type AssertionError struct {
	Field    string // Expect field name, e.g. "active_index"
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Field, e.Expected, e.Actual)
}

// CheckExpect compares state against every set field of want and returns one
// message per mismatch. handled is nil for the final expect block.
func CheckExpect(want *Expect, got State, handled *bool, traceCount int) []string {
	var errs []error
	fail := func(field string, expected, actual any) {
		errs = append(errs, &AssertionError{
			Field:    field,
			Expected: fmt.Sprintf("%v", expected),
			Actual:   fmt.Sprintf("%v", actual),
		})
	}

	if want.ActiveIndex != nil && *want.ActiveIndex != got.ActiveIndex {
		fail("active_index", *want.ActiveIndex, got.ActiveIndex)
	}
	if want.ActivePosition != nil && !slices.Equal(want.ActivePosition, got.ActivePosition) {
		fail("active_position", want.ActivePosition, got.ActivePosition)
	}
	if want.SelectedIndices != nil && !sameIndices(*want.SelectedIndices, got.SelectedIndices) {
		fail("selected_indices", *want.SelectedIndices, got.SelectedIndices)
	}
	if want.Focused != nil && *want.Focused != got.Focused {
		fail("focused", quote(*want.Focused), quote(got.Focused))
	}
	if want.ActiveDescendant != nil && *want.ActiveDescendant != got.ActiveDescendant {
		fail("active_descendant", quote(*want.ActiveDescendant), quote(got.ActiveDescendant))
	}
	if want.Handled != nil && handled != nil && *want.Handled != *handled {
		fail("handled", *want.Handled, *handled)
	}
	if want.TraceCount != nil && *want.TraceCount != traceCount {
		fail("trace_count", *want.TraceCount, traceCount)
	}

	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return msgs
}

// sameIndices compares index sets without regard to order.
func sameIndices(want, got []int) bool {
	a, b := slices.Clone(want), slices.Clone(got)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(a, b)
}

func quote(s string) string {
	if s == "" {
		return "(none)"
	}
	return fmt.Sprintf("%q", s)
}
