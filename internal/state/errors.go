package state

import (
	"errors"
	"fmt"

	"github.com/roach88/behave/internal/reactive"
)

// Error codes for state composition failures.
const (
	ErrCodeMissingProperty = "MISSING_PROPERTY"
	ErrCodeTypeMismatch    = "TYPE_MISMATCH"
	ErrCodeNotWritable     = "NOT_WRITABLE"
	ErrCodeCircular        = "CIRCULAR_DEPENDENCY"
)

// Error is a structured state error. Property access errors are raised as
// panics because they indicate a schema wiring bug; composition errors are
// returned.
type Error struct {
	Code     string
	Property string
	Message  string
	Err      error
}

func (e *Error) Error() string {
	if e.Property == "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Property, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(code, property, format string, args ...any) *Error {
	return &Error{Code: code, Property: property, Message: fmt.Sprintf(format, args...)}
}

func hasCode(err error, code string) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}

// IsMissingProperty reports whether err is a missing property error.
func IsMissingProperty(err error) bool { return hasCode(err, ErrCodeMissingProperty) }

// IsTypeMismatch reports whether err is a property type mismatch.
func IsTypeMismatch(err error) bool { return hasCode(err, ErrCodeTypeMismatch) }

// IsNotWritable reports whether err is a write to a read-only property.
func IsNotWritable(err error) bool { return hasCode(err, ErrCodeNotWritable) }

// IsCycleError reports whether err is a circular dependency, either raised by
// the reactive graph or reported by Check.
func IsCycleError(err error) bool {
	return reactive.IsCycleError(err) || hasCode(err, ErrCodeCircular)
}

// Check reads every parent and item property once and reports the first
// structural failure as an error instead of a panic.
func Check(inst *Instance) error {
	return reactive.Catch(func() {
		touch(inst.Parent)
		for _, it := range inst.Items.Get() {
			touch(it.Props)
		}
	})
}

func touch(p *Props) {
	for _, name := range p.order {
		p.entries[name].get()
	}
}
