package harness

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/behave/internal/canonical"
	"github.com/roach88/behave/internal/fixture"
)

// GoldenSuffix is appended to scenario names to form golden file names.
const GoldenSuffix = ".golden"

// ErrGoldenMismatch is returned by CompareGolden when the trace differs.
var ErrGoldenMismatch = errors.New("trace does not match golden file")

// TraceSnapshot captures the complete trace for a scenario execution.
type TraceSnapshot struct {
	ScenarioName string       `json:"scenario_name"`
	Fixture      string       `json:"fixture"`
	Trace        []TraceEvent `json:"trace"`
}

// toCanonicalMap converts a TraceSnapshot to a map[string]any for canonical JSON serialization.
// This is required because canonical.Marshal only handles maps, slices and primitives.
func (s *TraceSnapshot) toCanonicalMap() map[string]any {
	traceList := make([]any, len(s.Trace))
	for i, ev := range s.Trace {
		m := map[string]any{
			"seq":          ev.Seq,
			"step":         ev.Step,
			"handled":      ev.Handled,
			"active_index": ev.ActiveIndex,
		}
		if ev.Input != "" {
			m["input"] = ev.Input
		}
		if ev.Mods != "" {
			m["mods"] = ev.Mods
		}
		if ev.ActivePosition != nil {
			m["active_position"] = ev.ActivePosition
		}
		if ev.SelectedIndices != nil {
			m["selected_indices"] = ev.SelectedIndices
		}
		if ev.Focused != "" {
			m["focused"] = ev.Focused
		}
		if ev.ActiveDescendant != "" {
			m["active_descendant"] = ev.ActiveDescendant
		}
		traceList[i] = m
	}

	return map[string]any{
		"scenario_name": s.ScenarioName,
		"fixture":       s.Fixture,
		"trace":         traceList,
	}
}

// Snapshot serializes a result's trace as canonical JSON.
func Snapshot(scenario *Scenario, result *Result) ([]byte, error) {
	snap := TraceSnapshot{
		ScenarioName: scenario.Name,
		Fixture:      scenario.Fixture,
		Trace:        result.Trace,
	}
	return canonical.Marshal(snap.toCanonicalMap())
}

// RunWithGolden executes a scenario and compares the trace against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if trace doesn't match golden file.
func RunWithGolden(t *testing.T, scenario *Scenario, fixtures *fixture.Set) (*Result, error) {
	t.Helper()

	result, err := Run(scenario, fixtures)
	if err != nil {
		return nil, err
	}

	data, err := Snapshot(scenario, result)
	if err != nil {
		return nil, err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(GoldenSuffix),
	)
	g.Assert(t, scenario.Name, data)
	return result, nil
}

// GoldenPath returns where the golden file for name lives under dir.
func GoldenPath(dir, name string) string {
	return filepath.Join(dir, name+GoldenSuffix)
}

// CompareGolden checks data against dir/name.golden outside of go test.
// A missing golden file is reported as os.ErrNotExist.
func CompareGolden(dir, name string, data []byte) error {
	want, err := os.ReadFile(GoldenPath(dir, name))
	if err != nil {
		return err
	}
	if !bytes.Equal(want, data) {
		return fmt.Errorf("%s: %w", name, ErrGoldenMismatch)
	}
	return nil
}

// UpdateGolden writes data to dir/name.golden, creating dir as needed.
func UpdateGolden(dir, name string, data []byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(GoldenPath(dir, name), data, 0o644)
}
