package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/behave/internal/event"
)

// Scenario defines a widget conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Fixture references the widget, e.g. "listbox.fruit" or "grid.spans".
	Fixture string `yaml:"fixture"`

	// Steps drive the widget in order.
	Steps []Step `yaml:"steps"`

	// Expect is checked against the final state.
	Expect *Expect `yaml:"expect,omitempty"`

	// Path is the file the scenario was loaded from, if any.
	Path string `yaml:"-"`
}

// Step is one interaction. Exactly one of Focus, Key, Click, Call, Wait or
// Remove is set.
type Step struct {
	Focus  bool     `yaml:"focus,omitempty"`
	Key    string   `yaml:"key,omitempty"`
	Click  *int     `yaml:"click,omitempty"`
	Call   string   `yaml:"call,omitempty"`
	Wait   string   `yaml:"wait,omitempty"`
	Remove *int     `yaml:"remove,omitempty"`
	Mods   []string `yaml:"mods,omitempty"`
	Args   []int    `yaml:"args,omitempty"`

	// Expect is checked against the state right after this step.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Step kinds as they appear in traces.
const (
	StepFocus  = "focus"
	StepKey    = "key"
	StepClick  = "click"
	StepCall   = "call"
	StepWait   = "wait"
	StepRemove = "remove"
)

// Kind returns which interaction the step describes.
func (s Step) Kind() string {
	switch {
	case s.Focus:
		return StepFocus
	case s.Key != "":
		return StepKey
	case s.Click != nil:
		return StepClick
	case s.Call != "":
		return StepCall
	case s.Wait != "":
		return StepWait
	case s.Remove != nil:
		return StepRemove
	}
	return ""
}

func (s Step) kinds() int {
	n := 0
	for _, set := range []bool{s.Focus, s.Key != "", s.Click != nil, s.Call != "", s.Wait != "", s.Remove != nil} {
		if set {
			n++
		}
	}
	return n
}

// Modifiers parses Mods into a bitmask.
func (s Step) Modifiers() (event.Modifier, error) {
	var m event.Modifier
	for _, name := range s.Mods {
		bit, ok := event.ParseModifier(name)
		if !ok {
			return 0, fmt.Errorf("unknown modifier %q", name)
		}
		m |= bit
	}
	return m, nil
}

// Expect lists state assertions. Unset fields are not checked.
type Expect struct {
	ActiveIndex      *int    `yaml:"active_index,omitempty"`
	ActivePosition   []int   `yaml:"active_position,omitempty"`
	SelectedIndices  *[]int  `yaml:"selected_indices,omitempty"`
	Focused          *string `yaml:"focused,omitempty"`
	ActiveDescendant *string `yaml:"active_descendant,omitempty"`
	Handled          *bool   `yaml:"handled,omitempty"`

	// TraceCount is only meaningful on the final expect block.
	TraceCount *int `yaml:"trace_count,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}
	scenario.Path = path
	return scenario, nil
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict decoding catches typos like "expects:" vs "expect:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// LoadScenarios loads every .yaml and .yml file directly inside dir, sorted
// by file name.
func LoadScenarios(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenarios directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if !e.IsDir() && (ext == ".yaml" || ext == ".yml") {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(p), err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if !strings.Contains(s.Fixture, ".") {
		return fmt.Errorf("fixture is required as <kind>.<name>, got %q", s.Fixture)
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, step); err != nil {
			return err
		}
	}

	if s.Expect != nil && s.Expect.Handled != nil {
		return fmt.Errorf("expect: handled is only valid on a step")
	}
	return nil
}

func validateStep(i int, step Step) error {
	switch step.kinds() {
	case 0:
		return fmt.Errorf("steps[%d]: one of focus, key, click, call, wait or remove is required", i)
	case 1:
	default:
		return fmt.Errorf("steps[%d]: only one of focus, key, click, call, wait or remove may be set", i)
	}

	if _, err := step.Modifiers(); err != nil {
		return fmt.Errorf("steps[%d]: %w", i, err)
	}
	if step.Wait != "" {
		if _, err := time.ParseDuration(step.Wait); err != nil {
			return fmt.Errorf("steps[%d]: invalid wait duration: %w", i, err)
		}
	}
	if len(step.Args) > 0 && step.Call == "" {
		return fmt.Errorf("steps[%d]: args require call", i)
	}
	if step.Expect != nil && step.Expect.TraceCount != nil {
		return fmt.Errorf("steps[%d].expect: trace_count is only valid on the final expect", i)
	}
	if step.Expect != nil && step.Expect.ActivePosition != nil && len(step.Expect.ActivePosition) != 2 {
		return fmt.Errorf("steps[%d].expect: active_position must be [row, column]", i)
	}
	return nil
}
