package harness

// State is the observable widget state after a step.
type State struct {
	ActiveIndex int `json:"active_index"`

	// ActivePosition is [row, column] for grids and nil for listboxes.
	ActivePosition []int `json:"active_position,omitempty"`

	// SelectedIndices is nil for grids.
	SelectedIndices []int `json:"selected_indices,omitempty"`

	// Focused is the id of the host's focused element.
	Focused string `json:"focused,omitempty"`

	ActiveDescendant string `json:"active_descendant,omitempty"`
}

// TraceEvent records one executed step and the state it left behind.
type TraceEvent struct {
	Seq     int    `json:"seq"`
	Step    string `json:"step"`
	Input   string `json:"input,omitempty"`
	Mods    string `json:"mods,omitempty"`
	Handled bool   `json:"handled"`
	State
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if every expect block matches.
	Pass bool `json:"pass"`

	// Kind is "listbox" or "grid".
	Kind string `json:"kind"`

	// Trace contains one event per step in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Final is the state after the last step.
	Final State `json:"final"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends an event, numbering it from 1.
func (r *Result) AddTrace(ev TraceEvent) {
	ev.Seq = len(r.Trace) + 1
	r.Trace = append(r.Trace, ev)
}
