package harness

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/roach88/behave/internal/event"
	"github.com/roach88/behave/internal/fixture"
)

// Harness is the test execution engine.
// It builds a fresh widget per scenario from the fixture set.
type Harness struct {
	fixtures *fixture.Set
	logger   *slog.Logger
}

// Option configures a Harness.
type Option func(*Harness)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) { h.logger = l }
}

// New creates a harness over a loaded fixture set.
func New(fixtures *fixture.Set, opts ...Option) *Harness {
	h := &Harness{
		fixtures: fixtures,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs by default
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run executes a scenario with a default harness.
func Run(scenario *Scenario, fixtures *fixture.Set) (*Result, error) {
	return New(fixtures).Run(scenario)
}

// Run executes a test scenario and returns the result.
//
// Execution flow:
// 1. Resolve the fixture and build the widget on a fresh simulated document
// 2. Execute each step, settle deferred focus work and record a trace event
// 3. Check step expectations, then the final expectation
//
// A returned error means the scenario could not run at all; failed
// expectations are reported in Result.Errors.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	sess, err := Open(h.fixtures, scenario.Fixture)
	if err != nil {
		return nil, err
	}

	log := h.logger.With("scenario", scenario.Name, "fixture", scenario.Fixture)
	log.Info("running scenario", "steps", len(scenario.Steps))

	result := NewResult()
	result.Kind = string(sess.Kind)

	for i, step := range scenario.Steps {
		ev, err := h.executeStep(sess, step)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, step.Kind(), err)
		}
		result.AddTrace(ev)
		log.Debug("step executed", "seq", i+1, "step", ev.Step, "input", ev.Input, "handled", ev.Handled, "active", ev.ActiveIndex)

		if step.Expect != nil {
			for _, msg := range CheckExpect(step.Expect, ev.State, &ev.Handled, len(result.Trace)) {
				result.AddError(fmt.Sprintf("step %d: %s", i+1, msg))
			}
		}
	}

	result.Final = sess.State()
	if scenario.Expect != nil {
		for _, msg := range CheckExpect(scenario.Expect, result.Final, nil, len(result.Trace)) {
			result.AddError("final: " + msg)
		}
	}

	if result.Pass {
		log.Info("scenario passed")
	} else {
		log.Warn("scenario failed", "errors", len(result.Errors))
	}
	return result, nil
}

// executeStep performs one step and returns its trace event.
func (h *Harness) executeStep(sess *Session, step Step) (TraceEvent, error) {
	mods, err := step.Modifiers()
	if err != nil {
		return TraceEvent{}, err
	}
	ev := TraceEvent{Step: step.Kind(), Handled: true}
	if mods != event.ModNone {
		ev.Mods = mods.String()
	}

	switch ev.Step {
	case StepFocus:
		sess.Focus()
	case StepKey:
		ev.Input = step.Key
		ev.Handled = sess.Key(step.Key, mods)
	case StepClick:
		ev.Input = strconv.Itoa(*step.Click)
		if ev.Handled, err = sess.Click(*step.Click, mods); err != nil {
			return ev, err
		}
	case StepCall:
		ev.Input = formatCall(step.Call, step.Args)
		if err := sess.Call(step.Call, step.Args...); err != nil {
			return ev, err
		}
	case StepWait:
		dur, err := time.ParseDuration(step.Wait)
		if err != nil {
			return ev, err
		}
		ev.Input = dur.String()
		sess.Wait(dur)
	case StepRemove:
		ev.Input = strconv.Itoa(*step.Remove)
		if err := sess.Remove(*step.Remove); err != nil {
			return ev, err
		}
	default:
		return ev, fmt.Errorf("empty step")
	}

	ev.State = sess.State()
	return ev, nil
}

func formatCall(op string, args []int) string {
	if len(args) == 0 {
		return op
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = strconv.Itoa(a)
	}
	return op + "(" + strings.Join(parts, ",") + ")"
}
