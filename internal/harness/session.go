package harness

import (
	"fmt"
	"time"

	"github.com/roach88/behave/internal/aria"
	"github.com/roach88/behave/internal/event"
	"github.com/roach88/behave/internal/fixture"
	"github.com/roach88/behave/internal/state"
	"github.com/roach88/behave/internal/table"
)

// Session is a live widget built from a fixture on a simulated document.
// Every interaction settles deferred focus work before returning.
type Session struct {
	Kind fixture.Kind
	d    driver
	h    *host
}

// Open builds the widget named by ref, e.g. "listbox.fruit".
func Open(set *fixture.Set, ref string) (*Session, error) {
	kind, fx, err := set.Lookup(ref)
	if err != nil {
		return nil, err
	}

	s := &Session{Kind: kind}
	switch kind {
	case fixture.KindListbox:
		d := newListboxDriver(fx.(*fixture.Listbox))
		s.d, s.h = d, d.host
	case fixture.KindGrid:
		d := newGridDriver(fx.(*fixture.Grid))
		s.d, s.h = d, d.host
	default:
		return nil, fmt.Errorf("unsupported fixture kind %q", kind)
	}

	// Structural failures, such as an invalid grid layout, surface here
	// rather than on the first step.
	if err := state.Check(s.h.instance); err != nil {
		return nil, fmt.Errorf("building %s: %w", ref, err)
	}
	s.d.settle()
	return s, nil
}

// Focus moves host focus into the widget container.
func (s *Session) Focus() {
	s.d.focus()
	s.d.settle()
}

// Key dispatches a keydown and reports whether a rule handled it.
func (s *Session) Key(key string, mods event.Modifier) bool {
	handled := s.d.key(key, mods)
	s.d.settle()
	return handled
}

// Click dispatches a primary click on item i.
func (s *Session) Click(i int, mods event.Modifier) (bool, error) {
	handled, err := s.d.click(i, mods)
	s.d.settle()
	return handled, err
}

// Call invokes a controller operation by name.
func (s *Session) Call(op string, args ...int) error {
	err := s.d.call(op, args)
	s.d.settle()
	return err
}

// Wait advances the session clock.
func (s *Session) Wait(d time.Duration) {
	s.d.wait(d)
	s.d.settle()
}

// Remove detaches listbox option i.
func (s *Session) Remove(i int) error {
	err := s.d.remove(i)
	s.d.settle()
	return err
}

// State returns the current observable state.
func (s *Session) State() State { return s.d.snapshot() }

// Len returns the number of items.
func (s *Session) Len() int { return len(s.h.instance.Items.Get()) }

// Label returns the label of item i.
func (s *Session) Label(i int) string {
	return aria.Label.GetOr(s.h.instance.Items.Get()[i], "")
}

// Disabled reports whether item i is disabled, directly or through the
// widget.
func (s *Session) Disabled(i int) bool {
	return aria.IsDisabled(s.h.instance.Items.Get()[i])
}

// Selected reports whether item i is selected. Grids have no selection.
func (s *Session) Selected(i int) bool {
	return aria.Selected.GetOr(s.h.instance.Items.Get()[i], false)
}

// Position returns the origin of grid cell i. ok is false for listboxes.
func (s *Session) Position(i int) (p table.Position, ok bool) {
	cells, found := s.Layout()
	if !found {
		return table.Position{}, false
	}
	return cells.Position(i), true
}

// Layout returns the cell index of a grid session.
func (s *Session) Layout() (*table.CellIndex, bool) {
	return table.Cells.Lookup(s.h.instance.Parent)
}
