package harness

import (
	"fmt"
	"time"

	"github.com/roach88/behave/internal/aria"
	"github.com/roach88/behave/internal/event"
	"github.com/roach88/behave/internal/fixture"
	"github.com/roach88/behave/internal/focus"
	"github.com/roach88/behave/internal/gridbox"
	"github.com/roach88/behave/internal/ids"
	"github.com/roach88/behave/internal/listbox"
	"github.com/roach88/behave/internal/reactive"
	"github.com/roach88/behave/internal/state"
	"github.com/roach88/behave/internal/table"
	"github.com/roach88/behave/internal/testutil"
)

// driver adapts one widget kind to the scenario steps.
type driver interface {
	key(key string, mods event.Modifier) bool
	click(i int, mods event.Modifier) (bool, error)
	call(op string, args []int) error
	remove(i int) error
	focus()
	wait(d time.Duration)
	settle()
	snapshot() State
}

// host is the simulated document shared by both drivers.
type host struct {
	doc       *testutil.Document
	clock     *testutil.ManualClock
	queue     *focus.Queue
	container *testutil.Element
	elements  []*testutil.Element
	disabled  []*reactive.Cell[bool]
	instance  *state.Instance
	parent    *state.Inputs
}

func newHost(name string) *host {
	doc := testutil.NewDocument()
	return &host{
		doc:       doc,
		clock:     testutil.NewManualClock(),
		queue:     &focus.Queue{},
		container: doc.NewElement(name),
	}
}

// addElement creates an item element, generating an id when none is given.
func (h *host) addElement(id string, gen ids.Generator, disabled bool) (*testutil.Element, *reactive.Cell[bool]) {
	if id == "" {
		id = gen.Generate()
	}
	el := h.doc.NewElement(id)
	h.container.Append(el)
	cell := reactive.NewCell(disabled)
	h.elements = append(h.elements, el)
	h.disabled = append(h.disabled, cell)
	return el, cell
}

func (h *host) focus() { h.container.Focus() }

func (h *host) wait(d time.Duration) { h.clock.Advance(d) }

// settle drains deferred focus work, then applies focus sync.
func (h *host) settle() {
	h.queue.Drain()
	h.instance.RunSync()
}

func (h *host) element(i int) (*testutil.Element, error) {
	if i < 0 || i >= len(h.elements) {
		return nil, fmt.Errorf("index %d out of range [0, %d)", i, len(h.elements))
	}
	return h.elements[i], nil
}

func (h *host) setDisabled(args []int, v bool) error {
	if len(args) != 1 {
		return fmt.Errorf("expected 1 argument, got %d", len(args))
	}
	if _, err := h.element(args[0]); err != nil {
		return err
	}
	h.disabled[args[0]].Set(v)
	return nil
}

func (h *host) baseState() State {
	s := State{ActiveIndex: aria.ActiveIndex.GetOr(h.instance.Parent, -1)}
	if el := h.doc.Focused(); el != nil {
		s.Focused = el.ID
	}
	s.ActiveDescendant = aria.ActiveDescendantID.GetOr(h.instance.Parent, "")
	return s
}

func arity(args []int, n int) error {
	if len(args) != n {
		return fmt.Errorf("expected %d argument(s), got %d", n, len(args))
	}
	return nil
}

type listboxDriver struct {
	*host
	lb      *listbox.Listbox
	options *reactive.Cell[[]*state.Inputs]
}

func newListboxDriver(fx *fixture.Listbox) *listboxDriver {
	h := newHost(fx.Name)
	gen := ids.NewSequence(fx.Name)

	var inputs []*state.Inputs
	for _, o := range fx.Options {
		el, disabled := h.addElement(o.ID, gen, o.Disabled)
		inputs = append(inputs, listbox.Option{
			Element:  el,
			ID:       el.ID,
			Label:    o.Label,
			Value:    o.ValueOrLabel(),
			Disabled: disabled,
		}.Inputs())
	}

	selected := make([]any, len(fx.Selected))
	for i, v := range fx.Selected {
		selected[i] = v
	}
	cfg := listbox.Config{
		Element:           h.container,
		Document:          h.doc,
		Orientation:       aria.Orientation(fx.Orientation),
		Wrap:              fx.Wrap,
		Disabled:          fx.Disabled,
		FocusStrategy:     aria.FocusStrategy(fx.Focus),
		SelectionType:     aria.SelectionType(fx.Selection),
		SelectionStrategy: aria.SelectionStrategy(fx.Strategy),
		Selected:          selected,
	}

	d := &listboxDriver{host: h, options: reactive.NewCell(inputs)}
	d.lb = listbox.New(cfg.Inputs(), d.options,
		listbox.WithClock(h.clock.Now),
		listbox.WithScheduler(h.queue),
	)
	h.instance = d.lb.Instance
	return d
}

func (d *listboxDriver) key(key string, mods event.Modifier) bool {
	return d.lb.Keydown().Handle(&event.KeyEvent{Key: key, Mods: mods, Target: d.doc.ActiveElement()})
}

func (d *listboxDriver) click(i int, mods event.Modifier) (bool, error) {
	el, err := d.element(i)
	if err != nil {
		return false, err
	}
	return d.lb.Click().Handle(&event.MouseEvent{Button: event.ButtonMain, Mods: mods, Target: el}), nil
}

// remove detaches option i the way a host re-render does: the element
// leaves the document first, focusout fires, then the option list shrinks.
func (d *listboxDriver) remove(i int) error {
	el, err := d.element(i)
	if err != nil {
		return err
	}
	wasFocused := d.doc.Focused() == el
	el.Remove()
	if wasFocused {
		d.lb.Focusout().Handle(&event.FocusEvent{Target: el})
	}

	d.elements = append(d.elements[:i:i], d.elements[i+1:]...)
	d.disabled = append(d.disabled[:i:i], d.disabled[i+1:]...)
	current := d.options.Get()
	d.options.Set(append(current[:i:i], current[i+1:]...))
	return nil
}

func (d *listboxDriver) call(op string, args []int) error {
	nav, sel := d.lb.Navigation, d.lb.Selection
	noArgs := map[string]func(){
		"next":         nav.NavigateNext,
		"previous":     nav.NavigatePrevious,
		"first":        nav.NavigateFirst,
		"last":         nav.NavigateLast,
		"select_all":   sel.SelectAll,
		"deselect_all": sel.DeselectAll,
		"toggle_all":   sel.ToggleAll,
	}
	oneArg := map[string]func(int){
		"navigate_to":             nav.NavigateTo,
		"select":                  sel.Select,
		"deselect":                sel.Deselect,
		"toggle":                  sel.Toggle,
		"select_contiguous_range": sel.SelectContiguousRange,
	}
	twoArgs := map[string]func(int, int){
		"select_range":   sel.SelectRange,
		"deselect_range": sel.DeselectRange,
	}

	switch {
	case noArgs[op] != nil:
		if err := arity(args, 0); err != nil {
			return err
		}
		noArgs[op]()
	case oneArg[op] != nil:
		if err := arity(args, 1); err != nil {
			return err
		}
		oneArg[op](args[0])
	case twoArgs[op] != nil:
		if err := arity(args, 2); err != nil {
			return err
		}
		twoArgs[op](args[0], args[1])
	case op == "disable":
		return d.setDisabled(args, true)
	case op == "enable":
		return d.setDisabled(args, false)
	default:
		return fmt.Errorf("unknown listbox call %q", op)
	}
	return nil
}

func (d *listboxDriver) snapshot() State {
	s := d.baseState()
	s.SelectedIndices = append([]int{}, d.lb.Selection.SelectedIndices()...)
	return s
}

type gridDriver struct {
	*host
	grid *gridbox.Grid
}

func newGridDriver(fx *fixture.Grid) *gridDriver {
	h := newHost(fx.Name)
	gen := ids.NewSequence(fx.Name)

	var inputs []*state.Inputs
	for _, c := range fx.Cells {
		el, disabled := h.addElement(c.ID, gen, c.Disabled)
		inputs = append(inputs, gridbox.Cell{
			Element:  el,
			ID:       el.ID,
			Label:    c.Label,
			Rowspan:  c.Rowspan,
			Colspan:  c.Colspan,
			Disabled: disabled,
		}.Inputs())
	}

	cfg := gridbox.Config{
		Element:       h.container,
		Document:      h.doc,
		Rows:          fx.Rows,
		Columns:       fx.Columns,
		Wrap:          fx.Wrap,
		Disabled:      fx.Disabled,
		FocusStrategy: aria.FocusStrategy(fx.Focus),
	}
	d := &gridDriver{host: h}
	d.grid = gridbox.New(cfg.Inputs(), reactive.NewCell(inputs), focus.WithScheduler(h.queue))
	h.instance = d.grid.Instance
	return d
}

func (d *gridDriver) key(key string, mods event.Modifier) bool {
	return d.grid.Keydown().Handle(&event.KeyEvent{Key: key, Mods: mods, Target: d.doc.ActiveElement()})
}

func (d *gridDriver) click(i int, mods event.Modifier) (bool, error) {
	el, err := d.element(i)
	if err != nil {
		return false, err
	}
	return d.grid.Click().Handle(&event.MouseEvent{Button: event.ButtonMain, Mods: mods, Target: el}), nil
}

func (d *gridDriver) remove(int) error {
	return fmt.Errorf("remove is only supported for listboxes")
}

func (d *gridDriver) call(op string, args []int) error {
	nav := d.grid.Navigation
	noArgs := map[string]func(){
		"next_column":     nav.NavigateNextColumn,
		"previous_column": nav.NavigatePreviousColumn,
		"next_row":        nav.NavigateNextRow,
		"previous_row":    nav.NavigatePreviousRow,
		"first_row":       nav.NavigateFirstRow,
		"last_row":        nav.NavigateLastRow,
		"first_column":    nav.NavigateFirstColumn,
		"last_column":     nav.NavigateLastColumn,
		"first":           nav.NavigateFirst,
		"last":            nav.NavigateLast,
	}

	switch {
	case noArgs[op] != nil:
		if err := arity(args, 0); err != nil {
			return err
		}
		noArgs[op]()
	case op == "navigate_to":
		if err := arity(args, 2); err != nil {
			return err
		}
		nav.NavigateTo(table.Position{Row: args[0], Column: args[1]})
	case op == "disable":
		return d.setDisabled(args, true)
	case op == "enable":
		return d.setDisabled(args, false)
	default:
		return fmt.Errorf("unknown grid call %q", op)
	}
	return nil
}

func (d *gridDriver) snapshot() State {
	s := d.baseState()
	p := d.grid.ActivePosition()
	s.ActivePosition = []int{p.Row, p.Column}
	return s
}
