// Package gridbox assembles the behaviors of an interactive grid: cell
// placement, aggregate disabling, two-dimensional navigation and focus
// management.
package gridbox

import (
	"github.com/roach88/behave/internal/aria"
	"github.com/roach88/behave/internal/event"
	"github.com/roach88/behave/internal/focus"
	"github.com/roach88/behave/internal/ids"
	"github.com/roach88/behave/internal/navigation"
	"github.com/roach88/behave/internal/reactive"
	"github.com/roach88/behave/internal/state"
	"github.com/roach88/behave/internal/table"
)

// Schema composes the grid behaviors.
func Schema() *state.Schema {
	return state.MustCompose(
		table.Schema(),
		focus.DisabledSchema(),
		navigation.GridSchema(),
		focus.Schema(),
	)
}

// Config holds the static parent inputs of a grid.
type Config struct {
	Element       any
	Document      aria.Doc
	Rows          int
	Columns       int
	Wrap          bool
	Disabled      bool
	FocusStrategy aria.FocusStrategy
}

// Inputs converts the config to parent inputs.
func (cfg Config) Inputs(extra ...state.Field) *state.Inputs {
	strategy := cfg.FocusStrategy
	if strategy == "" {
		strategy = aria.RovingTabindex
	}
	fields := []state.Field{
		state.Static(aria.Element, cfg.Element),
		state.Static(table.Rowcount, cfg.Rows),
		state.Static(table.Colcount, cfg.Columns),
		state.Static(aria.Wrap, cfg.Wrap),
		state.Static(aria.Disabled, cfg.Disabled),
		state.Static(aria.FocusStrategyKey, strategy),
	}
	if cfg.Document != nil {
		fields = append(fields, state.Static(aria.Document, cfg.Document))
	}
	return state.NewInputs(append(fields, extra...)...)
}

// CellIDs generates ids for cells that carry none.
var CellIDs ids.Generator = ids.UUIDGenerator{Prefix: "cell"}

// Cell describes one grid cell. Zero spans count as 1.
type Cell struct {
	Element  any
	ID       string
	Label    string
	Rowspan  int
	Colspan  int
	Disabled reactive.Readable[bool]
}

// Inputs converts the cell to item inputs, replacing an empty id from
// CellIDs.
func (c Cell) Inputs() *state.Inputs {
	if c.ID == "" {
		c.ID = CellIDs.Generate()
	}
	disabled := c.Disabled
	if disabled == nil {
		disabled = reactive.NewConst(false)
	}
	return state.NewInputs(
		state.Static(aria.Element, c.Element),
		state.Static(aria.ID, c.ID),
		state.Static(aria.Label, c.Label),
		state.Static(table.Rowspan, max(c.Rowspan, 1)),
		state.Static(table.Colspan, max(c.Colspan, 1)),
		state.Bind(aria.Disabled, disabled),
	)
}

// Grid is a built grid with its controllers.
type Grid struct {
	*state.Instance
	Navigation *navigation.Grid
	Focus      *focus.Controller
}

// New builds a grid from parent inputs and a reactive cell list.
func New(parent *state.Inputs, cells reactive.Readable[[]*state.Inputs], opts ...focus.Option) *Grid {
	inst := state.Build(Schema(), parent, cells)
	return &Grid{
		Instance:   inst,
		Navigation: navigation.NewGrid(inst.Parent, inst.Items),
		Focus:      focus.NewController(inst.Parent, inst.Items, opts...),
	}
}

// Check reports an invalid layout or other structural failure as an error.
func (g *Grid) Check() error {
	return state.Check(g.Instance)
}

// ActivePosition returns the active cell position.
func (g *Grid) ActivePosition() table.Position {
	return g.Navigation.ActivePosition()
}

// Keydown returns the navigation key router.
func (g *Grid) Keydown() *event.Keyboard { return g.Navigation.Keydown() }

// Click returns the pointer router.
func (g *Grid) Click() *event.Mouse { return g.Navigation.Click() }

// Focusout returns the focus recapture router.
func (g *Grid) Focusout() *event.Router[*event.FocusEvent] { return g.Focus.Focusout() }
