package navigation

import (
	"log/slog"

	"github.com/roach88/behave/internal/aria"
	"github.com/roach88/behave/internal/event"
	"github.com/roach88/behave/internal/reactive"
	"github.com/roach88/behave/internal/state"
	"github.com/roach88/behave/internal/table"
)

// Grid properties.
var (
	ActivatedSubposition = state.NewKey[table.Position]("activatedSubposition")
	ActivePosition       = state.NewKey[table.Position]("activePosition")
)

var offGrid = table.Position{Row: -1, Column: -1}

// GridSchema derives the active cell of a two-dimensional composite. It
// expects table.Schema to be composed before it.
func GridSchema() *state.Schema {
	return &state.Schema{
		Parent: []state.Rule[*state.ParentContext]{
			state.ParentRule(aria.ActivatedElement, func(c *state.ParentContext) any {
				return state.PriorOr[any](c, nil)
			}, state.Writable()),
			state.ParentRule(ActivatedSubposition, func(c *state.ParentContext) table.Position {
				// Reset whenever the activated cell changes.
				aria.ActivatedElement.Get(c.Self)
				return table.Position{}
			}, state.Writable()),
			state.ParentRule(aria.ActiveIndex, func(c *state.ParentContext) int {
				items := c.Items.Get()
				if i := indexOfElement(items, aria.ActivatedElement.Get(c.Self)); i >= 0 {
					return i
				}
				if len(items) == 0 {
					return -1
				}
				g := newGridView(c.Self, items, true)
				p := g.resolve(table.Position{Row: 0, Column: -1}, g.nextColumn)
				return g.cells.Index(p)
			}),
			state.ParentRule(ActivePosition, func(c *state.ParentContext) table.Position {
				i := aria.ActiveIndex.Get(c.Self)
				if i < 0 {
					return offGrid
				}
				cells := table.Cells.Get(c.Self)
				origin, span := cells.Position(i), cells.Span(i)
				sub := ActivatedSubposition.Get(c.Self)
				return table.Position{
					Row:    origin.Row + clamp(sub.Row, 0, span.Rowspan-1),
					Column: origin.Column + clamp(sub.Column, 0, span.Colspan-1),
				}
			}),
		},
		Item: []state.Rule[*state.ItemContext]{
			state.ItemRule(aria.Active, func(c *state.ItemContext) bool {
				return aria.ActiveIndex.Get(c.Parent) == c.Index.Get()
			}),
		},
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

type gridView struct {
	cells        *table.CellIndex
	items        []*state.Item
	wrap         bool
	skipDisabled bool
}

func newGridView(parent *state.Props, items []*state.Item, wrap bool) gridView {
	return gridView{
		cells:        table.Cells.Get(parent),
		items:        items,
		wrap:         wrap,
		skipDisabled: aria.SkipDisabled.GetOr(parent, true),
	}
}

func (g gridView) rows() int { return g.cells.Rows() }
func (g gridView) cols() int { return g.cells.Columns() }

// extent returns the origin and span of the cell covering p.
func (g gridView) extent(p table.Position) (table.Position, table.Span, bool) {
	i := g.cells.Index(p)
	if i < 0 {
		return table.Position{}, table.Span{}, false
	}
	return g.cells.Position(i), g.cells.Span(i), true
}

func (g gridView) nextColumn(p table.Position) table.Position {
	p.Row = max(p.Row, 0)
	col := p.Column + 1
	if origin, span, ok := g.extent(p); ok {
		col = origin.Column + span.Colspan
	}
	if col >= g.cols() && g.wrap {
		return table.Position{Row: p.Row + 1, Column: 0}
	}
	return table.Position{Row: p.Row, Column: col}
}

func (g gridView) previousColumn(p table.Position) table.Position {
	p.Row = min(p.Row, g.rows()-1)
	col := p.Column - 1
	if origin, _, ok := g.extent(p); ok {
		col = origin.Column - 1
	}
	if col < 0 && g.wrap {
		return table.Position{Row: p.Row - 1, Column: g.cols() - 1}
	}
	return table.Position{Row: p.Row, Column: col}
}

func (g gridView) nextRow(p table.Position) table.Position {
	p.Column = max(p.Column, 0)
	row := p.Row + 1
	if origin, span, ok := g.extent(p); ok {
		row = origin.Row + span.Rowspan
	}
	if row >= g.rows() && g.wrap {
		return table.Position{Row: 0, Column: p.Column + 1}
	}
	return table.Position{Row: row, Column: p.Column}
}

func (g gridView) previousRow(p table.Position) table.Position {
	p.Column = min(p.Column, g.cols()-1)
	row := p.Row - 1
	if origin, _, ok := g.extent(p); ok {
		row = origin.Row - 1
	}
	if row < 0 && g.wrap {
		return table.Position{Row: g.rows() - 1, Column: p.Column - 1}
	}
	return table.Position{Row: row, Column: p.Column}
}

// resolve steps from initial until it reaches an enabled cell, leaves the
// grid, or has visited every slot.
func (g gridView) resolve(initial table.Position, step func(table.Position) table.Position) table.Position {
	p := step(initial)
	for n := g.rows()*g.cols() + 1; n > 0; n-- {
		i := g.cells.Index(p)
		if i < 0 || i >= len(g.items) {
			return offGrid
		}
		if !g.skipDisabled || !aria.IsDisabled(g.items[i]) {
			return p
		}
		p = step(p)
	}
	return offGrid
}

// Grid drives a GridSchema state.
type Grid struct {
	parent *state.Props
	items  reactive.Readable[[]*state.Item]
}

// NewGrid creates a grid navigation controller.
func NewGrid(parent *state.Props, items reactive.Readable[[]*state.Item]) *Grid {
	return &Grid{parent: parent, items: items}
}

func (g *Grid) view(wrap bool) gridView {
	return newGridView(g.parent, g.items.Get(), wrap)
}

// ActivePosition returns the current active position.
func (g *Grid) ActivePosition() table.Position { return ActivePosition.Get(g.parent) }

func (g *Grid) activate(v gridView, p table.Position) {
	i := v.cells.Index(p)
	if i < 0 || i >= len(v.items) {
		slog.Debug("grid navigation found no target", "row", p.Row, "column", p.Column)
		return
	}
	aria.ActivatedElement.Set(g.parent, aria.ElementOf(v.items[i]))
	ActivatedSubposition.Set(g.parent, p.Sub(v.cells.Position(i)))
}

func (g *Grid) navigate(initial table.Position, wrap bool, step func(gridView) func(table.Position) table.Position) {
	v := g.view(wrap)
	g.activate(v, v.resolve(initial, step(v)))
}

// NavigateTo activates the cell covering p, remembering p as the position
// within that cell.
func (g *Grid) NavigateTo(p table.Position) {
	v := g.view(false)
	i := v.cells.Index(p)
	if i < 0 || i >= len(v.items) {
		return
	}
	if v.skipDisabled && aria.IsDisabled(v.items[i]) {
		return
	}
	g.activate(v, p)
}

func (g *Grid) wrap() bool { return aria.Wrap.GetOr(g.parent, false) }

func nextColumn(v gridView) func(table.Position) table.Position     { return v.nextColumn }
func previousColumn(v gridView) func(table.Position) table.Position { return v.previousColumn }
func nextRow(v gridView) func(table.Position) table.Position        { return v.nextRow }
func previousRow(v gridView) func(table.Position) table.Position    { return v.previousRow }

// NavigateNextColumn moves right, wrapping to the next row when enabled.
func (g *Grid) NavigateNextColumn() { g.navigate(g.ActivePosition(), g.wrap(), nextColumn) }

// NavigatePreviousColumn moves left, wrapping to the previous row when
// enabled.
func (g *Grid) NavigatePreviousColumn() { g.navigate(g.ActivePosition(), g.wrap(), previousColumn) }

// NavigateNextRow moves down, wrapping to the next column when enabled.
func (g *Grid) NavigateNextRow() { g.navigate(g.ActivePosition(), g.wrap(), nextRow) }

// NavigatePreviousRow moves up, wrapping to the previous column when
// enabled.
func (g *Grid) NavigatePreviousRow() { g.navigate(g.ActivePosition(), g.wrap(), previousRow) }

// NavigateFirstRow moves to the top of the active column.
func (g *Grid) NavigateFirstRow() {
	p := g.ActivePosition()
	g.navigate(table.Position{Row: -1, Column: p.Column}, false, nextRow)
}

// NavigateLastRow moves to the bottom of the active column.
func (g *Grid) NavigateLastRow() {
	p := g.ActivePosition()
	g.navigate(table.Position{Row: g.view(false).rows(), Column: p.Column}, false, previousRow)
}

// NavigateFirstColumn moves to the start of the active row.
func (g *Grid) NavigateFirstColumn() {
	p := g.ActivePosition()
	g.navigate(table.Position{Row: p.Row, Column: -1}, false, nextColumn)
}

// NavigateLastColumn moves to the end of the active row.
func (g *Grid) NavigateLastColumn() {
	p := g.ActivePosition()
	g.navigate(table.Position{Row: p.Row, Column: g.view(false).cols()}, false, previousColumn)
}

// NavigateFirst activates the first enabled cell in reading order.
func (g *Grid) NavigateFirst() {
	g.navigate(table.Position{Row: 0, Column: -1}, true, nextColumn)
}

// NavigateLast activates the last enabled cell in reading order.
func (g *Grid) NavigateLast() {
	v := g.view(true)
	g.navigate(table.Position{Row: v.rows() - 1, Column: v.cols()}, true, previousColumn)
}

// Keydown returns a router for arrow keys, Home/End within the row and
// Ctrl+Home/Ctrl+End across the grid.
func (g *Grid) Keydown() *event.Keyboard {
	ctrl := []event.Modifier{event.ModCtrl}
	return event.NewKeyboard().
		On("ArrowUp", func(*event.KeyEvent) { g.NavigatePreviousRow() }).
		On("ArrowDown", func(*event.KeyEvent) { g.NavigateNextRow() }).
		On("ArrowLeft", func(*event.KeyEvent) { g.NavigatePreviousColumn() }).
		On("ArrowRight", func(*event.KeyEvent) { g.NavigateNextColumn() }).
		On("Home", func(*event.KeyEvent) { g.NavigateFirstColumn() }).
		On("End", func(*event.KeyEvent) { g.NavigateLastColumn() }).
		On("PageUp", func(*event.KeyEvent) { g.NavigateFirstRow() }).
		On("PageDown", func(*event.KeyEvent) { g.NavigateLastRow() }).
		OnMods(ctrl, "Home", func(*event.KeyEvent) { g.NavigateFirst() }).
		OnMods(ctrl, "End", func(*event.KeyEvent) { g.NavigateLast() })
}

// Click returns a router activating the clicked cell.
func (g *Grid) Click() *event.Mouse {
	return event.NewMouse().On(event.ButtonMain, func(e *event.MouseEvent) {
		v := g.view(false)
		i := aria.IndexOfTarget(v.items, e.Target)
		if i < 0 {
			return
		}
		g.NavigateTo(v.cells.Position(i))
	})
}
