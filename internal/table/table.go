// Package table places spanning cells on a grid and maps positions to cell
// indices.
package table

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/behave/internal/aria"
	"github.com/roach88/behave/internal/state"
)

// Layout error codes.
const (
	ErrCodeCellsDoNotFit      = "CELLS_DO_NOT_FIT"
	ErrCodeOverlappingCells   = "OVERLAPPING_CELLS"
	ErrCodeIncompleteCoverage = "INCOMPLETE_COVERAGE"
	ErrCodeInvalidSpan        = "INVALID_SPAN"
)

// LayoutError reports a grid whose cells cannot be placed.
type LayoutError struct {
	Code   string
	Cell   int
	Row    int
	Column int
}

func (e *LayoutError) Error() string {
	switch e.Code {
	case ErrCodeCellsDoNotFit:
		return fmt.Sprintf("[%s] cell %d does not fit at row %d, column %d", e.Code, e.Cell, e.Row, e.Column)
	case ErrCodeOverlappingCells:
		return fmt.Sprintf("[%s] cell %d overlaps another cell at row %d, column %d", e.Code, e.Cell, e.Row, e.Column)
	case ErrCodeIncompleteCoverage:
		return fmt.Sprintf("[%s] no cell covers row %d, column %d", e.Code, e.Row, e.Column)
	default:
		return fmt.Sprintf("[%s] cell %d has an invalid span", e.Code, e.Cell)
	}
}

// IsLayoutError reports whether err is a *LayoutError.
func IsLayoutError(err error) bool {
	var le *LayoutError
	return errors.As(err, &le)
}

// Position is a zero-based grid coordinate.
type Position struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// Sub returns p - o.
func (p Position) Sub(o Position) Position {
	return Position{Row: p.Row - o.Row, Column: p.Column - o.Column}
}

// Add returns p + o.
func (p Position) Add(o Position) Position {
	return Position{Row: p.Row + o.Row, Column: p.Column + o.Column}
}

// Span is the extent of a cell. Zero values count as 1.
type Span struct {
	Rowspan int
	Colspan int
}

func (s Span) normalized() Span {
	if s.Rowspan == 0 {
		s.Rowspan = 1
	}
	if s.Colspan == 0 {
		s.Colspan = 1
	}
	return s
}

// CellIndex maps each grid position to the index of the cell covering it.
type CellIndex struct {
	rows      int
	cols      int
	grid      [][]int
	positions []Position
	spans     []Span
}

// NewCellIndex places cells in row-major order, each into the next free
// slot.
func NewCellIndex(rows, cols int, spans []Span) (*CellIndex, error) {
	rows, cols = max(rows, 0), max(cols, 0)
	if (rows == 0 || cols == 0) && len(spans) > 0 {
		return nil, &LayoutError{Code: ErrCodeCellsDoNotFit}
	}
	ci := &CellIndex{rows: rows, cols: cols, grid: make([][]int, rows), positions: make([]Position, len(spans)), spans: make([]Span, len(spans))}
	for r := range ci.grid {
		ci.grid[r] = make([]int, cols)
		for c := range ci.grid[r] {
			ci.grid[r][c] = -1
		}
	}

	r, c := 0, 0
	for i, s := range spans {
		s = s.normalized()
		if s.Rowspan < 1 || s.Colspan < 1 {
			return nil, &LayoutError{Code: ErrCodeInvalidSpan, Cell: i}
		}
		for r < rows && ci.grid[r][c] != -1 {
			c++
			if c == cols {
				c = 0
				r++
			}
		}
		if r >= rows || r+s.Rowspan > rows || c+s.Colspan > cols {
			return nil, &LayoutError{Code: ErrCodeCellsDoNotFit, Cell: i, Row: r, Column: c}
		}
		for dr := 0; dr < s.Rowspan; dr++ {
			for dc := 0; dc < s.Colspan; dc++ {
				if ci.grid[r+dr][c+dc] != -1 {
					return nil, &LayoutError{Code: ErrCodeOverlappingCells, Cell: i, Row: r + dr, Column: c + dc}
				}
				ci.grid[r+dr][c+dc] = i
			}
		}
		ci.positions[i] = Position{Row: r, Column: c}
		ci.spans[i] = s
	}

	for r := range ci.grid {
		for c, v := range ci.grid[r] {
			if v == -1 {
				return nil, &LayoutError{Code: ErrCodeIncompleteCoverage, Cell: -1, Row: r, Column: c}
			}
		}
	}
	return ci, nil
}

// Rows returns the row count.
func (ci *CellIndex) Rows() int { return ci.rows }

// Columns returns the column count.
func (ci *CellIndex) Columns() int { return ci.cols }

// Len returns the number of placed cells.
func (ci *CellIndex) Len() int { return len(ci.positions) }

// InBounds reports whether p lies on the grid.
func (ci *CellIndex) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < ci.rows && p.Column >= 0 && p.Column < ci.cols
}

// Index returns the cell covering p, or -1 when p is off the grid.
func (ci *CellIndex) Index(p Position) int {
	if !ci.InBounds(p) {
		return -1
	}
	return ci.grid[p.Row][p.Column]
}

// Position returns the origin of cell i.
func (ci *CellIndex) Position(i int) Position {
	if i < 0 || i >= len(ci.positions) {
		return Position{Row: -1, Column: -1}
	}
	return ci.positions[i]
}

// Span returns the extent of cell i.
func (ci *CellIndex) Span(i int) Span {
	if i < 0 || i >= len(ci.spans) {
		return Span{Rowspan: 1, Colspan: 1}
	}
	return ci.spans[i]
}

// Grid properties.
var (
	Rowcount = state.NewKey[int]("rowcount")
	Colcount = state.NewKey[int]("colcount")
	Rowspan  = state.NewKey[int]("rowspan")
	Colspan  = state.NewKey[int]("colspan")

	Cells   = state.NewKey[*CellIndex]("cellIndex")
	CellPos = state.NewKey[Position]("position")
)

// Schema derives the cell index on the parent and each cell's origin.
// Reading the index of an invalid layout panics with *LayoutError.
func Schema() *state.Schema {
	return &state.Schema{
		Parent: []state.Rule[*state.ParentContext]{
			state.ParentRule(Cells, func(c *state.ParentContext) *CellIndex {
				items := c.Items.Get()
				spans := make([]Span, len(items))
				for i, it := range items {
					spans[i] = Span{Rowspan: Rowspan.GetOr(it, 1), Colspan: Colspan.GetOr(it, 1)}
				}
				ci, err := NewCellIndex(Rowcount.Get(c.Self), Colcount.Get(c.Self), spans)
				if err != nil {
					slog.Error("grid layout invalid", "error", err)
					panic(err)
				}
				return ci
			}),
		},
		Item: []state.Rule[*state.ItemContext]{
			state.ItemRule(CellPos, func(c *state.ItemContext) Position {
				return Cells.Get(c.Parent).Position(c.Index.Get())
			}),
		},
	}
}

// ElementAt returns the element of the cell covering p.
func ElementAt(ci *CellIndex, items []*state.Item, p Position) any {
	i := ci.Index(p)
	if i < 0 || i >= len(items) {
		return nil
	}
	return aria.ElementOf(items[i])
}
