package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/behave/internal/reactive"
	"github.com/roach88/behave/internal/state"
)

func ones(n int) []Span {
	out := make([]Span, n)
	for i := range out {
		out[i] = Span{Rowspan: 1, Colspan: 1}
	}
	return out
}

func TestNewCellIndex_UniformGrid(t *testing.T) {
	ci, err := NewCellIndex(2, 3, ones(6))
	require.NoError(t, err)

	assert.Equal(t, 0, ci.Index(Position{0, 0}))
	assert.Equal(t, 4, ci.Index(Position{1, 1}))
	assert.Equal(t, Position{Row: 1, Column: 2}, ci.Position(5))
	assert.Equal(t, -1, ci.Index(Position{2, 0}))
	assert.Equal(t, -1, ci.Index(Position{0, -1}))
}

func TestNewCellIndex_SpanningCells(t *testing.T) {
	// A A B
	// C D D
	// C E F
	spans := []Span{{1, 2}, {1, 1}, {2, 1}, {1, 2}, {1, 1}, {1, 1}}
	ci, err := NewCellIndex(3, 3, spans)
	require.NoError(t, err)

	assert.Equal(t, 0, ci.Index(Position{0, 1}))
	assert.Equal(t, 2, ci.Index(Position{2, 0}))
	assert.Equal(t, 3, ci.Index(Position{1, 2}))
	assert.Equal(t, Position{Row: 2, Column: 1}, ci.Position(4))
	assert.Equal(t, Span{Rowspan: 2, Colspan: 1}, ci.Span(2))
}

func TestNewCellIndex_Errors(t *testing.T) {
	tests := []struct {
		name  string
		rows  int
		cols  int
		spans []Span
		code  string
	}{
		{"too wide", 2, 2, []Span{{1, 3}}, ErrCodeCellsDoNotFit},
		{"too many cells", 1, 2, ones(3), ErrCodeCellsDoNotFit},
		{"too tall", 2, 2, []Span{{1, 1}, {1, 1}, {2, 1}}, ErrCodeCellsDoNotFit},
		{"overlap", 2, 2, []Span{{1, 1}, {2, 1}, {1, 2}}, ErrCodeOverlappingCells},
		{"gaps", 2, 2, ones(3), ErrCodeIncompleteCoverage},
		{"negative span", 1, 1, []Span{{-1, 1}}, ErrCodeInvalidSpan},
		{"empty grid", 0, 0, ones(1), ErrCodeCellsDoNotFit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCellIndex(tt.rows, tt.cols, tt.spans)
			require.Error(t, err)
			assert.True(t, IsLayoutError(err))
			var le *LayoutError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, tt.code, le.Code)
		})
	}
}

func TestSchema_DerivesPositions(t *testing.T) {
	cells := []*state.Inputs{
		state.NewInputs(state.Static(Colspan, 2)),
		state.NewInputs(),
		state.NewInputs(),
		state.NewInputs(),
		state.NewInputs(),
	}
	parent := state.NewInputs(state.Static(Rowcount, 2), state.Static(Colcount, 3))
	inst := state.Build(Schema(), parent, reactive.NewCell(cells))

	items := inst.Items.Get()
	require.Len(t, items, 5)
	assert.Equal(t, Position{0, 2}, CellPos.Get(items[1]))
	assert.Equal(t, Position{1, 0}, CellPos.Get(items[2]))
	assert.Equal(t, 3, Cells.Get(inst.Parent).Index(Position{1, 1}))
}

func TestSchema_InvalidLayoutPanicsWithLayoutError(t *testing.T) {
	parent := state.NewInputs(state.Static(Rowcount, 1), state.Static(Colcount, 1))
	inst := state.Build(Schema(), parent, reactive.NewCell([]*state.Inputs{state.NewInputs(), state.NewInputs()}))

	err := reactive.Catch(func() { Cells.Get(inst.Parent) })
	assert.True(t, IsLayoutError(err))
}
