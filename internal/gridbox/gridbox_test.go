package gridbox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/behave/internal/aria"
	"github.com/roach88/behave/internal/event"
	"github.com/roach88/behave/internal/reactive"
	"github.com/roach88/behave/internal/state"
	"github.com/roach88/behave/internal/table"
	"github.com/roach88/behave/internal/testutil"
)

func build(t *testing.T, cfg Config, spans []table.Span) (*Grid, *testutil.Document, []*testutil.Element) {
	t.Helper()
	doc := testutil.NewDocument()
	container := doc.NewElement("grid")
	cfg.Element = container
	cfg.Document = doc
	var cells []*state.Inputs
	var els []*testutil.Element
	for i, s := range spans {
		el := doc.NewElement("cell-" + string(rune('a'+i)))
		container.Append(el)
		els = append(els, el)
		cells = append(cells, Cell{Element: el, ID: el.ID, Rowspan: s.Rowspan, Colspan: s.Colspan}.Inputs())
	}
	return New(cfg.Inputs(), reactive.NewCell(cells)), doc, els
}

func TestGrid_KeyboardAcrossSpans(t *testing.T) {
	// A A B
	// C D D
	g, _, _ := build(t, Config{Rows: 2, Columns: 3}, []table.Span{{Rowspan: 1, Colspan: 2}, {Rowspan: 1, Colspan: 1}, {Rowspan: 1, Colspan: 1}, {Rowspan: 1, Colspan: 2}})
	require.NoError(t, g.Check())

	press := func(k string, mods event.Modifier) {
		g.Keydown().Handle(&event.KeyEvent{Key: k, Mods: mods})
	}

	press("ArrowRight", event.ModNone)
	assert.Equal(t, table.Position{Row: 0, Column: 2}, g.ActivePosition())

	press("ArrowDown", event.ModNone)
	assert.Equal(t, 3, aria.ActiveIndex.Get(g.Parent))
	assert.Equal(t, table.Position{Row: 1, Column: 2}, g.ActivePosition())

	press("ArrowLeft", event.ModNone)
	assert.Equal(t, table.Position{Row: 1, Column: 0}, g.ActivePosition())

	press("End", event.ModCtrl)
	assert.Equal(t, 3, aria.ActiveIndex.Get(g.Parent))
	press("Home", event.ModCtrl)
	assert.Equal(t, table.Position{Row: 0, Column: 0}, g.ActivePosition())
}

func TestGrid_RovingTabindexFollowsActiveCell(t *testing.T) {
	g, doc, els := build(t, Config{Rows: 1, Columns: 3}, []table.Span{{Rowspan: 1, Colspan: 1}, {Rowspan: 1, Colspan: 1}, {Rowspan: 1, Colspan: 1}})
	els[0].Focus()
	doc.ResetLog()

	g.Click().Handle(&event.MouseEvent{Target: els[2]})
	g.RunSync()

	items := g.Items.Get()
	assert.Equal(t, 0, aria.Tabindex.Get(items[2]))
	assert.Equal(t, -1, aria.Tabindex.Get(items[0]))
	assert.Equal(t, []string{"focus:cell-c"}, doc.Log())
}

func TestGrid_CheckReportsLayoutError(t *testing.T) {
	g, _, _ := build(t, Config{Rows: 2, Columns: 2}, []table.Span{{Rowspan: 1, Colspan: 1}, {Rowspan: 1, Colspan: 1}, {Rowspan: 1, Colspan: 1}})
	err := g.Check()
	require.Error(t, err)
	assert.True(t, table.IsLayoutError(err))
}

func TestCell_GeneratesMissingID(t *testing.T) {
	a := aria.ID.Get(Cell{Label: "x"}.Inputs())
	b := aria.ID.Get(Cell{Label: "x"}.Inputs())
	assert.True(t, strings.HasPrefix(a, "cell-"), a)
	assert.NotEqual(t, a, b)

	assert.Equal(t, "cell-kept", aria.ID.Get(Cell{ID: "cell-kept"}.Inputs()))
}
