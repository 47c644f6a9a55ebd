package harness

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/behave/internal/event"
	"github.com/roach88/behave/internal/fixture"
	"github.com/roach88/behave/internal/table"
)

func TestOpen_Listbox(t *testing.T) {
	sess, err := Open(loadFixtures(t), "listbox.fruit")
	require.NoError(t, err)

	assert.Equal(t, fixture.KindListbox, sess.Kind)
	require.Equal(t, 4, sess.Len())
	assert.Equal(t, "Banana", sess.Label(1))
	assert.True(t, sess.Disabled(1))
	assert.False(t, sess.Selected(0))

	_, ok := sess.Position(0)
	assert.False(t, ok)

	sess.Focus()
	assert.True(t, sess.Key(" ", event.ModNone))
	assert.True(t, sess.Selected(0))
	assert.Equal(t, "fruit-1", sess.State().Focused)
}

func TestOpen_GridPositions(t *testing.T) {
	sess, err := Open(loadFixtures(t), "grid.spans")
	require.NoError(t, err)

	p, ok := sess.Position(1)
	require.True(t, ok)
	assert.Equal(t, table.Position{Row: 0, Column: 2}, p)

	handled, err := sess.Click(4, event.ModNone)
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, []int{1, 2}, sess.State().ActivePosition)
}

func TestOpen_TypeaheadExpires(t *testing.T) {
	sess, err := Open(loadFixtures(t), "listbox.fruit")
	require.NoError(t, err)

	sess.Key("d", event.ModNone)
	assert.Equal(t, 3, sess.State().ActiveIndex)

	// "c" extends "d" to "dc" until the buffer expires.
	sess.Key("c", event.ModNone)
	assert.Equal(t, 3, sess.State().ActiveIndex)

	sess.Wait(time.Second)
	sess.Key("c", event.ModNone)
	assert.Equal(t, 2, sess.State().ActiveIndex)
}

func TestOpen_InvalidLayout(t *testing.T) {
	set := &fixture.Set{
		Listboxes: map[string]*fixture.Listbox{},
		Grids: map[string]*fixture.Grid{
			"bad": {Name: "bad", Rows: 1, Columns: 1, Cells: []fixture.Cell{{Label: "a"}, {Label: "b"}}},
		},
	}
	_, err := Open(set, "grid.bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "building grid.bad")
}
