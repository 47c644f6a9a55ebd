package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/behave/internal/fixture"
)

func openPlay(t *testing.T, ref string) *playModel {
	t.Helper()
	set, errs := fixture.Load(fixturesDir, fixture.LoadModeFailFast)
	require.Empty(t, errs)
	m, err := newPlayModel(set, ref)
	require.NoError(t, err)
	return m
}

func TestPlayKeys(t *testing.T) {
	m := openPlay(t, "listbox.fruit")
	assert.Equal(t, "fruit-1", m.session.State().Focused)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Nil(t, cmd)
	assert.Equal(t, 2, m.session.State().ActiveIndex)
	assert.Equal(t, "key ArrowDown", m.status)

	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Equal(t, []int{2}, m.session.State().SelectedIndices)

	m.Update(tea.KeyMsg{Type: tea.KeyF1})
	assert.Contains(t, m.status, "(unhandled)")
}

func TestPlayQuit(t *testing.T) {
	for _, msg := range []tea.KeyMsg{{Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		m := openPlay(t, "listbox.fruit")
		_, cmd := m.Update(msg)
		require.NotNil(t, cmd)
		assert.Equal(t, tea.QuitMsg{}, cmd())
	}
}

func TestPlayTickAdvancesClock(t *testing.T) {
	m := openPlay(t, "listbox.toppings")

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'o'}})
	assert.Equal(t, 1, m.session.State().ActiveIndex)

	// Once the query expires "b" starts a new search instead of "ob".
	for i := 0; i < 6; i++ {
		_, cmd := m.Update(tickMsg{})
		assert.NotNil(t, cmd)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}})
	assert.Equal(t, 4, m.session.State().ActiveIndex)
}

func TestPlayViewList(t *testing.T) {
	m := openPlay(t, "listbox.fruit")
	view := m.View()

	assert.Contains(t, view, "listbox.fruit (4 items)")
	for _, label := range []string{"Apple", "Banana", "Cherry", "Date"} {
		assert.Contains(t, view, label)
	}
	assert.Contains(t, view, "focus fruit-1")
	require.Len(t, m.regions, 4)
	assert.Equal(t, playHeader+3, m.regions[3].y)
}

func TestPlayClick(t *testing.T) {
	m := openPlay(t, "listbox.fruit")
	m.View()

	m.Update(tea.MouseMsg{X: 3, Y: playHeader + 3, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	assert.Equal(t, 3, m.session.State().ActiveIndex)
	assert.Equal(t, "click Date", m.status)

	// Releases and clicks outside any item are ignored.
	m.Update(tea.MouseMsg{X: 3, Y: playHeader, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	m.Update(tea.MouseMsg{X: 3, Y: 40, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	assert.Equal(t, 3, m.session.State().ActiveIndex)
}

func TestPlayGridHitTest(t *testing.T) {
	m := openPlay(t, "grid.spans")
	view := m.View()
	assert.Contains(t, view, "Wide")

	assert.Equal(t, 0, m.hit(playCellWidth+1, playHeader))
	assert.Equal(t, 1, m.hit(2*playCellWidth+1, playHeader))
	assert.Equal(t, 3, m.hit(playCellWidth+1, playHeader+1))
	assert.Nil(t, m.hit(3*playCellWidth+1, playHeader))
}

func TestDescribeInput(t *testing.T) {
	assert.Equal(t, "key space", describeInput("key", " ", 0, true))
	assert.Equal(t, "click Apple (unhandled)", describeInput("click", "Apple", 0, false))
}
