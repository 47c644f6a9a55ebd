package termkeys

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/behave/internal/event"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		key  string
		mods event.Modifier
	}{
		{"up", "ArrowUp", event.ModNone},
		{"shift+down", "ArrowDown", event.ModShift},
		{"ctrl+home", "Home", event.ModCtrl},
		{"ctrl+shift+end", "End", event.ModCtrl | event.ModShift},
		{"pgdown", "PageDown", event.ModNone},
		{" ", " ", event.ModNone},
		{"space", " ", event.ModNone},
		{"ctrl+a", "a", event.ModCtrl},
		{"alt+b", "b", event.ModAlt},
		{"x", "x", event.ModNone},
		{"+", "+", event.ModNone},
		{"ctrl++", "+", event.ModCtrl},
		{"esc", "Escape", event.ModNone},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			key, mods := Parse(tt.in)
			assert.Equal(t, tt.key, key)
			assert.Equal(t, tt.mods, mods)
		})
	}
}

func TestKey(t *testing.T) {
	ev := Key(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}, "target")
	assert.Equal(t, "q", ev.Key)
	assert.Equal(t, event.ModNone, ev.Mods)
	assert.Equal(t, "target", ev.Target)

	ev = Key(tea.KeyMsg{Type: tea.KeyDown}, nil)
	assert.Equal(t, "ArrowDown", ev.Key)
}

func TestMouse(t *testing.T) {
	hit := func(x, y int) any {
		if y == 1 {
			return "row-1"
		}
		return nil
	}

	ev, ok := Mouse(tea.MouseMsg{X: 3, Y: 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress, Shift: true}, hit)
	require.True(t, ok)
	assert.Equal(t, event.ButtonMain, ev.Button)
	assert.Equal(t, event.ModShift, ev.Mods)
	assert.Equal(t, "row-1", ev.Target)

	ev, ok = Mouse(tea.MouseMsg{Y: 1, Button: tea.MouseButtonRight, Action: tea.MouseActionPress, Ctrl: true, Alt: true}, hit)
	require.True(t, ok)
	assert.Equal(t, event.ButtonSecondary, ev.Button)
	assert.Equal(t, event.ModCtrl|event.ModAlt, ev.Mods)

	_, ok = Mouse(tea.MouseMsg{Y: 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease}, hit)
	assert.False(t, ok)
	_, ok = Mouse(tea.MouseMsg{Y: 1, Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress}, hit)
	assert.False(t, ok)
	_, ok = Mouse(tea.MouseMsg{Y: 5, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}, hit)
	assert.False(t, ok)
}
