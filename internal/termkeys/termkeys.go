// Package termkeys translates bubbletea terminal input into widget events.
package termkeys

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/roach88/behave/internal/event"
)

// names maps bubbletea key names to DOM key values.
var names = map[string]string{
	"up":        "ArrowUp",
	"down":      "ArrowDown",
	"left":      "ArrowLeft",
	"right":     "ArrowRight",
	"home":      "Home",
	"end":       "End",
	"pgup":      "PageUp",
	"pgdown":    "PageDown",
	"enter":     "Enter",
	"esc":       "Escape",
	"tab":       "Tab",
	"backspace": "Backspace",
	"delete":    "Delete",
	"space":     " ",
	" ":         " ",
}

var modifiers = map[string]event.Modifier{
	"ctrl":  event.ModCtrl,
	"alt":   event.ModAlt,
	"shift": event.ModShift,
}

// Parse splits a bubbletea key string such as "ctrl+shift+home" into a DOM
// key value and modifiers. Unknown names pass through unchanged, so "a"
// stays "a" and "+" stays "+".
func Parse(s string) (string, event.Modifier) {
	var mods event.Modifier
	for {
		prefix, rest, ok := strings.Cut(s, "+")
		if !ok || rest == "" {
			break
		}
		bit, known := modifiers[prefix]
		if !known {
			break
		}
		mods |= bit
		s = rest
	}
	if name, ok := names[s]; ok {
		return name, mods
	}
	return s, mods
}

// Key converts a key message to a keydown event targeted at target.
func Key(msg tea.KeyMsg, target any) *event.KeyEvent {
	key, mods := Parse(msg.String())
	return &event.KeyEvent{Key: key, Mods: mods, Target: target}
}

// HitTest maps terminal cell coordinates to the element drawn there, or nil.
type HitTest func(x, y int) any

// Mouse converts a button press to a mouse event. Releases, motion, wheel
// events and presses outside any element report false.
func Mouse(msg tea.MouseMsg, hit HitTest) (*event.MouseEvent, bool) {
	if msg.Action != tea.MouseActionPress {
		return nil, false
	}

	var button event.Button
	switch msg.Button {
	case tea.MouseButtonLeft:
		button = event.ButtonMain
	case tea.MouseButtonMiddle:
		button = event.ButtonAuxiliary
	case tea.MouseButtonRight:
		button = event.ButtonSecondary
	default:
		return nil, false
	}

	target := hit(msg.X, msg.Y)
	if target == nil {
		return nil, false
	}

	var mods event.Modifier
	if msg.Ctrl {
		mods |= event.ModCtrl
	}
	if msg.Shift {
		mods |= event.ModShift
	}
	if msg.Alt {
		mods |= event.ModAlt
	}
	return &event.MouseEvent{Button: button, Mods: mods, Target: target}, true
}
