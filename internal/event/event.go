package event

import "strings"

// Modifier is a bitmask of held modifier keys.
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModCtrl  Modifier = 1
	ModShift Modifier = 2
	ModAlt   Modifier = 4
	ModMeta  Modifier = 8
)

func (m Modifier) String() string {
	if m == ModNone {
		return "none"
	}
	var parts []string
	for _, p := range []struct {
		bit  Modifier
		name string
	}{{ModCtrl, "ctrl"}, {ModShift, "shift"}, {ModAlt, "alt"}, {ModMeta, "meta"}} {
		if m&p.bit != 0 {
			parts = append(parts, p.name)
		}
	}
	return strings.Join(parts, "+")
}

// ParseModifier maps a modifier name to its bit.
func ParseModifier(name string) (Modifier, bool) {
	switch strings.ToLower(name) {
	case "ctrl", "control":
		return ModCtrl, true
	case "shift":
		return ModShift, true
	case "alt", "option":
		return ModAlt, true
	case "meta", "cmd", "super":
		return ModMeta, true
	}
	return ModNone, false
}

// Event is the contract every routed event satisfies.
type Event interface {
	Modifiers() Modifier
	StopPropagation()
	PreventDefault()
}

// Flags records what the router asked the host to do with an event.
type Flags struct {
	propagationStopped bool
	defaultPrevented   bool
}

// StopPropagation marks the event as stopped.
func (f *Flags) StopPropagation() { f.propagationStopped = true }

// PreventDefault marks the default action as prevented.
func (f *Flags) PreventDefault() { f.defaultPrevented = true }

// PropagationStopped reports whether StopPropagation was called.
func (f *Flags) PropagationStopped() bool { return f.propagationStopped }

// DefaultPrevented reports whether PreventDefault was called.
func (f *Flags) DefaultPrevented() bool { return f.defaultPrevented }

// KeyEvent is a key press. Key uses DOM key names: "ArrowUp", "Home", " ",
// "a".
type KeyEvent struct {
	Flags
	Key    string
	Mods   Modifier
	Target any
}

// Modifiers implements Event.
func (e *KeyEvent) Modifiers() Modifier { return e.Mods }

// Button identifies a mouse button.
type Button int

const (
	ButtonMain      Button = 0
	ButtonAuxiliary Button = 1
	ButtonSecondary Button = 2
)

// MouseEvent is a pointer click.
type MouseEvent struct {
	Flags
	Button Button
	Mods   Modifier
	Target any
}

// Modifiers implements Event.
func (e *MouseEvent) Modifiers() Modifier { return e.Mods }

// FocusEvent is a focus change. Target is the element losing or gaining
// focus.
type FocusEvent struct {
	Flags
	Target any
}

// Modifiers implements Event.
func (e *FocusEvent) Modifiers() Modifier { return ModNone }
