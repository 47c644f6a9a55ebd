package listbox

import (
	"github.com/roach88/behave/internal/event"
)

var (
	shift     = []event.Modifier{event.ModShift}
	ctrl      = []event.Modifier{event.ModCtrl}
	ctrlShift = []event.Modifier{event.ModCtrl | event.ModShift}
)

// Keydown returns the key router for the current selection type and
// strategy. Typeahead runs first; listbox keys follow. The table is read
// when the router is built, so hosts build one per event.
func (l *Listbox) Keydown() *event.Router[*event.KeyEvent] {
	return event.Compose[*event.KeyEvent](l.Typeahead.Keydown(), l.keys())
}

func (l *Listbox) keys() *event.Keyboard {
	prev, next := l.Navigation.Keys()
	nav := l.Navigation
	k := event.NewKeyboard()

	moves := []struct {
		key string
		fn  func()
	}{
		{prev, nav.NavigatePrevious},
		{next, nav.NavigateNext},
		{"Home", nav.NavigateFirst},
		{"End", nav.NavigateLast},
	}

	switch {
	case !l.multiple() && l.followFocus():
		for _, m := range moves {
			fn := m.fn
			k.On(m.key, func(*event.KeyEvent) { fn(); l.Selection.Select(l.active()) })
		}

	case !l.multiple():
		for _, m := range moves {
			fn := m.fn
			k.On(m.key, func(*event.KeyEvent) { fn() })
		}
		k.On(" ", func(*event.KeyEvent) { l.Selection.Select(l.active()) })

	case l.followFocus():
		for _, m := range moves {
			fn := m.fn
			k.On(m.key, func(*event.KeyEvent) { fn(); l.selectOnly() })
			k.OnMods(ctrl, m.key, func(*event.KeyEvent) { fn() })
		}
		l.shiftMoves(k, prev, next)
		k.OnMods(ctrl, " ", func(*event.KeyEvent) { l.Selection.Toggle(l.active()) })
		l.rangeKeys(k)

	default:
		for _, m := range moves {
			fn := m.fn
			k.On(m.key, func(*event.KeyEvent) { fn() })
		}
		k.On(" ", func(*event.KeyEvent) { l.Selection.Toggle(l.active()) })
		l.shiftMoves(k, prev, next)
		l.rangeKeys(k)
	}
	return k
}

func (l *Listbox) shiftMoves(k *event.Keyboard, prev, next string) {
	k.OnMods(shift, prev, func(*event.KeyEvent) {
		l.Navigation.NavigatePrevious()
		l.Selection.Toggle(l.active())
	})
	k.OnMods(shift, next, func(*event.KeyEvent) {
		l.Navigation.NavigateNext()
		l.Selection.Toggle(l.active())
	})
}

func (l *Listbox) rangeKeys(k *event.Keyboard) {
	k.OnMods(shift, " ", func(*event.KeyEvent) { l.Selection.SelectContiguousRange(l.active()) })
	k.OnMods(ctrlShift, "Home", func(*event.KeyEvent) {
		l.Selection.SelectRange(l.active(), 0)
		l.Navigation.NavigateFirst()
	})
	k.OnMods(ctrlShift, "End", func(*event.KeyEvent) {
		l.Selection.SelectRange(l.active(), len(l.Items.Get())-1)
		l.Navigation.NavigateLast()
	})
	k.OnMods(ctrl, "a", func(*event.KeyEvent) { l.Selection.ToggleAll() })
}

// Click returns the pointer router. Single selection selects the clicked
// option; multiple selection toggles it, and Shift-click extends a range
// from the anchor.
func (l *Listbox) Click() *event.Mouse {
	m := event.NewMouse()
	target := func(e *event.MouseEvent) int { return l.indexOf(e.Target) }

	if !l.multiple() {
		return m.On(event.ButtonMain, func(e *event.MouseEvent) {
			i := target(e)
			l.Navigation.NavigateTo(i)
			l.Selection.Select(i)
		})
	}
	return m.
		OnMods([]event.Modifier{event.ModNone, event.ModCtrl}, event.ButtonMain, func(e *event.MouseEvent) {
			i := target(e)
			l.Navigation.NavigateTo(i)
			l.Selection.Toggle(i)
		}).
		OnMods(shift, event.ButtonMain, func(e *event.MouseEvent) {
			i := target(e)
			l.Navigation.NavigateTo(i)
			l.Selection.SelectContiguousRange(i)
		})
}

// Focusout returns the focus recapture router.
func (l *Listbox) Focusout() *event.Router[*event.FocusEvent] {
	return l.Focus.Focusout()
}
