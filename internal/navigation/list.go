package navigation

import (
	"log/slog"

	"github.com/roach88/behave/internal/aria"
	"github.com/roach88/behave/internal/event"
	"github.com/roach88/behave/internal/reactive"
	"github.com/roach88/behave/internal/state"
)

// ListSchema derives the active item of a one-dimensional composite.
func ListSchema() *state.Schema {
	return &state.Schema{
		Parent: []state.Rule[*state.ParentContext]{
			state.ParentRule(aria.ActivatedElement, func(c *state.ParentContext) any {
				return state.PriorOr[any](c, nil)
			}, state.Writable()),
			state.ParentRule(aria.ActiveIndex, func(c *state.ParentContext) int {
				items := c.Items.Get()
				if i := indexOfElement(items, aria.ActivatedElement.Get(c.Self)); i >= 0 {
					return i
				}
				return findIndex(items, -1, stepNext(len(items), false), aria.SkipDisabled.GetOr(c.Self, true))
			}),
		},
		Item: []state.Rule[*state.ItemContext]{
			state.ItemRule(aria.Active, func(c *state.ItemContext) bool {
				return aria.ActiveIndex.Get(c.Parent) == c.Index.Get()
			}),
		},
	}
}

func indexOfElement(items []*state.Item, el any) int {
	if el == nil {
		return -1
	}
	for i, it := range items {
		if aria.SameElement(aria.ElementOf(it), el) {
			return i
		}
	}
	return -1
}

// findIndex walks from initial with step and returns the first index that
// is in range and, when skipping, enabled. It gives up when it leaves the
// range or loops back to where it started.
func findIndex(items []*state.Item, initial int, step func(int) int, skipDisabled bool) int {
	start := step(initial)
	i := start
	for {
		if i < 0 || i >= len(items) {
			return -1
		}
		if !skipDisabled || !aria.IsDisabled(items[i]) {
			return i
		}
		i = step(i)
		if i == start {
			return -1
		}
	}
}

func stepNext(n int, wrap bool) func(int) int {
	return func(i int) int {
		if wrap && i == n-1 {
			return 0
		}
		return i + 1
	}
}

func stepPrevious(n int, wrap bool) func(int) int {
	return func(i int) int {
		if i == -1 {
			i = n
		}
		if wrap && i == 0 {
			return n - 1
		}
		return i - 1
	}
}

// List drives a ListSchema state.
type List struct {
	parent *state.Props
	items  reactive.Readable[[]*state.Item]
}

// NewList creates a list navigation controller.
func NewList(parent *state.Props, items reactive.Readable[[]*state.Item]) *List {
	return &List{parent: parent, items: items}
}

func (l *List) wrap() bool         { return aria.Wrap.GetOr(l.parent, false) }
func (l *List) skipDisabled() bool { return aria.SkipDisabled.GetOr(l.parent, true) }

// ActiveIndex returns the current active index.
func (l *List) ActiveIndex() int { return aria.ActiveIndex.Get(l.parent) }

func (l *List) navigate(initial int, step func(n int, wrap bool) func(int) int) {
	items := l.items.Get()
	i := findIndex(items, initial, step(len(items), l.wrap()), l.skipDisabled())
	if i < 0 {
		slog.Debug("list navigation found no target", "from", initial)
		return
	}
	aria.ActivatedElement.Set(l.parent, aria.ElementOf(items[i]))
}

// NavigateTo activates item i. Out of range and, when skipping, disabled
// targets are ignored.
func (l *List) NavigateTo(i int) {
	items := l.items.Get()
	if i < 0 || i >= len(items) {
		return
	}
	if l.skipDisabled() && aria.IsDisabled(items[i]) {
		return
	}
	aria.ActivatedElement.Set(l.parent, aria.ElementOf(items[i]))
}

// NavigateNext activates the next item.
func (l *List) NavigateNext() { l.navigate(l.ActiveIndex(), stepNext) }

// NavigatePrevious activates the previous item.
func (l *List) NavigatePrevious() { l.navigate(l.ActiveIndex(), stepPrevious) }

// NavigateFirst activates the first enabled item.
func (l *List) NavigateFirst() { l.navigate(-1, stepNext) }

// NavigateLast activates the last enabled item.
func (l *List) NavigateLast() { l.navigate(-1, stepPrevious) }

// Keys returns the previous/next key names for the current orientation.
func (l *List) Keys() (previous, next string) {
	if aria.OrientationKey.GetOr(l.parent, aria.Vertical) == aria.Horizontal {
		return "ArrowLeft", "ArrowRight"
	}
	return "ArrowUp", "ArrowDown"
}

// Keydown returns a router for arrow keys, Home and End.
func (l *List) Keydown() *event.Keyboard {
	prev, next := l.Keys()
	return event.NewKeyboard().
		On(prev, func(*event.KeyEvent) { l.NavigatePrevious() }).
		On(next, func(*event.KeyEvent) { l.NavigateNext() }).
		On("Home", func(*event.KeyEvent) { l.NavigateFirst() }).
		On("End", func(*event.KeyEvent) { l.NavigateLast() })
}

// Click returns a router activating the clicked item.
func (l *List) Click() *event.Mouse {
	return event.NewMouse().On(event.ButtonMain, func(e *event.MouseEvent) {
		l.NavigateTo(aria.IndexOfTarget(l.items.Get(), e.Target))
	})
}
