// Package typeahead activates the first item whose label starts with the
// characters typed in quick succession.
package typeahead

import (
	"log/slog"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/behave/internal/aria"
	"github.com/roach88/behave/internal/event"
	"github.com/roach88/behave/internal/reactive"
	"github.com/roach88/behave/internal/state"
)

// DefaultDebounce is how long a query survives without another keystroke.
const DefaultDebounce = 500 * time.Millisecond

// Navigator activates an item by index.
type Navigator interface {
	NavigateTo(i int)
}

// Controller accumulates a query and moves the active item to its match.
type Controller struct {
	parent   *state.Props
	items    reactive.Readable[[]*state.Item]
	nav      Navigator
	now      func() time.Time
	debounce time.Duration
	fold     cases.Caser

	query    string
	deadline time.Time
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithDebounce sets how long the query survives between keystrokes.
func WithDebounce(d time.Duration) Option {
	return func(c *Controller) { c.debounce = d }
}

// NewController creates a typeahead controller that activates matches
// through nav.
func NewController(parent *state.Props, items reactive.Readable[[]*state.Item], nav Navigator, opts ...Option) *Controller {
	c := &Controller{
		parent:   parent,
		items:    items,
		nav:      nav,
		now:      time.Now,
		debounce: DefaultDebounce,
		fold:     cases.Fold(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Query returns the pending query, or "" once it has expired.
func (c *Controller) Query() string {
	if c.now().After(c.deadline) {
		return ""
	}
	return c.query
}

// Accepts reports whether key extends a query: a single letter or digit.
func Accepts(key string) bool {
	r, size := utf8.DecodeRuneInString(key)
	if r == utf8.RuneError || size != len(key) {
		return false
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (c *Controller) normalize(s string) string {
	return c.fold.String(norm.NFC.String(s))
}

// Search appends char to the query and activates the first matching item.
// A disabled match is only scrolled into view.
func (c *Controller) Search(char string) {
	if !Accepts(char) {
		return
	}
	c.query = c.Query() + c.normalize(char)
	c.deadline = c.now().Add(c.debounce)

	items := c.items.Get()
	for i, it := range items {
		if !strings.HasPrefix(c.normalize(aria.Label.GetOr(it, "")), c.query) {
			continue
		}
		if aria.IsDisabled(it) {
			if s, ok := aria.ElementOf(it).(aria.Scroller); ok {
				s.ScrollIntoView()
			}
			return
		}
		c.nav.NavigateTo(i)
		return
	}
	slog.Debug("typeahead found no match", "query", c.query)
}

// Keydown returns a router feeding printable keys, with or without Shift,
// into Search.
func (c *Controller) Keydown() *event.Keyboard {
	return event.NewKeyboard().OnKeyFunc([]event.Modifier{event.ModNone, event.ModShift}, Accepts, func(e *event.KeyEvent) {
		c.Search(e.Key)
	})
}
