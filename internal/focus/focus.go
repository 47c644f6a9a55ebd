package focus

import (
	"log/slog"

	"github.com/roach88/behave/internal/aria"
	"github.com/roach88/behave/internal/event"
	"github.com/roach88/behave/internal/reactive"
	"github.com/roach88/behave/internal/state"
)

// Schema derives tab stops and the active descendant id, and binds the focus
// sync function. It reads activeIndex from a navigation schema and
// compositeDisabled from DisabledSchema.
func Schema() *state.Schema {
	return &state.Schema{
		Parent: []state.Rule[*state.ParentContext]{
			state.ParentRule(aria.Tabindex, func(c *state.ParentContext) int {
				if strategyOf(c.Self) == aria.ActiveDescendant && !aria.IsDisabled(c.Self) {
					return 0
				}
				return -1
			}),
			state.ParentRule(aria.ActiveDescendantID, func(c *state.ParentContext) string {
				if strategyOf(c.Self) != aria.ActiveDescendant {
					return ""
				}
				items := c.Items.Get()
				i := aria.ActiveIndex.Get(c.Self)
				if i < 0 || i >= len(items) {
					return ""
				}
				return aria.ID.GetOr(items[i], "")
			}),
		},
		Item: []state.Rule[*state.ItemContext]{
			state.ItemRule(aria.Tabindex, func(c *state.ItemContext) int {
				if strategyOf(c.Parent) == aria.RovingTabindex &&
					!aria.IsDisabled(c.Self) &&
					aria.ActiveIndex.Get(c.Parent) == c.Index.Get() {
					return 0
				}
				return -1
			}),
		},
		Sync: []state.SyncFunc{Sync},
	}
}

func strategyOf(h state.Holder) aria.FocusStrategy {
	return aria.FocusStrategyKey.GetOr(h, aria.RovingTabindex)
}

// Sync moves host focus to match state while focus is inside the composite.
func Sync(parent *state.Props, items reactive.Readable[[]*state.Item]) {
	doc, ok := aria.Document.Lookup(parent)
	if !ok || doc == nil {
		return
	}
	container := aria.ElementOf(parent)
	if !contains(container, doc.ActiveElement()) {
		return
	}
	list := items.Get()
	i := aria.ActiveIndex.Get(parent)
	if i < 0 || i >= len(list) {
		return
	}
	active := aria.ElementOf(list[i])

	if strategyOf(parent) == aria.RovingTabindex {
		if aria.SameElement(doc.ActiveElement(), active) {
			return
		}
		if f, ok := active.(aria.Focuser); ok {
			f.Focus()
		}
		return
	}
	if !aria.SameElement(doc.ActiveElement(), container) {
		if f, ok := container.(aria.Focuser); ok {
			f.Focus()
		}
	}
	if s, ok := active.(aria.Scroller); ok {
		s.ScrollIntoView()
	}
}

func contains(container, target any) bool {
	if container == nil || target == nil {
		return false
	}
	if aria.SameElement(container, target) {
		return true
	}
	c, ok := container.(aria.Container)
	return ok && c.Contains(target)
}

// Controller handles focus leaving the active item.
type Controller struct {
	parent *state.Props
	items  reactive.Readable[[]*state.Item]
	sched  Scheduler
}

// Option configures a Controller.
type Option func(*Controller)

// WithScheduler sets where deferred focus checks run. The default is a
// private Queue drained by Flush.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.sched = s }
}

// NewController creates a focus controller.
func NewController(parent *state.Props, items reactive.Readable[[]*state.Item], opts ...Option) *Controller {
	c := &Controller{parent: parent, items: items}
	for _, opt := range opts {
		opt(c)
	}
	if c.sched == nil {
		c.sched = &Queue{}
	}
	return c
}

// Flush drains the default queue. It does nothing for external schedulers.
func (c *Controller) Flush() {
	if q, ok := c.sched.(*Queue); ok {
		q.Drain()
	}
}

// Focusout returns a router that recaptures focus when the active item is
// removed while focused.
func (c *Controller) Focusout() *event.Router[*event.FocusEvent] {
	return event.New[*event.FocusEvent]().Add(c.leavesActive, func(e *event.FocusEvent) bool {
		target := e.Target
		c.sched.Schedule(func() { c.recapture(target) })
		return true
	})
}

func (c *Controller) leavesActive(e *event.FocusEvent) bool {
	list := c.items.Get()
	i := aria.ActiveIndex.Get(c.parent)
	return i >= 0 && i < len(list) && aria.SameElement(aria.ElementOf(list[i]), e.Target)
}

func (c *Controller) recapture(target any) {
	if contains(aria.ElementOf(c.parent), target) {
		return
	}
	list := c.items.Get()
	i := aria.ActiveIndex.Get(c.parent)
	if i < 0 || i >= len(list) {
		return
	}
	slog.Debug("refocusing active item after removal", "index", i)
	if f, ok := aria.ElementOf(list[i]).(aria.Focuser); ok {
		f.Focus()
	}
}
