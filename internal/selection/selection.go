// Package selection tracks which item values of a composite are selected.
package selection

import (
	"log/slog"

	"github.com/roach88/behave/internal/aria"
	"github.com/roach88/behave/internal/event"
	"github.com/roach88/behave/internal/reactive"
	"github.com/roach88/behave/internal/state"
)

// Schema derives selected indices from the selected values.
func Schema() *state.Schema {
	return &state.Schema{
		Parent: []state.Rule[*state.ParentContext]{
			state.ParentRule(aria.SelectedValues, func(c *state.ParentContext) []any {
				return state.PriorOr[[]any](c, nil)
			}, state.Writable()),
			state.ParentRule(aria.LastSelectedIndex, func(c *state.ParentContext) int {
				return state.PriorOr(c, -1)
			}, state.Writable()),
			state.ParentRule(aria.SelectedIndices, func(c *state.ParentContext) []int {
				values := newValueSet(aria.SelectedValues.Get(c.Self), compareOf(c.Self))
				var out []int
				for i, it := range c.Items.Get() {
					if values.contains(aria.Value.GetOr(it, nil)) {
						out = append(out, i)
					}
				}
				return out
			}),
		},
		Item: []state.Rule[*state.ItemContext]{
			state.ItemRule(aria.Selected, func(c *state.ItemContext) bool {
				i := c.Index.Get()
				for _, s := range aria.SelectedIndices.Get(c.Parent) {
					if s == i {
						return true
					}
				}
				return false
			}),
		},
	}
}

func compareOf(h state.Holder) aria.Compare {
	return aria.CompareValues.GetOr(h, nil)
}

// valueSet answers membership by exact equality, or through compare when one
// is configured.
type valueSet struct {
	values  []any
	exact   map[any]struct{}
	compare aria.Compare
}

func newValueSet(values []any, compare aria.Compare) valueSet {
	s := valueSet{values: values, compare: compare}
	if compare == nil {
		s.exact = make(map[any]struct{}, len(values))
		for _, v := range values {
			if hashable(v) {
				s.exact[v] = struct{}{}
			}
		}
	}
	return s
}

func (s valueSet) contains(v any) bool {
	if s.compare == nil {
		if hashable(v) {
			_, ok := s.exact[v]
			return ok
		}
		return false
	}
	for _, x := range s.values {
		if s.compare(x, v) {
			return true
		}
	}
	return false
}

func hashable(v any) bool {
	return v != nil && reactive.Equal(v, v)
}

// Controller edits the selection of a Schema state.
type Controller struct {
	parent *state.Props
	items  reactive.Readable[[]*state.Item]
}

// NewController creates a selection controller.
func NewController(parent *state.Props, items reactive.Readable[[]*state.Item]) *Controller {
	return &Controller{parent: parent, items: items}
}

func (c *Controller) multiple() bool {
	return aria.SelectionTypeKey.GetOr(c.parent, aria.Single) == aria.Multiple
}

func (c *Controller) selectable(items []*state.Item, i int) bool {
	return i >= 0 && i < len(items) && !aria.IsDisabled(items[i])
}

// SelectedIndices returns the current selection.
func (c *Controller) SelectedIndices() []int { return aria.SelectedIndices.Get(c.parent) }

// Anchor returns the index range selection extends from.
func (c *Controller) Anchor() int { return aria.LastSelectedIndex.Get(c.parent) }

// write stores values unless they hold the same set as the current
// selection.
func (c *Controller) write(values []any) {
	current := aria.SelectedValues.Get(c.parent)
	if sameValues(current, values, compareOf(c.parent)) {
		return
	}
	aria.SelectedValues.Set(c.parent, values)
}

func sameValues(a, b []any, compare aria.Compare) bool {
	as, bs := newValueSet(a, compare), newValueSet(b, compare)
	for _, v := range a {
		if !bs.contains(v) {
			return false
		}
	}
	for _, v := range b {
		if !as.contains(v) {
			return false
		}
	}
	return true
}

func (c *Controller) setAnchor(i int) {
	aria.LastSelectedIndex.Set(c.parent, i)
}

// Select adds item i. Single selection replaces the current value.
func (c *Controller) Select(i int) {
	items := c.items.Get()
	if !c.selectable(items, i) {
		slog.Debug("select ignored", "index", i)
		return
	}
	v := aria.Value.GetOr(items[i], nil)
	if c.multiple() {
		current := aria.SelectedValues.Get(c.parent)
		if !newValueSet(current, compareOf(c.parent)).contains(v) {
			c.write(append(append([]any(nil), current...), v))
		}
	} else {
		c.write([]any{v})
	}
	c.setAnchor(i)
}

// Deselect removes item i.
func (c *Controller) Deselect(i int) {
	items := c.items.Get()
	if !c.selectable(items, i) {
		return
	}
	c.write(c.without(aria.Value.GetOr(items[i], nil)))
	c.setAnchor(i)
}

func (c *Controller) without(v any) []any {
	drop := newValueSet([]any{v}, compareOf(c.parent))
	var out []any
	for _, x := range aria.SelectedValues.Get(c.parent) {
		if !drop.contains(x) {
			out = append(out, x)
		}
	}
	return out
}

// Toggle flips item i.
func (c *Controller) Toggle(i int) {
	if c.isSelected(i) {
		c.Deselect(i)
		return
	}
	c.Select(i)
}

func (c *Controller) isSelected(i int) bool {
	for _, s := range c.SelectedIndices() {
		if s == i {
			return true
		}
	}
	return false
}

// SelectAll selects every enabled item. Disabled items keep their current
// state. Only multiple selection supports it.
func (c *Controller) SelectAll() {
	if !c.multiple() {
		return
	}
	items := c.items.Get()
	values := append([]any(nil), aria.SelectedValues.Get(c.parent)...)
	set := newValueSet(values, compareOf(c.parent))
	for i, it := range items {
		if !c.selectable(items, i) {
			continue
		}
		if v := aria.Value.GetOr(it, nil); !set.contains(v) {
			values = append(values, v)
		}
	}
	c.write(values)
	c.setAnchor(-1)
}

// SelectOnly makes item i the whole selection in a single write and moves
// the anchor to it. A disabled or out-of-range item leaves the selection
// untouched.
func (c *Controller) SelectOnly(i int) {
	items := c.items.Get()
	if !c.selectable(items, i) {
		slog.Debug("select only ignored", "index", i)
		return
	}
	c.write([]any{aria.Value.GetOr(items[i], nil)})
	c.setAnchor(i)
}

// DeselectAll clears the selection.
func (c *Controller) DeselectAll() {
	c.write(nil)
	c.setAnchor(-1)
}

// ToggleAll deselects everything when every enabled item is selected and
// selects everything otherwise.
func (c *Controller) ToggleAll() {
	if !c.multiple() {
		return
	}
	items := c.items.Get()
	enabled, selected := 0, 0
	for i := range items {
		if !c.selectable(items, i) {
			continue
		}
		enabled++
		if c.isSelected(i) {
			selected++
		}
	}
	if enabled > 0 && selected == enabled {
		c.DeselectAll()
		return
	}
	c.SelectAll()
}

// SelectRange selects from..to inclusive, clamped to the item range, and
// moves the anchor to the last index it touched.
func (c *Controller) SelectRange(from, to int) {
	c.applyRange(from, to, true)
}

// DeselectRange deselects from..to inclusive.
func (c *Controller) DeselectRange(from, to int) {
	c.applyRange(from, to, false)
}

// SelectContiguousRange selects from the anchor to to. It does nothing
// without an anchor.
func (c *Controller) SelectContiguousRange(to int) {
	anchor := c.Anchor()
	if anchor < 0 {
		slog.Debug("range selection without anchor ignored", "to", to)
		return
	}
	c.SelectRange(anchor, to)
}

func (c *Controller) applyRange(from, to int, add bool) {
	items := c.items.Get()
	if len(items) == 0 {
		return
	}
	from = max(0, min(from, len(items)-1))
	to = max(0, min(to, len(items)-1))
	step := 1
	if to < from {
		step = -1
	}

	compare := compareOf(c.parent)
	values := append([]any(nil), aria.SelectedValues.Get(c.parent)...)
	last := -1
	for i := from; ; i += step {
		if c.selectable(items, i) {
			v := aria.Value.GetOr(items[i], nil)
			set := newValueSet(values, compare)
			switch {
			case add && !c.multiple():
				values = []any{v}
			case add && !set.contains(v):
				values = append(values, v)
			case !add:
				drop := newValueSet([]any{v}, compare)
				kept := values[:0:0]
				for _, x := range values {
					if !drop.contains(x) {
						kept = append(kept, x)
					}
				}
				values = kept
			}
			last = i
		}
		if i == to {
			break
		}
	}
	if last < 0 {
		return
	}
	c.write(values)
	c.setAnchor(last)
}

// Keydown returns a router for Space: toggle in multiple selection, select
// otherwise.
func (c *Controller) Keydown() *event.Keyboard {
	return event.NewKeyboard().On(" ", func(*event.KeyEvent) {
		active := aria.ActiveIndex.GetOr(c.parent, -1)
		if c.multiple() {
			c.Toggle(active)
			return
		}
		c.Select(active)
	})
}
