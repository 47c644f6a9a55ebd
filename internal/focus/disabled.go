package focus

import (
	"github.com/roach88/behave/internal/aria"
	"github.com/roach88/behave/internal/state"
)

// DisabledSchema derives compositeDisabled: the parent is disabled when it
// is disabled itself or every item is, an item when it or the parent is.
func DisabledSchema() *state.Schema {
	return &state.Schema{
		Parent: []state.Rule[*state.ParentContext]{
			state.ParentRule(aria.CompositeDisabled, func(c *state.ParentContext) bool {
				if aria.Disabled.GetOr(c.Self, false) {
					return true
				}
				for _, it := range c.Items.Get() {
					if !aria.Disabled.GetOr(it, false) {
						return false
					}
				}
				return true
			}),
		},
		Item: []state.Rule[*state.ItemContext]{
			state.ItemRule(aria.CompositeDisabled, func(c *state.ItemContext) bool {
				return aria.Disabled.GetOr(c.Self, false) || aria.Disabled.GetOr(c.Parent, false)
			}),
		},
	}
}
