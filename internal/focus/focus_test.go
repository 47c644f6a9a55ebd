package focus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/behave/internal/aria"
	"github.com/roach88/behave/internal/event"
	"github.com/roach88/behave/internal/navigation"
	"github.com/roach88/behave/internal/reactive"
	"github.com/roach88/behave/internal/state"
	"github.com/roach88/behave/internal/testutil"
)

type fixture struct {
	doc       *testutil.Document
	container *testutil.Element
	options   []*testutil.Element
	disabled  []*reactive.Cell[bool]
	inputs    *reactive.Cell[[]*state.Inputs]
	inst      *state.Instance
	nav       *navigation.List
}

func newFixture(t *testing.T, n int, strategy aria.FocusStrategy, parentDisabled bool) *fixture {
	t.Helper()
	f := &fixture{doc: testutil.NewDocument()}
	f.container = f.doc.NewElement("listbox")
	var in []*state.Inputs
	for i := 0; i < n; i++ {
		el := f.doc.NewElement("opt-" + string(rune('a'+i)))
		f.container.Append(el)
		d := reactive.NewCell(false)
		f.options = append(f.options, el)
		f.disabled = append(f.disabled, d)
		in = append(in, state.NewInputs(
			state.Static(aria.Element, any(el)),
			state.Static(aria.ID, el.ID),
			state.Bind(aria.Disabled, reactive.Readable[bool](d)),
		))
	}
	f.inputs = reactive.NewCell(in)
	schema := state.MustCompose(DisabledSchema(), navigation.ListSchema(), Schema())
	f.inst = state.Build(schema, state.NewInputs(
		state.Static(aria.Element, any(f.container)),
		state.Static(aria.Document, aria.Doc(f.doc)),
		state.Static(aria.FocusStrategyKey, strategy),
		state.Static(aria.Disabled, parentDisabled),
	), f.inputs)
	f.nav = navigation.NewList(f.inst.Parent, f.inst.Items)
	return f
}

func itemTabindex(f *fixture) []int {
	var out []int
	for _, it := range f.inst.Items.Get() {
		out = append(out, aria.Tabindex.Get(it))
	}
	return out
}

func TestDisabledSchema_Aggregates(t *testing.T) {
	f := newFixture(t, 2, aria.RovingTabindex, false)
	assert.False(t, aria.CompositeDisabled.Get(f.inst.Parent))

	f.disabled[0].Set(true)
	assert.False(t, aria.CompositeDisabled.Get(f.inst.Parent))
	assert.True(t, aria.CompositeDisabled.Get(f.inst.Items.Get()[0]))

	f.disabled[1].Set(true)
	assert.True(t, aria.CompositeDisabled.Get(f.inst.Parent), "every item disabled")

	g := newFixture(t, 2, aria.RovingTabindex, true)
	assert.True(t, aria.CompositeDisabled.Get(g.inst.Parent))
	assert.True(t, aria.CompositeDisabled.Get(g.inst.Items.Get()[1]), "parent disabled disables items")
}

func TestSchema_RovingTabindex(t *testing.T) {
	f := newFixture(t, 3, aria.RovingTabindex, false)
	assert.Equal(t, -1, aria.Tabindex.Get(f.inst.Parent))
	assert.Equal(t, []int{0, -1, -1}, itemTabindex(f))
	assert.Equal(t, "", aria.ActiveDescendantID.Get(f.inst.Parent))

	f.nav.NavigateTo(2)
	assert.Equal(t, []int{-1, -1, 0}, itemTabindex(f))
}

func TestSchema_ActiveDescendant(t *testing.T) {
	f := newFixture(t, 3, aria.ActiveDescendant, false)
	assert.Equal(t, 0, aria.Tabindex.Get(f.inst.Parent))
	assert.Equal(t, []int{-1, -1, -1}, itemTabindex(f))
	assert.Equal(t, "opt-a", aria.ActiveDescendantID.Get(f.inst.Parent))

	f.nav.NavigateNext()
	assert.Equal(t, "opt-b", aria.ActiveDescendantID.Get(f.inst.Parent))

	d := newFixture(t, 2, aria.ActiveDescendant, true)
	assert.Equal(t, -1, aria.Tabindex.Get(d.inst.Parent), "disabled composite is not a tab stop")
}

func TestSync_OnlyActsWhenFocusInside(t *testing.T) {
	f := newFixture(t, 3, aria.RovingTabindex, false)
	f.nav.NavigateTo(1)
	f.inst.RunSync()
	assert.Empty(t, f.doc.Log(), "focus outside the composite is left alone")

	f.options[0].Focus()
	f.doc.ResetLog()
	f.inst.RunSync()
	assert.Equal(t, []string{"focus:opt-b"}, f.doc.Log())

	f.inst.RunSync()
	assert.Equal(t, []string{"focus:opt-b"}, f.doc.Log(), "already focused")
}

func TestSync_ActiveDescendantScrolls(t *testing.T) {
	f := newFixture(t, 3, aria.ActiveDescendant, false)
	f.options[0].Focus()
	f.doc.ResetLog()

	f.nav.NavigateTo(2)
	f.inst.RunSync()
	assert.Equal(t, []string{"focus:listbox", "scroll:opt-c"}, f.doc.Log())
}

func TestController_RecapturesFocusAfterRemoval(t *testing.T) {
	f := newFixture(t, 3, aria.RovingTabindex, false)
	f.nav.NavigateTo(1)
	f.options[1].Focus()

	queue := &Queue{}
	c := NewController(f.inst.Parent, f.inst.Items, WithScheduler(queue))

	removed := f.options[1]
	handled := c.Focusout().Handle(&event.FocusEvent{Target: removed})
	require.True(t, handled)
	assert.Equal(t, 1, queue.Len(), "check is deferred")

	removed.Remove()
	in := f.inputs.Get()
	f.inputs.Set([]*state.Inputs{in[0], in[2]})
	f.doc.ResetLog()

	queue.Drain()
	assert.Equal(t, []string{"focus:opt-a"}, f.doc.Log(), "falls back to the first enabled item")
}

func TestController_IgnoresFocusMovingWithin(t *testing.T) {
	f := newFixture(t, 2, aria.RovingTabindex, false)
	f.options[0].Focus()
	c := NewController(f.inst.Parent, f.inst.Items)

	assert.False(t, c.Focusout().Handle(&event.FocusEvent{Target: f.options[1]}), "not the active item")

	assert.True(t, c.Focusout().Handle(&event.FocusEvent{Target: f.options[0]}))
	f.doc.ResetLog()
	c.Flush()
	assert.Empty(t, f.doc.Log(), "target still inside the container")
}
