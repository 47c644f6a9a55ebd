package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func key(k string, mods Modifier) *KeyEvent {
	return &KeyEvent{Key: k, Mods: mods}
}

func TestKeyboard_MatchesKeyCaseInsensitive(t *testing.T) {
	var got []string
	k := NewKeyboard().On("a", func(e *KeyEvent) { got = append(got, e.Key) })

	assert.True(t, k.Handle(key("A", ModNone)))
	assert.True(t, k.Handle(key("a", ModNone)))
	assert.False(t, k.Handle(key("b", ModNone)))
	assert.Equal(t, []string{"A", "a"}, got)
}

func TestKeyboard_ModifierMasksMustMatchExactly(t *testing.T) {
	calls := 0
	k := NewKeyboard().OnMods([]Modifier{ModShift, ModCtrl | ModShift}, "Home", func(*KeyEvent) { calls++ })

	assert.False(t, k.Handle(key("Home", ModNone)))
	assert.True(t, k.Handle(key("Home", ModShift)))
	assert.True(t, k.Handle(key("Home", ModCtrl|ModShift)))
	assert.False(t, k.Handle(key("Home", ModCtrl)))
	assert.Equal(t, 2, calls)
}

func TestKeyboard_DefaultsPreventAndStop(t *testing.T) {
	k := NewKeyboard().On("Enter", func(*KeyEvent) {})
	e := key("Enter", ModNone)
	k.Handle(e)
	assert.True(t, e.DefaultPrevented())
	assert.True(t, e.PropagationStopped())

	k2 := NewKeyboard().On("Enter", func(*KeyEvent) {}, WithPreventDefault(false))
	e2 := key("Enter", ModNone)
	k2.Handle(e2)
	assert.False(t, e2.DefaultPrevented())
	assert.True(t, e2.PropagationStopped())
}

func TestRouter_GenericDefaultsToNothing(t *testing.T) {
	r := New[*FocusEvent]().On(func(*FocusEvent) {})
	e := &FocusEvent{}
	assert.True(t, r.Handle(e))
	assert.False(t, e.DefaultPrevented())
	assert.False(t, e.PropagationStopped())
}

func TestRouter_HandlerReturningFalseIsNotHandled(t *testing.T) {
	r := New[*KeyEvent]().Add(
		func(*KeyEvent) bool { return true },
		func(*KeyEvent) bool { return false },
		WithPreventDefault(true),
	)
	e := key("x", ModNone)
	assert.False(t, r.Handle(e))
	assert.False(t, e.DefaultPrevented(), "options apply only to handled rules")
}

func TestRouter_ComposedSourcesRunBeforeLocalRules(t *testing.T) {
	var order []string
	inner := NewKeyboard().On("x", func(*KeyEvent) { order = append(order, "inner") })
	outer := Compose[*KeyEvent](inner)
	outer.Add(func(*KeyEvent) bool { return true }, func(*KeyEvent) bool {
		order = append(order, "outer")
		return true
	})

	assert.True(t, outer.Handle(key("x", ModNone)))
	assert.Equal(t, []string{"inner", "outer"}, order)
}

func TestRouter_LastOverrideTruncates(t *testing.T) {
	var order []string
	record := func(name string) func(*KeyEvent) { return func(*KeyEvent) { order = append(order, name) } }

	k := NewKeyboard().
		On("x", record("first")).
		On("x", record("override-1"), AsOverride()).
		On("x", record("middle")).
		On("x", record("override-2"), AsOverride()).
		On("x", record("last"))

	assert.True(t, k.Handle(key("x", ModNone)))
	assert.Equal(t, []string{"override-2", "last"}, order)
}

func TestRouter_OverrideDiscardsComposedRules(t *testing.T) {
	var order []string
	inner := NewKeyboard().On(" ", func(*KeyEvent) { order = append(order, "typeahead") })
	local := NewKeyboard().On(" ", func(*KeyEvent) { order = append(order, "select") }, AsOverride())

	assert.True(t, Compose[*KeyEvent](inner, local).Handle(key(" ", ModNone)))
	assert.Equal(t, []string{"select"}, order)
}

func TestRouter_NonMatchingOverrideIgnored(t *testing.T) {
	var order []string
	k := NewKeyboard().
		On("x", func(*KeyEvent) { order = append(order, "x") }).
		On("y", func(*KeyEvent) { order = append(order, "y") }, AsOverride())

	k.Handle(key("x", ModNone))
	assert.Equal(t, []string{"x"}, order)
}

func TestMouse_ButtonAndModifiers(t *testing.T) {
	var got []string
	m := NewMouse().
		On(ButtonMain, func(*MouseEvent) { got = append(got, "click") }).
		OnMods([]Modifier{ModShift}, ButtonMain, func(*MouseEvent) { got = append(got, "shift-click") })

	assert.True(t, m.Handle(&MouseEvent{Button: ButtonMain}))
	assert.True(t, m.Handle(&MouseEvent{Button: ButtonMain, Mods: ModShift}))
	assert.False(t, m.Handle(&MouseEvent{Button: ButtonSecondary}))
	assert.Equal(t, []string{"click", "shift-click"}, got)
}

func TestModifier_StringAndParse(t *testing.T) {
	assert.Equal(t, "none", ModNone.String())
	assert.Equal(t, "ctrl+shift", (ModCtrl | ModShift).String())

	m, ok := ParseModifier("Shift")
	assert.True(t, ok)
	assert.Equal(t, ModShift, m)
	_, ok = ParseModifier("hyper")
	assert.False(t, ok)
}
