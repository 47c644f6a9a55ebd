// Package aria declares the property vocabulary and host interfaces shared
// by the behavior packages.
package aria

import (
	"github.com/roach88/behave/internal/reactive"
	"github.com/roach88/behave/internal/state"
)

// Orientation of a one-dimensional composite.
type Orientation string

const (
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
)

// FocusStrategy selects how keyboard focus is represented inside a composite.
type FocusStrategy string

const (
	RovingTabindex   FocusStrategy = "rovingtabindex"
	ActiveDescendant FocusStrategy = "activedescendant"
)

// SelectionType is single or multiple selection.
type SelectionType string

const (
	Single   SelectionType = "single"
	Multiple SelectionType = "multiple"
)

// SelectionStrategy decides whether moving focus also selects.
type SelectionStrategy string

const (
	FollowFocus SelectionStrategy = "followfocus"
	Explicit    SelectionStrategy = "explicit"
)

// Compare reports whether two selection values are the same.
type Compare func(a, b any) bool

// Shared properties. Inputs are supplied by the host; the rest are derived by
// the behavior schemas.
var (
	Element           = state.NewKey[any]("element")
	ID                = state.NewKey[string]("id")
	Label             = state.NewKey[string]("label")
	Value             = state.NewKey[any]("value")
	Disabled          = state.NewKey[bool]("disabled")
	CompositeDisabled = state.NewKey[bool]("compositeDisabled")
	Document          = state.NewKey[Doc]("document")

	OrientationKey = state.NewKey[Orientation]("orientation")
	Wrap           = state.NewKey[bool]("wrap")
	SkipDisabled   = state.NewKey[bool]("skipDisabled")

	ActivatedElement = state.NewKey[any]("activatedElement")
	ActiveIndex      = state.NewKey[int]("activeIndex")
	Active           = state.NewKey[bool]("active")

	FocusStrategyKey   = state.NewKey[FocusStrategy]("focusStrategy")
	Tabindex           = state.NewKey[int]("tabindex")
	ActiveDescendantID = state.NewKey[string]("activeDescendantId")

	SelectionTypeKey     = state.NewKey[SelectionType]("selectionType")
	SelectionStrategyKey = state.NewKey[SelectionStrategy]("selectionStrategy")
	SelectedValues       = state.NewKey[[]any]("selectedValues")
	SelectedIndices      = state.NewKey[[]int]("selectedIndices")
	LastSelectedIndex    = state.NewKey[int]("lastSelectedIndex")
	Selected             = state.NewKey[bool]("selected")
	CompareValues        = state.NewKey[Compare]("compareValues")
)

// Focuser is an element that can take keyboard focus.
type Focuser interface {
	Focus()
}

// Container is an element that can contain other elements.
type Container interface {
	Contains(target any) bool
}

// Scroller is an element that can be scrolled into view.
type Scroller interface {
	ScrollIntoView()
}

// Doc exposes the host's focus state.
type Doc interface {
	ActiveElement() any
}

// SameElement compares element handles without panicking on uncomparable
// values.
func SameElement(a, b any) bool {
	if a == nil || b == nil {
		return false
	}
	return reactive.Equal(a, b)
}

// IsDisabled reports whether an item is unavailable for interaction. The
// composite flag wins when present.
func IsDisabled(h state.Holder) bool {
	if v, ok := CompositeDisabled.Lookup(h); ok {
		return v
	}
	return Disabled.GetOr(h, false)
}

// ElementOf returns an item's element or nil.
func ElementOf(h state.Holder) any {
	return Element.GetOr(h, nil)
}

// IndexOfTarget finds the item whose element is target or contains it.
func IndexOfTarget(items []*state.Item, target any) int {
	for i, it := range items {
		el := ElementOf(it)
		if SameElement(el, target) {
			return i
		}
	}
	for i, it := range items {
		if c, ok := ElementOf(it).(Container); ok && c.Contains(target) {
			return i
		}
	}
	return -1
}
