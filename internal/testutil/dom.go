package testutil

import "fmt"

// Document is an in-memory stand-in for a host element tree. It tracks the
// focused element and records every focus and scroll call so tests can
// assert on host side effects.
type Document struct {
	active *Element
	log    []string
}

// NewDocument creates an empty document with nothing focused.
func NewDocument() *Document {
	return &Document{}
}

// ActiveElement returns the focused element, or nil.
func (d *Document) ActiveElement() any {
	if d.active == nil {
		return nil
	}
	return d.active
}

// Focused returns the focused element with its concrete type.
func (d *Document) Focused() *Element { return d.active }

// Blur clears focus.
func (d *Document) Blur() { d.active = nil }

// Log returns recorded host calls, such as "focus:opt-2" or "scroll:opt-1".
func (d *Document) Log() []string {
	return append([]string(nil), d.log...)
}

// ResetLog clears recorded calls.
func (d *Document) ResetLog() { d.log = nil }

// NewElement creates a detached element.
func (d *Document) NewElement(id string) *Element {
	return &Element{ID: id, doc: d}
}

// Element is a node in a Document.
type Element struct {
	ID       string
	doc      *Document
	parent   *Element
	children []*Element
}

func (e *Element) String() string { return e.ID }

// Append attaches child under e.
func (e *Element) Append(child *Element) {
	child.Remove()
	child.parent = e
	e.children = append(e.children, child)
}

// Remove detaches e from its parent. Removing the focused element, or an
// ancestor of it, drops focus the way a browser does.
func (e *Element) Remove() {
	if e.parent == nil {
		return
	}
	if e.doc.active != nil && e.Contains(e.doc.active) {
		e.doc.active = nil
	}
	siblings := e.parent.children
	for i, c := range siblings {
		if c == e {
			e.parent.children = append(siblings[:i:i], siblings[i+1:]...)
			break
		}
	}
	e.parent = nil
}

// Children returns attached children in order.
func (e *Element) Children() []*Element {
	return append([]*Element(nil), e.children...)
}

// Contains reports whether target is e or one of its descendants.
func (e *Element) Contains(target any) bool {
	t, ok := target.(*Element)
	if !ok || t == nil {
		return false
	}
	for n := t; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}

// Focus makes e the active element.
func (e *Element) Focus() {
	e.doc.active = e
	e.doc.log = append(e.doc.log, fmt.Sprintf("focus:%s", e.ID))
}

// ScrollIntoView records a scroll request.
func (e *Element) ScrollIntoView() {
	e.doc.log = append(e.doc.log, fmt.Sprintf("scroll:%s", e.ID))
}
