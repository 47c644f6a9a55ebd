package reactive

import "reflect"

// current is the computation whose reads are being recorded as dependencies.
var current *computation

type source interface {
	version() uint64
	refresh()
	addObserver(c *computation)
	removeObserver(c *computation)
}

type base struct {
	ver       uint64
	observers map[*computation]struct{}
}

func (b *base) version() uint64 { return b.ver }

func (b *base) addObserver(c *computation) {
	if b.observers == nil {
		b.observers = make(map[*computation]struct{})
	}
	b.observers[c] = struct{}{}
}

func (b *base) removeObserver(c *computation) {
	delete(b.observers, c)
}

func (b *base) notify() {
	for c := range b.observers {
		c.markStale()
	}
}

type status uint8

const (
	statusUninitialized status = iota
	statusMaybeStale
	statusClean
)

type dependency struct {
	src source
	ver uint64
}

type computation struct {
	base
	name    string
	state   status
	deps    []dependency
	running bool
	run     func() bool
}

func (c *computation) markStale() {
	if c.state != statusClean {
		return
	}
	c.state = statusMaybeStale
	c.notify()
}

func (c *computation) refresh() {
	if c.running {
		panic(&CycleError{Name: c.name})
	}
	switch c.state {
	case statusClean:
		return
	case statusMaybeStale:
		if !c.dependenciesChanged() {
			c.state = statusClean
			return
		}
	}
	c.recompute()
}

func (c *computation) dependenciesChanged() bool {
	for _, d := range c.deps {
		d.src.refresh()
		if d.src.version() != d.ver {
			return true
		}
	}
	// Refreshing a later dependency can write to an earlier one.
	return c.dependencyMoved()
}

// dependencyMoved reports whether any dependency changed since it was read,
// without refreshing it.
func (c *computation) dependencyMoved() bool {
	for _, d := range c.deps {
		if d.src.version() != d.ver {
			return true
		}
	}
	return false
}

// maxReruns bounds how often recompute repeats a run whose dependencies
// were written while it ran.
const maxReruns = 16

func (c *computation) recompute() {
	prev := current
	current = c
	c.running = true
	defer func() {
		c.running = false
		current = prev
	}()

	for i := 0; i < maxReruns; i++ {
		for _, d := range c.deps {
			d.src.removeObserver(c)
		}
		c.deps = c.deps[:0]

		if c.run() {
			c.ver++
		}
		if !c.dependencyMoved() {
			break
		}
	}
	c.state = statusClean
}

func track(s source) {
	if current == nil {
		return
	}
	for _, d := range current.deps {
		if d.src == s {
			return
		}
	}
	current.deps = append(current.deps, dependency{src: s, ver: s.version()})
	s.addObserver(current)
}

// Untracked runs fn without recording any of its reads as dependencies of
// the computation currently evaluating.
func Untracked[T any](fn func() T) T {
	prev := current
	current = nil
	defer func() { current = prev }()
	return fn()
}

// Equal is the default change test: values of the same comparable dynamic
// type are compared with ==, everything else counts as changed.
func Equal[T any](a, b T) bool {
	x, y := any(a), any(b)
	if x == nil || y == nil {
		return x == nil && y == nil
	}
	t := reflect.TypeOf(x)
	if t != reflect.TypeOf(y) || !t.Comparable() {
		return false
	}
	return safeEqual(x, y)
}

// safeEqual guards against comparable struct types holding uncomparable
// interface values.
func safeEqual(x, y any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return x == y
}
