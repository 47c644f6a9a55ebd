package reactive

// Derived is a read-only value computed from other cells.
type Derived[T any] struct {
	computation
	fn          func() T
	value       T
	initialized bool
	opts        options[T]
}

// NewDerived creates a lazily evaluated computed cell.
func NewDerived[T any](fn func() T, opts ...Option[T]) *Derived[T] {
	d := &Derived[T]{fn: fn, opts: buildOptions(opts)}
	d.name = d.opts.name
	d.run = d.evaluate
	return d
}

func (d *Derived[T]) evaluate() bool {
	v := d.fn()
	if d.initialized && d.opts.equal(d.value, v) {
		return false
	}
	d.value = v
	d.initialized = true
	return true
}

// Get returns the up-to-date value, recomputing it if any dependency changed.
func (d *Derived[T]) Get() T {
	d.refresh()
	track(d)
	return d.value
}

// Mode reports whether a Linked cell is following its computation or holding
// a written value.
type Mode uint8

const (
	Tracking Mode = iota
	Overridden
)

func (m Mode) String() string {
	if m == Overridden {
		return "overridden"
	}
	return "tracking"
}

// Linked is a derived value that can be overwritten. The written value holds
// until any upstream dependency changes.
type Linked[T any] struct {
	Derived[T]
	mode Mode
}

// NewLinked creates a writable computed cell.
func NewLinked[T any](fn func() T, opts ...Option[T]) *Linked[T] {
	l := &Linked[T]{}
	l.fn = fn
	l.opts = buildOptions(opts)
	l.name = l.opts.name
	l.run = func() bool {
		l.mode = Tracking
		return l.evaluate()
	}
	return l
}

// Set overrides the computed value.
func (l *Linked[T]) Set(v T) {
	// Establish dependencies first so a later upstream change still resets
	// the override.
	l.refresh()
	l.mode = Overridden
	if l.initialized && l.opts.equal(l.value, v) {
		return
	}
	l.value = v
	l.initialized = true
	l.ver++
	l.notify()
}

// Update applies fn to the current value and stores the result.
func (l *Linked[T]) Update(fn func(T) T) {
	l.Set(fn(Untracked(l.Get)))
}

// Mode reports the current state without refreshing the cell.
func (l *Linked[T]) Mode() Mode { return l.mode }
