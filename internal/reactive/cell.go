package reactive

// Readable is any cell whose value can be read. Reads inside a computation
// are recorded as dependencies of that computation.
type Readable[T any] interface {
	Get() T
}

// Writable is a readable cell that also accepts writes.
type Writable[T any] interface {
	Readable[T]
	Set(v T)
}

// Option configures a cell.
type Option[T any] func(*options[T])

type options[T any] struct {
	name  string
	equal func(a, b T) bool
}

// WithName labels a cell for cycle reports and logging.
func WithName[T any](name string) Option[T] {
	return func(o *options[T]) { o.name = name }
}

// WithEqual replaces the change test used to decide whether a new value
// should propagate.
func WithEqual[T any](eq func(a, b T) bool) Option[T] {
	return func(o *options[T]) { o.equal = eq }
}

func buildOptions[T any](opts []Option[T]) options[T] {
	o := options[T]{equal: Equal[T]}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Cell is a writable source value.
type Cell[T any] struct {
	base
	value T
	opts  options[T]
}

// NewCell creates a source cell holding v.
func NewCell[T any](v T, opts ...Option[T]) *Cell[T] {
	return &Cell[T]{value: v, opts: buildOptions(opts)}
}

// Get returns the current value.
func (c *Cell[T]) Get() T {
	track(c)
	return c.value
}

// Set stores v and invalidates dependents unless v equals the current value.
func (c *Cell[T]) Set(v T) {
	if c.opts.equal(c.value, v) {
		return
	}
	c.value = v
	c.ver++
	c.notify()
}

// Update applies fn to the current value and stores the result.
func (c *Cell[T]) Update(fn func(T) T) {
	c.Set(fn(c.value))
}

func (c *Cell[T]) refresh() {}

// Const is a read-only value that never changes.
type Const[T any] struct {
	value T
}

// NewConst wraps v as a Readable.
func NewConst[T any](v T) Const[T] {
	return Const[T]{value: v}
}

// Get returns the wrapped value.
func (c Const[T]) Get() T { return c.value }

// Func adapts a plain function into a Readable. Reads performed by fn are
// tracked exactly as if the caller had performed them.
type Func[T any] func() T

// Get calls the function.
func (f Func[T]) Get() T { return f() }
