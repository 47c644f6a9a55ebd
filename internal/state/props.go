package state

import (
	"log/slog"
	"reflect"

	"github.com/roach88/behave/internal/reactive"
)

type entry struct {
	cell any
	typ  reflect.Type
	get  func() any
}

// Props is a named set of reactive properties: either the raw inputs of a
// widget or its derived state.
type Props struct {
	entries map[string]entry
	order   []string
}

func newProps() *Props {
	return &Props{entries: make(map[string]entry)}
}

func (p *Props) props() *Props { return p }

func (p *Props) put(name string, e entry) {
	if _, ok := p.entries[name]; !ok {
		p.order = append(p.order, name)
	}
	p.entries[name] = e
}

func (p *Props) clone() *Props {
	c := &Props{entries: make(map[string]entry, len(p.entries)), order: append([]string(nil), p.order...)}
	for k, v := range p.entries {
		c.entries[k] = v
	}
	return c
}

// Has reports whether a property exists.
func (p *Props) Has(name string) bool {
	_, ok := p.entries[name]
	return ok
}

// Names lists property names in declaration order.
func (p *Props) Names() []string {
	return append([]string(nil), p.order...)
}

// Value reads a property without static typing. Used for traces and
// diagnostics.
func (p *Props) Value(name string) (any, bool) {
	e, ok := p.entries[name]
	if !ok {
		return nil, false
	}
	return e.get(), true
}

// Holder is anything that carries properties: *Props, *Inputs or *Item.
type Holder interface {
	props() *Props
}

// Key is a typed property name.
type Key[T any] struct {
	name string
}

// NewKey declares a property.
func NewKey[T any](name string) Key[T] {
	return Key[T]{name: name}
}

// Name returns the property name.
func (k Key[T]) Name() string { return k.name }

// Cell returns the property's reactive cell.
func (k Key[T]) Cell(h Holder) reactive.Readable[T] {
	r, err := k.lookup(h)
	if err != nil {
		slog.Error("property access failed", "property", k.name, "error", err)
		panic(err)
	}
	return r
}

// Get reads the property. Missing or mistyped properties panic with *Error.
func (k Key[T]) Get(h Holder) T {
	return k.Cell(h).Get()
}

// Lookup reads the property if it exists.
func (k Key[T]) Lookup(h Holder) (T, bool) {
	r, err := k.lookup(h)
	if err != nil {
		var zero T
		return zero, false
	}
	return r.Get(), true
}

// GetOr reads the property or returns def when it is absent.
func (k Key[T]) GetOr(h Holder, def T) T {
	if v, ok := k.Lookup(h); ok {
		return v
	}
	return def
}

// Set writes the property. Only source cells and writable rules accept
// writes.
func (k Key[T]) Set(h Holder, v T) {
	r := k.Cell(h)
	w, ok := r.(reactive.Writable[T])
	if !ok {
		err := newError(ErrCodeNotWritable, k.name, "property is read-only")
		slog.Error("property write failed", "property", k.name, "error", err)
		panic(err)
	}
	w.Set(v)
}

func (k Key[T]) lookup(h Holder) (reactive.Readable[T], error) {
	e, ok := h.props().entries[k.name]
	if !ok {
		return nil, newError(ErrCodeMissingProperty, k.name, "property not defined")
	}
	r, ok := e.cell.(reactive.Readable[T])
	if !ok {
		return nil, newError(ErrCodeTypeMismatch, k.name, "property holds %s, not %s", e.typ, reflect.TypeOf((*T)(nil)).Elem())
	}
	return r, nil
}

// Field is one raw input property.
type Field struct {
	name  string
	entry entry
}

// Static binds a fixed value.
func Static[T any](k Key[T], v T) Field {
	return Bind(k, reactive.Readable[T](reactive.NewConst(v)))
}

// Bind binds an external cell. Writable cells stay writable through the
// key until a rule replaces the property.
func Bind[T any](k Key[T], r reactive.Readable[T]) Field {
	return Field{name: k.name, entry: entry{
		cell: r,
		typ:  reflect.TypeOf((*T)(nil)).Elem(),
		get:  func() any { return r.Get() },
	}}
}

// Inputs are the raw properties supplied by the host for a parent widget or
// one of its items.
type Inputs struct {
	Props
}

// NewInputs collects fields. A later field replaces an earlier one with the
// same name.
func NewInputs(fields ...Field) *Inputs {
	in := &Inputs{Props: *newProps()}
	return in.With(fields...)
}

// With adds fields in place and returns the receiver.
func (in *Inputs) With(fields ...Field) *Inputs {
	for _, f := range fields {
		in.put(f.name, f.entry)
	}
	return in
}
