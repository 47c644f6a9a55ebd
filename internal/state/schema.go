package state

import (
	"reflect"

	"github.com/roach88/behave/internal/reactive"
)

// Context is implemented by the contexts passed to rule computations.
type Context interface {
	// Prior returns the value this rule builds on: the raw input of the same
	// name, or the previous layer's value when schemas are composed.
	Prior() (any, bool)
}

type ruleContext[C any] interface {
	Context
	withPrior(prior func() (any, bool)) C
}

// ParentContext is passed to parent rules.
type ParentContext struct {
	Self  *Props
	Items reactive.Readable[[]*Item]
	prior func() (any, bool)
}

// Prior implements Context.
func (c *ParentContext) Prior() (any, bool) { return callPrior(c.prior) }

func (c *ParentContext) withPrior(prior func() (any, bool)) *ParentContext {
	cp := *c
	cp.prior = prior
	return &cp
}

// ItemContext is passed to item rules. Parent state is reachable only
// through the context.
type ItemContext struct {
	Self   *Props
	Parent *Props
	Index  reactive.Readable[int]
	prior  func() (any, bool)
}

// Prior implements Context.
func (c *ItemContext) Prior() (any, bool) { return callPrior(c.prior) }

func (c *ItemContext) withPrior(prior func() (any, bool)) *ItemContext {
	cp := *c
	cp.prior = prior
	return &cp
}

func callPrior(prior func() (any, bool)) (any, bool) {
	if prior == nil {
		return nil, false
	}
	return prior()
}

// Prior returns the typed prior value of a rule.
func Prior[T any](c Context) (T, bool) {
	v, ok := c.Prior()
	if !ok || v == nil {
		var zero T
		return zero, ok
	}
	t, ok := v.(T)
	return t, ok
}

// PriorOr returns the typed prior value or def when there is none.
func PriorOr[T any](c Context, def T) T {
	if v, ok := Prior[T](c); ok {
		return v
	}
	return def
}

// Rule computes one derived property.
type Rule[C ruleContext[C]] struct {
	name     string
	typ      reflect.Type
	writable bool
	fn       func(C) any
	newCell  func(eval func() any, writable bool) entry
}

// Name returns the property the rule produces.
func (r Rule[C]) Name() string { return r.name }

// Writable reports whether the produced property accepts writes.
func (r Rule[C]) Writable() bool { return r.writable }

// RuleOption configures a rule.
type RuleOption func(*ruleOptions)

type ruleOptions struct {
	writable bool
}

// Writable makes the rule's property writable. A written value holds until
// any upstream dependency of the rule changes.
func Writable() RuleOption {
	return func(o *ruleOptions) { o.writable = true }
}

func newRule[C ruleContext[C], T any](k Key[T], fn func(C) T, opts []RuleOption) Rule[C] {
	var o ruleOptions
	for _, opt := range opts {
		opt(&o)
	}
	return Rule[C]{
		name:     k.name,
		typ:      reflect.TypeOf((*T)(nil)).Elem(),
		writable: o.writable,
		fn:       func(c C) any { return fn(c) },
		newCell: func(eval func() any, writable bool) entry {
			compute := func() T {
				v := eval()
				if v == nil {
					var zero T
					return zero
				}
				return v.(T)
			}
			if writable {
				l := reactive.NewLinked(compute, reactive.WithName[T](k.name))
				return entry{cell: reactive.Writable[T](l), typ: reflect.TypeOf((*T)(nil)).Elem(), get: func() any { return l.Get() }}
			}
			d := reactive.NewDerived(compute, reactive.WithName[T](k.name))
			return entry{cell: reactive.Readable[T](d), typ: reflect.TypeOf((*T)(nil)).Elem(), get: func() any { return d.Get() }}
		},
	}
}

// ParentRule declares a parent property computation.
func ParentRule[T any](k Key[T], fn func(*ParentContext) T, opts ...RuleOption) Rule[*ParentContext] {
	return newRule(k, fn, opts)
}

// ItemRule declares a per-item property computation.
func ItemRule[T any](k Key[T], fn func(*ItemContext) T, opts ...RuleOption) Rule[*ItemContext] {
	return newRule(k, fn, opts)
}

// SyncFunc is a side effect bound to a built state. Hosts call the bound
// functions after state changes.
type SyncFunc func(parent *Props, items reactive.Readable[[]*Item])

// Schema describes how raw inputs become derived state.
type Schema struct {
	Parent []Rule[*ParentContext]
	Item   []Rule[*ItemContext]
	Sync   []SyncFunc
}
