package state

import (
	"log/slog"

	"github.com/roach88/behave/internal/reactive"
)

// Item is the derived state of one item.
type Item struct {
	*Props
	id  any
	pos *reactive.Cell[int]

	// index reads the item map before pos, so a reorder is applied before
	// any reader compares index versions.
	index *reactive.Derived[int]
}

// ID returns the identity the item is cached under.
func (it *Item) ID() any { return it.id }

// Index returns the item's current position, tracked as a dependency.
func (it *Item) Index() int { return it.index.Get() }

// ItemMap holds item states keyed by identity.
type ItemMap struct {
	byID map[any]*Item
}

// Lookup returns the state cached for id.
func (m *ItemMap) Lookup(id any) (*Item, bool) {
	if m == nil {
		return nil, false
	}
	it, ok := m.byID[id]
	return it, ok
}

// Len returns the number of cached item states.
func (m *ItemMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.byID)
}

// Instance is a built state: parent properties, the identity-keyed item
// cache, the ordered item list, and side effects bound to both.
type Instance struct {
	Parent  *Props
	ItemMap reactive.Readable[*ItemMap]
	Items   reactive.Readable[[]*Item]
	Sync    []func()
}

// RunSync invokes every bound side effect in order.
func (inst *Instance) RunSync() {
	for _, fn := range inst.Sync {
		fn()
	}
}

// BuildOption configures Build.
type BuildOption func(*buildConfig)

type buildConfig struct {
	identity func(*Inputs) any
}

// WithIdentity sets the function that maps item inputs to a stable cache
// key. The key must be comparable. The default identity is the *Inputs
// pointer itself.
func WithIdentity(fn func(*Inputs) any) BuildOption {
	return func(c *buildConfig) { c.identity = fn }
}

// Build turns raw inputs into derived state according to schema.
func Build(schema *Schema, parent *Inputs, items reactive.Readable[[]*Inputs], opts ...BuildOption) *Instance {
	cfg := buildConfig{identity: func(in *Inputs) any { return in }}
	for _, opt := range opts {
		opt(&cfg)
	}

	if parent == nil {
		parent = NewInputs()
	}
	inst := &Instance{}
	self := parent.clone()
	inst.Parent = self

	var prev *ItemMap
	var itemMap *reactive.Derived[*ItemMap]
	itemMap = reactive.NewDerived(func() *ItemMap {
		inputs := items.Get()
		if prev != nil && sameIdentities(prev, inputs, cfg.identity) {
			for i, in := range inputs {
				prev.byID[cfg.identity(in)].pos.Set(i)
			}
			return prev
		}
		next := &ItemMap{byID: make(map[any]*Item, len(inputs))}
		reused := 0
		for i, in := range inputs {
			id := cfg.identity(in)
			if it, ok := prev.Lookup(id); ok {
				it.pos.Set(i)
				next.byID[id] = it
				reused++
				continue
			}
			next.byID[id] = newItem(schema, self, itemMap, in, id, i)
		}
		slog.Debug("item state cache rebuilt", "items", len(inputs), "reused", reused)
		prev = next
		return next
	}, reactive.WithName[*ItemMap]("itemMap"))
	inst.ItemMap = itemMap

	itemList := reactive.NewDerived(func() []*Item {
		inputs := items.Get()
		m := itemMap.Get()
		out := make([]*Item, 0, len(inputs))
		for _, in := range inputs {
			if it, ok := m.Lookup(cfg.identity(in)); ok {
				out = append(out, it)
			}
		}
		return out
	}, reactive.WithName[[]*Item]("items"))
	inst.Items = itemList

	for _, r := range schema.Parent {
		rule := r
		ctx := &ParentContext{Self: self, Items: itemList, prior: inputPrior(&parent.Props, rule.name)}
		self.put(rule.name, rule.newCell(func() any { return rule.fn(ctx) }, rule.writable))
	}

	for _, fn := range schema.Sync {
		sync := fn
		inst.Sync = append(inst.Sync, func() { sync(self, itemList) })
	}
	return inst
}

func sameIdentities(m *ItemMap, inputs []*Inputs, identity func(*Inputs) any) bool {
	if len(inputs) != len(m.byID) {
		return false
	}
	for _, in := range inputs {
		if _, ok := m.byID[identity(in)]; !ok {
			return false
		}
	}
	return true
}

func newItem(schema *Schema, parent *Props, itemMap reactive.Readable[*ItemMap], in *Inputs, id any, index int) *Item {
	it := &Item{Props: in.clone(), id: id, pos: reactive.NewCell(index)}
	it.index = reactive.NewDerived(func() int {
		itemMap.Get()
		return it.pos.Get()
	}, reactive.WithName[int]("index"))
	for _, r := range schema.Item {
		rule := r
		ctx := &ItemContext{Self: it.Props, Parent: parent, Index: it.index, prior: inputPrior(&in.Props, rule.name)}
		it.put(rule.name, rule.newCell(func() any { return rule.fn(ctx) }, rule.writable))
	}
	return it
}

func inputPrior(in *Props, name string) func() (any, bool) {
	e, ok := in.entries[name]
	if !ok {
		return nil
	}
	return func() (any, bool) { return e.get(), true }
}
