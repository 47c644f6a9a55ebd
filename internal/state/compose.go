package state

import "log/slog"

// Compose merges schemas left to right. When several schemas define the same
// property, the later computation sees the earlier one's value as its prior,
// and the composed property is writable if any layer is. Sync functions are
// concatenated.
func Compose(schemas ...*Schema) (*Schema, error) {
	out := &Schema{}
	for _, s := range schemas {
		if s == nil {
			continue
		}
		var err error
		if out.Parent, err = mergeRules(out.Parent, s.Parent); err != nil {
			return nil, err
		}
		if out.Item, err = mergeRules(out.Item, s.Item); err != nil {
			return nil, err
		}
		out.Sync = append(out.Sync, s.Sync...)
	}
	return out, nil
}

// MustCompose is Compose for package-level schema declarations.
func MustCompose(schemas ...*Schema) *Schema {
	s, err := Compose(schemas...)
	if err != nil {
		panic(err)
	}
	return s
}

func mergeRules[C ruleContext[C]](into, next []Rule[C]) ([]Rule[C], error) {
	out := append([]Rule[C](nil), into...)
	for _, r := range next {
		i := indexOfRule(out, r.name)
		if i < 0 {
			out = append(out, r)
			continue
		}
		prev := out[i]
		if prev.typ != r.typ {
			err := newError(ErrCodeTypeMismatch, r.name, "cannot compose %s with %s", prev.typ, r.typ)
			slog.Error("schema composition failed", "property", r.name, "error", err)
			return nil, err
		}
		out[i] = chain(prev, r)
	}
	return out, nil
}

func indexOfRule[C ruleContext[C]](rules []Rule[C], name string) int {
	for i, r := range rules {
		if r.name == name {
			return i
		}
	}
	return -1
}

func chain[C ruleContext[C]](prev, next Rule[C]) Rule[C] {
	return Rule[C]{
		name:     next.name,
		typ:      next.typ,
		writable: prev.writable || next.writable,
		newCell:  next.newCell,
		fn: func(c C) any {
			return next.fn(c.withPrior(func() (any, bool) {
				return prev.fn(c), true
			}))
		},
	}
}
