package event

import "strings"

// Options decide what happens to an event once a rule handles it.
type Options struct {
	PreventDefault  bool
	StopPropagation bool
}

// Option adjusts one rule.
type Option func(*ruleConfig)

type ruleConfig struct {
	opts     Options
	override bool
}

// WithPreventDefault overrides the router's default for one rule.
func WithPreventDefault(v bool) Option {
	return func(c *ruleConfig) { c.opts.PreventDefault = v }
}

// WithStopPropagation overrides the router's default for one rule.
func WithStopPropagation(v bool) Option {
	return func(c *ruleConfig) { c.opts.StopPropagation = v }
}

// AsOverride makes the rule discard every matching rule registered before
// it, including those of composed routers.
func AsOverride() Option {
	return func(c *ruleConfig) { c.override = true }
}

// Rule is one matcher/handler pair.
type Rule[E Event] struct {
	Match    func(E) bool
	Handler  func(E) bool
	Options  Options
	Override bool
}

// Source is anything that can contribute matching rules for an event.
type Source[E Event] interface {
	Matching(e E) []Rule[E]
}

// Router dispatches events to rules.
type Router[E Event] struct {
	defaults Options
	rules    []Rule[E]
	subs     []Source[E]
}

// New creates a generic router whose rules neither prevent nor stop by
// default.
func New[E Event]() *Router[E] {
	return &Router[E]{}
}

func newWithDefaults[E Event](d Options) Router[E] {
	return Router[E]{defaults: d}
}

// Compose creates a router that consults each source in order before its
// own rules.
func Compose[E Event](sources ...Source[E]) *Router[E] {
	r := New[E]()
	for _, s := range sources {
		if s != nil {
			r.subs = append(r.subs, s)
		}
	}
	return r
}

// Add appends a rule built from match and handler. A handler returning false
// leaves the event unhandled.
func (r *Router[E]) Add(match func(E) bool, handler func(E) bool, opts ...Option) *Router[E] {
	r.add(match, handler, opts)
	return r
}

// On appends a rule matching every event.
func (r *Router[E]) On(handler func(E), opts ...Option) *Router[E] {
	r.add(func(E) bool { return true }, func(e E) bool { handler(e); return true }, opts)
	return r
}

func (r *Router[E]) add(match func(E) bool, handler func(E) bool, opts []Option) {
	cfg := ruleConfig{opts: r.defaults}
	for _, o := range opts {
		o(&cfg)
	}
	r.rules = append(r.rules, Rule[E]{Match: match, Handler: handler, Options: cfg.opts, Override: cfg.override})
}

// Matching returns the rules that match e: composed sources first, then
// local rules.
func (r *Router[E]) Matching(e E) []Rule[E] {
	var out []Rule[E]
	for _, s := range r.subs {
		out = append(out, s.Matching(e)...)
	}
	for _, rule := range r.rules {
		if rule.Match(e) {
			out = append(out, rule)
		}
	}
	return out
}

// Handle dispatches e and reports whether any handler took it.
func (r *Router[E]) Handle(e E) bool {
	rules := r.Matching(e)
	for i := len(rules) - 1; i >= 0; i-- {
		if rules[i].Override {
			rules = rules[i:]
			break
		}
	}

	handled := false
	for _, rule := range rules {
		if !rule.Handler(e) {
			continue
		}
		handled = true
		if rule.Options.PreventDefault {
			e.PreventDefault()
		}
		if rule.Options.StopPropagation {
			e.StopPropagation()
		}
	}
	return handled
}

var interactive = Options{PreventDefault: true, StopPropagation: true}

// Keyboard routes key events.
type Keyboard struct {
	Router[*KeyEvent]
}

// NewKeyboard creates a keyboard router that prevents and stops handled
// events by default.
func NewKeyboard() *Keyboard {
	return &Keyboard{Router: newWithDefaults[*KeyEvent](interactive)}
}

// On binds an unmodified key.
func (k *Keyboard) On(key string, handler func(*KeyEvent), opts ...Option) *Keyboard {
	return k.OnMods([]Modifier{ModNone}, key, handler, opts...)
}

// OnMods binds a key pressed with exactly one of the given modifier masks.
func (k *Keyboard) OnMods(mods []Modifier, key string, handler func(*KeyEvent), opts ...Option) *Keyboard {
	return k.OnKeyFunc(mods, func(got string) bool { return strings.EqualFold(got, key) }, handler, opts...)
}

// OnKeyFunc binds every key accepted by match under the given modifier masks.
func (k *Keyboard) OnKeyFunc(mods []Modifier, match func(key string) bool, handler func(*KeyEvent), opts ...Option) *Keyboard {
	k.add(func(e *KeyEvent) bool {
		return hasModifiers(e.Mods, mods) && match(e.Key)
	}, func(e *KeyEvent) bool {
		handler(e)
		return true
	}, opts)
	return k
}

// Mouse routes pointer events.
type Mouse struct {
	Router[*MouseEvent]
}

// NewMouse creates a mouse router that prevents and stops handled events by
// default.
func NewMouse() *Mouse {
	return &Mouse{Router: newWithDefaults[*MouseEvent](interactive)}
}

// On binds an unmodified press of button.
func (m *Mouse) On(button Button, handler func(*MouseEvent), opts ...Option) *Mouse {
	return m.OnMods([]Modifier{ModNone}, button, handler, opts...)
}

// OnMods binds a press of button with exactly one of the given modifier
// masks.
func (m *Mouse) OnMods(mods []Modifier, button Button, handler func(*MouseEvent), opts ...Option) *Mouse {
	m.add(func(e *MouseEvent) bool {
		return e.Button == button && hasModifiers(e.Mods, mods)
	}, func(e *MouseEvent) bool {
		handler(e)
		return true
	}, opts)
	return m
}

func hasModifiers(got Modifier, masks []Modifier) bool {
	for _, m := range masks {
		if got == m {
			return true
		}
	}
	return false
}
