// Package listbox assembles the behaviors of a listbox: aggregate
// disabling, list navigation, focus management, selection and typeahead.
package listbox

import (
	"time"

	"github.com/roach88/behave/internal/aria"
	"github.com/roach88/behave/internal/focus"
	"github.com/roach88/behave/internal/ids"
	"github.com/roach88/behave/internal/navigation"
	"github.com/roach88/behave/internal/reactive"
	"github.com/roach88/behave/internal/selection"
	"github.com/roach88/behave/internal/state"
	"github.com/roach88/behave/internal/typeahead"
)

// Schema composes the listbox behaviors.
func Schema() *state.Schema {
	return state.MustCompose(
		focus.DisabledSchema(),
		navigation.ListSchema(),
		focus.Schema(),
		selection.Schema(),
	)
}

// Config holds the static parent inputs of a listbox.
type Config struct {
	Element           any
	Document          aria.Doc
	Orientation       aria.Orientation
	Wrap              bool
	Disabled          bool
	FocusStrategy     aria.FocusStrategy
	SelectionType     aria.SelectionType
	SelectionStrategy aria.SelectionStrategy
	Selected          []any
	Compare           aria.Compare
}

// Inputs converts the config to parent inputs. Extra fields are applied last
// and may bind reactive cells in place of the static values.
func (cfg Config) Inputs(extra ...state.Field) *state.Inputs {
	fields := []state.Field{
		state.Static(aria.Element, cfg.Element),
		state.Static(aria.OrientationKey, orDefault(cfg.Orientation, aria.Vertical)),
		state.Static(aria.Wrap, cfg.Wrap),
		state.Static(aria.Disabled, cfg.Disabled),
		state.Static(aria.FocusStrategyKey, orDefault(cfg.FocusStrategy, aria.RovingTabindex)),
		state.Static(aria.SelectionTypeKey, orDefault(cfg.SelectionType, aria.Single)),
		state.Static(aria.SelectionStrategyKey, orDefault(cfg.SelectionStrategy, aria.Explicit)),
		state.Static(aria.SelectedValues, cfg.Selected),
	}
	if cfg.Document != nil {
		fields = append(fields, state.Static(aria.Document, cfg.Document))
	}
	if cfg.Compare != nil {
		fields = append(fields, state.Static(aria.CompareValues, cfg.Compare))
	}
	return state.NewInputs(append(fields, extra...)...)
}

func orDefault[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}

// OptionIDs generates ids for options that carry none.
var OptionIDs ids.Generator = ids.UUIDGenerator{Prefix: "option"}

// Option describes one listbox option.
type Option struct {
	Element  any
	ID       string
	Label    string
	Value    any
	Disabled reactive.Readable[bool]
}

// Inputs converts the option to item inputs. The label doubles as the value
// when no value is set, and an empty id is replaced from OptionIDs.
func (o Option) Inputs() *state.Inputs {
	if o.ID == "" {
		o.ID = OptionIDs.Generate()
	}
	value := o.Value
	if value == nil {
		value = o.Label
	}
	disabled := o.Disabled
	if disabled == nil {
		disabled = reactive.NewConst(false)
	}
	return state.NewInputs(
		state.Static(aria.Element, o.Element),
		state.Static(aria.ID, o.ID),
		state.Static(aria.Label, o.Label),
		state.Static(aria.Value, value),
		state.Bind(aria.Disabled, disabled),
	)
}

// Listbox is a built listbox with its controllers.
type Listbox struct {
	*state.Instance
	Navigation *navigation.List
	Selection  *selection.Controller
	Focus      *focus.Controller
	Typeahead  *typeahead.Controller
}

// BuildOption configures New.
type BuildOption func(*buildConfig)

type buildConfig struct {
	build     []state.BuildOption
	focus     []focus.Option
	typeahead []typeahead.Option
}

// WithIdentity sets the option identity function.
func WithIdentity(fn func(*state.Inputs) any) BuildOption {
	return func(c *buildConfig) { c.build = append(c.build, state.WithIdentity(fn)) }
}

// WithScheduler sets where deferred focus checks run.
func WithScheduler(s focus.Scheduler) BuildOption {
	return func(c *buildConfig) { c.focus = append(c.focus, focus.WithScheduler(s)) }
}

// WithClock sets the typeahead clock.
func WithClock(now func() time.Time) BuildOption {
	return func(c *buildConfig) { c.typeahead = append(c.typeahead, typeahead.WithClock(now)) }
}

// New builds a listbox from parent inputs and a reactive option list.
func New(parent *state.Inputs, options reactive.Readable[[]*state.Inputs], opts ...BuildOption) *Listbox {
	var cfg buildConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	inst := state.Build(Schema(), parent, options, cfg.build...)
	l := &Listbox{
		Instance:   inst,
		Navigation: navigation.NewList(inst.Parent, inst.Items),
		Selection:  selection.NewController(inst.Parent, inst.Items),
		Focus:      focus.NewController(inst.Parent, inst.Items, cfg.focus...),
	}
	l.Typeahead = typeahead.NewController(inst.Parent, inst.Items, followNavigator{l}, cfg.typeahead...)
	return l
}

func (l *Listbox) multiple() bool {
	return aria.SelectionTypeKey.Get(l.Parent) == aria.Multiple
}

func (l *Listbox) followFocus() bool {
	return aria.SelectionStrategyKey.Get(l.Parent) == aria.FollowFocus
}

func (l *Listbox) active() int { return aria.ActiveIndex.Get(l.Parent) }

// selectOnly makes the active option the whole selection.
func (l *Listbox) selectOnly() {
	l.Selection.SelectOnly(l.active())
}

// followNavigator applies follow-focus selection to typeahead moves.
type followNavigator struct{ l *Listbox }

func (f followNavigator) NavigateTo(i int) {
	before := f.l.active()
	f.l.Navigation.NavigateTo(i)
	if f.l.followFocus() && f.l.active() != before {
		f.l.selectOnly()
	}
}

func (l *Listbox) indexOf(target any) int {
	return aria.IndexOfTarget(l.Items.Get(), target)
}
