package cli

import (
	"fmt"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/roach88/behave/internal/event"
	"github.com/roach88/behave/internal/fixture"
	"github.com/roach88/behave/internal/harness"
	"github.com/roach88/behave/internal/table"
	"github.com/roach88/behave/internal/termkeys"
)

const (
	playTick      = 100 * time.Millisecond
	playCellWidth = 12
	playHeader    = 2 // title and a blank line
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	activeStyle   = lipgloss.NewStyle().Reverse(true)
	disabledStyle = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// NewPlayCommand creates the play command.
func NewPlayCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play <fixtures-dir> <kind.name>",
		Short: "Drive a fixture interactively in the terminal",
		Long: `Open a fixture as a live widget and drive it with the keyboard and mouse.

Keys are routed exactly as in scenarios: arrows, Home/End, PageUp/PageDown,
space, ctrl+a and printable characters for typeahead. Click an item to
activate it. Press esc or ctrl+c to quit.

Examples:
  behave play ./fixtures listbox.fruit
  behave play ./fixtures grid.spans`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := loadFixtures(args[0])
			if err != nil {
				return err
			}
			m, err := newPlayModel(set, args[1])
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to open fixture", err)
			}
			newLogger(rootOpts, cmd.ErrOrStderr()).Debug("play", "fixture", args[1], "items", m.session.Len())

			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
			_, err = p.Run()
			return err
		},
	}
	return cmd
}

type tickMsg time.Time

// region is the screen area an item was drawn in.
type region struct {
	x0, x1, y int
	index     int
}

type playModel struct {
	ref     string
	session *harness.Session
	status  string
	regions []region
}

func newPlayModel(set *fixture.Set, ref string) (*playModel, error) {
	s, err := harness.Open(set, ref)
	if err != nil {
		return nil, err
	}
	s.Focus()
	return &playModel{ref: ref, session: s}, nil
}

func tick() tea.Cmd {
	return tea.Tick(playTick, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *playModel) Init() tea.Cmd { return tick() }

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		// Advances the session clock so typeahead buffers expire.
		m.session.Wait(playTick)
		return m, tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			return m, tea.Quit
		}
		ev := termkeys.Key(msg, nil)
		handled := m.session.Key(ev.Key, ev.Mods)
		m.status = describeInput("key", ev.Key, ev.Mods, handled)

	case tea.MouseMsg:
		ev, ok := termkeys.Mouse(msg, m.hit)
		if !ok || ev.Button != event.ButtonMain {
			return m, nil
		}
		i := ev.Target.(int)
		handled, err := m.session.Click(i, ev.Mods)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.status = describeInput("click", m.session.Label(i), ev.Mods, handled)
	}
	return m, nil
}

// hit returns the index of the item drawn at (x, y), or nil.
func (m *playModel) hit(x, y int) any {
	for _, r := range m.regions {
		if y == r.y && x >= r.x0 && x < r.x1 {
			return r.index
		}
	}
	return nil
}

func (m *playModel) View() string {
	m.regions = m.regions[:0]

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s (%d items)", m.ref, m.session.Len())))
	b.WriteString("\n\n")

	st := m.session.State()
	if cells, ok := m.session.Layout(); ok {
		m.renderGrid(&b, cells, st)
	} else {
		m.renderList(&b, st)
	}

	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.footer(st)))
	b.WriteString("\n")
	return b.String()
}

func (m *playModel) renderList(b *strings.Builder, st harness.State) {
	for i, n := 0, m.session.Len(); i < n; i++ {
		mark := "  "
		if slices.Contains(st.SelectedIndices, i) {
			mark = "● "
		}
		line := mark + m.itemText(i, st, 0)
		m.regions = append(m.regions, region{x0: 0, x1: lipgloss.Width(line), y: playHeader + i, index: i})
		b.WriteString(line)
		b.WriteString("\n")
	}
}

func (m *playModel) renderGrid(b *strings.Builder, cells *table.CellIndex, st harness.State) {
	for r, n := 0, cells.Rows(); r < n; r++ {
		for c := 0; c < cells.Columns(); {
			i := cells.Index(table.Position{Row: r, Column: c})
			origin, span := cells.Position(i), cells.Span(i)
			width := span.Colspan * playCellWidth
			m.regions = append(m.regions, region{
				x0: c * playCellWidth, x1: c*playCellWidth + width, y: playHeader + r, index: i,
			})
			if origin.Row == r {
				b.WriteString(m.itemText(i, st, width))
			} else {
				// Continuation of a cell spanning rows.
				b.WriteString(strings.Repeat(" ", width))
			}
			c += span.Colspan
		}
		b.WriteString("\n")
	}
}

func (m *playModel) itemText(i int, st harness.State, width int) string {
	style := lipgloss.NewStyle()
	switch {
	case i == st.ActiveIndex:
		style = activeStyle
	case m.session.Disabled(i):
		style = disabledStyle
	}
	if width > 0 {
		style = style.Width(width).MaxWidth(width)
	}
	return style.Render(m.session.Label(i))
}

func (m *playModel) footer(st harness.State) string {
	parts := []string{fmt.Sprintf("active %d", st.ActiveIndex)}
	if st.Focused != "" {
		parts = append(parts, "focus "+st.Focused)
	}
	if st.ActiveDescendant != "" {
		parts = append(parts, "descendant "+st.ActiveDescendant)
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	parts = append(parts, "esc to quit")
	return strings.Join(parts, " · ")
}

func describeInput(kind, input string, mods event.Modifier, handled bool) string {
	if input == " " {
		input = "space"
	}
	if mods != event.ModNone {
		input = mods.String() + "+" + input
	}
	if handled {
		return fmt.Sprintf("%s %s", kind, input)
	}
	return fmt.Sprintf("%s %s (unhandled)", kind, input)
}
