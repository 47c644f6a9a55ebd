package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/behave/internal/harness"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Canonical bool // print the golden snapshot bytes instead of a timeline
}

// TraceResult holds the complete trace output.
type TraceResult struct {
	Scenario string               `json:"scenario"`
	Fixture  string               `json:"fixture"`
	Kind     string               `json:"kind"`
	Pass     bool                 `json:"pass"`
	Timeline []harness.TraceEvent `json:"timeline"`
	Errors   []string             `json:"errors,omitempty"`
	Final    harness.State        `json:"final"`
	Stats    TraceStats           `json:"stats"`
}

// TraceStats holds summary statistics for the trace.
type TraceStats struct {
	Steps     int `json:"steps"`
	Handled   int `json:"handled"`
	Unhandled int `json:"unhandled"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace <fixtures-dir> <scenario-file>",
		Short: "Print the step timeline for one scenario",
		Long: `Run a single scenario and print the state after every step.

The output includes:
- Timeline: each step with its input, whether it was handled and the
  resulting active item, selection and focus
- Stats: step counts by outcome

With --canonical the golden snapshot is printed exactly as it would be
written by "behave run --update".

Examples:
  behave trace ./fixtures ./scenarios/listbox_single_explicit.yaml
  behave trace ./fixtures ./scenarios/grid_spans.yaml --format json
  behave trace ./fixtures ./scenarios/grid_spans.yaml --canonical`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Canonical, "canonical", false, "print canonical golden JSON")

	return cmd
}

func runTrace(opts *TraceOptions, fixturesDir, scenarioFile string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	set, err := loadFixtures(fixturesDir)
	if err != nil {
		return err
	}

	scenario, err := harness.LoadScenario(scenarioFile)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load scenario", err)
	}

	result, err := harness.New(set, harness.WithLogger(logger)).Run(scenario)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to run scenario", err)
	}

	if opts.Canonical {
		data, err := harness.Snapshot(scenario, result)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to marshal trace", err)
		}
		fmt.Fprintln(formatter.Writer, string(data))
		return nil
	}

	tr := TraceResult{
		Scenario: scenario.Name,
		Fixture:  scenario.Fixture,
		Kind:     result.Kind,
		Pass:     result.Pass,
		Timeline: result.Trace,
		Errors:   result.Errors,
		Final:    result.Final,
		Stats:    computeTraceStats(result.Trace),
	}

	if opts.Format == "json" {
		return formatter.Success(tr)
	}
	outputTraceText(formatter, tr)
	return nil
}

func computeTraceStats(events []harness.TraceEvent) TraceStats {
	stats := TraceStats{Steps: len(events)}
	for _, ev := range events {
		if ev.Handled {
			stats.Handled++
		} else {
			stats.Unhandled++
		}
	}
	return stats
}

func outputTraceText(formatter *OutputFormatter, tr TraceResult) {
	w := formatter.Writer

	fmt.Fprintf(w, "Scenario: %s (%s %s)\n", tr.Scenario, tr.Kind, tr.Fixture)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Timeline:")

	for _, ev := range tr.Timeline {
		marker := " "
		if !ev.Handled {
			marker = "-"
		}
		fmt.Fprintf(w, "  [%d] %s %s -> %s\n", ev.Seq, marker, describeStep(ev), describeState(ev.State))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Stats: %d steps, %d handled, %d unhandled\n",
		tr.Stats.Steps, tr.Stats.Handled, tr.Stats.Unhandled)

	if !tr.Pass {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Expectation failures:")
		for _, e := range tr.Errors {
			fmt.Fprintf(w, "  %s\n", e)
		}
	}
}

func describeStep(ev harness.TraceEvent) string {
	var b strings.Builder
	b.WriteString(ev.Step)
	if ev.Input != "" {
		b.WriteString(" ")
		b.WriteString(ev.Input)
	}
	if ev.Mods != "" {
		fmt.Fprintf(&b, " [%s]", ev.Mods)
	}
	return b.String()
}

func describeState(s harness.State) string {
	parts := []string{fmt.Sprintf("active=%d", s.ActiveIndex)}
	if s.ActivePosition != nil {
		parts = append(parts, fmt.Sprintf("pos=%v", s.ActivePosition))
	}
	if s.SelectedIndices != nil {
		parts = append(parts, fmt.Sprintf("selected=%v", s.SelectedIndices))
	}
	if s.Focused != "" {
		parts = append(parts, "focus="+s.Focused)
	}
	if s.ActiveDescendant != "" {
		parts = append(parts, "descendant="+s.ActiveDescendant)
	}
	return strings.Join(parts, " ")
}
