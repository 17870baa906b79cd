package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edvart/padel-scoreboard/internal/scenario"
)

// ReplayReport is the JSON output of the replay command.
type ReplayReport struct {
	Results []*scenario.Result `json:"results"`
	Passed  int                `json:"passed"`
	Failed  int                `json:"failed"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "replay <scenario.yaml>...",
		Short: "Replay scripted matches",
		Long: `Replay scenario files and check their expectations.

Prints the final scoreboard of each scenario. With --verbose every
point is listed with the score it produced.

Exit codes:
  0 - All scenarios matched
  1 - One or more scenarios did not match
  2 - Command error (missing or invalid files)

Examples:
  padel replay testdata/super_tiebreak.yaml
  padel replay --format json scenarios/*.yaml`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &OutputFormatter{
				Format:    rootOpts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   rootOpts.Verbose,
			}
			return runReplay(out, args)
		},
	}
}

func runReplay(out *OutputFormatter, files []string) error {
	report := ReplayReport{Results: make([]*scenario.Result, 0, len(files))}

	for _, file := range files {
		sc, err := scenario.Load(file)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid scenario", err)
		}
		res, err := scenario.Run(sc)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("scenario %s", sc.Name), err)
		}
		report.Results = append(report.Results, res)
		if res.Pass() {
			report.Passed++
		} else {
			report.Failed++
		}

		if out.Format == "json" {
			continue
		}
		for _, entry := range res.Trace {
			mark := ""
			if !entry.Applied {
				mark = " (ignored)"
			}
			out.VerboseLog("%3d %-10s %s%s", entry.Step, entry.Action, entry.Score, mark)
		}
		status := "PASS"
		if !res.Pass() {
			status = "FAIL"
		}
		fmt.Fprintf(out.Writer, "%s %s\n", status, res.Name)
		for _, m := range res.Mismatches {
			fmt.Fprintf(out.Writer, "  %s\n", m)
		}
		if err := out.Board(res.State); err != nil {
			return err
		}
		fmt.Fprintln(out.Writer)
	}

	if out.Format == "json" {
		if err := out.JSON(report); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(out.Writer, "%d passed, %d failed\n", report.Passed, report.Failed)
	}

	if report.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", report.Failed))
	}
	return nil
}
