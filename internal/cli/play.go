package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edvart/padel-scoreboard/internal/scoring"
)

const playHelp = `commands:
  a | b              point to team A or B
  u                  undo
  r                  new match
  server a|b         choose the first server
  mode normal|superTiebreak
  name a|b 1|2 NAME  rename a player
  title TEXT         set the match title
  show               print the scoreboard
  q                  quit`

// NewPlayCommand creates the interactive console scorer.
func NewPlayCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Score a match from the console",
		Long: "Read scoring commands from standard input, one per line, and print\n" +
			"the scoreboard after each change.\n\n" + playHelp,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &OutputFormatter{
				Format:    rootOpts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   rootOpts.Verbose,
			}
			return runPlay(cmd.InOrStdin(), out)
		},
	}
}

func runPlay(in io.Reader, out *OutputFormatter) error {
	engine := scoring.NewEngine()
	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		quit, changed, err := playLine(engine, line, out)
		if err != nil {
			fmt.Fprintf(out.Writer, "error: %v\n", err)
			continue
		}
		if quit {
			return nil
		}
		if changed {
			if err := out.Board(engine.State()); err != nil {
				return err
			}
		}
	}
	return scanner.Err()
}

// playLine applies one console command. changed reports whether the
// scoreboard should be printed.
func playLine(e *scoring.Engine, line string, out *OutputFormatter) (quit, changed bool, err error) {
	verb, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(verb) {
	case "a", "b":
		team, _ := scoring.ParseTeamSide(verb)
		if _, ok := e.AwardPoint(team); !ok {
			out.VerboseLog("point ignored")
			return false, false, nil
		}
		return false, true, nil
	case "u", "undo":
		if _, ok := e.Undo(); !ok {
			out.VerboseLog("nothing to undo")
			return false, false, nil
		}
		return false, true, nil
	case "r", "reset":
		e.Reset()
		return false, true, nil
	case "server":
		team, err := scoring.ParseTeamSide(rest)
		if err != nil {
			return false, false, err
		}
		_, err = e.SetInitialServer(team)
		return false, err == nil, err
	case "mode":
		mode, err := scoring.ParseThirdSetMode(rest)
		if err != nil {
			return false, false, err
		}
		_, err = e.SetThirdSetMode(mode)
		return false, err == nil, err
	case "name":
		fields := strings.SplitN(rest, " ", 3)
		if len(fields) < 3 {
			return false, false, fmt.Errorf("usage: name a|b 1|2 NAME")
		}
		team, err := scoring.ParseTeamSide(fields[0])
		if err != nil {
			return false, false, err
		}
		slot, err := scoring.ParsePlayerSlot(fields[1])
		if err != nil {
			return false, false, err
		}
		_, err = e.SetPlayerName(team, slot, strings.TrimSpace(fields[2]))
		return false, err == nil, err
	case "title":
		e.SetMatchTitle(rest)
		return false, true, nil
	case "show":
		return false, true, nil
	case "help", "?":
		fmt.Fprintln(out.Writer, playHelp)
		return false, false, nil
	case "q", "quit", "exit":
		return true, false, nil
	default:
		return false, false, fmt.Errorf("unknown command %q (try help)", verb)
	}
}
