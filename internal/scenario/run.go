package scenario

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/edvart/padel-scoreboard/internal/scoring"
)

// TraceEntry records one action and the score it left behind.
type TraceEntry struct {
	Step    int    `json:"step"`
	Action  string `json:"action"`
	Applied bool   `json:"applied"`
	Score   string `json:"score"`
}

// Result is the outcome of running a scenario.
type Result struct {
	Name       string             `json:"name"`
	State      scoring.MatchState `json:"state"`
	Trace      []TraceEntry       `json:"trace"`
	Mismatches []string           `json:"mismatches,omitempty"`
}

// Pass reports whether every expectation held.
func (r *Result) Pass() bool {
	return len(r.Mismatches) == 0
}

func (r *Result) record(step int, action string, applied bool, s scoring.MatchState) {
	r.Trace = append(r.Trace, TraceEntry{Step: step, Action: action, Applied: applied, Score: Summary(s)})
}

// Run plays sc on a fresh engine. An error means the scenario could not be
// played (a bad team, slot or mode); failed expectations are reported in
// the result instead.
func Run(sc *Scenario) (*Result, error) {
	engine := scoring.NewEngine()
	res := &Result{Name: sc.Name, Trace: []TraceEntry{}}

	if err := applySetup(engine, sc.Setup); err != nil {
		return nil, fmt.Errorf("setup: %w", err)
	}

	for i, step := range sc.Steps {
		n := i + 1
		if err := applyStep(engine, res, n, step); err != nil {
			return nil, fmt.Errorf("step %d: %w", n, err)
		}
		if step.Expect != nil {
			for _, m := range step.Expect.Check(engine.State()) {
				res.Mismatches = append(res.Mismatches, fmt.Sprintf("step %d: %s", n, m))
			}
		}
	}

	res.State = engine.State()
	if sc.Expect != nil {
		for _, m := range sc.Expect.Check(res.State) {
			res.Mismatches = append(res.Mismatches, "final: "+m)
		}
	}
	return res, nil
}

func applySetup(e *scoring.Engine, setup Setup) error {
	if setup.Title != "" {
		e.SetMatchTitle(setup.Title)
	}
	for key, names := range setup.Players {
		team, err := scoring.ParseTeamSide(key)
		if err != nil {
			return fmt.Errorf("players %q: %w", key, err)
		}
		for i, name := range names {
			if _, err := e.SetPlayerName(team, scoring.PlayerSlot(i+1), name); err != nil {
				return err
			}
		}
	}
	if setup.ThirdSetMode != "" {
		mode, err := scoring.ParseThirdSetMode(setup.ThirdSetMode)
		if err != nil {
			return err
		}
		if _, err := e.SetThirdSetMode(mode); err != nil {
			return err
		}
	}
	if setup.Server != "" {
		team, err := scoring.ParseTeamSide(setup.Server)
		if err != nil {
			return fmt.Errorf("server %q: %w", setup.Server, err)
		}
		if _, err := e.SetInitialServer(team); err != nil {
			return err
		}
	}
	return nil
}

func applyStep(e *scoring.Engine, res *Result, n int, step Step) error {
	switch {
	case step.Points != "":
		seq := strings.Repeat(step.Points, max(step.Repeat, 1))
		for _, r := range seq {
			if r == ' ' {
				continue
			}
			team, err := scoring.ParseTeamSide(string(r))
			if err != nil {
				return fmt.Errorf("point %q: %w", string(r), err)
			}
			s, ok := e.AwardPoint(team)
			res.record(n, "point "+team.String(), ok, s)
		}
	case step.Undo > 0:
		for i := 0; i < step.Undo; i++ {
			s, ok := e.Undo()
			res.record(n, "undo", ok, s)
		}
	case step.Reset:
		res.record(n, "reset", true, e.Reset())
	case step.Server != "":
		team, err := scoring.ParseTeamSide(step.Server)
		if err != nil {
			return fmt.Errorf("server %q: %w", step.Server, err)
		}
		s, err := e.SetInitialServer(team)
		if err != nil {
			return err
		}
		res.record(n, "server "+team.String(), true, s)
	case step.Mode != "":
		mode, err := scoring.ParseThirdSetMode(step.Mode)
		if err != nil {
			return err
		}
		s, err := e.SetThirdSetMode(mode)
		if err != nil {
			return err
		}
		res.record(n, "mode "+mode.String(), true, s)
	}
	return nil
}

// Check compares s against the expectation and returns one message per
// differing field.
func (x *Expect) Check(s scoring.MatchState) []string {
	var out []string
	diff := func(field, want, got string) {
		if want != "" && want != got {
			out = append(out, fmt.Sprintf("%s: want %q, got %q", field, want, got))
		}
	}

	diff("points", x.Points, s.TeamA.Points.String()+"-"+s.TeamB.Points.String())
	diff("games", x.Games, pair(s.TeamA.Games, s.TeamB.Games))
	diff("sets", x.Sets, pair(s.TeamA.Sets, s.TeamB.Sets))
	diff("server", strings.ToUpper(x.Server), side(s.Server))
	diff("winner", strings.ToUpper(x.Winner), side(s.Winner))
	if x.CurrentSet != 0 {
		diff("current_set", strconv.Itoa(x.CurrentSet), strconv.Itoa(s.CurrentSet))
	}
	if want, got := strings.Join(x.SetScores, " "), setScores(s.SetScores); x.SetScores != nil && want != got {
		out = append(out, fmt.Sprintf("set_scores: want %q, got %q", want, got))
	}
	if x.Tiebreak != nil {
		diff("tiebreak", strconv.FormatBool(*x.Tiebreak), strconv.FormatBool(s.IsTiebreakActive()))
	}
	if x.GoldenPoint != nil {
		diff("golden_point", strconv.FormatBool(*x.GoldenPoint), strconv.FormatBool(s.IsGoldenPoint()))
	}
	return out
}

// Summary is a one-line score, e.g. "sets 1-0 games 2-1 points 15-0 (serve A)".
func Summary(s scoring.MatchState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "sets %s games %s points %s-%s",
		pair(s.TeamA.Sets, s.TeamB.Sets),
		pair(s.TeamA.Games, s.TeamB.Games),
		s.TeamA.Points, s.TeamB.Points)
	switch {
	case s.Winner.Valid():
		fmt.Fprintf(&b, " (winner %s)", s.Winner)
	case s.Server.Valid():
		fmt.Fprintf(&b, " (serve %s)", s.Server)
	}
	return b.String()
}

func pair(a, b int) string {
	return strconv.Itoa(a) + "-" + strconv.Itoa(b)
}

func side(t scoring.TeamSide) string {
	if !t.Valid() {
		return "NONE"
	}
	return t.String()
}

func setScores(scores []scoring.SetScore) string {
	parts := make([]string, len(scores))
	for i, sc := range scores {
		parts[i] = sc.String()
	}
	return strings.Join(parts, " ")
}
