// Package scoreboard derives everything a display needs from a match
// snapshot. It holds no scoring logic of its own.
package scoreboard

import (
	"strconv"
	"strings"

	"github.com/edvart/padel-scoreboard/internal/scoring"
)

// View is the display model of one match snapshot.
type View struct {
	Title         string           `json:"title"`
	Status        string           `json:"status"`
	Teams         [2]TeamView      `json:"teams"`
	Sets          []SetColumn      `json:"sets"`
	CurrentSet    int              `json:"currentSet"`
	ThirdSetMode  string           `json:"thirdSetMode"`
	Tiebreak      bool             `json:"tiebreak"`
	SuperTiebreak bool             `json:"superTiebreak"`
	GoldenPoint   bool             `json:"goldenPoint"`
	Server        scoring.TeamSide `json:"server"`
	Winner        scoring.TeamSide `json:"winner"`
	Banner        string           `json:"banner,omitempty"`
	Flash         scoring.TeamSide `json:"flash"`
	Started       bool             `json:"started"`
	CanStart      bool             `json:"canStart"`
}

// TeamView is one row of the scoreboard.
type TeamView struct {
	Side    string `json:"side"`
	Name    string `json:"name"`
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
	Points  string `json:"points"`
	Games   int    `json:"games"`
	Sets    int    `json:"sets"`
	Serving bool   `json:"serving"`
	Won     bool   `json:"won"`
	Flash   bool   `json:"flash"`
}

// SetColumn is one column of the set-by-set table.
type SetColumn struct {
	Number        int    `json:"number"`
	A             string `json:"a"`
	B             string `json:"b"`
	SuperTiebreak bool   `json:"superTiebreak"`
	Current       bool   `json:"current"`
}

// Cell returns the column value for side.
func (c SetColumn) Cell(side scoring.TeamSide) string {
	if side == scoring.TeamB {
		return c.B
	}
	return c.A
}

// CanStart reports whether both teams and the title are filled in.
func CanStart(s scoring.MatchState) bool {
	names := []string{
		s.TeamA.Player1.Name, s.TeamA.Player2.Name,
		s.TeamB.Player1.Name, s.TeamB.Player2.Name,
		s.MatchTitle,
	}
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			return false
		}
	}
	return true
}

// TeamName joins the two player names, falling back to "Team A"/"Team B".
func TeamName(s scoring.MatchState, side scoring.TeamSide) string {
	t := s.Team(side)
	p1, p2 := strings.TrimSpace(t.Player1.Name), strings.TrimSpace(t.Player2.Name)
	switch {
	case p1 != "" && p2 != "":
		return p1 + " / " + p2
	case p1 != "":
		return p1
	case p2 != "":
		return p2
	default:
		return "Team " + side.String()
	}
}

// Build derives the view of s; flash is the side currently flashing.
func Build(s scoring.MatchState, flash scoring.TeamSide) View {
	v := View{
		Title:         s.MatchTitle,
		CurrentSet:    s.CurrentSet,
		ThirdSetMode:  s.ThirdSetMode.String(),
		Tiebreak:      s.IsTiebreakActive(),
		SuperTiebreak: s.IsSuperTiebreakSet(),
		GoldenPoint:   s.IsGoldenPoint(),
		Server:        s.Server,
		Winner:        s.Winner,
		Flash:         flash,
		Started:       s.Server != scoring.NoTeam,
		CanStart:      CanStart(s),
	}

	for i, side := range []scoring.TeamSide{scoring.TeamA, scoring.TeamB} {
		t := s.Team(side)
		tv := TeamView{
			Side:    side.String(),
			Name:    TeamName(s, side),
			Player1: t.Player1.Name,
			Player2: t.Player2.Name,
			Games:   t.Games,
			Sets:    t.Sets,
			Serving: s.Server == side && !s.IsOver(),
			Won:     s.Winner == side,
			Flash:   flash == side,
		}
		if !s.IsOver() {
			tv.Points = t.Points.String()
		}
		v.Teams[i] = tv
	}

	labels := make([]string, 0, len(s.SetScores))
	for i, sc := range s.SetScores {
		col := SetColumn{
			Number:        i + 1,
			A:             strconv.Itoa(sc.GamesA),
			B:             strconv.Itoa(sc.GamesB),
			SuperTiebreak: sc.IsSuperTiebreak,
		}
		if sc.IsSuperTiebreak && sc.PointsA != nil && sc.PointsB != nil {
			col.A = "[" + strconv.Itoa(*sc.PointsA) + "]"
			col.B = "[" + strconv.Itoa(*sc.PointsB) + "]"
		}
		v.Sets = append(v.Sets, col)
		labels = append(labels, sc.String())
	}
	if !s.IsOver() {
		v.Sets = append(v.Sets, SetColumn{
			Number:        s.CurrentSet,
			A:             strconv.Itoa(s.TeamA.Games),
			B:             strconv.Itoa(s.TeamB.Games),
			SuperTiebreak: s.IsSuperTiebreakSet(),
			Current:       true,
		})
	}

	if s.IsOver() {
		v.Banner = TeamName(s, s.Winner) + " win " + strings.Join(labels, " ")
	}
	v.Status = status(s, v)
	return v
}

func status(s scoring.MatchState, v View) string {
	set := "Set " + strconv.Itoa(s.CurrentSet)
	switch {
	case s.IsOver():
		return v.Banner
	case s.Server == scoring.NoTeam:
		return "Choose the first server"
	case s.IsSuperTiebreakSet():
		return set + " - super tiebreak"
	case s.IsRegularTiebreak():
		return set + " - tiebreak"
	case s.IsGoldenPoint():
		return set + " - golden point"
	default:
		return set
	}
}
