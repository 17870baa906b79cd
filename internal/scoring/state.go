package scoring

import (
	"encoding/json"
	"errors"
	"slices"
	"strconv"
	"strings"
)

var (
	ErrUnknownTeam  = errors.New("unknown team")
	ErrInvalidSlot  = errors.New("player slot must be 1 or 2")
	ErrUnknownMode  = errors.New("unknown third set mode")
	ErrServerLocked = errors.New("initial server cannot change once play has started")
)

// TeamSide identifies one of the two doubles pairs.
type TeamSide int

const (
	NoTeam TeamSide = iota // No server chosen yet, or no winner yet
	TeamA
	TeamB
)

func (t TeamSide) String() string {
	switch t {
	case TeamA:
		return "A"
	case TeamB:
		return "B"
	default:
		return ""
	}
}

// Other returns the opposing side. NoTeam has no opponent.
func (t TeamSide) Other() TeamSide {
	switch t {
	case TeamA:
		return TeamB
	case TeamB:
		return TeamA
	default:
		return NoTeam
	}
}

// Valid reports whether t names a real team.
func (t TeamSide) Valid() bool {
	return t == TeamA || t == TeamB
}

// ParseTeamSide accepts "A"/"B" in either case.
func ParseTeamSide(s string) (TeamSide, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return TeamA, nil
	case "B":
		return TeamB, nil
	default:
		return NoTeam, ErrUnknownTeam
	}
}

func (t TeamSide) MarshalJSON() ([]byte, error) {
	if !t.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(t.String())
}

// PlayerSlot selects one of the two players of a team.
type PlayerSlot int

const (
	Slot1 PlayerSlot = 1
	Slot2 PlayerSlot = 2
)

func ParsePlayerSlot(s string) (PlayerSlot, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || (n != 1 && n != 2) {
		return 0, ErrInvalidSlot
	}
	return PlayerSlot(n), nil
}

// ThirdSetMode decides how a 1-1 match is settled.
type ThirdSetMode int

const (
	ThirdSetSuperTiebreak ThirdSetMode = iota // First to 10, by two
	ThirdSetNormal                            // A full set with a regular tiebreak at 6-6
)

func (m ThirdSetMode) String() string {
	switch m {
	case ThirdSetSuperTiebreak:
		return "superTiebreak"
	case ThirdSetNormal:
		return "normal"
	default:
		return "unknown"
	}
}

func ParseThirdSetMode(s string) (ThirdSetMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "supertiebreak", "super", "super-tiebreak", "super_tiebreak":
		return ThirdSetSuperTiebreak, nil
	case "normal":
		return ThirdSetNormal, nil
	default:
		return 0, ErrUnknownMode
	}
}

func (m ThirdSetMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

type Player struct {
	Name string `json:"name"`
}

// TeamState is the per-side scoring record.
type TeamState struct {
	Points  Points `json:"points"`
	Games   int    `json:"games"`
	Sets    int    `json:"sets"`
	Player1 Player `json:"player1"`
	Player2 Player `json:"player2"`
}

// Player returns the player in the given slot.
func (t TeamState) Player(slot PlayerSlot) Player {
	if slot == Slot2 {
		return t.Player2
	}
	return t.Player1
}

// SetScore is the frozen record of a completed set. PointsA and PointsB are
// only set for a set decided by a super-tiebreak.
type SetScore struct {
	GamesA          int  `json:"gamesA"`
	GamesB          int  `json:"gamesB"`
	IsSuperTiebreak bool `json:"isSuperTiebreak"`
	PointsA         *int `json:"pointsA,omitempty"`
	PointsB         *int `json:"pointsB,omitempty"`
}

// Winner returns the side that took the set.
func (s SetScore) Winner() TeamSide {
	if s.IsSuperTiebreak && s.PointsA != nil && s.PointsB != nil {
		if *s.PointsA > *s.PointsB {
			return TeamA
		}
		return TeamB
	}
	if s.GamesA > s.GamesB {
		return TeamA
	}
	return TeamB
}

// String renders "6-4", "7-6" or "[10-8]" for a super-tiebreak.
func (s SetScore) String() string {
	if s.IsSuperTiebreak && s.PointsA != nil && s.PointsB != nil {
		return "[" + strconv.Itoa(*s.PointsA) + "-" + strconv.Itoa(*s.PointsB) + "]"
	}
	return strconv.Itoa(s.GamesA) + "-" + strconv.Itoa(s.GamesB)
}

// MatchState is one immutable snapshot of a best-of-three match.
// Transitions never write through a MatchState they were given.
type MatchState struct {
	TeamA        TeamState    `json:"teamA"`
	TeamB        TeamState    `json:"teamB"`
	CurrentSet   int          `json:"currentSet"`
	ThirdSetMode ThirdSetMode `json:"thirdSetMode"`
	Server       TeamSide     `json:"server"`
	Winner       TeamSide     `json:"winner"`
	MatchTitle   string       `json:"matchTitle"`
	SetScores    []SetScore   `json:"setScores"`

	// The third set keeps the format it started with; ThirdSetMode then
	// only records the preference.
	thirdSetFormat ThirdSetMode
	thirdSetFixed  bool
}

// NewMatchState returns an unconfigured match: no names, no server,
// super-tiebreak third set.
func NewMatchState() MatchState {
	return MatchState{
		TeamA:        TeamState{Points: Standard(0)},
		TeamB:        TeamState{Points: Standard(0)},
		CurrentSet:   1,
		ThirdSetMode: ThirdSetSuperTiebreak,
		SetScores:    []SetScore{},
	}
}

// Team returns the record for side. NoTeam yields the zero TeamState.
func (s MatchState) Team(side TeamSide) TeamState {
	switch side {
	case TeamA:
		return s.TeamA
	case TeamB:
		return s.TeamB
	default:
		return TeamState{}
	}
}

func (s *MatchState) team(side TeamSide) *TeamState {
	if side == TeamB {
		return &s.TeamB
	}
	return &s.TeamA
}

// IsSuperTiebreakSet reports whether the set in progress is played as a
// single super-tiebreak.
func (s MatchState) IsSuperTiebreakSet() bool {
	return s.CurrentSet == 3 && s.ThirdSetFormat() == ThirdSetSuperTiebreak
}

// ThirdSetFormat is the format the third set is played in: the format it
// started with once its first point is played, ThirdSetMode before that.
func (s MatchState) ThirdSetFormat() ThirdSetMode {
	if s.thirdSetFixed {
		return s.thirdSetFormat
	}
	return s.ThirdSetMode
}

// fixThirdSetFormat locks the third set's format at its first point.
func (s *MatchState) fixThirdSetFormat() {
	if s.CurrentSet == 3 && !s.thirdSetFixed {
		s.thirdSetFormat, s.thirdSetFixed = s.ThirdSetMode, true
	}
}

// IsRegularTiebreak reports whether the set has reached 6-6.
func (s MatchState) IsRegularTiebreak() bool {
	return !s.IsSuperTiebreakSet() && s.TeamA.Games == 6 && s.TeamB.Games == 6
}

func (s MatchState) IsTiebreakActive() bool {
	return s.IsSuperTiebreakSet() || s.IsRegularTiebreak()
}

// IsGoldenPoint reports 40-40 outside a tiebreak: the next point decides the game.
func (s MatchState) IsGoldenPoint() bool {
	return !s.IsTiebreakActive() && s.TeamA.Points == Standard(3) && s.TeamB.Points == Standard(3)
}

// HasStarted reports whether any point has been played.
func (s MatchState) HasStarted() bool {
	return !s.TeamA.Points.IsZero() || !s.TeamB.Points.IsZero() ||
		s.TeamA.Games > 0 || s.TeamB.Games > 0 ||
		s.TeamA.Sets > 0 || s.TeamB.Sets > 0 ||
		len(s.SetScores) > 0
}

// IsOver reports whether a winner has been decided.
func (s MatchState) IsOver() bool {
	return s.Winner != NoTeam
}

// withLabels copies names and title from src into s.
func (s MatchState) withLabels(src MatchState) MatchState {
	s.MatchTitle = src.MatchTitle
	s.TeamA.Player1, s.TeamA.Player2 = src.TeamA.Player1, src.TeamA.Player2
	s.TeamB.Player1, s.TeamB.Player2 = src.TeamB.Player1, src.TeamB.Player2
	return s
}

// zeroPoints is the point value both teams start a game with, in the
// representation the current set calls for.
func (s MatchState) zeroPoints() Points {
	if s.IsTiebreakActive() {
		return Tiebreak(0)
	}
	return Standard(0)
}

func (s *MatchState) resetPoints() {
	z := s.zeroPoints()
	s.TeamA.Points = z
	s.TeamB.Points = z
}

func (s MatchState) appendSetScore(rec SetScore) []SetScore {
	return append(slices.Clip(s.SetScores), rec)
}
