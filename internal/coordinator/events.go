package coordinator

import "github.com/edvart/padel-scoreboard/internal/scoring"

type Event interface {
	event() // marker method
}

// StateChanged is emitted after every transition that changed the match.
type StateChanged struct {
	MatchID string
	Reason  string
	State   scoring.MatchState
	Depth   int
}

func (StateChanged) event() {}

type PointFlashed struct {
	MatchID string
	Team    scoring.TeamSide
}

func (PointFlashed) event() {}

type PointFlashCleared struct {
	MatchID string
}

func (PointFlashCleared) event() {}

type GoldenPointReached struct {
	MatchID string
	Set     int
	GamesA  int
	GamesB  int
}

func (GoldenPointReached) event() {}

type TiebreakStarted struct {
	MatchID string
	Set     int
	Super   bool
}

func (TiebreakStarted) event() {}

type GameWon struct {
	MatchID string
	Team    scoring.TeamSide
	Set     int
	GamesA  int
	GamesB  int
}

func (GameWon) event() {}

type SetWon struct {
	MatchID string
	Team    scoring.TeamSide
	Set     int
	Score   scoring.SetScore
}

func (SetWon) event() {}

type MatchWon struct {
	MatchID   string
	Team      scoring.TeamSide
	Title     string
	SetScores []scoring.SetScore
}

func (MatchWon) event() {}

type MatchReset struct {
	MatchID         string
	PreviousMatchID string
}

func (MatchReset) event() {}
