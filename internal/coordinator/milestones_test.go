package coordinator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edvart/padel-scoreboard/internal/scoring"
)

func stateAfter(t *testing.T, seq string) scoring.MatchState {
	t.Helper()
	s := scoring.NewMatchState()
	s.Server = scoring.TeamA
	for _, r := range seq {
		team, err := scoring.ParseTeamSide(string(r))
		require.NoError(t, err)
		var ok bool
		s, ok = scoring.AwardPoint(s, team)
		require.True(t, ok)
	}
	return s
}

func TestMilestones(t *testing.T) {
	game := func(team string) string { return strings.Repeat(team, 4) }

	tests := []struct {
		name  string
		prior string
		point string
		want  []Event
	}{
		{
			name:  "plain point",
			point: "A",
			want:  nil,
		},
		{
			name:  "golden point",
			prior: "AAABB",
			point: "B",
			want:  []Event{GoldenPointReached{MatchID: "m", Set: 1}},
		},
		{
			name:  "game",
			prior: "AAA",
			point: "A",
			want:  []Event{GameWon{MatchID: "m", Team: scoring.TeamA, Set: 1, GamesA: 1}},
		},
		{
			name:  "game into tiebreak",
			prior: strings.Repeat(game("A")+game("B"), 5) + game("A") + "BBB",
			point: "B",
			want: []Event{
				GameWon{MatchID: "m", Team: scoring.TeamB, Set: 1, GamesA: 6, GamesB: 6},
				TiebreakStarted{MatchID: "m", Set: 1},
			},
		},
		{
			name:  "set into super tiebreak",
			prior: strings.Repeat(game("A"), 6) + strings.Repeat(game("B"), 5) + "BBB",
			point: "B",
			want: []Event{
				GameWon{MatchID: "m", Team: scoring.TeamB, Set: 2, GamesA: 0, GamesB: 6},
				SetWon{MatchID: "m", Team: scoring.TeamB, Set: 2, Score: scoring.SetScore{GamesA: 0, GamesB: 6}},
				TiebreakStarted{MatchID: "m", Set: 3, Super: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := stateAfter(t, tt.prior)
			next := stateAfter(t, tt.prior+tt.point)

			assert.Equal(t, tt.want, milestones("m", prev, next))
		})
	}
}

func TestMilestones_MatchWon(t *testing.T) {
	prior := strings.Repeat("A", 4*11+3)
	prev := stateAfter(t, prior)
	next := stateAfter(t, prior+"A")

	events := milestones("m", prev, next)

	require.Len(t, events, 3)
	assert.IsType(t, GameWon{}, events[0])
	assert.IsType(t, SetWon{}, events[1])
	won, ok := events[2].(MatchWon)
	require.True(t, ok)
	assert.Equal(t, scoring.TeamA, won.Team)
	assert.Len(t, won.SetScores, 2)
}
