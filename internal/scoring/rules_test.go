package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// play scores one point per character of seq ("A" or "B"; spaces ignored).
func play(t *testing.T, e *Engine, seq string) MatchState {
	t.Helper()
	for _, r := range strings.ReplaceAll(seq, " ", "") {
		team, err := ParseTeamSide(string(r))
		require.NoError(t, err)
		_, ok := e.AwardPoint(team)
		require.True(t, ok, "point %q was ignored", string(r))
	}
	return e.State()
}

// games returns the point sequence for straight games won by the given teams.
func games(teams string) string {
	var b strings.Builder
	for _, r := range teams {
		b.WriteString(strings.Repeat(string(r), 4))
	}
	return b.String()
}

func newStartedEngine(t *testing.T, server TeamSide) *Engine {
	t.Helper()
	e := NewEngine()
	_, err := e.SetInitialServer(server)
	require.NoError(t, err)
	return e
}

func TestAwardPoint_StandardLadder(t *testing.T) {
	e := newStartedEngine(t, TeamA)

	want := []string{"15", "30", "40"}
	for _, w := range want {
		s := play(t, e, "A")
		assert.Equal(t, w, s.TeamA.Points.String())
		assert.Equal(t, "0", s.TeamB.Points.String())
		assert.False(t, s.TeamA.Points.IsTiebreak())
	}
}

func TestAwardPoint_GameToServerFlipsServer(t *testing.T) {
	e := newStartedEngine(t, TeamA)

	s := play(t, e, "AAAA")

	assert.Equal(t, 1, s.TeamA.Games)
	assert.Equal(t, 0, s.TeamB.Games)
	assert.Equal(t, Standard(0), s.TeamA.Points)
	assert.Equal(t, Standard(0), s.TeamB.Points)
	assert.Equal(t, TeamB, s.Server)
}

func TestAwardPoint_GoldenPoint(t *testing.T) {
	for _, decider := range []string{"A", "B"} {
		t.Run(decider, func(t *testing.T) {
			e := newStartedEngine(t, TeamA)
			s := play(t, e, "AAABBB")
			require.True(t, s.IsGoldenPoint())

			s = play(t, e, decider)

			winner, _ := ParseTeamSide(decider)
			assert.Equal(t, 1, s.Team(winner).Games)
			assert.Equal(t, 0, s.Team(winner.Other()).Games)
			assert.Equal(t, "0", s.TeamA.Points.String())
			assert.Equal(t, "0", s.TeamB.Points.String())
			assert.False(t, s.IsGoldenPoint())
		})
	}
}

func TestAwardPoint_IgnoredWithoutServer(t *testing.T) {
	e := NewEngine()

	s, ok := e.AwardPoint(TeamA)

	assert.False(t, ok)
	assert.Equal(t, NewMatchState(), s)
	assert.Equal(t, 0, e.Depth())
}

func TestAwardPoint_IgnoredForUnknownTeam(t *testing.T) {
	e := newStartedEngine(t, TeamA)
	before := e.State()

	_, ok := e.AwardPoint(NoTeam)

	assert.False(t, ok)
	assert.Equal(t, before, e.State())
	assert.Equal(t, 1, e.Depth())
}

func TestAwardPoint_SetByTwoGameLead(t *testing.T) {
	e := newStartedEngine(t, TeamA)

	s := play(t, e, games("AAAAAA"))

	assert.Equal(t, 1, s.TeamA.Sets)
	assert.Equal(t, 0, s.TeamA.Games)
	assert.Equal(t, 2, s.CurrentSet)
	require.Len(t, s.SetScores, 1)
	assert.Equal(t, SetScore{GamesA: 6, GamesB: 0}, s.SetScores[0])
}

func TestAwardPoint_SixFiveIsNotASet(t *testing.T) {
	e := newStartedEngine(t, TeamA)

	s := play(t, e, games("ABABABABAB")+games("A"))
	assert.Equal(t, 6, s.TeamA.Games)
	assert.Equal(t, 5, s.TeamB.Games)
	assert.Empty(t, s.SetScores)

	s = play(t, e, games("A"))
	require.Len(t, s.SetScores, 1)
	assert.Equal(t, SetScore{GamesA: 7, GamesB: 5}, s.SetScores[0])
	assert.Equal(t, 1, s.TeamA.Sets)
}

func TestAwardPoint_RegularTiebreak(t *testing.T) {
	e := newStartedEngine(t, TeamA)

	s := play(t, e, games("ABABABABABAB"))
	require.Equal(t, 6, s.TeamA.Games)
	require.Equal(t, 6, s.TeamB.Games)
	assert.True(t, s.IsRegularTiebreak())
	assert.True(t, s.IsTiebreakActive())
	assert.True(t, s.TeamA.Points.IsTiebreak())
	assert.Equal(t, "0", s.TeamA.Points.String())

	s = play(t, e, "AAAAABBBBB A")
	assert.Equal(t, "6", s.TeamA.Points.String())
	assert.Equal(t, "5", s.TeamB.Points.String())
	assert.Empty(t, s.SetScores, "six points do not win a tiebreak")

	s = play(t, e, "A")
	require.Len(t, s.SetScores, 1)
	assert.Equal(t, SetScore{GamesA: 7, GamesB: 6, IsSuperTiebreak: false}, s.SetScores[0])
	assert.Equal(t, 1, s.TeamA.Sets)
	assert.Equal(t, 2, s.CurrentSet)
	assert.False(t, s.IsTiebreakActive())
	assert.Equal(t, Standard(0), s.TeamA.Points)
}

func TestAwardPoint_TiebreakNeedsTwoPointLead(t *testing.T) {
	e := newStartedEngine(t, TeamA)
	play(t, e, games("ABABABABABAB"))

	s := play(t, e, "ABABABABABAB A")
	assert.Equal(t, "7", s.TeamA.Points.String())
	assert.Equal(t, "6", s.TeamB.Points.String())
	assert.Empty(t, s.SetScores)

	s = play(t, e, "A")
	require.Len(t, s.SetScores, 1)
	assert.Equal(t, 7, s.SetScores[0].GamesA)
}

func TestAwardPoint_TiebreakServerRotation(t *testing.T) {
	e := newStartedEngine(t, TeamA)
	s := play(t, e, games("ABABABABABAB"))
	// Twelve games, twelve flips.
	require.Equal(t, TeamA, s.Server)

	var servers []TeamSide
	for _, r := range "ABABA" {
		servers = append(servers, e.State().Server)
		team, _ := ParseTeamSide(string(r))
		e.AwardPoint(team)
	}

	assert.Equal(t, []TeamSide{TeamA, TeamB, TeamB, TeamA, TeamA}, servers)
}

func TestAwardPoint_SuperTiebreak(t *testing.T) {
	e := newStartedEngine(t, TeamA)

	s := play(t, e, games("AAAAAA")+games("BBBBBB"))
	require.Equal(t, 1, s.TeamA.Sets)
	require.Equal(t, 1, s.TeamB.Sets)
	require.Equal(t, 3, s.CurrentSet)
	assert.True(t, s.IsSuperTiebreakSet())
	assert.True(t, s.IsTiebreakActive())
	assert.False(t, s.IsRegularTiebreak())
	assert.True(t, s.TeamA.Points.IsTiebreak())

	s = play(t, e, "A")
	assert.Equal(t, "1", s.TeamA.Points.String())

	s = play(t, e, "BABABABABABABABAB")
	assert.Equal(t, "9", s.TeamA.Points.String())
	assert.Equal(t, "9", s.TeamB.Points.String())

	s = play(t, e, "A")
	assert.Equal(t, "10", s.TeamA.Points.String())
	assert.Equal(t, NoTeam, s.Winner, "reaching ten is not enough")

	s = play(t, e, "A")
	assert.Equal(t, TeamA, s.Winner)
	assert.Equal(t, 2, s.TeamA.Sets)
	assert.Equal(t, 3, s.CurrentSet)
	require.Len(t, s.SetScores, 3)
	last := s.SetScores[2]
	assert.True(t, last.IsSuperTiebreak)
	require.NotNil(t, last.PointsA)
	require.NotNil(t, last.PointsB)
	assert.Equal(t, 11, *last.PointsA)
	assert.Equal(t, 9, *last.PointsB)
	assert.Equal(t, "[11-9]", last.String())
	assert.Equal(t, TeamA, last.Winner())
	assert.Nil(t, s.SetScores[0].PointsA)
}

func TestAwardPoint_NormalThirdSet(t *testing.T) {
	e := newStartedEngine(t, TeamA)
	_, err := e.SetThirdSetMode(ThirdSetNormal)
	require.NoError(t, err)

	s := play(t, e, games("AAAAAA")+games("BBBBBB"))
	require.Equal(t, 3, s.CurrentSet)
	assert.False(t, s.IsTiebreakActive())
	assert.Equal(t, Standard(0), s.TeamA.Points)

	s = play(t, e, games("BBBBBB"))
	assert.Equal(t, TeamB, s.Winner)
	require.Len(t, s.SetScores, 3)
	assert.False(t, s.SetScores[2].IsSuperTiebreak)
	assert.Equal(t, "0-6", s.SetScores[2].String())
}

func TestAwardPoint_IgnoredAfterWinner(t *testing.T) {
	e := newStartedEngine(t, TeamB)
	s := play(t, e, games("AAAAAAAAAAAA"))
	require.Equal(t, TeamA, s.Winner)
	require.Len(t, s.SetScores, 2)
	depth := e.Depth()

	for _, team := range []TeamSide{TeamA, TeamB} {
		got, ok := e.AwardPoint(team)
		assert.False(t, ok)
		assert.Equal(t, s, got)
	}
	assert.Equal(t, depth, e.Depth())
}

func playFrom(t *testing.T, s MatchState, seq string) MatchState {
	t.Helper()
	for _, r := range seq {
		team, err := ParseTeamSide(string(r))
		require.NoError(t, err)
		var ok bool
		s, ok = AwardPoint(s, team)
		require.True(t, ok)
	}
	return s
}

func TestAwardPoint_DoesNotAliasSetScores(t *testing.T) {
	e := newStartedEngine(t, TeamA)
	before := play(t, e, games("AAAAAA")+games("BBBBB"))
	require.Len(t, before.SetScores, 1)
	spare := make([]SetScore, 1, 4)
	copy(spare, before.SetScores)
	before.SetScores = spare

	toB := playFrom(t, before, games("B"))
	toA := playFrom(t, before, games("AAAAAAA"))

	require.Len(t, toB.SetScores, 2)
	require.Len(t, toA.SetScores, 2)
	assert.Equal(t, SetScore{GamesA: 0, GamesB: 6}, toB.SetScores[1])
	assert.Equal(t, SetScore{GamesA: 7, GamesB: 5}, toA.SetScores[1])
	assert.Len(t, before.SetScores, 1)
}

func TestMatchState_SetCountsStayConsistent(t *testing.T) {
	e := newStartedEngine(t, TeamA)
	seq := games("AAAAAB") + games("BBBBBB") + "ABBABAABBBAABAAABBAAAAAAA"
	for _, r := range seq {
		team, _ := ParseTeamSide(string(r))
		s, ok := e.AwardPoint(team)
		if !ok {
			break
		}
		assert.Equal(t, len(s.SetScores), s.TeamA.Sets+s.TeamB.Sets)
		assert.Equal(t, s.TeamA.Points.IsTiebreak(), s.TeamB.Points.IsTiebreak())
		if s.Winner == NoTeam {
			assert.Equal(t, len(s.SetScores)+1, s.CurrentSet)
		} else {
			assert.Equal(t, SetsToWin, s.Team(s.Winner).Sets)
		}
	}
}
