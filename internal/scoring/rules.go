package scoring

const (
	// RegularTiebreakLimit must be exceeded, by two, to win a 6-6 tiebreak.
	RegularTiebreakLimit = 6
	// SuperTiebreakLimit must be exceeded, by two, to win a super-tiebreak.
	SuperTiebreakLimit = 10
	// SetsToWin is the number of sets that decides a best-of-three match.
	SetsToWin = 2
)

// AwardPoint returns the state after team wins a point. The second return
// is false, and state is returned untouched, when the point is ignored: the
// match is over, no server has been chosen, or team is not A or B.
func AwardPoint(state MatchState, team TeamSide) (MatchState, bool) {
	if state.IsOver() || !state.Server.Valid() || !team.Valid() {
		return state, false
	}

	next := state
	next.fixThirdSetFormat()
	if next.IsTiebreakActive() {
		awardTiebreakPoint(&next, team)
	} else {
		awardStandardPoint(&next, team)
	}
	return next, true
}

func awardTiebreakPoint(s *MatchState, team TeamSide) {
	limit := RegularTiebreakLimit
	if s.IsSuperTiebreakSet() {
		limit = SuperTiebreakLimit
	}

	scoring := s.team(team)
	other := s.team(team.Other())

	points := scoring.Points.Count() + 1
	otherPoints := other.Points.Count()
	scoring.Points = Tiebreak(points)
	other.Points = Tiebreak(otherPoints)

	// First server serves one point, then each side serves two.
	total := points + otherPoints
	if total > 0 && (total-1)%2 == 0 {
		s.Server = s.Server.Other()
	}

	if points > limit && points >= otherPoints+2 {
		scoring.Games++
		awardSet(s, team)
	}
}

func awardStandardPoint(s *MatchState, team TeamSide) {
	scoring := s.team(team)
	// At 40 the point wins the game whatever the opponent holds: with golden
	// point scoring there is no advantage.
	if scoring.Points.IsForty() {
		awardGame(s, team)
		return
	}
	scoring.Points = scoring.Points.next()
}

func awardGame(s *MatchState, team TeamSide) {
	scoring := s.team(team)
	scoring.Games++
	s.Server = s.Server.Other()

	games := scoring.Games
	otherGames := s.team(team.Other()).Games
	if (games >= 6 && games >= otherGames+2) || games == 7 {
		awardSet(s, team)
		return
	}
	// Resetting after the games update lets 6-6 start the tiebreak on integers.
	s.resetPoints()
}

func awardSet(s *MatchState, team TeamSide) {
	rec := SetScore{
		GamesA:          s.TeamA.Games,
		GamesB:          s.TeamB.Games,
		IsSuperTiebreak: s.IsSuperTiebreakSet(),
	}
	if rec.IsSuperTiebreak {
		a, b := s.TeamA.Points.Count(), s.TeamB.Points.Count()
		rec.PointsA, rec.PointsB = &a, &b
	}
	s.SetScores = s.appendSetScore(rec)

	scoring := s.team(team)
	scoring.Sets++
	s.TeamA.Games, s.TeamB.Games = 0, 0

	if scoring.Sets == SetsToWin {
		s.Winner = team
	} else {
		s.CurrentSet++
	}
	s.resetPoints()
}
