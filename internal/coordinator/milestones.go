package coordinator

import "github.com/edvart/padel-scoreboard/internal/scoring"

// milestones derives the game/set/match events implied by one point.
func milestones(matchID string, prev, next scoring.MatchState) []Event {
	var out []Event

	if len(next.SetScores) > len(prev.SetScores) {
		score := next.SetScores[len(next.SetScores)-1]
		set := len(next.SetScores)
		team := score.Winner()
		out = append(out,
			GameWon{MatchID: matchID, Team: team, Set: set, GamesA: score.GamesA, GamesB: score.GamesB},
			SetWon{MatchID: matchID, Team: team, Set: set, Score: score},
		)
		if next.Winner != scoring.NoTeam {
			out = append(out, MatchWon{
				MatchID:   matchID,
				Team:      next.Winner,
				Title:     next.MatchTitle,
				SetScores: next.SetScores,
			})
		}
	} else if next.TeamA.Games != prev.TeamA.Games || next.TeamB.Games != prev.TeamB.Games {
		team := scoring.TeamA
		if next.TeamB.Games > prev.TeamB.Games {
			team = scoring.TeamB
		}
		out = append(out, GameWon{
			MatchID: matchID,
			Team:    team,
			Set:     next.CurrentSet,
			GamesA:  next.TeamA.Games,
			GamesB:  next.TeamB.Games,
		})
	}

	if next.Winner == scoring.NoTeam && !prev.IsTiebreakActive() && next.IsTiebreakActive() {
		out = append(out, TiebreakStarted{
			MatchID: matchID,
			Set:     next.CurrentSet,
			Super:   next.IsSuperTiebreakSet(),
		})
	}

	if !prev.IsGoldenPoint() && next.IsGoldenPoint() {
		out = append(out, GoldenPointReached{
			MatchID: matchID,
			Set:     next.CurrentSet,
			GamesA:  next.TeamA.Games,
			GamesB:  next.TeamB.Games,
		})
	}

	return out
}
