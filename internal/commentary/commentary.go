package commentary

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/edvart/padel-scoreboard/internal/coordinator"
	"github.com/edvart/padel-scoreboard/internal/scoring"
)

// DefaultCapacity is how many calls the feed keeps.
const DefaultCapacity = 50

// Call is one line of match commentary.
type Call struct {
	MatchID string    `json:"matchId"`
	At      time.Time `json:"at"`
	Text    string    `json:"text"`
}

// Commentator turns milestone events into short calls, logs them, and keeps
// the most recent ones for the feed.
type Commentator struct {
	log      logrus.FieldLogger
	now      func() time.Time
	capacity int

	mu    sync.RWMutex
	calls []Call
}

// New creates a commentator keeping up to capacity calls.
func New(log logrus.FieldLogger, capacity int) *Commentator {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Commentator{
		log:      log.WithField("component", "commentary"),
		now:      time.Now,
		capacity: capacity,
	}
}

// Run listens for coordinator events until ctx ends or events closes.
func (c *Commentator) Run(ctx context.Context, events <-chan coordinator.Event) {
	c.log.Info("Commentary started")
	for {
		select {
		case <-ctx.Done():
			c.log.Info("Commentary shutting down")
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			c.Handle(event)
		}
	}
}

// Handle records the call for event, if it has one.
func (c *Commentator) Handle(event coordinator.Event) {
	var matchID, text string

	switch e := event.(type) {
	case coordinator.GoldenPointReached:
		matchID, text = e.MatchID, fmt.Sprintf("Golden point at %d-%d", e.GamesA, e.GamesB)
	case coordinator.TiebreakStarted:
		matchID = e.MatchID
		if e.Super {
			text = "Super tiebreak to decide the match"
		} else {
			text = fmt.Sprintf("Tiebreak in set %d", e.Set)
		}
	case coordinator.GameWon:
		matchID, text = e.MatchID, fmt.Sprintf("Game Team %s, %d-%d", e.Team, e.GamesA, e.GamesB)
	case coordinator.SetWon:
		matchID, text = e.MatchID, fmt.Sprintf("Set %d to Team %s %s", e.Set, e.Team, e.Score)
	case coordinator.MatchWon:
		matchID, text = e.MatchID, fmt.Sprintf("Game, set and match Team %s %s", e.Team, scoreline(e.SetScores))
	case coordinator.MatchReset:
		matchID, text = e.MatchID, "New match"
	default:
		return
	}

	c.add(Call{MatchID: matchID, At: c.now(), Text: text})
	c.log.WithField("match_id", matchID).Info(text)
}

func (c *Commentator) add(call Call) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, call)
	if over := len(c.calls) - c.capacity; over > 0 {
		c.calls = append(c.calls[:0], c.calls[over:]...)
	}
}

// Calls returns the kept calls, oldest first.
func (c *Commentator) Calls() []Call {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Call, len(c.calls))
	copy(out, c.calls)
	return out
}

func scoreline(sets []scoring.SetScore) string {
	parts := make([]string, len(sets))
	for i, s := range sets {
		parts[i] = s.String()
	}
	return strings.Join(parts, " ")
}
