package coordinator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/edvart/padel-scoreboard/internal/scoreboard"
	"github.com/edvart/padel-scoreboard/internal/scoring"
)

// DefaultFlashDuration is how long the point flash stays on after a point.
const DefaultFlashDuration = 400 * time.Millisecond

// ErrNotReady is returned by StartMatch while names or title are missing.
var ErrNotReady = errors.New("all four player names and the match title are required")

// Config holds coordinator configuration.
type Config struct {
	FlashDuration time.Duration
}

// Snapshot is a consistent read of the coordinator state.
type Snapshot struct {
	MatchID string
	State   scoring.MatchState
	Flash   scoring.TeamSide
	Depth   int
}

// Coordinator owns the match engine and processes commands sequentially.
type Coordinator struct {
	commands    chan Command
	events      chan Event
	ctx         context.Context // set by Run; bounds timer sends
	subscribers []chan Event
	engine      *scoring.Engine
	matchID     string
	log         logrus.FieldLogger

	flashDuration time.Duration
	flash         scoring.TeamSide
	flashGen      uint64
	flashTimer    *time.Timer
}

// New creates a new Coordinator.
func New(cfg Config, log logrus.FieldLogger) *Coordinator {
	if cfg.FlashDuration <= 0 {
		cfg.FlashDuration = DefaultFlashDuration
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Coordinator{
		ctx:           context.Background(),
		commands:      make(chan Command, 100),
		events:        make(chan Event, 100),
		subscribers:   make([]chan Event, 0),
		engine:        scoring.NewEngine(),
		matchID:       uuid.New().String(),
		log:           log.WithField("component", "coordinator"),
		flashDuration: cfg.FlashDuration,
	}
}

// Send submits a command to the coordinator.
func (c *Coordinator) Send(cmd Command) {
	c.commands <- cmd
}

// Events returns the main event channel for consumers.
func (c *Coordinator) Events() <-chan Event {
	return c.events
}

// Subscribe creates a new event channel for a consumer.
// The returned channel will receive all events emitted by the coordinator.
// Subscribe must be called before Run.
func (c *Coordinator) Subscribe() <-chan Event {
	ch := make(chan Event, 100)
	c.subscribers = append(c.subscribers, ch)
	return ch
}

// Run starts the coordinator loop. It blocks until ctx is cancelled.
func (c *Coordinator) Run(ctx context.Context) {
	c.ctx = ctx
	c.log.WithField("match_id", c.matchID).Info("Coordinator started")
	for {
		select {
		case <-ctx.Done():
			c.stopFlashTimer()
			c.log.Info("Coordinator shutting down")
			return
		case cmd := <-c.commands:
			c.handleCommand(cmd)
		}
	}
}

// State returns a snapshot of the current match.
func (c *Coordinator) State() Snapshot {
	respCh := make(chan Snapshot, 1)
	c.commands <- getStateCmd{Response: respCh}
	return <-respCh
}

// Do sends cmd built around a fresh response channel and waits for the
// result or for ctx to end.
func (c *Coordinator) Do(ctx context.Context, build func(resp chan error) Command) error {
	resp := make(chan error, 1)
	select {
	case c.commands <- build(resp):
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-resp:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// DoSnapshot is Do, also returning the state the command left behind.
// No other command runs between the two.
func (c *Coordinator) DoSnapshot(ctx context.Context, build func(resp chan error) Command) (Snapshot, error) {
	resp := make(chan error, 1)
	snap := make(chan Snapshot, 1)
	select {
	case c.commands <- withSnapshot{Command: build(resp), Response: snap}:
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
	select {
	case s := <-snap:
		return s, <-resp
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
}

func (c *Coordinator) snapshot() Snapshot {
	return Snapshot{
		MatchID: c.matchID,
		State:   c.engine.State(),
		Flash:   c.flash,
		Depth:   c.engine.Depth(),
	}
}

func (c *Coordinator) emit(e Event) {
	select {
	case c.events <- e:
	default:
		c.log.Warn("main event channel full, dropping event")
	}

	for _, ch := range c.subscribers {
		select {
		case ch <- e:
		default:
			c.log.Warn("subscriber event channel full, dropping event")
		}
	}
}

func respond(ch chan error, err error) {
	if ch != nil {
		ch <- err
	}
}

func (c *Coordinator) handleCommand(cmd Command) {
	switch cmd := cmd.(type) {
	case AwardPoint:
		c.handleAwardPoint(cmd)
		respond(cmd.Response, nil)
	case Undo:
		c.handleUndo()
		respond(cmd.Response, nil)
	case Reset:
		c.handleReset()
		respond(cmd.Response, nil)
	case SetPlayerName:
		respond(cmd.Response, c.handleSetPlayerName(cmd))
	case SetMatchTitle:
		c.engine.SetMatchTitle(cmd.Title)
		c.emitState("title")
		respond(cmd.Response, nil)
	case SetThirdSetMode:
		respond(cmd.Response, c.handleSetThirdSetMode(cmd))
	case SetInitialServer:
		respond(cmd.Response, c.handleSetInitialServer(cmd.Team))
	case StartMatch:
		respond(cmd.Response, c.handleStartMatch(cmd))
	case clearPointFlash:
		c.handleClearPointFlash(cmd)
	case withSnapshot:
		c.handleCommand(cmd.Command)
		cmd.Response <- c.snapshot()
	case getStateCmd:
		cmd.Response <- c.snapshot()
	}
}

func (c *Coordinator) emitState(reason string) {
	c.emit(StateChanged{
		MatchID: c.matchID,
		Reason:  reason,
		State:   c.engine.State(),
		Depth:   c.engine.Depth(),
	})
}

func (c *Coordinator) handleAwardPoint(cmd AwardPoint) {
	prev := c.engine.State()
	next, ok := c.engine.AwardPoint(cmd.Team)
	if !ok {
		c.log.WithFields(logrus.Fields{
			"match_id": c.matchID,
			"team":     cmd.Team.String(),
		}).Debug("Point ignored")
		return
	}

	c.log.WithFields(logrus.Fields{
		"match_id": c.matchID,
		"team":     cmd.Team.String(),
		"set":      next.CurrentSet,
		"points":   fmt.Sprintf("%s-%s", next.TeamA.Points, next.TeamB.Points),
		"games":    fmt.Sprintf("%d-%d", next.TeamA.Games, next.TeamB.Games),
	}).Debug("Point awarded")

	c.startPointFlash(cmd.Team)
	c.emitState("point")
	for _, e := range milestones(c.matchID, prev, next) {
		c.logMilestone(e)
		c.emit(e)
	}
}

func (c *Coordinator) logMilestone(e Event) {
	entry := c.log.WithField("match_id", c.matchID)
	switch e := e.(type) {
	case SetWon:
		entry.WithFields(logrus.Fields{"team": e.Team.String(), "set": e.Set, "score": e.Score.String()}).Info("Set won")
	case MatchWon:
		entry.WithField("team", e.Team.String()).Info("Match won")
	case TiebreakStarted:
		entry.WithFields(logrus.Fields{"set": e.Set, "super": e.Super}).Info("Tiebreak started")
	}
}

func (c *Coordinator) handleUndo() {
	if _, ok := c.engine.Undo(); !ok {
		return
	}
	c.log.WithFields(logrus.Fields{
		"match_id": c.matchID,
		"depth":    c.engine.Depth(),
	}).Info("Undo")
	c.emitState("undo")
}

func (c *Coordinator) handleReset() {
	previous := c.matchID
	c.engine.Reset()
	c.matchID = uuid.New().String()
	c.clearFlash()

	c.log.WithFields(logrus.Fields{
		"match_id":          c.matchID,
		"previous_match_id": previous,
	}).Info("Match reset")

	c.emit(MatchReset{MatchID: c.matchID, PreviousMatchID: previous})
	c.emitState("reset")
}

func (c *Coordinator) handleSetPlayerName(cmd SetPlayerName) error {
	if _, err := c.engine.SetPlayerName(cmd.Team, cmd.Slot, cmd.Name); err != nil {
		return err
	}
	c.emitState("player_name")
	return nil
}

func (c *Coordinator) handleSetThirdSetMode(cmd SetThirdSetMode) error {
	if _, err := c.engine.SetThirdSetMode(cmd.Mode); err != nil {
		return err
	}
	c.log.WithFields(logrus.Fields{
		"match_id": c.matchID,
		"mode":     cmd.Mode.String(),
	}).Info("Third set mode changed")
	c.emitState("third_set_mode")
	return nil
}

func (c *Coordinator) handleSetInitialServer(team scoring.TeamSide) error {
	if _, err := c.engine.SetInitialServer(team); err != nil {
		return err
	}
	c.log.WithFields(logrus.Fields{
		"match_id": c.matchID,
		"team":     team.String(),
	}).Info("Initial server set")
	c.emitState("server")
	return nil
}

func (c *Coordinator) handleStartMatch(cmd StartMatch) error {
	if !scoreboard.CanStart(c.engine.State()) {
		return ErrNotReady
	}
	return c.handleSetInitialServer(cmd.Server)
}

// startPointFlash turns the flash on for team and (re)arms the clear timer.
// A newer point supersedes the pending clear of an older one.
func (c *Coordinator) startPointFlash(team scoring.TeamSide) {
	c.stopFlashTimer()
	c.flashGen++
	c.flash = team
	gen, ctx := c.flashGen, c.ctx
	c.flashTimer = time.AfterFunc(c.flashDuration, func() {
		select {
		case c.commands <- clearPointFlash{Generation: gen}:
		case <-ctx.Done():
		}
	})
	c.emit(PointFlashed{MatchID: c.matchID, Team: team})
}

func (c *Coordinator) handleClearPointFlash(cmd clearPointFlash) {
	if cmd.Generation != c.flashGen {
		return // A newer point owns the flash
	}
	c.clearFlash()
}

func (c *Coordinator) clearFlash() {
	c.stopFlashTimer()
	if c.flash == scoring.NoTeam {
		return
	}
	c.flash = scoring.NoTeam
	c.emit(PointFlashCleared{MatchID: c.matchID})
}

func (c *Coordinator) stopFlashTimer() {
	if c.flashTimer != nil {
		c.flashTimer.Stop()
		c.flashTimer = nil
	}
}
