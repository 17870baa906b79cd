package scoring

// Engine holds the current match snapshot and a linear undo history.
//
// Engine is not safe for concurrent use; the coordinator package serializes
// access to it.
type Engine struct {
	current MatchState
	history []MatchState
}

func NewEngine() *Engine {
	return &Engine{current: NewMatchState()}
}

// State returns the current snapshot.
func (e *Engine) State() MatchState {
	return e.current
}

// Depth returns the number of undoable transitions.
func (e *Engine) Depth() int {
	return len(e.history)
}

func (e *Engine) push(next MatchState) MatchState {
	e.history = append(e.history, e.current)
	e.current = next
	return next
}

// AwardPoint scores a point for team. It reports false, without touching
// history, when the point is ignored.
func (e *Engine) AwardPoint(team TeamSide) (MatchState, bool) {
	next, ok := AwardPoint(e.current, team)
	if !ok {
		return e.current, false
	}
	return e.push(next), true
}

// Undo restores the snapshot before the last undoable transition. Names and
// title are kept as they are now, since renames are not recorded in history.
func (e *Engine) Undo() (MatchState, bool) {
	if len(e.history) == 0 {
		return e.current, false
	}
	prev := e.history[len(e.history)-1]
	e.history[len(e.history)-1] = MatchState{}
	e.history = e.history[:len(e.history)-1]
	e.current = prev.withLabels(e.current)
	return e.current, true
}

// Reset discards the match and its history.
func (e *Engine) Reset() MatchState {
	e.current = NewMatchState()
	e.history = nil
	return e.current
}

// SetInitialServer picks the team serving the first game. It is undoable and
// only allowed before the first point.
func (e *Engine) SetInitialServer(team TeamSide) (MatchState, error) {
	if !team.Valid() {
		return e.current, ErrUnknownTeam
	}
	if e.current.HasStarted() {
		return e.current, ErrServerLocked
	}
	next := e.current
	next.Server = team
	return e.push(next), nil
}

// SetThirdSetMode switches between a full third set and a super-tiebreak.
// It changes how points are scored, so it is undoable. A third set already
// under way keeps its format; only the stored preference changes.
func (e *Engine) SetThirdSetMode(mode ThirdSetMode) (MatchState, error) {
	if mode != ThirdSetNormal && mode != ThirdSetSuperTiebreak {
		return e.current, ErrUnknownMode
	}
	next := e.current
	next.ThirdSetMode = mode
	if !next.thirdSetFixed && next.TeamA.Points.IsZero() && next.TeamB.Points.IsZero() {
		next.resetPoints()
	}
	return e.push(next), nil
}

// SetPlayerName renames one player. Labels are not undoable.
func (e *Engine) SetPlayerName(team TeamSide, slot PlayerSlot, name string) (MatchState, error) {
	if !team.Valid() {
		return e.current, ErrUnknownTeam
	}
	next := e.current
	t := next.team(team)
	switch slot {
	case Slot1:
		t.Player1 = Player{Name: name}
	case Slot2:
		t.Player2 = Player{Name: name}
	default:
		return e.current, ErrInvalidSlot
	}
	e.current = next
	return next, nil
}

// SetMatchTitle sets the display title. Labels are not undoable.
func (e *Engine) SetMatchTitle(title string) MatchState {
	e.current.MatchTitle = title
	return e.current
}
