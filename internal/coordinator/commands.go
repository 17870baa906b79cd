package coordinator

import "github.com/edvart/padel-scoreboard/internal/scoring"

// Command is the interface for all commands sent to the coordinator.
type Command interface {
	command() // marker method
}

// AwardPoint scores a point for Team. Points scored before a server is
// chosen, or after the match is over, are silently ignored.
type AwardPoint struct {
	Team     scoring.TeamSide
	Response chan error
}

func (AwardPoint) command() {}

// Undo rolls back the last undoable transition.
type Undo struct {
	Response chan error
}

func (Undo) command() {}

// Reset discards the match and starts a fresh, unconfigured one.
type Reset struct {
	Response chan error
}

func (Reset) command() {}

// SetPlayerName renames one player of a team.
type SetPlayerName struct {
	Team     scoring.TeamSide
	Slot     scoring.PlayerSlot
	Name     string
	Response chan error
}

func (SetPlayerName) command() {}

// SetMatchTitle sets the label shown above the scoreboard.
type SetMatchTitle struct {
	Title    string
	Response chan error
}

func (SetMatchTitle) command() {}

// SetThirdSetMode picks a full third set or a super-tiebreak.
type SetThirdSetMode struct {
	Mode     scoring.ThirdSetMode
	Response chan error
}

func (SetThirdSetMode) command() {}

// SetInitialServer picks the team serving first.
type SetInitialServer struct {
	Team     scoring.TeamSide
	Response chan error
}

func (SetInitialServer) command() {}

// StartMatch checks that both teams and the title are filled in, then sets
// the initial server.
type StartMatch struct {
	Server   scoring.TeamSide
	Response chan error
}

func (StartMatch) command() {}

// clearPointFlash is sent by the flash timer.
type clearPointFlash struct {
	Generation uint64
}

func (clearPointFlash) command() {}

// getStateCmd is an internal command to safely get state snapshot.
type getStateCmd struct {
	Response chan Snapshot
}

func (getStateCmd) command() {}

// withSnapshot runs Command and replies with the state it left, in the same
// turn of the loop.
type withSnapshot struct {
	Command  Command
	Response chan Snapshot
}

func (withSnapshot) command() {}
