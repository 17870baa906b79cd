package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/edvart/padel-scoreboard/internal/scoreboard"
	"github.com/edvart/padel-scoreboard/internal/scoring"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // A scenario did not match its expectations
	ExitCommandError = 2 // Bad arguments or unreadable files
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter writes match state as a text scoreboard or JSON.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // verbose output; defaults to Writer
	Verbose   bool
}

// Board writes the scoreboard for state.
func (f *OutputFormatter) Board(state scoring.MatchState) error {
	if f.Format == "json" {
		return f.JSON(state)
	}
	return scoreboard.RenderText(f.Writer, scoreboard.Build(state, scoring.NoTeam))
}

// JSON writes v as one line of JSON.
func (f *OutputFormatter) JSON(v any) error {
	return json.NewEncoder(f.Writer).Encode(v)
}

// VerboseLog outputs a message only if verbose mode is enabled.
// JSON output keeps its stream clean by logging to ErrWriter.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}
