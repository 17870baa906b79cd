package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/edvart/padel-scoreboard/internal/coordinator"
	"github.com/edvart/padel-scoreboard/internal/scoreboard"
	"github.com/edvart/padel-scoreboard/internal/scoring"
)

const handlerTimeout = 10 * time.Second

// StateResponse is the JSON body returned by the API.
type StateResponse struct {
	MatchID string             `json:"matchId"`
	State   scoring.MatchState `json:"state"`
	View    scoreboard.View    `json:"view"`
	Flash   scoring.TeamSide   `json:"flash"`
	Undo    int                `json:"undoDepth"`
}

// send runs a coordinator command with a timeout and writes the resulting
// state, or the error.
func (s *Server) send(w http.ResponseWriter, r *http.Request, build func(resp chan error) coordinator.Command) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	snap, err := s.coordinator.DoSnapshot(ctx, build)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSnapshot(w, snap)
}

func writeSnapshot(w http.ResponseWriter, snap coordinator.Snapshot) {
	writeJSON(w, http.StatusOK, StateResponse{
		MatchID: snap.MatchID,
		State:   snap.State,
		View:    scoreboard.Build(snap.State, snap.Flash),
		Flash:   snap.Flash,
		Undo:    snap.Depth,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	case errors.Is(err, scoring.ErrServerLocked):
		status = http.StatusConflict
	case errors.Is(err, coordinator.ErrNotReady):
		status = http.StatusPreconditionFailed
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// readValue reads "value" from a JSON object body or a form.
func readValue(r *http.Request) (string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var body struct {
			Value string `json:"value"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return "", errors.New("invalid JSON body")
		}
		return body.Value, nil
	}
	return r.FormValue("value"), nil
}

func teamParam(r *http.Request) (scoring.TeamSide, error) {
	return scoring.ParseTeamSide(chi.URLParam(r, "team"))
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeSnapshot(w, s.coordinator.State())
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	if s.commentary == nil {
		writeJSON(w, http.StatusOK, []any{})
		return
	}
	writeJSON(w, http.StatusOK, s.commentary.Calls())
}

func (s *Server) handleAwardPoint(w http.ResponseWriter, r *http.Request) {
	team, err := teamParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	s.send(w, r, func(resp chan error) coordinator.Command {
		return coordinator.AwardPoint{Team: team, Response: resp}
	})
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	s.send(w, r, func(resp chan error) coordinator.Command {
		return coordinator.Undo{Response: resp}
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.send(w, r, func(resp chan error) coordinator.Command {
		return coordinator.Reset{Response: resp}
	})
}

func (s *Server) handleSetPlayerName(w http.ResponseWriter, r *http.Request) {
	team, err := teamParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	slot, err := scoring.ParsePlayerSlot(chi.URLParam(r, "slot"))
	if err != nil {
		writeError(w, err)
		return
	}
	name, err := readValue(r)
	if err != nil {
		writeError(w, err)
		return
	}
	s.send(w, r, func(resp chan error) coordinator.Command {
		return coordinator.SetPlayerName{Team: team, Slot: slot, Name: strings.TrimSpace(name), Response: resp}
	})
}

func (s *Server) handleSetMatchTitle(w http.ResponseWriter, r *http.Request) {
	title, err := readValue(r)
	if err != nil {
		writeError(w, err)
		return
	}
	s.send(w, r, func(resp chan error) coordinator.Command {
		return coordinator.SetMatchTitle{Title: strings.TrimSpace(title), Response: resp}
	})
}

func (s *Server) handleSetThirdSetMode(w http.ResponseWriter, r *http.Request) {
	raw, err := readValue(r)
	if err != nil {
		writeError(w, err)
		return
	}
	mode, err := scoring.ParseThirdSetMode(raw)
	if err != nil {
		writeError(w, err)
		return
	}
	s.send(w, r, func(resp chan error) coordinator.Command {
		return coordinator.SetThirdSetMode{Mode: mode, Response: resp}
	})
}

func (s *Server) handleSetInitialServer(w http.ResponseWriter, r *http.Request) {
	team, err := teamParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	s.send(w, r, func(resp chan error) coordinator.Command {
		return coordinator.SetInitialServer{Team: team, Response: resp}
	})
}

func (s *Server) handleStartMatch(w http.ResponseWriter, r *http.Request) {
	team, err := teamParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	s.send(w, r, func(resp chan error) coordinator.Command {
		return coordinator.StartMatch{Server: team, Response: resp}
	})
}
