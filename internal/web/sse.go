package web

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/edvart/padel-scoreboard/internal/coordinator"
	"github.com/edvart/padel-scoreboard/internal/scoreboard"
)

// SSEClient represents a connected SSE client.
type SSEClient struct {
	ID      string
	Channel chan string
}

// SSEHub manages SSE connections and broadcasts scoreboard updates.
type SSEHub struct {
	clients     map[*SSEClient]bool
	mu          sync.RWMutex
	templates   *template.Template
	coordinator *coordinator.Coordinator
	log         logrus.FieldLogger
}

// NewSSEHub creates a new SSE hub.
func NewSSEHub(templates *template.Template, coord *coordinator.Coordinator, log logrus.FieldLogger) *SSEHub {
	return &SSEHub{
		clients:     make(map[*SSEClient]bool),
		templates:   templates,
		coordinator: coord,
		log:         log,
	}
}

// Run starts the SSE hub, processing events from the coordinator.
func (h *SSEHub) Run(events <-chan coordinator.Event) {
	h.log.Info("SSE hub started")
	for event := range events {
		if isBoardEvent(event) {
			h.broadcast(h.renderBoard())
		}
	}
}

// isBoardEvent returns true if the event changes what the scoreboard shows.
func isBoardEvent(event coordinator.Event) bool {
	switch event.(type) {
	case coordinator.StateChanged,
		coordinator.PointFlashed,
		coordinator.PointFlashCleared,
		coordinator.MatchReset:
		return true
	default:
		return false
	}
}

func (h *SSEHub) broadcast(html string) {
	if html == "" {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.Channel <- html:
		default:
			// Client too slow, skip
			h.log.WithField("client", client.ID).Warn("Dropping message for slow client")
		}
	}
}

// renderBoard renders the scoreboard partial for the current state.
func (h *SSEHub) renderBoard() string {
	snap := h.coordinator.State()
	data := PageData{
		MatchID: snap.MatchID,
		State:   snap.State,
		View:    scoreboard.Build(snap.State, snap.Flash),
	}

	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, "scoreboard", data); err != nil {
		h.log.WithError(err).Error("Failed to render scoreboard")
		return ""
	}
	return buf.String()
}

// ClientCount returns the number of connected clients.
func (h *SSEHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// HandleConnection handles a new SSE connection.
func (h *SSEHub) HandleConnection(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	client := &SSEClient{
		ID:      fmt.Sprintf("%p", r),
		Channel: make(chan string, 10),
	}

	h.mu.Lock()
	h.clients[client] = true
	h.mu.Unlock()

	h.log.WithField("client", client.ID).Debug("SSE client connected")

	defer func() {
		h.mu.Lock()
		delete(h.clients, client)
		h.mu.Unlock()
		h.log.WithField("client", client.ID).Debug("SSE client disconnected")
	}()

	// Send initial keepalive
	fmt.Fprintf(w, ": connected\n\n")
	flusher.Flush()

	if initial := h.renderBoard(); initial != "" {
		writeMessage(w, initial)
		flusher.Flush()
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case msg := <-client.Channel:
			writeMessage(w, msg)
			flusher.Flush()
		}
	}
}

// writeMessage writes one SSE message; each line must be prefixed with "data: ".
func writeMessage(w http.ResponseWriter, msg string) {
	for _, line := range strings.Split(msg, "\n") {
		fmt.Fprintf(w, "data: %s\n", line)
	}
	fmt.Fprintf(w, "\n")
}
