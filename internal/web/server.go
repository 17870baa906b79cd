package web

import (
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/edvart/padel-scoreboard/internal/auth"
	"github.com/edvart/padel-scoreboard/internal/commentary"
	"github.com/edvart/padel-scoreboard/internal/coordinator"
	"github.com/edvart/padel-scoreboard/internal/scoreboard"
	"github.com/edvart/padel-scoreboard/internal/scoring"
)

// Server holds the HTTP server and its dependencies.
type Server struct {
	router      *chi.Mux
	coordinator *coordinator.Coordinator
	commentary  *commentary.Commentator
	sse         *SSEHub
	templates   *template.Template
	log         logrus.FieldLogger
	cfg         Config
}

// Config holds server configuration.
type Config struct {
	DevMode     bool
	UmpireToken string
	CORSOrigins []string
}

// NewServer creates a new HTTP server. comm may be nil.
func NewServer(
	coord *coordinator.Coordinator,
	comm *commentary.Commentator,
	templates *template.Template,
	cfg Config,
	log logrus.FieldLogger,
) *Server {
	log = log.WithField("component", "web")
	s := &Server{
		router:      chi.NewRouter(),
		coordinator: coord,
		commentary:  comm,
		sse:         NewSSEHub(templates, coord, log),
		templates:   templates,
		log:         log,
		cfg:         cfg,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := s.router

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut},
		AllowedHeaders: []string{"Authorization", "Content-Type", auth.UmpireHeader},
	}).Handler)

	r.Get("/", s.handleIndex)
	r.Get("/events", s.sse.HandleConnection)

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Get("/feed", s.handleFeed)

		// Umpire routes
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireUmpire(s.cfg.UmpireToken))

			r.Post("/point/{team}", s.handleAwardPoint)
			r.Post("/undo", s.handleUndo)
			r.Post("/reset", s.handleReset)
			r.Put("/players/{team}/{slot}", s.handleSetPlayerName)
			r.Put("/title", s.handleSetMatchTitle)
			r.Put("/third-set-mode", s.handleSetThirdSetMode)
			r.Post("/server/{team}", s.handleSetInitialServer)
			r.Post("/start/{team}", s.handleStartMatch)
		})
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// StartSSE starts the SSE hub goroutine.
func (s *Server) StartSSE(events <-chan coordinator.Event) {
	go s.sse.Run(events)
}

// PageData holds data for the page and the scoreboard partial.
type PageData struct {
	MatchID string
	State   scoring.MatchState
	View    scoreboard.View
	Calls   []commentary.Call
	DevMode bool
}

func (s *Server) pageData(snap coordinator.Snapshot) PageData {
	data := PageData{
		MatchID: snap.MatchID,
		State:   snap.State,
		View:    scoreboard.Build(snap.State, snap.Flash),
		DevMode: s.cfg.DevMode,
	}
	if s.commentary != nil {
		data.Calls = s.commentary.Calls()
	}
	return data
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := s.pageData(s.coordinator.State())

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		s.log.WithError(err).Error("Template error")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// requestLogger logs each request through logrus.
func requestLogger(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.WithFields(logrus.Fields{
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"duration":   time.Since(start).String(),
				"request_id": middleware.GetReqID(r.Context()),
			}).Debug("HTTP request")
		})
	}
}
