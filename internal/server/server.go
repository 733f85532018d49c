package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rajatverma/meetwise/internal/database"
	"github.com/rajatverma/meetwise/internal/gcal"
	"github.com/rajatverma/meetwise/internal/session"
)

type Server struct {
	db          *database.DB
	gcalClient  *gcal.Client
	generator   session.Generator
	scheduler   session.Scheduler
	anchor      time.Time
	defaultZone string
	httpSrv     *http.Server
	port        int

	sessionsMu sync.Mutex
	sessions   map[string]*conversation
}

// conversation pairs a session with its own lock so turns within one
// conversation are serialized without blocking other conversations.
type conversation struct {
	mu   sync.Mutex
	sess *session.Session
}

// Config holds everything the server needs to handle conversations.
type Config struct {
	DB          *database.DB
	GCalClient  *gcal.Client
	Generator   session.Generator
	Scheduler   session.Scheduler
	Anchor      time.Time
	DefaultZone string
	Port        int
}

func New(cfg Config) *Server {
	s := &Server{
		db:          cfg.DB,
		gcalClient:  cfg.GCalClient,
		generator:   cfg.Generator,
		scheduler:   cfg.Scheduler,
		anchor:      cfg.Anchor,
		defaultZone: cfg.DefaultZone,
		port:        cfg.Port,
		sessions:    make(map[string]*conversation),
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	s.httpSrv = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.corsMiddleware(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // model round trips can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /health", s.handleHealthCheck)

	// Conversation API
	mux.HandleFunc("POST /transcribe", s.handleTranscribe)
	mux.HandleFunc("POST /schedule", s.handleSchedule)

	// Meetings API
	mux.HandleFunc("GET /api/meetings", s.handleListMeetings)
	mux.HandleFunc("GET /api/meetings/{eventId}", s.handleGetMeeting)

	// Google Calendar API
	mux.HandleFunc("GET /api/gcal/status", s.handleGCalStatus)
	mux.HandleFunc("POST /api/gcal/connect", s.handleGCalConnect)
	mux.HandleFunc("GET /oauth/callback", s.handleOAuthCallback)
}

// conversation returns the session for the given ID, creating it on first
// use. An empty ID maps to the shared default conversation.
func (s *Server) conversation(id string) *conversation {
	if id == "" {
		id = "default"
	}

	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()

	conv, ok := s.sessions[id]
	if !ok {
		conv = &conversation{
			sess: session.New(s.generator, s.scheduler, s.anchor, s.defaultZone),
		}
		s.sessions[id] = conv
	}
	return conv
}

func (s *Server) Start() error {
	fmt.Printf("Starting HTTP server on http://localhost:%d\n", s.port)
	return s.httpSrv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

// Handler returns the server's HTTP handler for testing purposes
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

// corsMiddleware adds CORS headers to allow browser frontend requests
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
