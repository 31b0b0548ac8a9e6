package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"chorechart/internal/email"
	"chorechart/internal/handler"
	"chorechart/internal/middleware"
	"chorechart/internal/store"
	ws "chorechart/internal/websocket"
)

type Server struct {
	db          *sql.DB
	hub         *ws.Hub
	userH       *handler.UserHandler
	choreH      *handler.ChoreHandler
	inviteH     *handler.InviteHandler
	statsH      *handler.StatsHandler
	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
}

func New(db *sql.DB, sender *email.Sender, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	userStore := store.NewUserStore(db)
	choreStore := store.NewChoreStore(db)
	ledgerStore := store.NewLedgerStore(db)
	scheduleStore := store.NewScheduleStore(db)

	return &Server{
		db:          db,
		hub:         hub,
		userH:       handler.NewUserHandler(userStore, hub, logger.With("component", "user")),
		choreH:      handler.NewChoreHandler(choreStore, ledgerStore, hub, logger.With("component", "chore")),
		inviteH:     handler.NewInviteHandler(choreStore, userStore, scheduleStore, sender, hub, logger.With("component", "invite")),
		statsH:      handler.NewStatsHandler(ledgerStore, userStore, logger.With("component", "stats")),
		rateLimiter: middleware.NewRateLimiter(),
		logger:      logger,
	}
}

// RateLimiter returns the rate limiter for periodic cleanup.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)

	mux.HandleFunc("POST /api/users", s.userH.Create)
	mux.HandleFunc("GET /api/users", s.userH.List)
	mux.HandleFunc("GET /api/users/{id}", s.userH.Get)
	mux.HandleFunc("PUT /api/users/{id}", s.userH.Update)
	mux.HandleFunc("DELETE /api/users/{id}", s.userH.Delete)

	mux.HandleFunc("POST /api/chores", s.choreH.Create)
	mux.HandleFunc("GET /api/chores", s.choreH.List)
	mux.HandleFunc("PUT /api/chores/{id}", s.choreH.Update)
	mux.HandleFunc("DELETE /api/chores/{id}", s.choreH.Delete)
	mux.HandleFunc("POST /api/chores/{id}/complete", s.choreH.Complete)

	// Sends outbound email; throttled per client IP
	mux.HandleFunc("POST /api/chores/{id}/invite", s.rateLimitedHandler(s.inviteH.Invite))

	mux.HandleFunc("GET /api/stats/history", s.statsH.History)
	mux.HandleFunc("GET /api/stats/charts", s.statsH.Charts)

	mux.HandleFunc("GET /ws", ws.Handle(s.hub))

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}
