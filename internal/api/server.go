// Package api exposes the dashboard's REST and websocket surface: the
// strategy catalog, per-strategy ledgers and performance statistics, and
// user account management.
package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"tradinghub/internal/stats"
	"tradinghub/internal/storage"
)

// Config carries the server's dependencies. Curves may be nil when no
// ClickHouse backend is configured; the equity curve endpoint then computes
// curves from the ledger directly.
type Config struct {
	Strategies storage.StrategyStore
	Ledgers    storage.LedgerStore
	Stats      storage.StatsStore
	Users      storage.UserStore
	Curves     storage.EquityCurveStore

	StatsOptions stats.Options

	Logger zerolog.Logger
}

// Server is the HTTP API server.
type Server struct {
	router *mux.Router
	log    zerolog.Logger

	strategies storage.StrategyStore
	ledgers    storage.LedgerStore
	stats      storage.StatsStore
	users      storage.UserStore
	curves     storage.EquityCurveStore

	statsOpts stats.Options
	cache     *stats.Cache
	hub       *Hub
}

// NewServer wires routes and starts the websocket hub.
func NewServer(cfg Config) *Server {
	s := &Server{
		router:     mux.NewRouter(),
		log:        cfg.Logger,
		strategies: cfg.Strategies,
		ledgers:    cfg.Ledgers,
		stats:      cfg.Stats,
		users:      cfg.Users,
		curves:     cfg.Curves,
		statsOpts:  cfg.StatsOptions,
		cache:      stats.NewCache(),
		hub:        NewHub(cfg.Logger),
	}
	s.routes()
	go s.hub.Run()
	return s
}

func (s *Server) routes() {
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/strategies", s.handleListStrategies).Methods(http.MethodGet)
	api.HandleFunc("/strategies/available", s.handleAvailableStrategies).Methods(http.MethodGet)
	api.HandleFunc("/strategies/{name}", s.handleGetStrategy).Methods(http.MethodGet)
	api.HandleFunc("/strategies/{name}/equity-curve", s.handleEquityCurve).Methods(http.MethodGet)
	api.HandleFunc("/strategy-metrics", s.handleStrategyMetrics).Methods(http.MethodGet)

	api.HandleFunc("/users", s.handleCreateUser).Methods(http.MethodPost)
	api.HandleFunc("/users", s.handleListUsers).Methods(http.MethodGet)
	api.HandleFunc("/users/{email}", s.handleGetUser).Methods(http.MethodGet)
	api.HandleFunc("/users/{email}", s.handleDeleteUser).Methods(http.MethodDelete)

	s.router.HandleFunc("/ws", s.handleWebsocket)

	s.router.Use(s.loggingMiddleware)
	s.router.Use(s.recoveryMiddleware)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Hub returns the websocket hub, for the scheduler to announce
// regenerated statistics.
func (s *Server) Hub() *Hub {
	return s.hub
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				s.log.Error().
					Interface("panic", err).
					Str("path", r.URL.Path).
					Msg("panic recovered")
				respondError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
