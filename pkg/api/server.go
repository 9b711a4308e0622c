// Package api provides the HTTP gateway for the inkwell service.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/inkwell-ai/inkwell/pkg/auth"
	"github.com/inkwell-ai/inkwell/pkg/config"
	"github.com/inkwell-ai/inkwell/pkg/logging"
	"github.com/inkwell-ai/inkwell/pkg/orchestrator"
	"github.com/inkwell-ai/inkwell/pkg/storage"
)

// Server is the inkwell HTTP gateway.
type Server struct {
	cfg        *config.Config
	store      *storage.Store
	orch       *orchestrator.Orchestrator
	tokens     *auth.TokenManager
	logger     *logging.Logger
	httpServer *http.Server
	now        func() time.Time
}

// ServerConfig wires the gateway's collaborators.
type ServerConfig struct {
	Config       *config.Config
	Store        *storage.Store
	Orchestrator *orchestrator.Orchestrator
	Tokens       *auth.TokenManager
	Logger       *logging.Logger
}

// NewServer creates the gateway and mounts its routes.
func NewServer(cfg ServerConfig) *Server {
	s := &Server{
		cfg:    cfg.Config,
		store:  cfg.Store,
		orch:   cfg.Orchestrator,
		tokens: cfg.Tokens,
		logger: cfg.Logger,
		now:    time.Now,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(2 * time.Minute))
	r.Use(s.identify)

	r.Get("/healthz", s.handleHealthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/generate-entry", s.handleGenerateEntry)
		r.Post("/entries", s.handleSaveEntry)
		r.Post("/chat", s.handleChat)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/entries/recent", s.handleRecentEntries)
			r.Get("/stats", s.handleStats)
			r.Post("/entries/{id}/summary", s.handleSummarize)
			r.Post("/insights/generate", s.handleInsights)
			r.Post("/biography/generate", s.handleBiography)
			r.Post("/journal/compile", s.handleCompile)
			r.Get("/preferences", s.handleGetPreferences)
			r.Put("/preferences", s.handleSavePreferences)
		})

		r.Route("/web3", func(r chi.Router) {
			r.Get("/nonce", s.handleNonce)
			r.Post("/nonce", s.handleNonce)
			r.Post("/login", s.handleLogin)
			r.Post("/disconnect", s.handleDisconnect)
		})
	})

	address := config.DefaultListenAddress
	if cfg.Config != nil && cfg.Config.Server.Address != "" {
		address = cfg.Config.Server.Address
	}
	s.httpServer = &http.Server{
		Addr:              address,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins serving. Blocks until the listener fails or Shutdown is
// called.
func (s *Server) Start() error {
	s.logger.Info(logging.CategoryGateway, "server_start", "listening", map[string]any{
		"address": s.httpServer.Addr,
	})
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"success": false, "error": message})
}

func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	return dec.Decode(v)
}
