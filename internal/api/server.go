// Package api exposes the roster lookups over HTTP.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jdewael/steekkaart-backend/internal/api/handlers"
	"github.com/jdewael/steekkaart-backend/internal/api/middleware"
	"github.com/jdewael/steekkaart-backend/internal/infrastructure/storage"
)

// Config holds API server configuration.
type Config struct {
	Port           int
	AllowedOrigins []string
}

// DefaultConfig returns sensible defaults for the API server.
func DefaultConfig() Config {
	return Config{
		Port:           8080,
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
	}
}

// Server is the HTTP API server.
type Server struct {
	config     Config
	router     chi.Router
	httpServer *http.Server
	logger     *slog.Logger
	roster     handlers.RosterService
	repo       storage.Repository
}

// NewServer creates a new API server.
// If repo is nil, the history endpoints will not be available.
func NewServer(cfg Config, roster handlers.RosterService, repo storage.Repository, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		config: cfg,
		router: chi.NewRouter(),
		logger: logger,
		roster: roster,
		repo:   repo,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures global middleware.
func (s *Server) setupMiddleware() {
	corsConfig := middleware.CORSConfig{
		AllowedOrigins: s.config.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}
	s.router.Use(middleware.CORS(corsConfig))

	// Request logging
	s.router.Use(middleware.Logging(s.logger))
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	// Health check (no /api prefix - for load balancers)
	healthHandler := handlers.NewHealthHandler()
	s.router.Get("/health", healthHandler.ServeHTTP)

	s.router.Route("/api", func(r chi.Router) {
		// Window and file resolution
		windowHandler := handlers.NewWindowHandler(s.roster)
		r.Get("/window", windowHandler.Get)
		r.Get("/current-file", windowHandler.CurrentFile)
		r.Post("/refresh", windowHandler.Refresh)

		// Lookups
		lookupHandler := handlers.NewLookupHandler(s.roster)
		r.Get("/lookup/personnel", lookupHandler.Personnel)
		r.Get("/lookup/vehicle", lookupHandler.Vehicle)

		// Lookup history (requires storage)
		if s.repo != nil {
			historyHandler := handlers.NewHistoryHandler(s.repo)
			r.Get("/lookups", historyHandler.List)
			r.Get("/stats", historyHandler.Stats)
		}
	})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting API server", "addr", addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")

	if s.httpServer == nil {
		return nil
	}

	return s.httpServer.Shutdown(ctx)
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}
