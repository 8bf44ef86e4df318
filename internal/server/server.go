// Package server exposes the engine's read and refresh surface over HTTP
// for the presentation layer.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bruno248/ooh-terminal/internal/common"
	"github.com/bruno248/ooh-terminal/internal/interfaces"
)

// Server wraps the HTTP server and the engine services.
type Server struct {
	config  *common.Config
	logger  *common.Logger
	sync    interfaces.SyncService
	history interfaces.HistoryService
	server  *http.Server
}

// NewServer creates a new REST API server over the engine services.
func NewServer(config *common.Config, logger *common.Logger, syncService interfaces.SyncService, historyService interfaces.HistoryService) *Server {
	s := &Server{
		config:  config,
		logger:  logger,
		sync:    syncService,
		history: historyService,
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	handler := applyMiddleware(mux, logger)

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/health", s.handleHealth)

	mux.HandleFunc("/api/snapshot", s.handleSnapshot)
	mux.HandleFunc("/api/freshness", s.handleFreshness)
	mux.HandleFunc("/api/history", s.handleHistory)
	mux.HandleFunc("/api/refresh/", s.handleRefresh)

	mux.HandleFunc("/api/companies", s.handleCompanies)
	mux.HandleFunc("/api/companies/", s.handleCompanyByTicker)

	mux.HandleFunc("/api/news", s.handleNews)
	mux.HandleFunc("/api/highlights", s.handleHighlights)
	mux.HandleFunc("/api/events", s.handleEvents)
	mux.HandleFunc("/api/documents", s.handleDocuments)
	mux.HandleFunc("/api/sentiment", s.handleSentiment)
}

// Handler returns the HTTP handler for testing.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server (blocking).
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("Starting REST API server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
