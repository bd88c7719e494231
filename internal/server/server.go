// Package server provides the HTTP API for Receitaro.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/receitaro/receitaro/internal/config"
	"github.com/receitaro/receitaro/internal/metrics"
	"github.com/receitaro/receitaro/internal/search"
	"github.com/receitaro/receitaro/internal/storage"
)

// Server is the HTTP server for the Receitaro API.
type Server struct {
	searcher *search.Searcher
	storage  storage.Storage
	config   *config.Config
	logger   *zap.Logger
	server   *http.Server
}

// NewServer creates a server with the given dependencies. The searcher owns
// the result cache; the server clears it whenever recipes mutate.
func NewServer(
	searcher *search.Searcher,
	store storage.Storage,
	cfg *config.Config,
	logger *zap.Logger,
) *Server {
	return &Server{
		searcher: searcher,
		storage:  store,
		config:   cfg,
		logger:   logger,
	}
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))
	r.Use(metrics.Middleware())

	r.Get("/api/v1/search", s.handleSearch)
	r.Post("/api/v1/recipes", s.handleCreateRecipe)
	r.Get("/api/v1/recipes/{id}", s.handleGetRecipe)
	r.Put("/api/v1/recipes/{id}", s.handleUpdateRecipe)
	r.Delete("/api/v1/recipes/{id}", s.handleDeleteRecipe)
	r.Get("/api/v1/categories", s.handleListCategories)
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: r,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
