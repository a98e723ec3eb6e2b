// Package server exposes the analysis pipeline over HTTP.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fingervision/ridgemark/internal/pipeline"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	cfg        Config
	newPipe    analyzerFactory
	httpServer *http.Server
}

// New creates a server from the given configuration.
func New(cfg Config) (*Server, error) {
	if err := cfg.Pipeline.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pipeline config: %w", err)
	}
	factory := func() (analyzer, error) {
		return pipeline.NewBuilder().
			WithBlockSize(cfg.Pipeline.BlockSize).
			WithEnhanceConfig(cfg.Pipeline.Enhance).
			Build()
	}
	return newWithFactory(cfg, factory), nil
}

func newWithFactory(cfg Config, factory analyzerFactory) *Server {
	s := &Server{cfg: cfg, newPipe: factory}
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.corsMiddleware(s.healthHandler))
	mux.HandleFunc("/analyze", s.corsMiddleware(s.metricsMiddleware("/analyze", s.analyzeHandler)))
	mux.Handle("/metrics", promhttp.Handler())

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      mux,
		ReadTimeout:  time.Duration(cfg.TimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.TimeoutSec) * time.Second,
	}
	return s
}

// Handler returns the server's HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

// Start runs the server until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	slog.Info("starting server", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
