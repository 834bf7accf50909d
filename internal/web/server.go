// Package web exposes the resolution pipeline over HTTP. The transport is a
// thin layer: every endpoint parses a moniker out of the query string, calls
// the resolver, and maps the typed error taxonomy onto status codes.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/MSubhan6/open-moniker-sub000/resolver"
)

// ReloadFunc re-reads the catalog source and swaps it into the registry,
// returning the new node count.
type ReloadFunc func(ctx context.Context) (int, error)

// Config holds server configuration
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultConfig returns a production-ready server configuration
func DefaultConfig() Config {
	return Config{
		Addr:         ":8080",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// Server serves the resolution API.
type Server struct {
	httpServer *http.Server
	resolver   *resolver.Resolver
	reload     ReloadFunc
	logger     *zap.Logger
}

// NewServer builds the router and server. reload may be nil, in which case
// POST /v1/reload answers 501.
func NewServer(cfg Config, res *resolver.Resolver, reload ReloadFunc, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{resolver: res, reload: reload, logger: logger}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recoverer(logger))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/resolve", s.handleResolve)
		r.Get("/describe", s.handleDescribe)
		r.Get("/children", s.handleChildren)
		r.Post("/reload", s.handleReload)
	})

	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1 MB
	}
	return s
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins serving and blocks until the listener stops.
func (s *Server) Start() error {
	s.logger.Info("server listening", zap.String("addr", s.httpServer.Addr))
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("server shutting down")
	return s.httpServer.Shutdown(ctx)
}
