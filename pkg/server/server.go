// Package server exposes GML export over HTTP.
//
// Routes:
//
//	POST /v1/export      graph (JSON or YAML body) -> GML document
//	GET  /v1/parameters  list of export parameter names
//	GET  /healthz        liveness probe
//
// Export switches come from the config file and can be replaced per request
// with repeated param query values (?param=vertex-labels&param=edge-weights).
// A creator query value overrides the Creator header.
//
// When [server.cache] is enabled, documents are cached by request body,
// content type and effective options. The X-Cache response header reports
// "hit" or "miss".
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/gmlexport/pkg/cache"
	"github.com/matzehuels/gmlexport/pkg/config"
)

// Server serves the export API.
type Server struct {
	cfg    *config.Config
	logger *log.Logger
	router chi.Router
	cache  cache.Cache
}

// New builds a server from cfg. A nil logger discards log output.
func New(cfg *config.Config, logger *log.Logger) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	c, err := cfg.NewCache()
	if err != nil {
		return nil, err
	}
	s := &Server{cfg: cfg, logger: logger, cache: c}
	s.router = s.routes()
	return s, nil
}

// Close releases the document cache.
func (s *Server) Close() error { return s.cache.Close() }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(serverHeader)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/export", s.handleExport)
		r.Get("/parameters", s.handleParameters)
	})
	return r
}

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on the configured address until ctx is cancelled,
// then shuts down gracefully within the configured timeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout.Duration)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
