// Package server exposes the layout engine over HTTP.
//
// # Endpoints
//
//	POST /v1/compact     compact a layout
//	POST /v1/move        move one item as a user would
//	POST /v1/events      apply a drag or resize event
//	POST /v1/responsive  resolve the layout for a viewport
//	GET  /healthz        liveness and build version
//
// Every request gets an X-Request-ID (taken from the request when present,
// otherwise a new UUID) that is echoed in the response and attached to the
// request's log lines. Compaction results are cached; the X-Tenant header
// scopes cache keys so tenants sharing a Redis instance stay isolated.
//
// Errors are returned as JSON with the machine-readable code from
// pkg/errors. Validation failures map to 400, unknown items to 404.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/tilegrid/pkg/cache"
	"github.com/matzehuels/tilegrid/pkg/engine"
)

const (
	// DefaultAddr is the listen address used when none is configured.
	DefaultAddr = ":8080"

	// DefaultMaxBodyBytes bounds request bodies.
	DefaultMaxBodyBytes = 1 << 20

	// requestTimeout bounds a single request.
	requestTimeout = 30 * time.Second

	// shutdownTimeout is how long in-flight requests get on shutdown.
	shutdownTimeout = 10 * time.Second
)

// Config configures a Server.
type Config struct {
	// Cache stores compaction results. Nil disables caching.
	Cache cache.Cache

	// Logger receives request and engine logs. Nil uses log.Default().
	Logger *log.Logger

	// Defaults are the engine options applied before a request's own
	// options are decoded over them.
	Defaults engine.Options

	// MaxBodyBytes bounds request bodies. Zero uses DefaultMaxBodyBytes.
	MaxBodyBytes int64
}

// Server is the HTTP API.
type Server struct {
	cache    cache.Cache
	logger   *log.Logger
	defaults engine.Options
	maxBody  int64
	router   chi.Router
}

// New builds a server and its routes.
func New(cfg Config) *Server {
	s := &Server{
		cache:    cfg.Cache,
		logger:   cfg.Logger,
		defaults: cfg.Defaults,
		maxBody:  cfg.MaxBodyBytes,
	}
	if s.cache == nil {
		s.cache = cache.NewNullCache()
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.maxBody <= 0 {
		s.maxBody = DefaultMaxBodyBytes
	}
	if s.defaults.Cols == 0 {
		s.defaults.Cols = engine.DefaultCols
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(s.requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/compact", s.handleCompact)
		r.Post("/move", s.handleMove)
		r.Post("/events", s.handleEvent)
		r.Post("/responsive", s.handleResponsive)
	})
	s.router = r
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// runner builds a per-request runner with a tenant-scoped keyer.
func (s *Server) runner(r *http.Request) *engine.Runner {
	var keyer cache.Keyer
	if tenant := r.Header.Get(headerTenant); tenant != "" {
		keyer = cache.NewScopedKeyer(nil, "tenant:"+tenant+":")
	}
	return engine.NewRunner(s.cache, keyer, loggerFrom(r.Context(), s.logger))
}

// options returns a copy of the server defaults for a request to decode into.
func (s *Server) options(r *http.Request) engine.Options {
	opts := s.defaults
	opts.Logger = loggerFrom(r.Context(), s.logger)
	return opts
}
