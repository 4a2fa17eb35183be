// Package server exposes the localization pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz                   liveness and build info
//	GET  /v1/transforms             registered transforms
//	POST /v1/transform              transform a single value
//	POST /v1/documents/{format}     localize a raw resource document
//	GET  /metrics                   Prometheus metrics (when enabled)
//
// Errors are returned as {"code": "...", "message": "..."} with the status
// derived from the error code.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/pseudoloc/pkg/pipeline"
	"github.com/matzehuels/pseudoloc/pkg/transform"
)

// shutdownTimeout bounds how long in-flight requests may run after the
// serve context is cancelled.
const shutdownTimeout = 10 * time.Second

// DefaultMaxBodyBytes caps document uploads when Options.MaxBodyBytes is 0.
const DefaultMaxBodyBytes int64 = 10 << 20

// Options configures a Server.
type Options struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxBodyBytes int64

	// Transforms apply when a request names none. Empty selects
	// transform.Defaults.
	Transforms []transform.ID

	// Metrics, when set, is served on /metrics.
	Metrics *Metrics

	Logger *log.Logger
}

// Server serves the localization API.
type Server struct {
	runner *pipeline.Runner
	opts   Options
	logger *log.Logger
	router chi.Router
}

// New builds a server around runner.
func New(runner *pipeline.Runner, opts Options) *Server {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.Logger == nil {
		opts.Logger = runner.Logger
	}
	s := &Server{
		runner: runner,
		opts:   opts,
		logger: opts.Logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.recoverer)
	r.Use(middleware.CleanPath)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, errNotFound(r))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, errMethodNotAllowed(r))
	})

	s.handle(r, http.MethodGet, "/healthz", s.handleHealth)
	s.handle(r, http.MethodGet, "/v1/transforms", s.handleTransforms)
	s.handle(r, http.MethodPost, "/v1/transform", s.handleTransform)
	s.handle(r, http.MethodPost, "/v1/documents/{format}", s.handleDocument)
	if s.opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.opts.Metrics.Handler())
	}
	return r
}

// handle registers h, instrumented under its route pattern so metrics stay
// bounded regardless of the request path.
func (s *Server) handle(r chi.Router, method, pattern string, h http.HandlerFunc) {
	r.With(s.instrument(pattern)).Method(method, pattern, h)
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadTimeout:       s.opts.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      s.opts.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
