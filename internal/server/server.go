// Package server implements the arcstrata HTTP layout service.
//
// # Endpoints
//
//	GET  /healthz          liveness probe with build information
//	POST /v1/layout        lay out one sentence (JSON body)
//	POST /v1/documents     lay out every sentence of a document
//	POST /v1/check         report crossings and dangling edges
//
// /v1/layout accepts the query parameters alternatives (bool) and format
// (json, text, dot, svg). /v1/documents and /v1/check accept alternatives
// and input (json, yaml, toml, conllu) naming the body's format.
//
// Every response carries an X-Request-ID header. Errors are JSON objects
// of the form {"code": "INVALID_INPUT", "message": "..."} with the status
// derived from the code.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/arcstrata/pkg/pipeline"
)

const (
	// DefaultMaxBodyBytes bounds request bodies.
	DefaultMaxBodyBytes = 8 << 20

	// DefaultRequestTimeout bounds the handling of a single request.
	DefaultRequestTimeout = 60 * time.Second

	shutdownTimeout = 10 * time.Second
)

// Options configures a Server.
type Options struct {
	// Alternatives is the default for requests without an alternatives
	// query parameter.
	Alternatives bool
	// Concurrency bounds parallel sentence layouts per document request.
	Concurrency int
	// MaxBodyBytes bounds request bodies (DefaultMaxBodyBytes if zero).
	MaxBodyBytes int64
	// RequestTimeout bounds request handling (DefaultRequestTimeout if zero).
	RequestTimeout time.Duration
}

// Server serves layouts over HTTP. It is safe for concurrent use.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	opts   Options
	router chi.Router
}

// New creates a server that lays out sentences with runner.
func New(runner *pipeline.Runner, logger *log.Logger, opts Options) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = DefaultRequestTimeout
	}
	s := &Server{
		runner: runner,
		logger: logger.WithPrefix("http"),
		opts:   opts,
	}
	s.router = s.routes()
	return s
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.opts.RequestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Post("/documents", s.handleDocument)
		r.Post("/check", s.handleCheck)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, notFound(r))
	})
	r.MethodNotAllowed(writeMethodNotAllowed)
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}
