// Package server implements the HTTP upload-and-view service.
//
// The server accepts ledger workbook uploads, runs them through the
// render pipeline, and serves the resulting interactive family tree
// under a per-upload view ID. Uploads are not persisted beyond the
// cache TTL; an expired view simply 404s and the workbook must be
// uploaded again.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rdpishibashi/revision-management/pkg/cache"
	"github.com/rdpishibashi/revision-management/pkg/config"
	"github.com/rdpishibashi/revision-management/pkg/pipeline"
)

// Server serves workbook uploads and rendered family tree views.
type Server struct {
	cfg    config.Config
	runner *pipeline.Runner
	cache  cache.Cache
	logger *log.Logger
}

// New creates a server around an existing pipeline runner. The cache
// holds uploaded views; it is usually the same backend the runner uses.
func New(cfg config.Config, runner *pipeline.Runner, c cache.Cache, logger *log.Logger) *Server {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Server{cfg: cfg, runner: runner, cache: c, logger: logger}
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/", s.handleIndex)
	r.Post("/upload", s.handleUpload)
	r.Get("/view/{id}", s.handleView)
	r.Get("/view/{id}/pdf", s.handleViewPDF)
	r.Get("/api/graph/{id}", s.handleGraph)
	r.Get("/healthz", s.handleHealth)

	return r
}

// Run starts the server and blocks until the context is cancelled or
// the listener fails.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Server.Addr,
		Handler: s.Router(),
	}

	s.logger.Infof("Listening on http://localhost%s", s.cfg.Server.Addr)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// requestLogger logs each request at debug level.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debugf("%s %s (%s)", r.Method, r.URL.Path, time.Since(start))
	})
}
