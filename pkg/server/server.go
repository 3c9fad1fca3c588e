// Package server exposes masonry layouts over HTTP.
//
// A client opens a session sized for its viewport, streams item batches
// into it and asks for the visible window as it scrolls. The server keeps
// the placements, so clients only ever send new items and receive the
// positions of what was just placed.
//
// # Routes
//
//	POST   /sessions                   create a session
//	GET    /sessions/{id}              layout summary
//	POST   /sessions/{id}/items        append or replace items
//	PUT    /sessions/{id}/viewport     report a new viewport width
//	GET    /sessions/{id}/window       visible items at a scroll offset
//	DELETE /sessions/{id}              drop a session
//	GET    /healthz                    liveness
//
// Errors are JSON objects {"code": ..., "message": ...} with codes from
// pkg/errors.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/mosaic/pkg/masonry"
	"github.com/matzehuels/mosaic/pkg/session"
)

// Options configures a Server.
type Options struct {
	// Layout fills option fields a create request leaves out.
	Layout masonry.Options

	// SweepInterval is how often expired sessions are removed.
	SweepInterval time.Duration

	Logger *log.Logger
}

// Server is the layout service.
type Server struct {
	store    session.Store
	defaults masonry.Options
	sweep    time.Duration
	logger   *log.Logger
	router   chi.Router
}

// New creates a Server over store.
func New(store session.Store, opts Options) *Server {
	if store == nil {
		store = session.NewMemoryStore(session.DefaultTTL)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	sweep := opts.SweepInterval
	if sweep <= 0 {
		sweep = time.Minute
	}
	s := &Server{
		store:    store,
		defaults: opts.Layout.WithDefaults(),
		sweep:    sweep,
		logger:   logger,
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleSummary)
			r.Delete("/", s.handleDelete)
			r.Post("/items", s.handleItems)
			r.Put("/viewport", s.handleViewport)
			r.Get("/window", s.handleWindow)
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully. The session sweeper runs for the lifetime of the call.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go session.Sweep(sweepCtx, s.store, s.sweep, s.logger)

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("layout service listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down layout service")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
