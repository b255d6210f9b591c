// Package server exposes the dashboard aggregations as a read-only JSON API.
//
// The server is stateless: every request builds its own selection from the
// query string, while the dataset source and aggregation cache are shared.
package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/wexinc/fightsongs/internal/aggregate"
	"github.com/wexinc/fightsongs/internal/dataset"
	"github.com/wexinc/fightsongs/internal/logging"
	"github.com/wexinc/fightsongs/internal/selection"
)

// Defaults used when Options leaves a field zero.
const (
	DefaultAddr        = "127.0.0.1:8538"
	DefaultReadTimeout = 10 * time.Second
	shutdownTimeout    = 5 * time.Second
)

// Options configures a Server.
type Options struct {
	Addr        string
	ReadTimeout time.Duration
	// TopK is the default number of conferences offered when a request does
	// not pass top_k.
	TopK      int
	Selection selection.Options
	// Watch reloads the dataset when its file changes.
	Watch    bool
	Debounce time.Duration
	Logger   *slog.Logger
}

// Server serves the JSON API.
type Server struct {
	source  *dataset.Source
	cache   *aggregate.Cache
	opts    Options
	logger  *slog.Logger
	metrics *metrics
	mux     *http.ServeMux
}

// New creates a server over source. A nil cache gets a fresh one.
func New(source *dataset.Source, cache *aggregate.Cache, opts Options) *Server {
	if cache == nil {
		cache = aggregate.NewCache()
	}
	if opts.Addr == "" {
		opts.Addr = DefaultAddr
	}
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = DefaultReadTimeout
	}
	if opts.TopK <= 0 {
		opts.TopK = aggregate.DefaultTopK
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s := &Server{
		source:  source,
		cache:   cache,
		opts:    opts,
		logger:  logger,
		metrics: newMetrics(source, cache),
		mux:     http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.handle("GET /api/decades", "decades", s.handleDecades)
	s.handle("GET /api/conferences", "conferences", s.handleConferences)
	s.handle("GET /api/authorship", "authorship", s.handleAuthorship)
	s.handle("GET /api/context/{decade}", "context", s.handleContext)
	s.handle("GET /healthz", "healthz", s.handleHealth)
	s.mux.Handle("GET /metrics", s.metrics.handler())
}

func (s *Server) handle(pattern, route string, h http.HandlerFunc) {
	s.mux.HandleFunc(pattern, s.metrics.instrument(route, s.traced(route, h)))
}

// traced tags the request with an id, echoed in X-Request-ID, and logs it.
func (s *Server) traced(route string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := logging.WithRequestID(r.Context(), id)
		s.logger.Debug("request", "route", route, "query", r.URL.RawQuery, "request_id", id)
		h(w, r.WithContext(ctx))
	}
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if s.opts.Watch && s.source.Path() != "" {
		w, err := dataset.NewWatcher(s.source, s.opts.Debounce, s.onReload, s.logger)
		if err != nil {
			_ = ln.Close()
			return err
		}
		if err := w.Start(ctx); err != nil {
			_ = ln.Close()
			return err
		}
		defer func() { _ = w.Stop() }()
	}

	srv := &http.Server{
		Handler:           s.mux,
		ReadTimeout:       s.opts.ReadTimeout,
		ReadHeaderTimeout: s.opts.ReadTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errs := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
			return
		}
		errs <- nil
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errs
	case err := <-errs:
		return err
	}
}

// Run creates a server and runs it until ctx is cancelled.
func Run(ctx context.Context, source *dataset.Source, cache *aggregate.Cache, opts Options) error {
	return New(source, cache, opts).Run(ctx)
}

// onReload drops cache entries of replaced dataset versions.
func (s *Server) onReload(err error) {
	ds := s.source.Dataset()
	pruned := s.cache.Prune(ds.Version())
	if err != nil {
		s.logger.Warn("dataset unavailable after reload", "error", err, "pruned", pruned)
		return
	}
	s.logger.Info("cache pruned after reload", "rows", ds.Len(), "pruned", pruned)
}
