// Package server implements the viewmorph HTTP service.
//
// # Architecture
//
// The service stores uploaded datasets and animation definitions, prepares
// transition geometry server-side, and evaluates frame positions per
// request:
//
//	POST /api/datasets            upload a dataset, get an ID
//	POST /api/animations          define an animation, preparation starts
//	GET  /api/animations/{id}     definition plus preparation status
//	GET  /api/animations/{id}/positions?t=0.5
//	GET  /api/schemas             parameter schemas per strategy
//
// Preparation runs asynchronously: creating an animation returns
// immediately, and the positions endpoint answers NOT_READY until the
// geometry is done. A failed preparation is permanent for that animation;
// the failure is reported on every subsequent request.
//
// Prepared geometry flows through the same cache-aware [pipeline.Runner]
// the CLI uses, so instances sharing a Redis cache skip recomputation.
// Position responses are additionally cached under an HTTP key.
//
// # Usage
//
//	cfg, err := server.LoadConfig(path)
//	st, err := cfg.BuildStore(ctx)
//	ca, err := cfg.BuildCache(ctx)
//	srv := server.New(server.Options{Store: st, Cache: ca, Logger: logger})
//	err = srv.ListenAndServe(ctx, cfg.Addr)
package server

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/viewmorph/viewmorph/pkg/cache"
	"github.com/viewmorph/viewmorph/pkg/pipeline"
	"github.com/viewmorph/viewmorph/pkg/store"
)

// Options configures a Server. Nil collaborators take development
// defaults: an in-memory store, a null cache, and a discarded logger.
type Options struct {
	Store  store.Store
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// Server is the animation API. It owns an in-process registry of
// preparations keyed by animation ID; definitions persist in the store,
// so a restarted instance lazily re-prepares on first use, hitting the
// geometry cache when one is configured.
type Server struct {
	store  store.Store
	cache  cache.Cache
	keyer  cache.Keyer
	logger *log.Logger
	runner *pipeline.Runner

	mu    sync.Mutex
	preps map[string]*preparation
}

// New creates a Server. The store is wrapped with hook instrumentation;
// pass the raw backend.
func New(opts Options) *Server {
	if opts.Store == nil {
		opts.Store = store.NewMemoryStore()
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	if opts.Keyer == nil {
		opts.Keyer = cache.NewDefaultKeyer()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Server{
		store:  store.NewInstrumented(opts.Store),
		cache:  opts.Cache,
		keyer:  opts.Keyer,
		logger: opts.Logger,
		runner: pipeline.NewRunner(opts.Cache, opts.Keyer, opts.Logger),
		preps:  make(map[string]*preparation),
	}
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/version", s.handleVersion)
		r.Get("/schemas", s.handleSchemas)

		r.Route("/datasets", func(r chi.Router) {
			r.Post("/", s.handleCreateDataset)
			r.Get("/", s.handleListDatasets)
			r.Get("/{id}", s.handleGetDataset)
			r.Delete("/{id}", s.handleDeleteDataset)
		})

		r.Route("/animations", func(r chi.Router) {
			r.Post("/", s.handleCreateAnimation)
			r.Get("/", s.handleListAnimations)
			r.Get("/{id}", s.handleGetAnimation)
			r.Delete("/{id}", s.handleDeleteAnimation)
			r.Get("/{id}/positions", s.handlePositions)
		})
	})

	return r
}

// ListenAndServe runs the service until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

// Close releases backend resources.
func (s *Server) Close(ctx context.Context) error {
	cacheErr := s.cache.Close()
	if err := s.store.Close(ctx); err != nil {
		return err
	}
	return cacheErr
}

// logRequests logs one line per request with status and timing.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}
