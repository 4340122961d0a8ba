// Package server exposes the placement pipeline over HTTP: upload a sheet,
// get it back annotated or summarized.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/abhisek/jalur/internal/observability"
	"github.com/abhisek/jalur/internal/pipeline"
	"github.com/abhisek/jalur/internal/schema"
)

const shutdownTimeout = 10 * time.Second

// Config holds runtime options for the HTTP server.
type Config struct {
	Addr           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxUploadBytes int64
	// Pipeline is the base configuration; requests may override the
	// profile, built-in rule set and locale.
	Pipeline pipeline.Options
}

type Server struct {
	cfg      Config
	logger   *zap.Logger
	profiles *schema.Registry
	router   chi.Router
}

// New validates cfg by building a processor once and mounts the routes.
func New(cfg Config, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	proc, err := pipeline.NewProcessor(cfg.Pipeline)
	if err != nil {
		return nil, err
	}
	s := &Server{cfg: cfg, logger: logger, profiles: proc.Profiles}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(observability.InjectLogger(s.logger))
	r.Use(observability.RequestLogger)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/profiles", s.handleProfiles)
		r.Get("/rules", s.handleRules)
		r.Group(func(r chi.Router) {
			if s.cfg.MaxUploadBytes > 0 {
				r.Use(chimw.RequestSize(s.cfg.MaxUploadBytes))
			}
			r.Post("/placements", s.handlePlacements)
			r.Post("/placements/summary", s.handleSummary)
		})
	})
	return r
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", zap.String("addr", s.cfg.Addr))

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
