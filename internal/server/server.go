// Package server manages the HTTP listener lifecycle with graceful
// shutdown through the lifecycle coordinator.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/icyminglun/routescope/internal/config"
	"github.com/icyminglun/routescope/pkg/lifecycle"
)

// System manages the HTTP server lifecycle.
type System interface {
	Start(lc *lifecycle.Coordinator) error
}

type server struct {
	http   *http.Server
	cfg    *config.ServerConfig
	logger *slog.Logger
}

// New creates a server system for the given handler.
func New(cfg *config.ServerConfig, handler http.Handler, logger *slog.Logger) System {
	return &server{
		http: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeoutDuration(),
			WriteTimeout: cfg.WriteTimeoutDuration(),
			IdleTimeout:  cfg.IdleTimeoutDuration(),
		},
		cfg:    cfg,
		logger: logger.With("system", "server"),
	}
}

// Start begins listening and registers graceful shutdown with the
// coordinator.
func (s *server) Start(lc *lifecycle.Coordinator) error {
	ready := lc.TrackStartup()

	go func() {
		s.logger.Info("server listening", "addr", s.http.Addr)
		ready()
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		s.logger.Info("shutting down server")

		// Detached from the canceled lifecycle context so in-flight
		// requests get their own drain deadline.
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.WriteTimeoutDuration())
		defer cancel()

		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error("server shutdown error", "error", err)
			return
		}
		s.logger.Info("server shutdown complete")
	})

	return nil
}
