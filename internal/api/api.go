// Package api assembles the HTTP surface: route registry and session
// endpoints under the configured base path, health probes at the root, and
// the shared middleware stack around everything.
package api

import (
	"log/slog"
	"net/http"

	"github.com/icyminglun/routescope/internal/config"
	"github.com/icyminglun/routescope/internal/navigation"
	"github.com/icyminglun/routescope/internal/sessions"
	"github.com/icyminglun/routescope/pkg/lifecycle"
	"github.com/icyminglun/routescope/pkg/middleware"
	"github.com/icyminglun/routescope/pkg/routes"
)

// New builds the service handler.
func New(
	cfg *config.Config,
	logger *slog.Logger,
	nav navigation.System,
	manager *sessions.Manager,
	ready lifecycle.ReadinessChecker,
) http.Handler {
	mux := http.NewServeMux()

	navHandler := navigation.NewHandler(nav, logger, cfg.API.Pagination)
	sessionHandler := sessions.NewHandler(manager, nav.Registry(), logger)

	routes.Register(
		mux,
		cfg.API.BasePath,
		navHandler.Routes(),
		sessionHandler.Routes(),
	)

	mux.HandleFunc("GET /healthz", handleHealthCheck)
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		handleReadinessCheck(w, ready)
	})

	stack := middleware.NewStack()
	stack.Use(middleware.TrimSlash())
	stack.Use(middleware.MaxBody(cfg.Server.MaxRequestBodyBytes()))
	stack.Use(middleware.Logger(logger))
	stack.Use(middleware.CORS(&cfg.API.CORS))

	return stack.Then(mux)
}

func handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func handleReadinessCheck(w http.ResponseWriter, ready lifecycle.ReadinessChecker) {
	if !ready.Ready() {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("NOT READY"))
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("READY"))
}
