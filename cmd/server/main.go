// The server command runs the route registry service: the shared
// application-scope registry with persistent storage, per-session overlay
// registries, and the HTTP API over both.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/icyminglun/routescope/internal/api"
	"github.com/icyminglun/routescope/internal/config"
	"github.com/icyminglun/routescope/internal/infrastructure"
	"github.com/icyminglun/routescope/internal/navigation"
	"github.com/icyminglun/routescope/internal/server"
	"github.com/icyminglun/routescope/internal/sessions"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if err := cfg.Finalize(); err != nil {
		return fmt.Errorf("finalize configuration: %w", err)
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		return err
	}

	nav := navigation.New(navigation.NewStore(infra.Database.DB()), infra.Logger)
	manager := sessions.NewManager(&cfg.Sessions, infra.Logger)
	handler := api.New(cfg, infra.Logger, nav, manager, infra.Lifecycle)
	srv := server.New(&cfg.Server, handler, infra.Logger)

	if err := infra.Start(); err != nil {
		return err
	}
	if err := nav.Start(infra.Lifecycle); err != nil {
		return fmt.Errorf("navigation start failed: %w", err)
	}
	if err := manager.Start(infra.Lifecycle); err != nil {
		return fmt.Errorf("sessions start failed: %w", err)
	}
	if err := srv.Start(infra.Lifecycle); err != nil {
		return fmt.Errorf("server start failed: %w", err)
	}

	go func() {
		infra.Lifecycle.WaitForStartup()
		infra.Logger.Info("all subsystems ready", "version", cfg.Version, "addr", cfg.Server.Addr())
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	infra.Logger.Info("initiating shutdown")
	if err := infra.Lifecycle.Shutdown(cfg.ShutdownTimeoutDuration()); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	infra.Logger.Info("service stopped")
	return nil
}
