// Package database manages the PostgreSQL connection pool and schema
// migrations. It exposes a System that participates in coordinated startup
// and shutdown.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/icyminglun/routescope/pkg/lifecycle"
)

// System provides access to the connection pool and ties it into the
// service lifecycle.
type System interface {
	DB() *sql.DB
	Migrate(source fs.FS, path string) error
	Start(lc *lifecycle.Coordinator) error
}

type system struct {
	db     *sql.DB
	cfg    *Config
	logger *slog.Logger
}

// New opens the connection pool. The connection is not verified until Start.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	db, err := sql.Open("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	return &system{
		db:     db,
		cfg:    cfg,
		logger: logger.With("system", "database"),
	}, nil
}

func (s *system) DB() *sql.DB {
	return s.db
}

// Migrate applies all pending migrations from the embedded source.
func (s *system) Migrate(source fs.FS, path string) error {
	src, err := iofs.New(source, path)
	if err != nil {
		return fmt.Errorf("open migration source: %w", err)
	}

	driver, err := pgxmigrate.WithInstance(s.db, &pgxmigrate.Config{})
	if err != nil {
		return fmt.Errorf("init migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "pgx", driver)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	s.logger.Info("migrations applied")
	return nil
}

// Start verifies connectivity and registers pool shutdown with the
// lifecycle coordinator.
func (s *system) Start(lc *lifecycle.Coordinator) error {
	ready := lc.TrackStartup()

	ctx, cancel := context.WithTimeout(lc.Context(), s.cfg.ConnTimeoutDuration())
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		if err := s.db.Close(); err != nil {
			s.logger.Error("pool close error", "error", err)
		}
	})

	s.logger.Info("database connected", "host", s.cfg.Host, "name", s.cfg.Name)
	ready()
	return nil
}
