// Package infrastructure assembles the core systems every part of the
// service depends on: lifecycle coordination, logging, and database access.
package infrastructure

import (
	"fmt"
	"log/slog"

	"github.com/icyminglun/routescope/internal/config"
	"github.com/icyminglun/routescope/internal/navigation"
	"github.com/icyminglun/routescope/pkg/database"
	"github.com/icyminglun/routescope/pkg/lifecycle"
	"github.com/icyminglun/routescope/pkg/logging"
)

// Infrastructure holds the systems shared by all domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
}

// New initializes all infrastructure systems without starting them; call
// Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := logging.New(&cfg.Logging)

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
	}, nil
}

// Start connects the database, applies schema migrations, and registers
// everything with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Database.Migrate(navigation.Migrations(), navigation.MigrationsPath); err != nil {
		return fmt.Errorf("database migrate failed: %w", err)
	}
	return nil
}
