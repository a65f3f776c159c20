package main

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/icyminglun/routescope/pkg/registry"
	"github.com/pelletier/go-toml/v2"
)

//go:embed seeds/routes.toml
var seedFiles embed.FS

func init() {
	registerSeeder(&RouteSeeder{})
}

// RouteSeedData represents the TOML structure for route seed files.
type RouteSeedData struct {
	Routes []RouteSeed `toml:"routes"`
}

// RouteSeed describes a single binding: a path pattern, its view, optional
// layouts, and optional alias paths bound to the same view. The main path
// is the pattern itself; aliases are inserted after it so they take later
// positions.
type RouteSeed struct {
	Path    string   `toml:"path"`
	View    string   `toml:"view"`
	Layouts []string `toml:"layouts"`
	Aliases []string `toml:"aliases"`
}

// RouteSeeder implements Seeder for application-scope route bindings.
// It loads seed data from an embedded file or an external file path.
type RouteSeeder struct {
	file string
}

// Name returns "routes" as the seeder identifier.
func (s *RouteSeeder) Name() string {
	return "routes"
}

// Description returns a human-readable description of this seeder.
func (s *RouteSeeder) Description() string {
	return "Seeds application-scope route bindings in registration order"
}

// SetFile configures an external seed file path, overriding the embedded default.
func (s *RouteSeeder) SetFile(path string) {
	s.file = path
}

// Seed loads route data and inserts bindings in file order so positions
// reflect registration order. Existing patterns are left untouched for
// idempotent execution.
func (s *RouteSeeder) Seed(ctx context.Context, tx *sql.Tx) error {
	data, err := s.loadSeedData()
	if err != nil {
		return err
	}

	for _, r := range data.Routes {
		if err := s.saveBinding(ctx, tx, r.Path, r.View, r.Layouts); err != nil {
			return fmt.Errorf("save binding %s -> %s: %w", r.Path, r.View, err)
		}

		for _, alias := range r.Aliases {
			if err := s.saveBinding(ctx, tx, alias, r.View, r.Layouts); err != nil {
				return fmt.Errorf("save alias %s -> %s: %w", alias, r.View, err)
			}
		}
	}

	return nil
}

func (s *RouteSeeder) loadSeedData() (*RouteSeedData, error) {
	var content []byte
	var err error

	if s.file != "" {
		content, err = os.ReadFile(s.file)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
	} else {
		content, err = seedFiles.ReadFile("seeds/routes.toml")
		if err != nil {
			return nil, fmt.Errorf("read embedded seed file: %w", err)
		}
	}

	var data RouteSeedData
	if err := toml.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}

	return &data, nil
}

func (s *RouteSeeder) saveBinding(ctx context.Context, tx *sql.Tx, path, view string, layouts []string) error {
	pattern, err := registry.Normalize(path)
	if err != nil {
		return err
	}

	if layouts == nil {
		layouts = []string{}
	}
	encoded, err := json.Marshal(layouts)
	if err != nil {
		return fmt.Errorf("encode layouts: %w", err)
	}

	const query = `
		INSERT INTO route_bindings (pattern, view, layouts)
		VALUES ($1, $2, $3)
		ON CONFLICT (pattern) DO NOTHING`

	_, err = tx.ExecContext(ctx, query, pattern, view, encoded)
	return err
}
