package navigation

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrationsPath is the directory within the embedded filesystem holding
// the SQL migration files.
const MigrationsPath = "migrations"

// Migrations returns the embedded schema migrations for the route store.
func Migrations() fs.FS {
	return migrationsFS
}

// StoredBinding is one persisted path binding. Rows carry a monotonically
// increasing position so registration order, and with it main-path
// semantics, survives restarts.
type StoredBinding struct {
	Pattern string
	View    string
	Layouts []string
}

// Store persists application-scope route bindings.
type Store interface {
	// Load returns all bindings ordered by registration position.
	Load(ctx context.Context) ([]StoredBinding, error)

	// Insert persists a binding; re-inserting an existing pattern is a
	// no-op.
	Insert(ctx context.Context, b StoredBinding) error

	// Delete removes the binding for a pattern; missing rows are a no-op.
	Delete(ctx context.Context, pattern string) error

	// DeleteView removes every binding registered to a view.
	DeleteView(ctx context.Context, view string) error
}

type store struct {
	db *sql.DB
}

// NewStore creates a PostgreSQL-backed route store.
func NewStore(db *sql.DB) Store {
	return &store{db: db}
}

func (s *store) Load(ctx context.Context) ([]StoredBinding, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT pattern, view, layouts
		FROM route_bindings
		ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query route_bindings: %w", err)
	}
	defer rows.Close()

	var bindings []StoredBinding
	for rows.Next() {
		var (
			b       StoredBinding
			layouts []byte
		)
		if err := rows.Scan(&b.Pattern, &b.View, &layouts); err != nil {
			return nil, fmt.Errorf("scan route_bindings: %w", err)
		}
		if len(layouts) > 0 {
			if err := json.Unmarshal(layouts, &b.Layouts); err != nil {
				return nil, fmt.Errorf("decode layouts for %q: %w", b.Pattern, err)
			}
		}
		bindings = append(bindings, b)
	}
	return bindings, rows.Err()
}

func (s *store) Insert(ctx context.Context, b StoredBinding) error {
	layouts, err := json.Marshal(b.Layouts)
	if err != nil {
		return fmt.Errorf("encode layouts: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO route_bindings (pattern, view, layouts)
		VALUES ($1, $2, $3)
		ON CONFLICT (pattern) DO NOTHING`,
		b.Pattern, b.View, layouts)
	if err != nil {
		return fmt.Errorf("insert route_bindings: %w", err)
	}
	return nil
}

func (s *store) Delete(ctx context.Context, pattern string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM route_bindings WHERE pattern = $1`, pattern); err != nil {
		return fmt.Errorf("delete route_bindings: %w", err)
	}
	return nil
}

func (s *store) DeleteView(ctx context.Context, view string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM route_bindings WHERE view = $1`, view); err != nil {
		return fmt.Errorf("delete route_bindings by view: %w", err)
	}
	return nil
}
