// Package navigation manages the application-scope route registry: the
// shared path-to-view mappings visible to every session, persisted so that
// registration order (and with it main-path semantics) survives restarts.
package navigation

import (
	"context"

	"github.com/icyminglun/routescope/pkg/lifecycle"
	"github.com/icyminglun/routescope/pkg/pagination"
	"github.com/icyminglun/routescope/pkg/registry"
)

// System defines application-scope route management. Mutations write
// through to persistent storage; lookups are served from memory.
type System interface {
	// Start loads persisted bindings into memory and registers with the
	// lifecycle coordinator.
	Start(lc *lifecycle.Coordinator) error

	// Set binds a path to a view in the application scope.
	Set(ctx context.Context, cmd SetCommand) error

	// SetMetadata registers a main path plus alias paths from an
	// externally supplied route metadata tuple.
	SetMetadata(ctx context.Context, meta registry.Metadata) error

	// Remove unbinds a path; unregistered paths are a no-op.
	Remove(ctx context.Context, path string) error

	// RemoveTarget unbinds every path registered to a view.
	RemoveTarget(ctx context.Context, view string) error

	// RemovePath unbinds a path only if it is bound to the given view.
	RemovePath(ctx context.Context, path, view string) error

	// URL returns the main path for a view.
	URL(view string) (string, error)

	// Resolve looks up the view for a concrete path.
	Resolve(path string) (*registry.Match, error)

	// List returns a page of registered bindings in registration order.
	List(page pagination.PageRequest) pagination.PageResult[registry.Binding]

	// Registry exposes the application-scope registry for layering a
	// session scope over it.
	Registry() *registry.Registry
}

// SetCommand contains the data needed to bind a path.
type SetCommand struct {
	Path    string   `json:"path"`
	View    string   `json:"view"`
	Layouts []string `json:"layouts,omitempty"`
}
