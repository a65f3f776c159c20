package navigation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/icyminglun/routescope/pkg/lifecycle"
	"github.com/icyminglun/routescope/pkg/pagination"
	"github.com/icyminglun/routescope/pkg/registry"
)

type service struct {
	registry *registry.Registry
	store    Store
	logger   *slog.Logger
}

// New creates the application-scope navigation system backed by the given
// store. Call Start to load persisted bindings before serving traffic.
func New(store Store, logger *slog.Logger) System {
	return &service{
		registry: registry.New(),
		store:    store,
		logger:   logger.With("system", "navigation"),
	}
}

// Start loads persisted bindings into the in-memory registry in their
// original registration order, preserving main-path semantics across
// restarts.
func (s *service) Start(lc *lifecycle.Coordinator) error {
	ready := lc.TrackStartup()

	stored, err := s.store.Load(lc.Context())
	if err != nil {
		return fmt.Errorf("load routes: %w", err)
	}
	for _, b := range stored {
		if err := s.registry.Set(b.Pattern, b.View, b.Layouts...); err != nil {
			return fmt.Errorf("restore route %q: %w", b.Pattern, err)
		}
	}

	s.logger.Info("routes loaded", "count", len(stored))
	ready()
	return nil
}

func (s *service) Set(ctx context.Context, cmd SetCommand) error {
	if cmd.View == "" {
		return ErrMissingView
	}
	pattern, err := registry.Normalize(cmd.Path)
	if err != nil {
		return err
	}

	_, existed := s.registry.Lookup(pattern)
	if err := s.registry.Set(pattern, cmd.View, cmd.Layouts...); err != nil {
		return err
	}
	if existed {
		return nil
	}

	if err := s.store.Insert(ctx, StoredBinding{Pattern: pattern, View: cmd.View, Layouts: cmd.Layouts}); err != nil {
		s.registry.RemovePath(pattern, cmd.View)
		return fmt.Errorf("persist route: %w", err)
	}

	s.logger.Info("route registered", "path", pattern, "view", cmd.View)
	return nil
}

func (s *service) SetMetadata(ctx context.Context, meta registry.Metadata) error {
	if meta.View == "" {
		return ErrMissingView
	}

	fresh := make([]string, 0, len(meta.Aliases)+1)
	for _, path := range append([]string{meta.Path}, meta.Aliases...) {
		pattern, err := registry.Normalize(path)
		if err != nil {
			return err
		}
		if _, existed := s.registry.Lookup(pattern); !existed {
			fresh = append(fresh, pattern)
		}
	}

	if err := s.registry.SetMetadata(meta); err != nil {
		return err
	}

	for i, pattern := range fresh {
		err := s.store.Insert(ctx, StoredBinding{Pattern: pattern, View: meta.View, Layouts: meta.Layouts})
		if err == nil {
			continue
		}
		for _, added := range fresh[:i+1] {
			s.registry.RemovePath(added, meta.View)
			s.store.Delete(ctx, added)
		}
		return fmt.Errorf("persist route %q: %w", pattern, err)
	}

	s.logger.Info("route metadata registered",
		"path", meta.Path,
		"view", meta.View,
		"aliases", strings.Join(meta.Aliases, ","),
	)
	return nil
}

func (s *service) Remove(ctx context.Context, path string) error {
	pattern, err := registry.Normalize(path)
	if err != nil {
		return err
	}

	// Storage first so a persistence failure cannot leave a route that
	// resurrects on restart.
	if err := s.store.Delete(ctx, pattern); err != nil {
		return fmt.Errorf("delete route: %w", err)
	}
	if err := s.registry.Remove(pattern); err != nil {
		return err
	}

	s.logger.Info("route removed", "path", pattern)
	return nil
}

func (s *service) RemoveTarget(ctx context.Context, view string) error {
	if view == "" {
		return ErrMissingView
	}

	if err := s.store.DeleteView(ctx, view); err != nil {
		return fmt.Errorf("delete routes for view: %w", err)
	}
	s.registry.RemoveTarget(view)

	s.logger.Info("view routes removed", "view", view)
	return nil
}

func (s *service) RemovePath(ctx context.Context, path, view string) error {
	if view == "" {
		return ErrMissingView
	}
	pattern, err := registry.Normalize(path)
	if err != nil {
		return err
	}

	b, ok := s.registry.Lookup(pattern)
	if !ok || b.View != view {
		return nil
	}

	if err := s.store.Delete(ctx, pattern); err != nil {
		return fmt.Errorf("delete route: %w", err)
	}
	return s.registry.RemovePath(pattern, view)
}

func (s *service) URL(view string) (string, error) {
	return s.registry.URL(view)
}

func (s *service) Resolve(path string) (*registry.Match, error) {
	return s.registry.Resolve(path)
}

func (s *service) List(page pagination.PageRequest) pagination.PageResult[registry.Binding] {
	bindings := s.registry.Bindings()

	if page.Search != nil {
		needle := strings.ToLower(*page.Search)
		filtered := bindings[:0]
		for _, b := range bindings {
			if strings.Contains(strings.ToLower(b.Pattern), needle) ||
				strings.Contains(strings.ToLower(b.View), needle) {
				filtered = append(filtered, b)
			}
		}
		bindings = filtered
	}

	total := len(bindings)
	start := page.Offset()
	if start > total {
		start = total
	}
	end := start + page.PageSize
	if end > total {
		end = total
	}

	return pagination.NewPageResult(bindings[start:end], total, page.Page, page.PageSize)
}

func (s *service) Registry() *registry.Registry {
	return s.registry
}
