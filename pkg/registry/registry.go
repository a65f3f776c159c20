// Package registry implements a scope-aware navigation route registry:
// path-to-view mappings with aliasing, masking, and main-path promotion.
//
// A Registry covers a single scope (application-wide or per-session). Within
// one scope a path maps to at most one view, while a view may be reachable
// through several paths; the earliest-registered surviving path is the view's
// main path. Scoped layers a session registry over the application registry
// for read-side fallback without ever mutating the parent.
package registry

import (
	"sort"
	"sync"
)

// Metadata is the externally supplied route tuple for annotated
// registration: a main path, the view it navigates to, the parent layout
// chain applied when rendering, and any alias paths. Producing it (metadata
// parsing) belongs to the caller.
type Metadata struct {
	Path    string   `json:"path"`
	View    string   `json:"view"`
	Layouts []string `json:"layouts,omitempty"`
	Aliases []string `json:"aliases,omitempty"`
}

// Binding is a snapshot of one registered path. Main marks the view's
// canonical path.
type Binding struct {
	Pattern string   `json:"pattern"`
	View    string   `json:"view"`
	Layouts []string `json:"layouts,omitempty"`
	Main    bool     `json:"main"`
}

// Match is the result of resolving a concrete path: the view to render, its
// parent layout chain, the pattern that matched, and any extracted path
// parameters.
type Match struct {
	View    string            `json:"view"`
	Layouts []string          `json:"layouts,omitempty"`
	Pattern string            `json:"pattern"`
	Params  map[string]string `json:"params,omitempty"`
}

type binding struct {
	pattern *pattern
	view    string
	layouts []string
	seq     uint64
}

// Registry holds the route bindings for one scope. All operations are safe
// for concurrent use: reads proceed in parallel, writes are exclusive, and a
// read concurrent with a write observes either the full pre-write or full
// post-write state.
type Registry struct {
	mu    sync.RWMutex
	paths map[string]*binding
	views map[string][]*binding
	seq   uint64
}

// New creates an empty registry for a single scope.
func New() *Registry {
	return &Registry{
		paths: make(map[string]*binding),
		views: make(map[string][]*binding),
	}
}

// Set binds path to view with the given parent layout chain. Binding a path
// already bound to the same view is a no-op; binding it to a different view
// returns a ConflictError without mutating state. The first path registered
// for a view becomes its main path.
func (r *Registry) Set(path, view string, layouts ...string) error {
	pat, err := parsePattern(path)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.set(pat, view, layouts)
}

// SetMetadata registers the main path and every alias path from the supplied
// route metadata. All paths are validated and checked for conflicts before
// any of them is bound, so a failing call leaves the registry unchanged.
func (r *Registry) SetMetadata(meta Metadata) error {
	patterns := make([]*pattern, 0, len(meta.Aliases)+1)
	for _, path := range append([]string{meta.Path}, meta.Aliases...) {
		pat, err := parsePattern(path)
		if err != nil {
			return err
		}
		patterns = append(patterns, pat)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, pat := range patterns {
		if b, ok := r.paths[pat.raw]; ok && b.view != meta.View {
			return &ConflictError{Path: pat.raw, Bound: b.view, Requested: meta.View}
		}
	}
	for _, pat := range patterns {
		if err := r.set(pat, meta.View, meta.Layouts); err != nil {
			return err
		}
	}
	return nil
}

// set binds a parsed pattern. Caller holds the write lock.
func (r *Registry) set(pat *pattern, view string, layouts []string) error {
	if b, ok := r.paths[pat.raw]; ok {
		if b.view == view {
			return nil
		}
		return &ConflictError{Path: pat.raw, Bound: b.view, Requested: view}
	}

	r.seq++
	b := &binding{
		pattern: pat,
		view:    view,
		layouts: layouts,
		seq:     r.seq,
	}
	r.paths[pat.raw] = b
	r.views[view] = append(r.views[view], b)
	return nil
}

// Remove unbinds the given path. Removing an unregistered path is a no-op.
// When the removed path was its view's main path and aliases remain, the
// earliest remaining alias becomes the new main path.
func (r *Registry) Remove(path string) error {
	pat, err := parsePattern(path)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.paths[pat.raw]
	if !ok {
		return nil
	}
	r.remove(b)
	return nil
}

// RemoveTarget unbinds every path registered to view, main and aliases
// alike. Unknown views are a no-op.
func (r *Registry) RemoveTarget(view string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.views[view] {
		delete(r.paths, b.pattern.raw)
	}
	delete(r.views, view)
}

// RemovePath unbinds path only if it is currently bound to view. Other paths
// registered to the same view are unaffected. A path bound to a different
// view, or not bound at all, is left untouched.
func (r *Registry) RemovePath(path, view string) error {
	pat, err := parsePattern(path)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.paths[pat.raw]
	if !ok || b.view != view {
		return nil
	}
	r.remove(b)
	return nil
}

// remove drops a binding from both indexes, preserving registration order of
// the view's remaining paths. Caller holds the write lock.
func (r *Registry) remove(b *binding) {
	delete(r.paths, b.pattern.raw)

	bs := r.views[b.view]
	for i, candidate := range bs {
		if candidate == b {
			bs = append(bs[:i], bs[i+1:]...)
			break
		}
	}
	if len(bs) == 0 {
		delete(r.views, b.view)
		return
	}
	r.views[b.view] = bs
}

// URL returns the main path currently registered for view: the
// earliest-registered path still present. It returns a NotFoundError when
// the view has no registered paths in this scope.
func (r *Registry) URL(view string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bs := r.views[view]
	if len(bs) == 0 {
		return "", &NotFoundError{View: view}
	}
	return bs[0].pattern.raw, nil
}

// Resolve looks up the view for a concrete path. A fully literal pattern is
// preferred over a parameterized one; between overlapping parameterized
// patterns the first literal segment divergence decides, and remaining ties
// fall to the earliest registration. Returns a NotFoundError when nothing
// matches.
func (r *Registry) Resolve(path string) (*Match, error) {
	parts := splitPath(path)

	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		best       *binding
		bestParams map[string]string
	)
	for _, b := range r.paths {
		params, ok := b.pattern.match(parts)
		if !ok {
			continue
		}
		if best == nil || b.pattern.moreSpecific(best.pattern) ||
			(!best.pattern.moreSpecific(b.pattern) && b.seq < best.seq) {
			best = b
			bestParams = params
		}
	}
	if best == nil {
		return nil, &NotFoundError{Path: path}
	}

	return &Match{
		View:    best.view,
		Layouts: append([]string(nil), best.layouts...),
		Pattern: best.pattern.raw,
		Params:  bestParams,
	}, nil
}

// Bindings returns a snapshot of all registered paths in registration order.
func (r *Registry) Bindings() []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ordered := make([]*binding, 0, len(r.paths))
	for _, b := range r.paths {
		ordered = append(ordered, b)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].seq < ordered[j].seq
	})

	result := make([]Binding, 0, len(ordered))
	for _, b := range ordered {
		result = append(result, Binding{
			Pattern: b.pattern.raw,
			View:    b.view,
			Layouts: append([]string(nil), b.layouts...),
			Main:    r.views[b.view][0] == b,
		})
	}
	return result
}

// Lookup returns the binding registered under the exact pattern, without
// parameter matching. The path is normalized before the lookup.
func (r *Registry) Lookup(path string) (Binding, bool) {
	pat, err := parsePattern(path)
	if err != nil {
		return Binding{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.paths[pat.raw]
	if !ok {
		return Binding{}, false
	}
	return Binding{
		Pattern: b.pattern.raw,
		View:    b.view,
		Layouts: append([]string(nil), b.layouts...),
		Main:    r.views[b.view][0] == b,
	}, true
}

// Len returns the number of registered paths.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.paths)
}
