package registry_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/icyminglun/routescope/pkg/registry"
)

func TestSet_FirstPathIsMain(t *testing.T) {
	r := registry.New()

	if err := r.Set("main", "greeting"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := r.Set("info", "greeting"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := r.Set("version", "greeting"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	url, err := r.URL("greeting")
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	if url != "main" {
		t.Errorf("URL = %q, want %q", url, "main")
	}
}

func TestRemove_PromotesEarliestAlias(t *testing.T) {
	r := registry.New()
	for _, path := range []string{"main", "info", "version"} {
		if err := r.Set(path, "greeting"); err != nil {
			t.Fatalf("Set(%q): %v", path, err)
		}
	}

	if err := r.Remove("main"); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	url, err := r.URL("greeting")
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	if url != "info" {
		t.Errorf("URL after removing main = %q, want %q", url, "info")
	}

	if err := r.Remove("info"); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	url, err = r.URL("greeting")
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	if url != "version" {
		t.Errorf("URL after removing info = %q, want %q", url, "version")
	}
}

func TestSet_IdempotentForSameView(t *testing.T) {
	r := registry.New()

	if err := r.Set("home", "home-view"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := r.Set("home", "home-view"); err != nil {
		t.Errorf("rebinding same pair should be a no-op, got %v", err)
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}
}

func TestSet_ConflictOnDifferentView(t *testing.T) {
	r := registry.New()

	if err := r.Set("home", "home-view"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	err := r.Set("home", "other-view")
	if !errors.Is(err, registry.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	var conflict *registry.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected *ConflictError, got %T", err)
	}
	if conflict.Bound != "home-view" || conflict.Requested != "other-view" {
		t.Errorf("conflict = %+v, want bound home-view, requested other-view", conflict)
	}

	// Failed registration must not disturb the existing binding.
	match, err := r.Resolve("home")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if match.View != "home-view" {
		t.Errorf("Resolve view = %q, want %q", match.View, "home-view")
	}
}

func TestRemove_UnregisteredPathIsNoOp(t *testing.T) {
	r := registry.New()
	if err := r.Set("home", "home-view"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if err := r.Remove("missing"); err != nil {
		t.Errorf("Remove of unregistered path returned %v, want nil", err)
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}
}

func TestRemoveTarget_DropsAllAliases(t *testing.T) {
	r := registry.New()
	for _, path := range []string{"users", "people", "accounts"} {
		if err := r.Set(path, "users-view"); err != nil {
			t.Fatalf("Set(%q): %v", path, err)
		}
	}
	if err := r.Set("home", "home-view"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	r.RemoveTarget("users-view")

	if _, err := r.URL("users-view"); !errors.Is(err, registry.ErrNotFound) {
		t.Errorf("URL after RemoveTarget = %v, want ErrNotFound", err)
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}
}

func TestRemovePath_OnlyWhenBoundToView(t *testing.T) {
	r := registry.New()
	if err := r.Set("users", "users-view"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := r.Set("users/{id}", "users-view"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// Wrong view: no-op.
	if err := r.RemovePath("users", "other-view"); err != nil {
		t.Fatalf("RemovePath: %v", err)
	}
	if r.Len() != 2 {
		t.Fatalf("Len after mismatched RemovePath = %d, want 2", r.Len())
	}

	// Matching view: drops only the named path.
	if err := r.RemovePath("users/{id}", "users-view"); err != nil {
		t.Fatalf("RemovePath: %v", err)
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}
	url, err := r.URL("users-view")
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	if url != "users" {
		t.Errorf("URL = %q, want %q", url, "users")
	}
}

func TestResolve_LiteralBeatsParameter(t *testing.T) {
	r := registry.New()
	if err := r.Set("users/{id}", "detail-view"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := r.Set("users/new", "create-view"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	tests := []struct {
		path string
		want registry.Match
	}{
		{
			path: "users/new",
			want: registry.Match{View: "create-view", Pattern: "users/new"},
		},
		{
			path: "users/42",
			want: registry.Match{
				View:    "detail-view",
				Pattern: "users/{id}",
				Params:  map[string]string{"id": "42"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			match, err := r.Resolve(tt.path)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if diff := cmp.Diff(&tt.want, match); diff != "" {
				t.Errorf("Resolve mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolve_OverlappingParameterPatterns(t *testing.T) {
	r := registry.New()
	if err := r.Set("catalog/{section}/featured", "featured-view"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := r.Set("catalog/books/{page}", "books-view"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// First divergence is segment 1: literal "books" outranks {section}.
	match, err := r.Resolve("catalog/books/featured")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if match.View != "books-view" {
		t.Errorf("Resolve view = %q, want %q", match.View, "books-view")
	}
}

func TestResolve_TieFallsToEarliestRegistration(t *testing.T) {
	r := registry.New()
	if err := r.Set("docs/{name}", "first-view"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := r.Set("docs/{slug}", "second-view"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	match, err := r.Resolve("docs/intro")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if match.View != "first-view" {
		t.Errorf("Resolve view = %q, want %q", match.View, "first-view")
	}
}

func TestResolve_NotFound(t *testing.T) {
	r := registry.New()
	if err := r.Set("home", "home-view"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	_, err := r.Resolve("missing")
	if !errors.Is(err, registry.ErrNotFound) {
		t.Errorf("Resolve = %v, want ErrNotFound", err)
	}
}

func TestResolve_RootPath(t *testing.T) {
	r := registry.New()
	if err := r.Set("", "root-view"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	for _, path := range []string{"", "/"} {
		match, err := r.Resolve(path)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", path, err)
		}
		if match.View != "root-view" {
			t.Errorf("Resolve(%q) view = %q, want %q", path, match.View, "root-view")
		}
	}
}

func TestResolve_ReturnsLayouts(t *testing.T) {
	r := registry.New()
	if err := r.Set("admin/users", "admin-users-view", "main-layout", "admin-layout"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	match, err := r.Resolve("admin/users")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := []string{"main-layout", "admin-layout"}
	if diff := cmp.Diff(want, match.Layouts); diff != "" {
		t.Errorf("Layouts mismatch (-want +got):\n%s", diff)
	}
}

func TestSetMetadata_RegistersMainAndAliases(t *testing.T) {
	r := registry.New()

	err := r.SetMetadata(registry.Metadata{
		Path:    "main",
		View:    "greeting",
		Layouts: []string{"main-layout"},
		Aliases: []string{"info", "version"},
	})
	if err != nil {
		t.Fatalf("SetMetadata: %v", err)
	}

	url, err := r.URL("greeting")
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	if url != "main" {
		t.Errorf("URL = %q, want %q", url, "main")
	}
	if r.Len() != 3 {
		t.Errorf("Len = %d, want 3", r.Len())
	}
}

func TestSetMetadata_ConflictLeavesRegistryUnchanged(t *testing.T) {
	r := registry.New()
	if err := r.Set("taken", "other-view"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	err := r.SetMetadata(registry.Metadata{
		Path:    "fresh",
		View:    "greeting",
		Aliases: []string{"taken"},
	})
	if !errors.Is(err, registry.ErrConflict) {
		t.Fatalf("SetMetadata = %v, want ErrConflict", err)
	}

	// The conflicting alias must prevent the main path from binding too.
	if _, err := r.Resolve("fresh"); !errors.Is(err, registry.ErrNotFound) {
		t.Errorf("main path bound despite alias conflict: %v", err)
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}
}

func TestBindings_OrderedWithMainFlag(t *testing.T) {
	r := registry.New()
	if err := r.Set("main", "greeting"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := r.Set("home", "home-view"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := r.Set("info", "greeting"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	want := []registry.Binding{
		{Pattern: "main", View: "greeting", Main: true},
		{Pattern: "home", View: "home-view", Main: true},
		{Pattern: "info", View: "greeting", Main: false},
	}
	if diff := cmp.Diff(want, r.Bindings()); diff != "" {
		t.Errorf("Bindings mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_ConcurrentReadersAndWriters(t *testing.T) {
	r := registry.New()
	if err := r.Set("stable", "stable-view"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Set("churn", "churn-view")
				r.Remove("churn")
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if match, err := r.Resolve("stable"); err != nil || match.View != "stable-view" {
					t.Errorf("Resolve(stable) = %v, %v", match, err)
					return
				}
			}
		}()
	}
	wg.Wait()
}
