package registry_test

import (
	"errors"
	"testing"

	"github.com/icyminglun/routescope/pkg/registry"
)

func TestSet_InvalidPaths(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"unbalanced open brace", "users/{id"},
		{"unbalanced close brace", "users/id}"},
		{"empty parameter name", "users/{}"},
		{"brace inside literal", "users/a{b}c"},
		{"nested braces", "users/{a{b}}"},
		{"empty segment", "users//list"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := registry.New()
			err := r.Set(tt.path, "some-view")
			if !errors.Is(err, registry.ErrInvalidPath) {
				t.Errorf("Set(%q) = %v, want ErrInvalidPath", tt.path, err)
			}
			if r.Len() != 0 {
				t.Errorf("invalid path mutated registry, Len = %d", r.Len())
			}
		})
	}
}

func TestSet_PathNormalization(t *testing.T) {
	r := registry.New()
	if err := r.Set("/users/list/", "list-view"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// Same path modulo surrounding slashes: idempotent, not a second entry.
	if err := r.Set("users/list", "list-view"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}

	url, err := r.URL("list-view")
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	if url != "users/list" {
		t.Errorf("URL = %q, want normalized %q", url, "users/list")
	}
}

func TestResolve_ParameterExtraction(t *testing.T) {
	r := registry.New()
	if err := r.Set("orders/{orderId}/items/{itemId}", "item-view"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	match, err := r.Resolve("/orders/77/items/3/")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if match.Params["orderId"] != "77" || match.Params["itemId"] != "3" {
		t.Errorf("Params = %v, want orderId=77 itemId=3", match.Params)
	}
}

func TestResolve_SegmentCountMustMatch(t *testing.T) {
	r := registry.New()
	if err := r.Set("users/{id}", "detail-view"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	for _, path := range []string{"users", "users/42/extra"} {
		if _, err := r.Resolve(path); !errors.Is(err, registry.ErrNotFound) {
			t.Errorf("Resolve(%q) = %v, want ErrNotFound", path, err)
		}
	}
}
