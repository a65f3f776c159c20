package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/icyminglun/routescope/pkg/routes"
)

func TestRegister(t *testing.T) {
	named := func(name string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(name))
		}
	}

	mux := http.NewServeMux()
	routes.Register(mux, "/api",
		routes.Group{
			Prefix: "/routes",
			Routes: []routes.Route{
				{Method: "GET", Pattern: "", Handler: named("list")},
				{Method: "GET", Pattern: "/resolve", Handler: named("resolve")},
			},
		},
		routes.Group{
			Prefix: "/sessions",
			Routes: []routes.Route{
				{Method: "POST", Pattern: "", Handler: named("create")},
			},
		},
	)

	tests := []struct {
		method string
		path   string
		want   string
	}{
		{"GET", "/api/routes", "list"},
		{"GET", "/api/routes/resolve", "resolve"},
		{"POST", "/api/sessions", "create"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
			}
			if rec.Body.String() != tt.want {
				t.Errorf("handler = %q, want %q", rec.Body.String(), tt.want)
			}
		})
	}
}

func TestRegisterMethodMismatch(t *testing.T) {
	mux := http.NewServeMux()
	routes.Register(mux, "/api", routes.Group{
		Prefix: "/routes",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: func(w http.ResponseWriter, r *http.Request) {}},
		},
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/routes", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}
