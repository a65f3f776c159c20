package navigation

import (
	"errors"
	"net/http"

	"github.com/icyminglun/routescope/pkg/registry"
)

// ErrMissingView reports a request that omits the required view name.
var ErrMissingView = errors.New("view required")

// ErrMissingPath reports a request that omits the required path.
var ErrMissingPath = errors.New("path required")

// MapHTTPStatus maps registry and validation errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, registry.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, registry.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, registry.ErrInvalidPath),
		errors.Is(err, ErrMissingView),
		errors.Is(err, ErrMissingPath):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
