package sessions

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/icyminglun/routescope/pkg/registry"
)

// ErrSessionNotFound is the sentinel matched by NotFoundError.
var ErrSessionNotFound = errors.New("session not found")

// NotFoundError reports an operation against an unknown or expired session.
type NotFoundError struct {
	ID uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("session %s not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrSessionNotFound
}

// MapHTTPStatus maps session and registry errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, registry.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, registry.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, registry.ErrInvalidPath):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
