package registry

import (
	"errors"
	"fmt"
)

// Sentinel errors for registry operations. Typed errors returned by the
// registry match these through errors.Is, so callers can branch on the
// error kind without inspecting the concrete type.
var (
	ErrConflict    = errors.New("path already bound to a different view")
	ErrNotFound    = errors.New("route not found")
	ErrInvalidPath = errors.New("invalid route path")
)

// ConflictError reports an attempt to bind a path that is already bound to a
// different view within the same scope. The registry state is unchanged.
type ConflictError struct {
	Path      string
	Bound     string
	Requested string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("path %q already bound to view %q (requested %q)", e.Path, e.Bound, e.Requested)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// NotFoundError reports a lookup miss. Exactly one of Path or View is set,
// depending on the lookup direction.
type NotFoundError struct {
	Path string
	View string
}

func (e *NotFoundError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("no route registered for path %q", e.Path)
	}
	return fmt.Sprintf("no route registered for view %q", e.View)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// InvalidPathError reports malformed path syntax, such as unbalanced
// parameter braces or empty segments. The registry state is unchanged.
type InvalidPathError struct {
	Path   string
	Reason string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid path %q: %s", e.Path, e.Reason)
}

func (e *InvalidPathError) Is(target error) bool {
	return target == ErrInvalidPath
}
