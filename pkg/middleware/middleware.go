// Package middleware provides the HTTP middleware stack shared by all
// service surfaces: canonical-slash redirects, request logging, CORS, and
// request body limits.
package middleware

import "net/http"

// Middleware wraps an http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Stack composes middleware in registration order: the first Use'd
// middleware is the outermost wrapper.
type Stack struct {
	middleware []Middleware
}

// NewStack creates an empty middleware stack.
func NewStack() *Stack {
	return &Stack{}
}

// Use appends a middleware to the stack.
func (s *Stack) Use(m Middleware) {
	s.middleware = append(s.middleware, m)
}

// Then wraps next with the full stack.
func (s *Stack) Then(next http.Handler) http.Handler {
	for i := len(s.middleware) - 1; i >= 0; i-- {
		next = s.middleware[i](next)
	}
	return next
}
