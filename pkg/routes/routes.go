// Package routes provides HTTP endpoint registration: handlers declare
// their routes as groups under a common prefix and the service assembles
// them into a single multiplexer.
package routes

import "net/http"

// Route is one HTTP endpoint with method, pattern, and handler.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// Group is a collection of routes under a common URL prefix.
type Group struct {
	Prefix      string
	Description string
	Routes      []Route
}

// Register adds every route from the given groups to the mux, prefixing
// patterns with basePath and the group prefix.
func Register(mux *http.ServeMux, basePath string, groups ...Group) {
	for _, group := range groups {
		for _, route := range group.Routes {
			pattern := basePath + group.Prefix + route.Pattern
			mux.HandleFunc(route.Method+" "+pattern, route.Handler)
		}
	}
}
