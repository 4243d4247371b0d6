// Package routes declares route groups and registers them on a ServeMux.
package routes

import "net/http"

// Route is a single method and pattern bound to a handler.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// Group collects routes under a common prefix. Children inherit the prefix.
type Group struct {
	Prefix      string
	Description string
	Routes      []Route
	Children    []Group
}

// Register adds every route in groups to mux, prefixed by basePath.
func Register(mux *http.ServeMux, basePath string, groups ...Group) {
	for _, g := range groups {
		register(mux, basePath, g)
	}
}

func register(mux *http.ServeMux, parent string, group Group) {
	prefix := parent + group.Prefix
	for _, route := range group.Routes {
		mux.HandleFunc(route.Method+" "+prefix+route.Pattern, route.Handler)
	}
	for _, child := range group.Children {
		register(mux, prefix, child)
	}
}
