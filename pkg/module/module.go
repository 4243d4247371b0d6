// Package module mounts self-contained HTTP modules under single-level path
// prefixes. Each module owns its handler and middleware. Middleware sees the
// full request path; the prefix is stripped before the module handler runs so
// modules route relative to their own root.
package module

import (
	"net/http"
	"strings"

	"github.com/JaimeStill/photo-fixer/pkg/middleware"
)

// Module is an http.Handler served under a fixed prefix such as "/api".
type Module struct {
	prefix     string
	handler    http.Handler
	middleware middleware.System
}

// New creates a module. It panics when prefix is not a single path segment
// with a leading slash, since that is a wiring error.
func New(prefix string, handler http.Handler) *Module {
	if err := validatePrefix(prefix); err != "" {
		panic("module: " + err + ": " + prefix)
	}
	return &Module{
		prefix:     prefix,
		handler:    handler,
		middleware: middleware.New(),
	}
}

// Prefix returns the mount prefix.
func (m *Module) Prefix() string {
	return m.prefix
}

// Use appends middleware applied to every request the module serves.
func (m *Module) Use(mw func(http.Handler) http.Handler) {
	m.middleware.Use(mw)
}

// Handler returns the module handler wrapped with its middleware.
func (m *Module) Handler() http.Handler {
	return m.middleware.Apply(http.HandlerFunc(m.serve))
}

func (m *Module) serve(w http.ResponseWriter, req *http.Request) {
	sub := req.Clone(req.Context())
	sub.URL.Path = strings.TrimPrefix(req.URL.Path, m.prefix)
	if req.URL.RawPath != "" {
		sub.URL.RawPath = strings.TrimPrefix(req.URL.RawPath, m.prefix)
	}
	if sub.URL.Path == "" {
		sub.URL.Path = "/"
		sub.URL.RawPath = ""
	}
	m.handler.ServeHTTP(w, sub)
}

func validatePrefix(prefix string) string {
	switch {
	case prefix == "":
		return "empty prefix"
	case !strings.HasPrefix(prefix, "/"):
		return "prefix must start with /"
	case strings.Contains(prefix[1:], "/"):
		return "prefix must be a single path segment"
	}
	return ""
}
