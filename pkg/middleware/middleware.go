// Package middleware provides composable HTTP middleware and a stack that
// applies it in registration order.
package middleware

import "net/http"

// System collects middleware and wraps handlers with it.
type System interface {
	Use(mw func(http.Handler) http.Handler)
	Apply(handler http.Handler) http.Handler
}

type stack struct {
	stack []func(http.Handler) http.Handler
}

// New creates an empty middleware stack.
func New() System {
	return &stack{}
}

// Use appends mw. The first registered middleware is the outermost.
func (s *stack) Use(mw func(http.Handler) http.Handler) {
	s.stack = append(s.stack, mw)
}

// Apply wraps handler with every registered middleware.
func (s *stack) Apply(handler http.Handler) http.Handler {
	for i := len(s.stack) - 1; i >= 0; i-- {
		handler = s.stack[i](handler)
	}
	return handler
}
