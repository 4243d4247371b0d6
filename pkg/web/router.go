package web

import "net/http"

// Router is a ServeMux that delegates unmatched requests to a fallback handler.
type Router struct {
	mux      *http.ServeMux
	fallback http.Handler
}

// NewRouter creates a router with no fallback; unmatched requests get the
// ServeMux 404.
func NewRouter() *Router {
	return &Router{mux: http.NewServeMux()}
}

// SetFallback sets the handler used when no pattern matches.
func (r *Router) SetFallback(h http.Handler) {
	r.fallback = h
}

// Handle registers h for pattern.
func (r *Router) Handle(pattern string, h http.Handler) {
	r.mux.Handle(pattern, h)
}

// HandleFunc registers fn for pattern.
func (r *Router) HandleFunc(pattern string, fn http.HandlerFunc) {
	r.mux.HandleFunc(pattern, fn)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if r.fallback != nil {
		if _, pattern := r.mux.Handler(req); pattern == "" {
			r.fallback.ServeHTTP(w, req)
			return
		}
	}
	r.mux.ServeHTTP(w, req)
}
