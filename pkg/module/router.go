package module

import (
	"net/http"
	"strings"
)

// Router dispatches to mounted modules by first path segment and falls back
// to natively registered handlers.
type Router struct {
	native  *http.ServeMux
	modules map[string]http.Handler
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{
		native:  http.NewServeMux(),
		modules: make(map[string]http.Handler),
	}
}

// HandleNative registers a ServeMux pattern outside of any module.
func (r *Router) HandleNative(pattern string, handler http.HandlerFunc) {
	r.native.HandleFunc(pattern, handler)
}

// Mount registers m under its prefix.
func (r *Router) Mount(m *Module) {
	r.modules[m.Prefix()] = m.Handler()
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	prefix := firstSegment(req.URL.Path)
	if h, ok := r.modules[prefix]; ok {
		h.ServeHTTP(w, req)
		return
	}
	r.native.ServeHTTP(w, req)
}

func firstSegment(path string) string {
	if len(path) < 2 {
		return path
	}
	if i := strings.Index(path[1:], "/"); i >= 0 {
		return path[:i+1]
	}
	return path
}
