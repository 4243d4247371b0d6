package middleware

import (
	"net/http"
	"path"
	"strings"
)

// AddSlash redirects directory-style GET and HEAD paths to their
// trailing-slash form. Paths that end in a file extension are served unchanged.
func AddSlash() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := r.URL.Path
			if !redirectable(r) || strings.HasSuffix(p, "/") || path.Ext(p) != "" {
				next.ServeHTTP(w, r)
				return
			}
			redirect(w, r, p+"/")
		})
	}
}

// TrimSlash redirects GET and HEAD paths with a trailing slash to the bare
// form. "/" is left alone.
func TrimSlash() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := r.URL.Path
			if !redirectable(r) || len(p) <= 1 || !strings.HasSuffix(p, "/") {
				next.ServeHTTP(w, r)
				return
			}
			redirect(w, r, strings.TrimSuffix(p, "/"))
		})
	}
}

func redirectable(r *http.Request) bool {
	return r.Method == http.MethodGet || r.Method == http.MethodHead
}

func redirect(w http.ResponseWriter, r *http.Request, target string) {
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	http.Redirect(w, r, target, http.StatusMovedPermanently)
}
