package module_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/photo-fixer/pkg/module"
)

func TestNew_InvalidPrefix(t *testing.T) {
	for _, prefix := range []string{"", "api", "/api/v1"} {
		t.Run(prefix, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Errorf("New(%q) did not panic", prefix)
				}
			}()
			module.New(prefix, http.NotFoundHandler())
		})
	}
}

func TestRouter_Mount_StripsPrefix(t *testing.T) {
	r := module.NewRouter()

	var seen string
	m := module.New("/api", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		seen = req.URL.Path
		w.Write([]byte("api response"))
	}))
	m.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("X-Module", "api")
			next.ServeHTTP(w, req)
		})
	})
	r.Mount(m)

	req := httptest.NewRequest(http.MethodGet, "/api/profiles", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	body, _ := io.ReadAll(w.Result().Body)
	if string(body) != "api response" {
		t.Errorf("body = %q, want %q", string(body), "api response")
	}
	if seen != "/profiles" {
		t.Errorf("module saw path %q, want /profiles", seen)
	}
	if w.Header().Get("X-Module") != "api" {
		t.Error("module middleware was not applied")
	}
}

func TestRouter_HandleNative(t *testing.T) {
	r := module.NewRouter()
	r.Mount(module.New("/api", http.NotFoundHandler()))
	r.HandleNative("GET /healthz", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("OK"))
	})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Body.String() != "OK" {
		t.Errorf("body = %q, want OK", w.Body.String())
	}
}

func TestRouter_ModuleRoot(t *testing.T) {
	r := module.NewRouter()

	var seen string
	r.Mount(module.New("/app", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		seen = req.URL.Path
	})))

	req := httptest.NewRequest(http.MethodGet, "/app", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	if seen != "/" {
		t.Errorf("module saw path %q, want /", seen)
	}
}

func TestModule_MiddlewareSeesFullPath(t *testing.T) {
	r := module.NewRouter()

	var middlewarePath, handlerPath string
	m := module.New("/api", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		handlerPath = req.URL.Path
	}))
	m.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			middlewarePath = req.URL.Path
			next.ServeHTTP(w, req)
		})
	})
	r.Mount(m)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/profiles/GATE", nil))

	if middlewarePath != "/api/profiles/GATE" {
		t.Errorf("middleware saw %q, want full path", middlewarePath)
	}
	if handlerPath != "/profiles/GATE" {
		t.Errorf("handler saw %q, want /profiles/GATE", handlerPath)
	}
}
