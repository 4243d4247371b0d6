// Package api assembles the JSON API module.
package api

import (
	"net/http"

	"github.com/JaimeStill/photo-fixer/internal/config"
	"github.com/JaimeStill/photo-fixer/internal/infrastructure"
	"github.com/JaimeStill/photo-fixer/pkg/handlers"
	"github.com/JaimeStill/photo-fixer/pkg/middleware"
	"github.com/JaimeStill/photo-fixer/pkg/module"
)

// NewModule builds the API module mounted at cfg.API.BasePath.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure, domain *Domain) *module.Module {
	runtime := NewRuntime(infra)

	mux := http.NewServeMux()
	registerRoutes(mux, runtime, domain)

	mux.HandleFunc("GET /version", func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"version": cfg.Version})
	})

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.TrimSlash())
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))

	return m
}
