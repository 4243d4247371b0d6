package main

import (
	"net/http"

	"github.com/JaimeStill/photo-fixer/internal/api"
	"github.com/JaimeStill/photo-fixer/internal/config"
	"github.com/JaimeStill/photo-fixer/internal/infrastructure"
	"github.com/JaimeStill/photo-fixer/pkg/middleware"
	"github.com/JaimeStill/photo-fixer/pkg/module"
	"github.com/JaimeStill/photo-fixer/web/app"
)

type Modules struct {
	API *module.Module
	App *module.Module
}

func NewModules(cfg *config.Config, infra *infrastructure.Infrastructure, domain *api.Domain) (*Modules, error) {
	apiModule := api.NewModule(cfg, infra, domain)

	appModule, err := app.NewModule(
		app.Options{BasePath: cfg.Web.BasePath, Theme: cfg.Web.Theme},
		domain.Profiles,
		domain.Photos,
		infra.Logger,
	)
	if err != nil {
		return nil, err
	}
	appModule.Use(middleware.AddSlash())
	appModule.Use(middleware.Logger(infra.Logger))

	return &Modules{
		API: apiModule,
		App: appModule,
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.App)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("NOT READY"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	})

	return router
}
