package api

import (
	"net/http"

	"github.com/JaimeStill/photo-fixer/internal/photos"
	"github.com/JaimeStill/photo-fixer/internal/profiles"
	"github.com/JaimeStill/photo-fixer/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, runtime *Runtime, domain *Domain) {
	profilesHandler := profiles.NewHandler(domain.Profiles, runtime.Logger)
	photosHandler := photos.NewHandler(domain.Photos, runtime.Logger)

	routes.Register(
		mux,
		"",
		profilesHandler.Routes(),
		photosHandler.Routes(),
	)
}
