// Package app provides the server-rendered photo fixer form with embedded templates.
package app

import (
	"embed"
	"log/slog"
	"net/http"
	"slices"

	"github.com/JaimeStill/photo-fixer/internal/config"
	"github.com/JaimeStill/photo-fixer/internal/photos"
	"github.com/JaimeStill/photo-fixer/internal/profiles"
	"github.com/JaimeStill/photo-fixer/pkg/handlers"
	"github.com/JaimeStill/photo-fixer/pkg/module"
	"github.com/JaimeStill/photo-fixer/pkg/web"
)

//go:embed server/layouts/*
var layoutFS embed.FS

//go:embed server/views/*
var viewFS embed.FS

const (
	layout            = "app.html"
	multipartOverhead = 1 << 20
)

var homeView = web.ViewDef{Route: "/{$}", Template: "home.html", Title: "Fix a photo"}

var notFoundView = web.ViewDef{Template: "404.html", Title: "Not Found"}

// Options configures the app module.
type Options struct {
	BasePath string
	// Theme is used when a request does not pick one with ?theme= or a form field.
	Theme string
}

type homeData struct {
	Profiles []profiles.Profile
	Selected string
	Error    string
}

type app struct {
	ts       *web.TemplateSet
	profiles profiles.System
	photos   photos.System
	theme    string
	logger   *slog.Logger
}

// NewModule creates the app module configured for opts.BasePath.
func NewModule(opts Options, profileSys profiles.System, photoSys photos.System, logger *slog.Logger) (*module.Module, error) {
	ts, err := web.NewTemplateSet(
		layoutFS,
		viewFS,
		"server/layouts/*.html",
		"server/views",
		opts.BasePath,
		[]web.ViewDef{homeView, notFoundView},
	)
	if err != nil {
		return nil, err
	}

	a := &app{
		ts:       ts,
		profiles: profileSys,
		photos:   photoSys,
		theme:    opts.Theme,
		logger:   logger.With("module", "app"),
	}

	return module.New(opts.BasePath, a.router()), nil
}

func (a *app) router() http.Handler {
	r := web.NewRouter()
	r.SetFallback(a.ts.ErrorHandler(layout, notFoundView, http.StatusNotFound))
	r.HandleFunc("GET "+homeView.Route, a.home)
	r.HandleFunc("POST /fix", a.fix)
	return r
}

// themeFor picks the request's theme, falling back to the configured default.
func (a *app) themeFor(r *http.Request) string {
	t := r.URL.Query().Get("theme")
	if t == "" {
		t = r.PostFormValue("theme")
	}
	if slices.Contains(config.Themes, t) {
		return t
	}
	return a.theme
}

func (a *app) home(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, http.StatusOK, homeData{Selected: r.URL.Query().Get("profile")})
}

func (a *app) fix(w http.ResponseWriter, r *http.Request) {
	if limit := a.photos.MaxUploadSize(); limit > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)
	}

	data, err := photos.ReadUpload(r, a.photos.MaxUploadSize())
	if err != nil {
		a.render(w, r, photos.MapHTTPStatus(err), homeData{Error: err.Error()})
		return
	}

	name := r.FormValue("profile")
	fixed, err := a.photos.Fix(r.Context(), photos.FixCommand{Data: data, Profile: name})
	if err != nil {
		a.render(w, r, photos.MapHTTPStatus(err), homeData{Selected: name, Error: err.Error()})
		return
	}

	a.logger.Info("photo fixed", "profile", name, "size_kb", fixed.SizeKB, "within_bounds", fixed.WithinBounds)
	photos.WriteHeaders(w, fixed)
	handlers.RespondAttachment(w, "image/jpeg", fixed.FileName, fixed.Data)
}

func (a *app) render(w http.ResponseWriter, r *http.Request, status int, data homeData) {
	list, err := a.profiles.List(r.Context())
	if err != nil {
		a.logger.Error("list profiles failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	data.Profiles = list

	page := web.PageData{
		Title: homeView.Title,
		Theme: a.themeFor(r),
		Data:  data,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := a.ts.Render(w, layout, homeView.Template, page); err != nil {
		a.logger.Error("render failed", "error", err)
	}
}
