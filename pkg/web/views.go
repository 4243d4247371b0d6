// Package web serves server-rendered pages from embedded templates.
// Templates are parsed once at startup; each view is a clone of the shared
// layouts with its own page template added.
package web

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
)

// ViewDef binds a route to a page template.
type ViewDef struct {
	Route    string
	Template string
	Title    string
}

// PageData is passed to every layout execution.
// Theme is chosen per request; templates never read global state.
type PageData struct {
	Title    string
	BasePath string
	Theme    string
	Data     any
}

// TemplateSet holds one parsed template tree per view.
type TemplateSet struct {
	views    map[string]*template.Template
	basePath string
}

// NewTemplateSet parses layouts matching layoutGlob in layoutFS, then clones
// them for each view and parses the view template from viewSubdir in viewFS.
func NewTemplateSet(layoutFS, viewFS fs.FS, layoutGlob, viewSubdir, basePath string, views []ViewDef) (*TemplateSet, error) {
	layouts, err := template.ParseFS(layoutFS, layoutGlob)
	if err != nil {
		return nil, err
	}

	viewSub, err := fs.Sub(viewFS, viewSubdir)
	if err != nil {
		return nil, err
	}

	parsed := make(map[string]*template.Template, len(views))
	for _, v := range views {
		t, err := layouts.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layouts for %s: %w", v.Template, err)
		}
		if _, err := t.ParseFS(viewSub, v.Template); err != nil {
			return nil, fmt.Errorf("parse template %s: %w", v.Template, err)
		}
		parsed[v.Template] = t
	}

	return &TemplateSet{
		views:    parsed,
		basePath: basePath,
	}, nil
}

// BasePath returns the mount path used for URL generation in templates.
func (ts *TemplateSet) BasePath() string {
	return ts.basePath
}

// Render executes layout for the given view template.
func (ts *TemplateSet) Render(w http.ResponseWriter, layout, view string, data PageData) error {
	t, ok := ts.views[view]
	if !ok {
		return fmt.Errorf("template not found: %s", view)
	}
	if data.BasePath == "" {
		data.BasePath = ts.basePath
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return t.ExecuteTemplate(w, layout, data)
}

// ErrorHandler renders view with status for unmatched requests.
func (ts *TemplateSet) ErrorHandler(layout string, view ViewDef, status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		data := PageData{Title: view.Title, BasePath: ts.basePath}
		if err := ts.Render(w, layout, view.Template, data); err != nil {
			http.Error(w, http.StatusText(status), status)
		}
	}
}
