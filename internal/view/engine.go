package view

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"tracknstock/internal/domain"
	"tracknstock/internal/format"
	"tracknstock/internal/viewstate"
	"tracknstock/web"
)

// Engine renders HTML templates.
type Engine struct {
	templates *template.Template
}

// NewEngine parses the embedded templates once at startup.
func NewEngine() (*Engine, error) {
	funcMap := template.FuncMap{
		"formatPrice": format.Price,
		"statusLabel": func(p domain.Product) string {
			return p.StockStatus().Label()
		},
		"statusClass": func(p domain.Product) string {
			return p.StockStatus().String()
		},
		"toggleBrandURL": func(s viewstate.State, brand string) string {
			return viewstate.Reduce(s, viewstate.ToggleBrand{Brand: brand}).URL("/")
		},
		"eqFold": strings.EqualFold,
	}
	tpl, err := template.New("root").Funcs(funcMap).ParseFS(web.Templates,
		"templates/layouts/*.html",
		"templates/partials/*.html",
		"templates/pages/*.html",
	)
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Engine{templates: tpl}, nil
}

// Render executes the named template into a buffer first so a template error
// never leaves a half written page behind.
func (e *Engine) Render(w http.ResponseWriter, status int, name string, data any) error {
	if e == nil {
		return fmt.Errorf("template engine not initialised")
	}
	var buf bytes.Buffer
	if err := e.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
