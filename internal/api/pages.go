// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

package api

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/tomtom215/domsafe/internal/logging"
	"github.com/tomtom215/domsafe/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

type navItem struct {
	Page  string
	Path  string
	Label string
}

// nav lists the pages in menu order.
var nav = []navItem{
	{Page: "index", Path: "/", Label: "Dashboard"},
	{Page: "chart", Path: "/chart", Label: "Charts"},
	{Page: "status", Path: "/status", Label: "Status"},
	{Page: "controls", Path: "/controls", Label: "Controls"},
	{Page: "about", Path: "/about", Label: "About"},
}

var pageTitles = map[string]string{
	"index":    "Dashboard",
	"chart":    "Charts",
	"status":   "System status",
	"controls": "Controls",
	"about":    "About",
}

type pageData struct {
	Page    string
	Title   string
	Nav     []navItem
	Sensors []models.SensorType
	Devices []string
}

// Pages renders the dashboard's HTML pages. Pages carry no data; the
// browser fills them from the JSON API.
type Pages struct {
	templates map[string]*template.Template
}

// NewPages parses the embedded templates.
func NewPages() (*Pages, error) {
	p := &Pages{templates: make(map[string]*template.Template, len(nav))}
	for _, item := range nav {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+item.Page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", item.Page, err)
		}
		p.templates[item.Page] = tmpl
	}
	return p, nil
}

// Handler returns the handler rendering page.
func (p *Pages) Handler(page string) http.HandlerFunc {
	tmpl, ok := p.templates[page]
	if !ok {
		panic("api: unknown page " + page)
	}
	data := pageData{
		Page:    page,
		Title:   pageTitles[page],
		Nav:     nav,
		Sensors: models.SensorTypes,
		Devices: models.ControlDevices(),
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
			logging.Ctx(r.Context()).Error().Err(err).Str("page", page).Msg("Failed to render page")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		if _, err := buf.WriteTo(w); err != nil {
			logging.Ctx(r.Context()).Debug().Err(err).Msg("Failed to write page")
		}
	}
}

// staticHandler serves the embedded stylesheet and script under /static/.
func staticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
