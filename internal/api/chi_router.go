// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/domsafe/internal/middleware"
)

const apiPrefix = "/api"

// chiMiddleware adapts http.HandlerFunc middleware to Chi's func(http.Handler) http.Handler.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// Router wires handlers, pages and middleware into a chi mux.
type Router struct {
	handler       *Handler
	pages         *Pages
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil config uses DefaultChiMiddlewareConfig.
func NewRouter(handler *Handler, pages *Pages, config *ChiMiddlewareConfig) *Router {
	return &Router{
		handler:       handler,
		pages:         pages,
		chiMiddleware: NewChiMiddleware(config),
	}
}

// SetupChi configures all HTTP routes using Chi router.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is answered
	r.Use(SecurityHeaders())

	r.Route(apiPrefix, func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Use(chiMiddleware(middleware.AccessLog))

		r.Get("/live-data", router.handler.LiveData)
		r.Get("/system-status", router.handler.SystemStatus)

		r.Get("/historical-data", router.handler.HistoricalData)
		r.Get("/daily-averages", router.handler.DailyAverages)
		r.Get("/daily-alerts", router.handler.DailyAlerts)
		r.Get("/intrusions", router.handler.Intrusions)

		r.Post("/control", router.handler.Control)
		r.Post("/security-toggle", router.handler.SecurityToggle)

		r.Get("/health/live", router.handler.HealthLive)
		r.Get("/health/ready", router.handler.HealthReady)
	})

	r.Handle("/metrics", promhttp.Handler())

	if router.pages != nil {
		r.Group(func(r chi.Router) {
			r.Use(chimiddleware.Compress(5, "text/html", "text/css", "application/javascript", "text/javascript"))
			r.Get("/", router.pages.Handler("index"))
			r.Get("/chart", router.pages.Handler("chart"))
			r.Get("/about", router.pages.Handler("about"))
			r.Get("/status", router.pages.Handler("status"))
			r.Get("/controls", router.pages.Handler("controls"))
			r.Handle("/static/*", staticHandler())
		})
	}

	return r
}
