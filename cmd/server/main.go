// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

// Package main is the entry point for the DomSafe dashboard server.
//
// DomSafe relays live alarm and sensor values from an Adafruit IO style feed
// broker, serves the historical readings that cmd/sync backfills into DuckDB,
// and renders the browser dashboard.
//
// # Startup
//
//  1. Configuration: defaults, config.yaml, .env and environment (koanf v2)
//  2. Logging: zerolog, configured from LOG_LEVEL / LOG_FORMAT / LOG_CALLER
//  3. Database: DuckDB at DATABASE_URL, opened read-only for each request
//     unless DATABASE_KEEP_OPEN is set. A failure is logged and the server
//     starts anyway; store-backed endpoints answer 500 while it lasts.
//  4. Feed relay: broker client with circuit breaker and outbound limiter.
//     Missing MQTT_USERNAME / MQTT_KEY only produce a warning; live values
//     then read as "unknown".
//  5. HTTP server: chi router under the supervisor tree.
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains
// in-flight requests for at most SHUTDOWN_TIMEOUT before any held database
// pool is closed.
//
// # Example Usage
//
//	export MQTT_USERNAME=alice
//	export MQTT_KEY=aio_xxxx
//	export DATABASE_URL=/data/domsafe.duckdb
//	./domsafe-server
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/tomtom215/domsafe/internal/api"
	"github.com/tomtom215/domsafe/internal/config"
	"github.com/tomtom215/domsafe/internal/database"
	"github.com/tomtom215/domsafe/internal/feed"
	"github.com/tomtom215/domsafe/internal/logging"
	"github.com/tomtom215/domsafe/internal/supervisor"
	"github.com/tomtom215/domsafe/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})

	logging.Info().Stringer("config", cfg).Msg("Starting DomSafe dashboard")
	if missing := cfg.MissingRequired(); len(missing) > 0 {
		logging.Warn().
			Str("missing", strings.Join(missing, ",")).
			Msg("Required settings are empty; affected endpoints will degrade")
	}

	store, closeStore := openStore(&cfg.Database)
	defer closeStore()

	handler := api.NewHandler(store, feed.New(&cfg.Feed))

	pages, err := api.NewPages()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to parse page templates")
	}

	router := api.NewRouter(handler, pages, api.ChiMiddlewareConfigFromSecurity(&cfg.Security))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, cfg.Server.ShutdownTimeout))

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}

	logging.Info().Msg("DomSafe stopped")
}

// openStore returns the dashboard's read path. By default the file is opened
// read-only per request so cmd/sync can write between requests; with
// DATABASE_KEEP_OPEN (or an in-memory store) one pooled connection is held
// instead. A missing path, or one DuckDB cannot open such as a Postgres URL,
// yields a nil Store: the history endpoints answer 500 while the live and
// control endpoints keep working.
func openStore(cfg *config.DatabaseConfig) (api.Store, func()) {
	if cfg.Path == "" {
		return nil, func() {}
	}
	if err := database.CheckPath(cfg.Path); err != nil {
		logging.Error().Err(err).Msg("Database unavailable; starting without store")
		return nil, func() {}
	}
	if !cfg.KeepOpen && cfg.Path != database.MemoryPath {
		store := database.NewOnDemand(cfg)
		if err := store.EnsureSchema(); err != nil {
			logging.Warn().Err(err).Str("path", cfg.Path).Msg("Could not prepare database schema; reads will retry per request")
		} else {
			logging.Info().Str("path", cfg.Path).Msg("Database opened per request (read-only)")
		}
		return store, func() {}
	}

	db, err := database.New(cfg)
	if err != nil {
		logging.Error().Err(err).Str("path", cfg.Path).Msg("Database unavailable; starting without store")
		return nil, func() {}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if version, err := db.Version(ctx); err == nil {
		logging.Info().Str("path", cfg.Path).Str("duckdb", version).Msg("Database initialized")
	}

	return db, func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}
}
