// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

// Command domsafe-preflight checks a deployment before the dashboard is
// started: required settings, the DuckDB store and the feed broker.
//
// It prints one line per check and exits 1 if any check failed.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/tomtom215/domsafe/internal/config"
	"github.com/tomtom215/domsafe/internal/database"
	"github.com/tomtom215/domsafe/internal/feed"
	"github.com/tomtom215/domsafe/internal/logging"
	"github.com/tomtom215/domsafe/internal/models"
)

const checkTimeout = 30 * time.Second

// check is the result of one preflight step.
type check struct {
	name   string
	ok     bool
	detail string
}

type feedLister interface {
	ListFeeds(ctx context.Context) ([]models.FeedInfo, error)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "domsafe-preflight: %v\n", err)
		os.Exit(1)
	}
	logging.Init(logging.Config{
		Level:     "error",
		Format:    "console",
		Timestamp: true,
		Output:    os.Stderr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	checks := checkSettings(cfg)
	checks = append(checks, checkStore(ctx, &cfg.Database))
	checks = append(checks, checkFeeds(ctx, feed.New(&cfg.Feed), cfg.FeedConfigured()))

	if !printReport(os.Stdout, checks) {
		os.Exit(1)
	}
}

func checkSettings(cfg *config.Config) []check {
	missing := cfg.MissingRequired()
	checks := make([]check, 0, 3)
	for _, name := range []string{"MQTT_USERNAME", "MQTT_KEY", "DATABASE_URL"} {
		c := check{name: name, ok: !slices.Contains(missing, name), detail: "set"}
		if !c.ok {
			c.detail = "not set"
		}
		checks = append(checks, c)
	}
	return checks
}

func checkStore(ctx context.Context, cfg *config.DatabaseConfig) check {
	c := check{name: "database"}
	if cfg.Path == "" {
		c.detail = "skipped, DATABASE_URL not set"
		return c
	}

	db, err := database.New(cfg)
	if err != nil {
		c.detail = err.Error()
		return c
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	version, err := db.Version(ctx)
	if err != nil {
		c.detail = err.Error()
		return c
	}
	c.ok = true
	c.detail = fmt.Sprintf("DuckDB %s at %s", version, cfg.Path)
	return c
}

// checkFeeds lists the account's feeds and notes any dashboard feed that
// does not exist yet. A missing feed is reported but is not a failure; the
// broker creates it on first write.
func checkFeeds(ctx context.Context, lister feedLister, configured bool) check {
	c := check{name: "feed broker"}
	if !configured {
		c.detail = "skipped, MQTT_USERNAME or MQTT_KEY not set"
		return c
	}

	feeds, err := lister.ListFeeds(ctx)
	if err != nil {
		c.detail = err.Error()
		return c
	}

	have := make(map[string]bool, len(feeds))
	for _, f := range feeds {
		have[f.Key] = true
	}
	var absent []string
	for _, key := range []string{models.FeedStatus, models.FeedTemperature, models.FeedHumidity} {
		if !have[key] {
			absent = append(absent, key)
		}
	}

	c.ok = true
	c.detail = fmt.Sprintf("%d feeds", len(feeds))
	if len(absent) > 0 {
		c.detail += "; not found: " + strings.Join(absent, ", ")
	}
	return c
}

// printReport writes one line per check and reports whether all passed.
func printReport(w io.Writer, checks []check) bool {
	passed := 0
	for _, c := range checks {
		mark := "FAIL"
		if c.ok {
			mark = "ok"
			passed++
		}
		fmt.Fprintf(w, "%-4s  %-13s  %s\n", mark, c.name, c.detail)
	}
	fmt.Fprintf(w, "\n%d/%d checks passed\n", passed, len(checks))
	return passed == len(checks)
}
