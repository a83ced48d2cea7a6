// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

// Command domsafe-sync backfills the DuckDB store from the per-day CSV logs
// written by the home controller ({LOGS_DIR}/{date}_{metric}.csv).
//
// Usage:
//
//	domsafe-sync                         # today
//	domsafe-sync 2025-01-01              # one day
//	domsafe-sync 2025-01-01 2025-01-31   # every day in the range, inclusive
//	domsafe-sync -status                 # recorded outcome of every file
//	domsafe-sync -reset-status           # forget recorded outcomes
//
// Inserts skip rows already in the store, so any day can be re-synced.
// The exit code is 0 when everything synced, 1 when a day failed or the
// store could not be opened, and 2 on bad usage.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/tomtom215/domsafe/internal/config"
	"github.com/tomtom215/domsafe/internal/csvlog"
	"github.com/tomtom215/domsafe/internal/database"
	"github.com/tomtom215/domsafe/internal/logging"
	"github.com/tomtom215/domsafe/internal/reconcile"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

const usageText = `usage: domsafe-sync [-status | -reset-status] [DATE | START END]

  (no arguments)  sync today
  DATE            sync one day (YYYY-MM-DD)
  START END       sync every day from START to END inclusive

flags:
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("domsafe-sync", flag.ContinueOnError)
	fs.SetOutput(stderr)
	showStatus := fs.Bool("status", false, "print the recorded outcome of every synced file and exit")
	resetStatus := fs.Bool("reset-status", false, "forget every recorded outcome and exit")
	fs.Usage = func() {
		fmt.Fprint(stderr, usageText)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	dates := fs.Args()
	statusMode := *showStatus || *resetStatus
	if len(dates) > 2 || (statusMode && len(dates) > 0) || (*showStatus && *resetStatus) {
		fs.Usage()
		return exitUsage
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "domsafe-sync: %v\n", err)
		return exitFailure
	}
	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    stderr,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	progress, closeProgress, err := openProgress(&cfg.Sync)
	if err != nil {
		fmt.Fprintf(stderr, "domsafe-sync: %v\n", err)
		return exitFailure
	}
	defer closeProgress()

	switch {
	case *showStatus:
		return printStatus(ctx, stdout, stderr, progress, cfg.Sync.ProgressPath)
	case *resetStatus:
		if err := progress.Clear(ctx); err != nil {
			fmt.Fprintf(stderr, "domsafe-sync: %v\n", err)
			return exitFailure
		}
		fmt.Fprintln(stdout, "sync progress cleared")
		return exitOK
	}

	if cfg.Database.Path == "" {
		fmt.Fprintln(stderr, "domsafe-sync: DATABASE_URL is required")
		return exitFailure
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Error().Err(err).Str("path", cfg.Database.Path).Msg("Database connection failed; nothing synced")
		return exitFailure
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	r := reconcile.New(reconcile.NewStore(db), &cfg.Sync, progress, logging.WithComponent("sync"))

	switch len(dates) {
	case 0:
		day, err := r.SyncToday(ctx)
		return reportDay(stdout, stderr, day, err)
	case 1:
		day, err := r.SyncDate(ctx, dates[0])
		return reportDay(stdout, stderr, day, err)
	default:
		stats, err := r.SyncDateRange(ctx, dates[0], dates[1])
		return reportRange(stdout, stderr, stats, err)
	}
}

// openProgress opens the badger tracker at cfg.ProgressPath, or an
// in-memory one when no path is configured.
func openProgress(cfg *config.SyncConfig) (reconcile.Progress, func(), error) {
	if cfg.ProgressPath == "" {
		return reconcile.NewInMemoryProgress(), func() {}, nil
	}
	p, err := reconcile.OpenBadgerProgress(cfg.ProgressPath)
	if err != nil {
		return nil, nil, err
	}
	return p, func() {
		if err := p.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing sync progress")
		}
	}, nil
}

func reportDay(stdout, stderr io.Writer, day *reconcile.DayStats, err error) int {
	if day == nil {
		fmt.Fprintf(stderr, "domsafe-sync: %v\n", err)
		return exitFailure
	}
	fmt.Fprintf(stdout, "%s  %s: %s  %s: %s\n",
		day.Date,
		csvlog.MetricTemperature, describeFile(day.Sensors),
		csvlog.MetricAlarmStatus, describeFile(day.Events))
	if err != nil {
		fmt.Fprintf(stderr, "domsafe-sync: %s failed: %v\n", day.Date, err)
		return exitFailure
	}
	return exitOK
}

func describeFile(fs *reconcile.FileStats) string {
	switch {
	case fs == nil:
		return "not run"
	case fs.Missing:
		return "no log"
	default:
		return fmt.Sprintf("%d read, %d inserted, %d duplicate, %d skipped",
			fs.Read, fs.Inserted, fs.Duplicates, fs.Skipped)
	}
}

func reportRange(stdout, stderr io.Writer, stats *reconcile.RangeStats, err error) int {
	if stats == nil {
		fmt.Fprintf(stderr, "domsafe-sync: %v\n", err)
		return exitFailure
	}
	fmt.Fprintf(stdout, "%s..%s  %d days: %d inserted, %d duplicate, %d skipped (%s)\n",
		stats.Start, stats.End, len(stats.Days),
		stats.Inserted, stats.Duplicates, stats.Skipped,
		stats.Duration().Round(time.Millisecond))

	code := exitOK
	if err != nil {
		fmt.Fprintf(stderr, "domsafe-sync: stopped early: %v\n", err)
		code = exitFailure
	}
	if len(stats.Failed) > 0 {
		fmt.Fprintf(stderr, "domsafe-sync: failed days: %v\n", stats.Failed)
		code = exitFailure
	}
	return code
}

func printStatus(ctx context.Context, stdout, stderr io.Writer, progress reconcile.Progress, path string) int {
	if path == "" {
		fmt.Fprintln(stderr, "domsafe-sync: SYNC_PROGRESS_PATH is not set; no progress is recorded")
		return exitFailure
	}
	records, err := progress.Load(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "domsafe-sync: %v\n", err)
		return exitFailure
	}
	if len(records) == 0 {
		fmt.Fprintln(stdout, "no files synced yet")
		return exitOK
	}

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tMETRIC\tOUTCOME\tINSERTED\tDUPLICATE\tSKIPPED\tFINISHED\tERROR")
	for _, rec := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%s\t%s\n",
			rec.Date, rec.Metric, rec.Outcome,
			rec.Inserted, rec.Duplicates, rec.Skipped,
			rec.FinishedAt.Format(time.RFC3339), rec.Error)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(stderr, "domsafe-sync: %v\n", err)
		return exitFailure
	}
	return exitOK
}
