// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

package database

import (
	"context"
	"time"

	"github.com/tomtom215/domsafe/internal/config"
	"github.com/tomtom215/domsafe/internal/models"
)

// OnDemand serves the dashboard reads by opening the store file read-only
// for each call and closing it afterwards. DuckDB allows a single writing
// process per file, so holding no handle between requests is what lets
// cmd/sync write while the server is running. A call that lands while the
// sync holds the lock fails with ErrUnavailable.
type OnDemand struct {
	cfg config.DatabaseConfig
}

// NewOnDemand returns a per-call reader for the file at cfg.Path.
func NewOnDemand(cfg *config.DatabaseConfig) *OnDemand {
	return &OnDemand{cfg: *cfg}
}

// EnsureSchema opens the file once read-write to create missing tables, so
// later read-only opens find them.
func (o *OnDemand) EnsureSchema() error {
	db, err := New(&o.cfg)
	if err != nil {
		return err
	}
	return db.Close()
}

func (o *OnDemand) with(fn func(db *DB) error) error {
	db, err := OpenReadOnly(&o.cfg)
	if err != nil {
		return err
	}
	defer closeWithLog(db, "database")
	return fn(db)
}

// SensorReadings implements the dashboard read of DB.SensorReadings.
func (o *OnDemand) SensorReadings(ctx context.Context, sensor models.SensorType, from, to time.Time) ([]models.ReadingPoint, error) {
	var points []models.ReadingPoint
	err := o.with(func(db *DB) error {
		var err error
		points, err = db.SensorReadings(ctx, sensor, from, to)
		return err
	})
	return points, err
}

// AlertCountsByHour implements the dashboard read of DB.AlertCountsByHour.
func (o *OnDemand) AlertCountsByHour(ctx context.Context, from, to time.Time) ([]models.HourCount, error) {
	var counts []models.HourCount
	err := o.with(func(db *DB) error {
		var err error
		counts, err = db.AlertCountsByHour(ctx, from, to)
		return err
	})
	return counts, err
}

// Intrusions implements the dashboard read of DB.Intrusions.
func (o *OnDemand) Intrusions(ctx context.Context, from, to time.Time, limit int) ([]models.SecurityEvent, error) {
	var events []models.SecurityEvent
	err := o.with(func(db *DB) error {
		var err error
		events, err = db.Intrusions(ctx, from, to, limit)
		return err
	})
	return events, err
}

// Ping reports whether the file can currently be opened and queried.
func (o *OnDemand) Ping(ctx context.Context) error {
	return o.with(func(db *DB) error {
		return db.Ping(ctx)
	})
}
