// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/tomtom215/domsafe/internal/config"
	"github.com/tomtom215/domsafe/internal/models"
)

func fileConfig(t *testing.T) *config.DatabaseConfig {
	t.Helper()
	testDBSemaphore <- struct{}{}
	t.Cleanup(func() { <-testDBSemaphore })
	return &config.DatabaseConfig{
		Path:      filepath.Join(t.TempDir(), "domsafe.duckdb"),
		MaxMemory: "256MB",
		Threads:   1,
	}
}

func TestOpenReadOnly_RequiresFile(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"", MemoryPath} {
		_, err := OpenReadOnly(&config.DatabaseConfig{Path: path})
		if !errors.Is(err, ErrUnavailable) {
			t.Errorf("OpenReadOnly(%q) error = %v, want ErrUnavailable", path, err)
		}
	}
}

func TestOpen_URLIsUnavailable(t *testing.T) {
	t.Parallel()

	cfg := &config.DatabaseConfig{Path: "postgresql://u:p@host/db?sslmode=require"}
	if _, err := New(cfg); !errors.Is(err, ErrUnavailable) {
		t.Errorf("New() error = %v, want ErrUnavailable", err)
	}
	if _, err := OpenReadOnly(cfg); !errors.Is(err, ErrUnavailable) {
		t.Errorf("OpenReadOnly() error = %v, want ErrUnavailable", err)
	}
	if err := NewOnDemand(cfg).Ping(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Errorf("OnDemand.Ping() error = %v, want ErrUnavailable", err)
	}
	if err := CheckPath("/data/domsafe.duckdb"); err != nil {
		t.Errorf("CheckPath(file) error = %v, want nil", err)
	}
}

func TestOnDemand_MissingFileIsUnavailable(t *testing.T) {
	t.Parallel()
	cfg := fileConfig(t)
	store := NewOnDemand(cfg)

	if err := store.Ping(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Ping() error = %v, want ErrUnavailable", err)
	}
	from, to := day(t, "2025-01-01")
	if _, err := store.SensorReadings(context.Background(), models.SensorTemperature, from, to); !errors.Is(err, ErrUnavailable) {
		t.Errorf("SensorReadings() error = %v, want ErrUnavailable", err)
	}
}

func TestOnDemand_ReadsCommittedRows(t *testing.T) {
	t.Parallel()
	cfg := fileConfig(t)
	store := NewOnDemand(cfg)
	ctx := context.Background()

	if err := store.EnsureSchema(); err != nil {
		t.Fatalf("EnsureSchema() error = %v", err)
	}
	if err := store.Ping(ctx); err != nil {
		t.Fatalf("Ping() after EnsureSchema error = %v", err)
	}

	writer, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	insertReadings(t, writer,
		temperature(t, "2025-01-01 08:00:00", 21.5),
		temperature(t, "2025-01-01 09:00:00", 22.0),
	)
	insertEvents(t, writer, models.NewSecurityEvent(ts(t, "2025-01-01 14:30:00"), "alert"))
	if err := writer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	from, to := day(t, "2025-01-01")

	points, err := store.SensorReadings(ctx, models.SensorTemperature, from, to)
	if err != nil {
		t.Fatalf("SensorReadings() error = %v", err)
	}
	if len(points) != 2 || points[0].Value != 21.5 {
		t.Errorf("SensorReadings() = %+v, want 2 points starting at 21.5", points)
	}

	counts, err := store.AlertCountsByHour(ctx, from, to)
	if err != nil {
		t.Fatalf("AlertCountsByHour() error = %v", err)
	}
	if len(counts) != 1 || counts[0].Hour != 14 || counts[0].Count != 1 {
		t.Errorf("AlertCountsByHour() = %+v, want [{14 1}]", counts)
	}

	events, err := store.Intrusions(ctx, from, to, 50)
	if err != nil {
		t.Fatalf("Intrusions() error = %v", err)
	}
	if len(events) != 1 || events[0].Details != "System alert" {
		t.Errorf("Intrusions() = %+v, want one System alert", events)
	}
}
