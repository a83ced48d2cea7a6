// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/domsafe/internal/metrics"
	"github.com/tomtom215/domsafe/internal/models"
)

// Batch is one write transaction. Inserts skip rows that already exist and
// report how many rows they actually added. Nothing is visible to readers
// until Commit; Rollback discards everything.
type Batch struct {
	tx *sql.Tx
}

// BeginBatch starts a write transaction at the default isolation level.
func (db *DB) BeginBatch(ctx context.Context) (*Batch, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &Batch{tx: tx}, nil
}

// InsertReading adds one sensor reading. It returns 0 when a reading with
// the same timestamp already exists for the sensor.
func (b *Batch) InsertReading(ctx context.Context, r models.SensorReading) (int64, error) {
	table, err := sensorTable(r.SensorType)
	if err != nil {
		return 0, err
	}

	query := `INSERT INTO ` + table + ` ("timestamp", value, unit) VALUES (?, ?, ?)
		ON CONFLICT DO NOTHING`

	return b.exec(ctx, table, query, r.Timestamp, r.Value, r.Unit)
}

// InsertSecurityEvent adds one alarm status change. It returns 0 when the
// same (timestamp, event_type, details) row already exists.
func (b *Batch) InsertSecurityEvent(ctx context.Context, ev models.SecurityEvent) (int64, error) {
	query := `INSERT INTO ` + tableStatus + ` ("timestamp", value, event_type, details) VALUES (?, ?, ?, ?)
		ON CONFLICT DO NOTHING`

	return b.exec(ctx, tableStatus, query, ev.Timestamp, ev.Status, string(ev.EventType), ev.Details)
}

func (b *Batch) exec(ctx context.Context, table, query string, args ...interface{}) (int64, error) {
	start := time.Now()
	result, err := b.tx.ExecContext(ctx, query, args...)
	metrics.RecordDBQuery("INSERT", table, time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("failed to insert into %s: %w", table, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected, nil
}

// Commit makes the batch visible.
func (b *Batch) Commit() error {
	if err := b.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback discards the batch. It is a no-op after Commit.
func (b *Batch) Rollback() error {
	if err := b.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("failed to roll back transaction: %w", err)
	}
	return nil
}
