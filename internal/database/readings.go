// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

package database

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/tomtom215/domsafe/internal/metrics"
	"github.com/tomtom215/domsafe/internal/models"
)

// alarmCountedStatuses are the raw status values counted by AlertCountsByHour.
var alarmCountedStatuses = []interface{}{models.AlarmAlert, models.AlarmArmed}

// SensorReadings returns the readings of one sensor with from <= timestamp < to,
// oldest first.
func (db *DB) SensorReadings(ctx context.Context, sensor models.SensorType, from, to time.Time) ([]models.ReadingPoint, error) {
	table, err := sensorTable(sensor)
	if err != nil {
		return nil, err
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `SELECT "timestamp", value FROM ` + table + `
		WHERE "timestamp" >= ? AND "timestamp" < ?
		ORDER BY "timestamp" ASC`

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, from, to)
	if err != nil {
		metrics.RecordDBQuery("SELECT", table, time.Since(start), err)
		return nil, fmt.Errorf("failed to query %s readings: %w", table, err)
	}
	defer closeWithLog(rows, "rows")

	points := make([]models.ReadingPoint, 0)
	for rows.Next() {
		var p models.ReadingPoint
		if err := rows.Scan(&p.Timestamp, &p.Value); err != nil {
			metrics.RecordDBQuery("SELECT", table, time.Since(start), err)
			return nil, fmt.Errorf("failed to scan %s reading: %w", table, err)
		}
		points = append(points, p)
	}
	err = rows.Err()
	metrics.RecordDBQuery("SELECT", table, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to iterate %s readings: %w", table, err)
	}
	return points, nil
}

// AlertCountsByHour counts status rows whose raw value is alert or armed with
// from <= timestamp < to, grouped by hour of day. Only hours with rows are
// returned, in ascending hour order.
func (db *DB) AlertCountsByHour(ctx context.Context, from, to time.Time) ([]models.HourCount, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `SELECT CAST(EXTRACT(hour FROM "timestamp") AS INTEGER) AS hour, COUNT(*) AS alerts
		FROM ` + tableStatus + `
		WHERE "timestamp" >= ? AND "timestamp" < ? AND value IN (?, ?)
		GROUP BY hour
		ORDER BY hour ASC`

	args := append([]interface{}{from, to}, alarmCountedStatuses...)

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		metrics.RecordDBQuery("SELECT", tableStatus, time.Since(start), err)
		return nil, fmt.Errorf("failed to query alert counts: %w", err)
	}
	defer closeWithLog(rows, "rows")

	counts := make([]models.HourCount, 0)
	for rows.Next() {
		var hc models.HourCount
		if err := rows.Scan(&hc.Hour, &hc.Count); err != nil {
			metrics.RecordDBQuery("SELECT", tableStatus, time.Since(start), err)
			return nil, fmt.Errorf("failed to scan alert count: %w", err)
		}
		counts = append(counts, hc)
	}
	err = rows.Err()
	metrics.RecordDBQuery("SELECT", tableStatus, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to iterate alert counts: %w", err)
	}
	return counts, nil
}

// Intrusions returns up to limit alert rows with from <= timestamp < to,
// newest first.
func (db *DB) Intrusions(ctx context.Context, from, to time.Time, limit int) ([]models.SecurityEvent, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("invalid intrusion limit %d", limit)
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `SELECT "timestamp", value, event_type, details
		FROM ` + tableStatus + `
		WHERE "timestamp" >= ? AND "timestamp" < ? AND value = ?
		ORDER BY "timestamp" DESC
		LIMIT ` + strconv.Itoa(limit)

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, from, to, models.AlarmAlert)
	if err != nil {
		metrics.RecordDBQuery("SELECT", tableStatus, time.Since(start), err)
		return nil, fmt.Errorf("failed to query intrusions: %w", err)
	}
	defer closeWithLog(rows, "rows")

	events := make([]models.SecurityEvent, 0)
	for rows.Next() {
		var (
			ev        models.SecurityEvent
			eventType string
		)
		if err := rows.Scan(&ev.Timestamp, &ev.Status, &eventType, &ev.Details); err != nil {
			metrics.RecordDBQuery("SELECT", tableStatus, time.Since(start), err)
			return nil, fmt.Errorf("failed to scan intrusion: %w", err)
		}
		ev.EventType = models.EventType(eventType)
		events = append(events, ev)
	}
	err = rows.Err()
	metrics.RecordDBQuery("SELECT", tableStatus, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to iterate intrusions: %w", err)
	}
	return events, nil
}
