// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

package database

import (
	"context"
	"fmt"

	"github.com/tomtom215/domsafe/internal/models"
)

const (
	tableTemperature = "temperature"
	tableHumidity    = "humidity"
	tableStatus      = "status"
)

// sensorTable maps a registered sensor to its table name.
func sensorTable(sensor models.SensorType) (string, error) {
	switch sensor {
	case models.SensorTemperature:
		return tableTemperature, nil
	case models.SensorHumidity:
		return tableHumidity, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSensor, sensor)
	}
}

func sensorTableDDL(table string) string {
	return `CREATE TABLE IF NOT EXISTS ` + table + ` (
		"timestamp" TIMESTAMP NOT NULL,
		value DOUBLE NOT NULL,
		unit VARCHAR NOT NULL,
		UNIQUE ("timestamp")
	)`
}

const statusTableDDL = `CREATE TABLE IF NOT EXISTS ` + tableStatus + ` (
	"timestamp" TIMESTAMP NOT NULL,
	value VARCHAR NOT NULL,
	event_type VARCHAR NOT NULL,
	details VARCHAR NOT NULL,
	UNIQUE ("timestamp", event_type, details)
)`

// createTables creates every table that does not exist yet.
func (db *DB) createTables(ctx context.Context) error {
	queries := []string{
		sensorTableDDL(tableTemperature),
		sensorTableDDL(tableHumidity),
		statusTableDDL,
	}

	for _, query := range queries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}
