// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

// Package database is the relational store shared by the dashboard API and
// the sync job.
//
// # Overview
//
// The store is an embedded DuckDB database opened through database/sql with
// the CGO driver github.com/duckdb/duckdb-go/v2. Reads acquire a pooled
// connection per query and release it when the rows are closed. Writes go
// through a Batch, a single transaction that the caller commits once per
// unit of work (one CSV file for the sync job).
//
// DuckDB lets one process hold a file read-write. The dashboard therefore
// reads through OnDemand, which opens the file read-only for a single call
// and closes it, leaving the write lock free for the sync job. A read that
// overlaps a sync fails with ErrUnavailable.
//
// # Schema
//
// One table per registered sensor, named after the sensor:
//
//	temperature (timestamp TIMESTAMP, value DOUBLE, unit VARCHAR, UNIQUE(timestamp))
//	humidity    (timestamp TIMESTAMP, value DOUBLE, unit VARCHAR, UNIQUE(timestamp))
//
// and one table for alarm status changes:
//
//	status (timestamp TIMESTAMP, value VARCHAR, event_type VARCHAR, details VARCHAR,
//	        UNIQUE(timestamp, event_type, details))
//
// Tables are created with CREATE TABLE IF NOT EXISTS when the store opens.
// Every insert is INSERT ... ON CONFLICT DO NOTHING, so re-running a backfill
// never duplicates rows and never fails on existing ones.
//
// Timestamps are wall-clock readings from the device logs with no zone. They
// are carried as UTC time.Time values and stored in TIMESTAMP columns.
//
// # Table names
//
// Sensor table names come only from the models.SensorType enum through
// sensorTable. No caller-supplied string is ever interpolated into SQL.
package database
