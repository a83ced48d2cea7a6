// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/domsafe/internal/config"
	"github.com/tomtom215/domsafe/internal/logging"
)

// MemoryPath opens a private in-memory store.
const MemoryPath = ":memory:"

// defaultQueryTimeout applies to calls made with a context that has no deadline.
const defaultQueryTimeout = 30 * time.Second

// DB wraps the DuckDB connection pool and provides data access methods
type DB struct {
	conn *sql.DB
	cfg  *config.DatabaseConfig
}

// New opens the store described by cfg and creates the schema.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	return open(cfg, false)
}

// OpenReadOnly opens an existing store file without taking the write lock.
// The schema is not touched.
func OpenReadOnly(cfg *config.DatabaseConfig) (*DB, error) {
	if cfg.Path == "" || cfg.Path == MemoryPath {
		return nil, fmt.Errorf("%w: read-only access needs a database file", ErrUnavailable)
	}
	return open(cfg, true)
}

// CheckPath reports whether path is something DuckDB can open. A URL, such
// as a hosted Postgres DATABASE_URL left over from an older deployment, is
// ErrUnavailable.
func CheckPath(path string) error {
	if strings.Contains(path, "://") {
		return fmt.Errorf("%w: DATABASE_URL must be a DuckDB file path or %s, got a URL", ErrUnavailable, MemoryPath)
	}
	return nil
}

func open(cfg *config.DatabaseConfig, readOnly bool) (*DB, error) {
	path := cfg.Path
	if path == "" {
		path = MemoryPath
	}
	if err := CheckPath(path); err != nil {
		return nil, err
	}

	if path != MemoryPath && !readOnly {
		dbDir := filepath.Dir(path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}
	}

	conn, err := sql.Open("duckdb", connectionString(path, cfg, readOnly))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %v", ErrUnavailable, err)
	}

	db := &DB{conn: conn, cfg: cfg}
	db.configureConnectionPool()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := db.conn.PingContext(ctx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("%w: failed to connect to database: %v", ErrUnavailable, err)
	}

	if !readOnly {
		if err := db.createTables(ctx); err != nil {
			closeQuietly(conn)
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
	}

	logging.Debug().Str("path", path).Bool("read_only", readOnly).Msg("Database opened")
	return db, nil
}

// connectionString appends DuckDB tuning options to the database path.
func connectionString(path string, cfg *config.DatabaseConfig, readOnly bool) string {
	params := url.Values{}
	if readOnly {
		params.Set("access_mode", "read_only")
	} else {
		params.Set("access_mode", "read_write")
	}
	if cfg.Threads > 0 {
		params.Set("threads", strconv.Itoa(cfg.Threads))
	}
	if cfg.MaxMemory != "" {
		params.Set("max_memory", cfg.MaxMemory)
	}
	return path + "?" + params.Encode()
}

// configureConnectionPool sets connection pool parameters
func (db *DB) configureConnectionPool() {
	db.conn.SetMaxOpenConns(runtime.NumCPU())
	db.conn.SetMaxIdleConns(2)
	db.conn.SetConnMaxLifetime(time.Hour)
	db.conn.SetConnMaxIdleTime(5 * time.Minute)
}

// ensureContext adds a default timeout when ctx has no deadline.
func (db *DB) ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		return context.WithTimeout(context.Background(), defaultQueryTimeout)
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		return context.WithTimeout(ctx, defaultQueryTimeout)
	}
	return ctx, func() {}
}

// Close releases the connection pool.
func (db *DB) Close() error {
	if db == nil || db.conn == nil {
		return nil
	}
	return db.conn.Close()
}

// Ping verifies that a connection can be acquired.
func (db *DB) Ping(ctx context.Context) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	return db.conn.PingContext(ctx)
}

// Version returns the engine version string reported by SELECT version().
func (db *DB) Version(ctx context.Context) (string, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var version string
	if err := db.conn.QueryRowContext(ctx, "SELECT version()").Scan(&version); err != nil {
		return "", fmt.Errorf("query version: %w", err)
	}
	return version, nil
}
