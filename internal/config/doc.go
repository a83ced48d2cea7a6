// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

/*
Package config loads DomSafe configuration with Koanf v2.

Sources, lowest to highest priority:
  - Built-in defaults (defaultConfig)
  - YAML file: CONFIG_PATH, or config.yaml / config.yml / /etc/domsafe/config.yaml
  - A .env file (DOTENV_PATH, default ".env"), loaded with godotenv; it never
    overrides variables already present in the process environment
  - Environment variables

The resulting *Config is constructed once in main and passed by pointer into
each component constructor. Nothing in this package keeps global state.

# Environment Variables

Feed broker:
  - MQTT_USERNAME: broker account name (required)
  - MQTT_KEY: broker API key, sent as X-AIO-Key (required)
  - FEED_BASE_URL: API root (default: https://io.adafruit.com/api/v2)
  - FEED_TIMEOUT: per-request timeout for reads and commands (default: 5s)
  - FEED_LIST_TIMEOUT: timeout for listing feeds (default: 10s)
  - FEED_RATE_LIMIT: outbound requests per minute, 0 disables (default: 0)
  - FEED_CIRCUIT_BREAKER: wrap the client in a circuit breaker (default: true)

Database:
  - DATABASE_URL or DUCKDB_PATH: DuckDB file path or :memory: (required)
  - DUCKDB_MAX_MEMORY: memory limit (default: 512MB)
  - DUCKDB_THREADS: worker threads, 0 = DuckDB default
  - DATABASE_KEEP_OPEN: keep one read-write pool open instead of opening
    the file read-only per request (default: false)

Sync job:
  - LOGS_DIR: directory holding {date}_{metric}.csv files (default: logs)
  - SYNC_PROGRESS_PATH: badger directory for sync progress, empty keeps it in memory

HTTP server:
  - HTTP_HOST (default: 0.0.0.0), HTTP_PORT (default: 5000)
  - HTTP_TIMEOUT: read/write timeout (default: 30s)
  - SHUTDOWN_TIMEOUT: graceful shutdown window (default: 10s)
  - CORS_ORIGINS: comma-separated allowed origins (default: *)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

Missing broker credentials or database path do not fail Load. They are
reported by MissingRequired so the server can start degraded and answer
"unknown" or an error for the affected endpoints.
*/
package config
