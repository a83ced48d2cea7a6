// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Feed     FeedConfig     `koanf:"feed"`
	Database DatabaseConfig `koanf:"database"`
	Sync     SyncConfig     `koanf:"sync"`
	Server   ServerConfig   `koanf:"server"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// FeedConfig holds the cloud feed broker connection.
type FeedConfig struct {
	BaseURL           string        `koanf:"base_url"`
	Username          string        `koanf:"username"`
	Key               string        `koanf:"key"`
	Timeout           time.Duration `koanf:"timeout"`
	ListTimeout       time.Duration `koanf:"list_timeout"`
	RequestsPerMinute int           `koanf:"requests_per_minute"` // 0 disables the outbound limiter
	CircuitBreaker    bool          `koanf:"circuit_breaker"`
}

// AccountURL returns the per-account API root, e.g. https://io.adafruit.com/api/v2/alice.
func (f *FeedConfig) AccountURL() string {
	return strings.TrimRight(f.BaseURL, "/") + "/" + f.Username
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // 0 = DuckDB default

	// KeepOpen holds one read-write connection pool for the server's
	// lifetime. DuckDB then locks the file and cmd/sync cannot run
	// alongside the server.
	KeepOpen bool `koanf:"keep_open"`
}

// SyncConfig holds CSV backfill settings.
type SyncConfig struct {
	LogsDir      string `koanf:"logs_dir"`
	ProgressPath string `koanf:"progress_path"` // empty = in-memory progress
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns host:port for http.Server.
func (s *ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// SecurityConfig holds browser-facing HTTP protections. There is no
// authentication; the dashboard is expected to run on a private network.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logger settings passed to logging.Init.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// MissingRequired lists the environment variables for required settings
// that are empty. An empty result means every dependency is configured.
func (c *Config) MissingRequired() []string {
	var missing []string
	if c.Feed.Username == "" {
		missing = append(missing, "MQTT_USERNAME")
	}
	if c.Feed.Key == "" {
		missing = append(missing, "MQTT_KEY")
	}
	if c.Database.Path == "" {
		missing = append(missing, "DATABASE_URL")
	}
	return missing
}

// FeedConfigured reports whether broker credentials are present.
func (c *Config) FeedConfigured() bool {
	return c.Feed.Username != "" && c.Feed.Key != ""
}

// String renders a log-safe summary; the broker key is never included.
func (c *Config) String() string {
	return fmt.Sprintf("feed=%s user=%q db=%q logs=%q addr=%s",
		c.Feed.BaseURL, c.Feed.Username, c.Database.Path, c.Sync.LogsDir, c.Server.Addr())
}

// Load loads configuration from defaults, file, .env and environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
