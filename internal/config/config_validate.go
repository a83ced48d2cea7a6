// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/tomtom215/domsafe/internal/logging"
)

// Validate rejects malformed values. Empty credentials are allowed here and
// surfaced by MissingRequired instead.
func (c *Config) Validate() error {
	if err := c.validateFeed(); err != nil {
		return err
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateFeed() error {
	u, err := url.Parse(c.Feed.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("FEED_BASE_URL must be an absolute http(s) URL, got %q", c.Feed.BaseURL)
	}
	if c.Feed.Timeout <= 0 {
		return fmt.Errorf("FEED_TIMEOUT must be positive")
	}
	if c.Feed.ListTimeout <= 0 {
		return fmt.Errorf("FEED_LIST_TIMEOUT must be positive")
	}
	if c.Feed.RequestsPerMinute < 0 {
		return fmt.Errorf("FEED_RATE_LIMIT must not be negative")
	}
	if strings.ContainsAny(c.Feed.Username, "/?#") {
		return fmt.Errorf("MQTT_USERNAME must not contain '/', '?' or '#'")
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must not be negative")
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1")
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
}
