// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

// isolateEnv points config and .env lookups at an empty temp dir so the
// developer's own files never leak into a test.
func isolateEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(ConfigPathEnvVar, filepath.Join(dir, "missing.yaml"))
	t.Setenv(DotEnvPathEnvVar, filepath.Join(dir, "missing.env"))
	t.Chdir(dir)
	return dir
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Feed.BaseURL != DefaultFeedBaseURL {
		t.Errorf("Feed.BaseURL = %q", cfg.Feed.BaseURL)
	}
	if cfg.Feed.Timeout != 5*time.Second {
		t.Errorf("Feed.Timeout = %v, want 5s", cfg.Feed.Timeout)
	}
	if cfg.Feed.ListTimeout != 10*time.Second {
		t.Errorf("Feed.ListTimeout = %v, want 10s", cfg.Feed.ListTimeout)
	}
	if !cfg.Feed.CircuitBreaker {
		t.Error("Feed.CircuitBreaker should default to true")
	}
	if cfg.Sync.LogsDir != "logs" {
		t.Errorf("Sync.LogsDir = %q, want logs", cfg.Sync.LogsDir)
	}
	if cfg.Server.Port != 5000 {
		t.Errorf("Server.Port = %d, want 5000", cfg.Server.Port)
	}
	if cfg.Database.Path != "" {
		t.Errorf("Database.Path should be empty by default, got %q", cfg.Database.Path)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"MQTT_USERNAME", "feed.username"},
		{"MQTT_KEY", "feed.key"},
		{"DATABASE_URL", "database.path"},
		{"DUCKDB_PATH", "database.path"},
		{"DATABASE_KEEP_OPEN", "database.keep_open"},
		{"LOGS_DIR", "sync.logs_dir"},
		{"HTTP_PORT", "server.port"},
		{"CORS_ORIGINS", "security.cors_origins"},
		{"log_level", "logging.level"},
		{"HOME", ""},
		{"PATH", ""},
	}
	for _, tt := range tests {
		if got := envTransformFunc(tt.key); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestLoadWithKoanf_EnvVars(t *testing.T) {
	isolateEnv(t)
	t.Setenv("MQTT_USERNAME", "alice")
	t.Setenv("MQTT_KEY", "aio_test_key")
	t.Setenv("DATABASE_URL", "/tmp/domsafe.duckdb")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("FEED_TIMEOUT", "2s")
	t.Setenv("FEED_CIRCUIT_BREAKER", "false")
	t.Setenv("CORS_ORIGINS", "http://a.local, http://b.local")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Feed.Username != "alice" || cfg.Feed.Key != "aio_test_key" {
		t.Errorf("feed credentials = %q/%q", cfg.Feed.Username, cfg.Feed.Key)
	}
	if cfg.Database.Path != "/tmp/domsafe.duckdb" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Feed.Timeout != 2*time.Second {
		t.Errorf("Feed.Timeout = %v, want 2s", cfg.Feed.Timeout)
	}
	if cfg.Feed.CircuitBreaker {
		t.Error("Feed.CircuitBreaker should be false")
	}
	if want := []string{"http://a.local", "http://b.local"}; !reflect.DeepEqual(cfg.Security.CORSOrigins, want) {
		t.Errorf("CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want default", cfg.Server.Host)
	}
}

func TestLoadWithKoanf_ConfigFileAndEnvOverride(t *testing.T) {
	dir := isolateEnv(t)

	content := `
feed:
  username: "from-file"
  key: "file-key"
database:
  path: "/data/file.duckdb"
server:
  port: 7000
sync:
  logs_dir: "/var/log/domsafe"
`
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "7100")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Feed.Username != "from-file" {
		t.Errorf("Feed.Username = %q, want from-file", cfg.Feed.Username)
	}
	if cfg.Sync.LogsDir != "/var/log/domsafe" {
		t.Errorf("Sync.LogsDir = %q", cfg.Sync.LogsDir)
	}
	if cfg.Server.Port != 7100 {
		t.Errorf("env should override file: Server.Port = %d, want 7100", cfg.Server.Port)
	}
}

func TestLoadWithKoanf_DotEnv(t *testing.T) {
	dir := isolateEnv(t)

	for _, key := range []string{"MQTT_USERNAME", "MQTT_KEY"} {
		original, had := os.LookupEnv(key)
		if err := os.Unsetenv(key); err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() {
			if had {
				_ = os.Setenv(key, original)
			} else {
				_ = os.Unsetenv(key)
			}
		})
	}

	envPath := filepath.Join(dir, "test.env")
	if err := os.WriteFile(envPath, []byte("MQTT_USERNAME=dotenv-user\nMQTT_KEY=dotenv-key\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(DotEnvPathEnvVar, envPath)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Feed.Username != "dotenv-user" || cfg.Feed.Key != "dotenv-key" {
		t.Errorf("feed credentials = %q/%q, want values from .env", cfg.Feed.Username, cfg.Feed.Key)
	}
}

func TestLoadWithKoanf_ValidationError(t *testing.T) {
	isolateEnv(t)
	t.Setenv("HTTP_PORT", "0")

	if _, err := LoadWithKoanf(); err == nil {
		t.Fatal("expected validation error for HTTP_PORT=0")
	}
}

func TestLoadWithKoanf_DatabaseURLStillLoads(t *testing.T) {
	isolateEnv(t)
	t.Setenv("DATABASE_URL", "postgresql://u:p@host/db?sslmode=require")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Database.Path != "postgresql://u:p@host/db?sslmode=require" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
}

func TestLoadWithKoanf_MissingCredentialsIsNotAnError(t *testing.T) {
	isolateEnv(t)
	t.Setenv("MQTT_USERNAME", "")
	t.Setenv("MQTT_KEY", "")
	t.Setenv("DATABASE_URL", "")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if len(cfg.MissingRequired()) != 3 {
		t.Errorf("MissingRequired() = %v", cfg.MissingRequired())
	}
}
