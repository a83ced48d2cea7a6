// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/domsafe/internal/config"
	"github.com/tomtom215/domsafe/internal/database"
	"github.com/tomtom215/domsafe/internal/models"
)

func TestChiMiddlewareConfigFromSecurity(t *testing.T) {
	t.Parallel()

	cfg := ChiMiddlewareConfigFromSecurity(&config.SecurityConfig{
		CORSOrigins:       []string{"https://dash.example"},
		RateLimitReqs:     10,
		RateLimitWindow:   30 * time.Second,
		RateLimitDisabled: true,
	})
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.RateLimitRequests != 10 || cfg.RateLimitWindow != 30*time.Second || !cfg.RateLimitDisabled {
		t.Errorf("config = %+v", cfg)
	}

	defaults := ChiMiddlewareConfigFromSecurity(&config.SecurityConfig{})
	if defaults.RateLimitRequests != 100 || defaults.RateLimitWindow != time.Minute {
		t.Errorf("zero values should keep defaults: %+v", defaults)
	}
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 2
	srv := NewRouter(NewHandler(&fakeStore{}, &fakeFeeds{}), nil, cfg).SetupChi()

	for i := 0; i < 2; i++ {
		rec, _ := do(t, srv, http.MethodGet, "/api/health/live", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i+1, rec.Code)
		}
	}

	rec, env := do(t, srv, http.MethodGet, "/api/health/live", "")
	if rec.Code != http.StatusTooManyRequests || env.Code != "RATE_LIMITED" {
		t.Errorf("third request status = %d, envelope = %+v", rec.Code, env)
	}
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.CORSAllowedOrigins = []string{"https://dash.example"}
	srv := NewRouter(NewHandler(&fakeStore{}, &fakeFeeds{}), nil, cfg).SetupChi()

	req := httptest.NewRequest(http.MethodOptions, "/api/control", nil)
	req.Header.Set("Origin", "https://dash.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://dash.example" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestRequestIDAndSecurityHeaders(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, &fakeStore{}, &fakeFeeds{})

	rec, _ := do(t, srv, http.MethodGet, "/api/health/live", "")
	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("missing X-Request-Id response header")
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing X-Content-Type-Options")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/health/live", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-Id"); got != "abc-123" {
		t.Errorf("X-Request-Id = %q, want the client's id", got)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, &fakeStore{}, &fakeFeeds{})
	do(t, srv, http.MethodGet, "/api/health/live", "")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "api_requests_total") {
		t.Error("api_requests_total not exported")
	}
}

// TestDailyAlerts_DuckDB checks the hour grouping against the real store.
func TestDailyAlerts_DuckDB(t *testing.T) {
	db, err := database.New(&config.DatabaseConfig{Path: database.MemoryPath})
	if err != nil {
		t.Fatalf("database.New() error = %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	batch, err := db.BeginBatch(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for _, ev := range []models.SecurityEvent{
		models.NewSecurityEvent(time.Date(2025, 1, 1, 14, 22, 0, 0, time.UTC), models.AlarmAlert),
		models.NewSecurityEvent(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC), models.AlarmDisarmed),
	} {
		if _, err := batch.InsertSecurityEvent(ctx, ev); err != nil {
			t.Fatal(err)
		}
	}
	if err := batch.Commit(); err != nil {
		t.Fatal(err)
	}

	srv := newTestServer(t, db, &fakeFeeds{})

	rec, env := do(t, srv, http.MethodGet, "/api/daily-alerts?start_date=2025-01-01&end_date=2025-01-01", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := string(env.Data); got != `{"labels":["14:00"],"values":[1]}` {
		t.Errorf("data = %s", got)
	}

	rec, env = do(t, srv, http.MethodGet, "/api/intrusions?date=2025-01-01", "")
	if rec.Code != http.StatusOK || !strings.Contains(string(env.Data), `"timestamp":"2025-01-01 14:22:00"`) {
		t.Errorf("intrusions status = %d, data = %s", rec.Code, env.Data)
	}
}
