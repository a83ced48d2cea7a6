// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

package feed

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/domsafe/internal/config"
)

func testConfig(baseURL string) *config.FeedConfig {
	return &config.FeedConfig{
		BaseURL:     baseURL,
		Username:    "alice",
		Key:         "secret-key",
		Timeout:     time.Second,
		ListTimeout: time.Second,
	}
}

func TestClient_Latest(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if r.URL.Path != "/alice/feeds/temperature/data/last" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("X-AIO-Key"); got != "secret-key" {
			t.Errorf("X-AIO-Key = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"0F1","value":"21.5","feed_key":"temperature","created_at":"2025-01-01T12:00:00Z"}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	value, err := client.Latest(context.Background(), "temperature")
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if value.Value != "21.5" {
		t.Errorf("Value = %q, want 21.5", value.Value)
	}
	if f, ok := value.Float(); !ok || f != 21.5 {
		t.Errorf("Float() = %v, %v", f, ok)
	}
}

func TestClient_Latest_StatusError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewClient(testConfig(server.URL)).Latest(context.Background(), "status")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error = %v, want *StatusError", err)
	}
	if statusErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d", statusErr.StatusCode)
	}
	if !strings.Contains(statusErr.Body, "upstream exploded") {
		t.Errorf("Body = %q", statusErr.Body)
	}
}

func TestClient_Send(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{"200 is success", http.StatusOK, false},
		{"201 is not success", http.StatusCreated, true},
		{"401 is failure", http.StatusUnauthorized, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var (
				mu   sync.Mutex
				body map[string]string
			)
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost || r.URL.Path != "/alice/feeds/light/data" {
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}
				raw, _ := io.ReadAll(r.Body)
				mu.Lock()
				_ = json.Unmarshal(raw, &body)
				mu.Unlock()
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			err := NewClient(testConfig(server.URL)).Send(context.Background(), "light", "ON")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Send() error = %v, wantErr %v", err, tt.wantErr)
			}
			mu.Lock()
			defer mu.Unlock()
			if body["value"] != "ON" {
				t.Errorf("posted value = %q, want ON", body["value"])
			}
		})
	}
}

func TestClient_ListFeeds(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/alice/feeds" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`[{"key":"status","name":"Status","last_value":"armed"},{"key":"temperature","name":"Temperature","last_value":null}]`))
	}))
	defer server.Close()

	feeds, err := NewClient(testConfig(server.URL)).ListFeeds(context.Background())
	if err != nil {
		t.Fatalf("ListFeeds() error = %v", err)
	}
	if len(feeds) != 2 || feeds[0].Key != "status" || feeds[0].LastValue != "armed" {
		t.Errorf("feeds = %+v", feeds)
	}
}

func TestClient_Timeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	cfg := testConfig(server.URL)
	cfg.Timeout = 50 * time.Millisecond
	if _, err := NewClient(cfg).Latest(context.Background(), "status"); err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestClient_RateLimited(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"value":"1"}`))
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.RequestsPerMinute = 1 // burst of 3, then ~1/min
	client := NewClient(cfg)

	var limited int
	for i := 0; i < 5; i++ {
		if _, err := client.Latest(context.Background(), "status"); errors.Is(err, ErrRateLimited) {
			limited++
		}
	}
	if limited != 2 {
		t.Errorf("limited = %d, want 2", limited)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("server calls = %d, want 3", got)
	}
}

func TestClient_EscapesFeedKey(t *testing.T) {
	t.Parallel()

	cfg := testConfig("http://broker.test/api/v2/")
	client := NewClient(cfg)
	got := client.feedURL("a/b", "data", "last")
	want := "http://broker.test/api/v2/alice/feeds/a%2Fb/data/last"
	if got != want {
		t.Errorf("feedURL = %q, want %q", got, want)
	}
}
