// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

package feed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/domsafe/internal/config"
	"github.com/tomtom215/domsafe/internal/metrics"
	"github.com/tomtom215/domsafe/internal/models"
)

const (
	// DefaultTimeout bounds latest-value reads and command writes.
	DefaultTimeout = 5 * time.Second
	// DefaultListTimeout bounds the feed listing used by the setup check.
	DefaultListTimeout = 10 * time.Second

	// maxBodySize limits how much of a response is read or decoded.
	maxBodySize = 1 << 20
	// maxErrorBodySize limits the response excerpt kept in StatusError.
	maxErrorBodySize = 512

	keyHeader = "X-AIO-Key"
)

// ErrRateLimited is returned when the outbound limiter refuses a call.
var ErrRateLimited = errors.New("feed: outbound rate limit reached")

// StatusError reports a non-200 response from the broker.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("feed %s: HTTP %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("feed %s: HTTP %d: %s", e.Op, e.StatusCode, e.Body)
}

// API is the error-returning feed surface implemented by Client and
// CircuitBreakerClient.
type API interface {
	Latest(ctx context.Context, feedKey string) (*models.FeedValue, error)
	Send(ctx context.Context, feedKey, value string) error
	ListFeeds(ctx context.Context) ([]models.FeedInfo, error)
}

// Client performs single-attempt HTTP calls against one broker account.
// Safe for concurrent use.
type Client struct {
	accountURL string
	key        string
	client     *http.Client
	listClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a Client from the feed configuration. Zero timeouts fall
// back to the defaults. A RequestsPerMinute of zero disables the limiter.
func NewClient(cfg *config.FeedConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	listTimeout := cfg.ListTimeout
	if listTimeout <= 0 {
		listTimeout = DefaultListTimeout
	}

	return &Client{
		accountURL: cfg.AccountURL(),
		key:        cfg.Key,
		client:     &http.Client{Timeout: timeout},
		listClient: &http.Client{Timeout: listTimeout},
		limiter:    newLimiter(cfg.RequestsPerMinute),
	}
}

// newLimiter spreads requestsPerMinute evenly with a small burst so a
// dashboard refresh, which reads three feeds at once, is not throttled.
func newLimiter(requestsPerMinute int) *rate.Limiter {
	if requestsPerMinute <= 0 {
		return nil
	}
	burst := requestsPerMinute / 10
	if burst < 3 {
		burst = 3
	}
	return rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60), burst)
}

func (c *Client) feedURL(feedKey string, elems ...string) string {
	path := c.accountURL + "/feeds/" + url.PathEscape(feedKey)
	for _, e := range elems {
		path += "/" + e
	}
	return path
}

func (c *Client) allow() error {
	if c.limiter != nil && !c.limiter.Allow() {
		metrics.FeedRateLimited.Inc()
		return ErrRateLimited
	}
	return nil
}

// Latest returns the most recent value of a feed.
func (c *Client) Latest(ctx context.Context, feedKey string) (*models.FeedValue, error) {
	var value models.FeedValue
	if err := c.getJSON(ctx, c.client, "latest", c.feedURL(feedKey, "data", "last"), &value); err != nil {
		return nil, err
	}
	if value.FeedKey == "" {
		value.FeedKey = feedKey
	}
	return &value, nil
}

// Send pushes a string value to a feed. Only HTTP 200 counts as success.
func (c *Client) Send(ctx context.Context, feedKey, value string) error {
	if err := c.allow(); err != nil {
		return err
	}

	payload, err := json.Marshal(map[string]string{"value": value})
	if err != nil {
		return fmt.Errorf("feed send: encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.feedURL(feedKey, "data"), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("feed send: create request: %w", err)
	}
	req.Header.Set(keyHeader, c.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("feed send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Op: "send", StatusCode: resp.StatusCode, Body: readErrorBody(resp.Body)}
	}
	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
	return nil
}

// ListFeeds returns every feed on the account.
func (c *Client) ListFeeds(ctx context.Context) ([]models.FeedInfo, error) {
	var feeds []models.FeedInfo
	if err := c.getJSON(ctx, c.listClient, "list", c.accountURL+"/feeds", &feeds); err != nil {
		return nil, err
	}
	return feeds, nil
}

func (c *Client) getJSON(ctx context.Context, hc *http.Client, op, reqURL string, out interface{}) error {
	if err := c.allow(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("feed %s: create request: %w", op, err)
	}
	req.Header.Set(keyHeader, c.key)
	req.Header.Set("Accept", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("feed %s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Op: op, StatusCode: resp.StatusCode, Body: readErrorBody(resp.Body)}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(out); err != nil {
		return fmt.Errorf("feed %s: decode response: %w", op, err)
	}
	return nil
}

func readErrorBody(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return ""
	}
	return string(bytes.TrimSpace(body))
}
