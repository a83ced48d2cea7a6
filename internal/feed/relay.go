// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

package feed

import (
	"context"
	"time"

	"github.com/tomtom215/domsafe/internal/config"
	"github.com/tomtom215/domsafe/internal/logging"
	"github.com/tomtom215/domsafe/internal/metrics"
	"github.com/tomtom215/domsafe/internal/models"
)

// Relay is the best-effort feed view used by the dashboard. It never returns
// errors: failures are logged, counted and reported as absent or false.
type Relay struct {
	api API
}

// New builds the Client for cfg, wraps it in a circuit breaker when enabled
// and returns the Relay over it.
func New(cfg *config.FeedConfig) *Relay {
	var api API = NewClient(cfg)
	if cfg.CircuitBreaker {
		api = NewCircuitBreakerClient(api)
	}
	return NewRelay(api)
}

// NewRelay returns a Relay over an existing API implementation.
func NewRelay(api API) *Relay {
	return &Relay{api: api}
}

// FetchLatest returns the latest value of a feed, or false when it could not
// be read for any reason.
func (r *Relay) FetchLatest(ctx context.Context, feedKey string) (models.FeedValue, bool) {
	start := time.Now()
	value, err := r.api.Latest(ctx, feedKey)
	ok := err == nil && value != nil
	metrics.RecordFeedRequest("fetch_latest", ok, time.Since(start))

	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("feed", feedKey).Msg("Feed read failed")
		return models.FeedValue{}, false
	}
	if value == nil {
		return models.FeedValue{}, false
	}
	return *value, true
}

// SendCommand pushes value to a feed and reports whether the broker accepted
// it with HTTP 200.
func (r *Relay) SendCommand(ctx context.Context, feedKey, value string) bool {
	start := time.Now()
	err := r.api.Send(ctx, feedKey, value)
	metrics.RecordFeedRequest("send_command", err == nil, time.Since(start))

	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("feed", feedKey).Msg("Feed command failed")
		return false
	}
	logging.Ctx(ctx).Info().Str("feed", feedKey).Str("value", value).Msg("Feed command sent")
	return true
}

// ListFeeds returns every feed on the account. Unlike the dashboard reads
// this reports the error, since the setup check needs the reason.
func (r *Relay) ListFeeds(ctx context.Context) ([]models.FeedInfo, error) {
	start := time.Now()
	feeds, err := r.api.ListFeeds(ctx)
	metrics.RecordFeedRequest("list_feeds", err == nil, time.Since(start))
	return feeds, err
}
