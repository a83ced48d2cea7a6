// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

package api

import (
	"context"
	"time"

	"github.com/tomtom215/domsafe/internal/models"
)

// Store is the read side of the database used by the handlers.
type Store interface {
	SensorReadings(ctx context.Context, sensor models.SensorType, from, to time.Time) ([]models.ReadingPoint, error)
	AlertCountsByHour(ctx context.Context, from, to time.Time) ([]models.HourCount, error)
	Intrusions(ctx context.Context, from, to time.Time, limit int) ([]models.SecurityEvent, error)
	Ping(ctx context.Context) error
}

// Feeds reads and writes broker feeds. Failures are reported as absent or
// false, never as errors.
type Feeds interface {
	FetchLatest(ctx context.Context, feedKey string) (models.FeedValue, bool)
	SendCommand(ctx context.Context, feedKey, value string) bool
}

// intrusionLimit caps the rows returned by /api/intrusions.
const intrusionLimit = 50

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers_live.go: broker-backed live values
//   - handlers_history.go: store-backed charts and intrusion log
//   - handlers_control.go: device commands
//   - handlers_health.go: liveness and readiness probes
//   - pages.go: HTML pages
type Handler struct {
	store     Store
	feeds     Feeds
	startTime time.Time
	now       func() time.Time
}

// NewHandler creates a handler. store may be nil when the database could not
// be opened; store-backed endpoints then answer 500.
func NewHandler(store Store, feeds Feeds) *Handler {
	return &Handler{
		store:     store,
		feeds:     feeds,
		startTime: time.Now(),
		now:       time.Now,
	}
}
