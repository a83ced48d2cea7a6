// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

package api

import (
	"context"
	"net/http"

	"github.com/tomtom215/domsafe/internal/models"
)

// isoLocalLayout matches the naive local timestamps the dashboard displays.
const isoLocalLayout = "2006-01-02T15:04:05.000000"

type liveValues struct {
	alarm       string
	temperature *float64
	humidity    *float64
	timestamp   string
}

// readLive fetches the three live feeds one after another. Missing or
// unparseable values degrade to "unknown" and nil.
func (h *Handler) readLive(ctx context.Context) liveValues {
	v := liveValues{alarm: models.AlarmUnknown}

	if status, ok := h.feeds.FetchLatest(ctx, models.FeedStatus); ok && status.Value != "" {
		v.alarm = status.Value
	}
	v.temperature = h.numericFeed(ctx, models.FeedTemperature)
	v.humidity = h.numericFeed(ctx, models.FeedHumidity)
	v.timestamp = h.now().Format(isoLocalLayout)
	return v
}

func (h *Handler) numericFeed(ctx context.Context, key string) *float64 {
	fv, ok := h.feeds.FetchLatest(ctx, key)
	if !ok {
		return nil
	}
	value, ok := fv.Float()
	if !ok {
		return nil
	}
	return &value
}

// LiveData returns the latest broker values.
func (h *Handler) LiveData(w http.ResponseWriter, r *http.Request) {
	v := h.readLive(r.Context())
	respondData(w, models.LiveData{
		AlarmStatus: v.alarm,
		Temperature: v.temperature,
		Humidity:    v.humidity,
		Timestamp:   v.timestamp,
	})
}

// SystemStatus returns the latest broker values under the "status" key.
func (h *Handler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	v := h.readLive(r.Context())
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Success: true,
		Status: models.SystemStatus{
			Alarm:       v.alarm,
			Temperature: v.temperature,
			Humidity:    v.humidity,
			LastUpdate:  v.timestamp,
		},
	})
}
