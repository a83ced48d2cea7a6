// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tomtom215/domsafe/internal/database"
	"github.com/tomtom215/domsafe/internal/models"
)

const (
	timeOfDayLayout = "15:04:05"
	dateTimeLayout  = "2006-01-02 15:04:05"

	msgDatabaseUnavailable = "Database connection failed"
	msgQueryFailed         = "Database query failed"
)

var errNoStore = errors.New("store not configured")

// requireStore answers 500 when the database was never opened.
func (h *Handler) requireStore(w http.ResponseWriter, r *http.Request) bool {
	if h.store == nil {
		respondError(w, r, http.StatusInternalServerError, codeDatabase, msgDatabaseUnavailable, errNoStore)
		return false
	}
	return true
}

// storeFailed answers 500, telling an unreachable store apart from a failed query.
func storeFailed(w http.ResponseWriter, r *http.Request, err error) {
	msg := msgQueryFailed
	if errors.Is(err, database.ErrUnavailable) {
		msg = msgDatabaseUnavailable
	}
	respondError(w, r, http.StatusInternalServerError, codeDatabase, msg, err)
}

// HistoricalData returns one sensor's readings for a day as chart series
// labelled HH:MM:SS.
func (h *Handler) HistoricalData(w http.ResponseWriter, r *http.Request) {
	q := parseHistoryQuery(r)
	if apiErr := validateQuery(q, msgDateRequired); apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}
	if !h.requireStore(w, r) {
		return
	}

	from, to := q.Day()
	points, err := h.store.SensorReadings(r.Context(), models.SensorType(q.Sensor), from, to)
	if err != nil {
		storeFailed(w, r, err)
		return
	}

	respondData(w, chartSeries(points, timeOfDayLayout))
}

// DailyAverages returns one sensor's raw readings over a date range,
// labelled with the full timestamp. Despite the name no averaging is done.
func (h *Handler) DailyAverages(w http.ResponseWriter, r *http.Request) {
	q := parseSensorRangeQuery(r)
	if apiErr := validateQuery(q, msgDateRangeRequired); apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}
	if apiErr := rangeOrderError(q.RangeQuery); apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}
	if !h.requireStore(w, r) {
		return
	}

	from, to := q.Bounds()
	points, err := h.store.SensorReadings(r.Context(), models.SensorType(q.Sensor), from, to)
	if err != nil {
		storeFailed(w, r, err)
		return
	}

	respondData(w, chartSeries(points, dateTimeLayout))
}

// DailyAlerts counts alert and armed status rows per hour of day over a
// date range. Hours without rows are omitted.
func (h *Handler) DailyAlerts(w http.ResponseWriter, r *http.Request) {
	q := parseRangeQuery(r)
	if apiErr := validateQuery(q, msgDateRangeRequired); apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}
	if apiErr := rangeOrderError(q); apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}
	if !h.requireStore(w, r) {
		return
	}

	from, to := q.Bounds()
	counts, err := h.store.AlertCountsByHour(r.Context(), from, to)
	if err != nil {
		storeFailed(w, r, err)
		return
	}

	series := models.AlertSeries{
		Labels: make([]string, len(counts)),
		Values: make([]int, len(counts)),
	}
	for i, c := range counts {
		series.Labels[i] = fmt.Sprintf("%02d:00", c.Hour)
		series.Values[i] = c.Count
	}
	respondData(w, series)
}

// Intrusions returns the latest alert rows for a day, newest first.
func (h *Handler) Intrusions(w http.ResponseWriter, r *http.Request) {
	q := parseDateQuery(r)
	if apiErr := validateQuery(q, msgDateRequired); apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}
	if !h.requireStore(w, r) {
		return
	}

	from, to := q.Day()
	events, err := h.store.Intrusions(r.Context(), from, to, intrusionLimit)
	if err != nil {
		storeFailed(w, r, err)
		return
	}

	intrusions := make([]models.Intrusion, len(events))
	for i, ev := range events {
		intrusions[i] = models.Intrusion{
			Timestamp: ev.Timestamp.Format(dateTimeLayout),
			EventType: ev.EventType,
			Details:   ev.Details,
		}
	}
	respondData(w, intrusions)
}

func chartSeries(points []models.ReadingPoint, layout string) models.ChartSeries {
	series := models.ChartSeries{
		Labels: make([]string, len(points)),
		Values: make([]float64, len(points)),
	}
	for i, p := range points {
		series.Labels[i] = p.Timestamp.Format(layout)
		series.Values[i] = p.Value
	}
	return series
}
