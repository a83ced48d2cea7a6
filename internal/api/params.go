// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/domsafe/internal/models"
	"github.com/tomtom215/domsafe/internal/validation"
)

// Messages for missing required parameters. The dashboard shows them as-is.
const (
	msgDateRequired      = "Date parameter required"
	msgDateRangeRequired = "Start and end dates required"
	msgInvalidRequest    = "Invalid request"
)

// DateQuery selects one calendar day.
type DateQuery struct {
	Date string `query:"date" validate:"required,isodate"`
}

// Day returns the half-open interval [date, date+1).
func (q DateQuery) Day() (time.Time, time.Time) {
	from, _ := time.Parse(validation.DateLayout, q.Date)
	return from, from.AddDate(0, 0, 1)
}

// HistoryQuery selects one sensor on one day.
type HistoryQuery struct {
	DateQuery
	Sensor string `query:"sensor" validate:"sensor"`
}

// RangeQuery selects an inclusive range of days.
type RangeQuery struct {
	StartDate string `query:"start_date" validate:"required,isodate"`
	EndDate   string `query:"end_date" validate:"required,isodate"`
}

// Bounds returns the half-open interval [start, end+1).
func (q RangeQuery) Bounds() (time.Time, time.Time) {
	from, _ := time.Parse(validation.DateLayout, q.StartDate)
	to, _ := time.Parse(validation.DateLayout, q.EndDate)
	return from, to.AddDate(0, 0, 1)
}

// SensorRangeQuery selects one sensor over a range of days.
type SensorRangeQuery struct {
	RangeQuery
	Sensor string `query:"sensor" validate:"sensor"`
}

func parseDateQuery(r *http.Request) DateQuery {
	return DateQuery{Date: r.URL.Query().Get("date")}
}

func parseHistoryQuery(r *http.Request) HistoryQuery {
	return HistoryQuery{DateQuery: parseDateQuery(r), Sensor: sensorParam(r)}
}

func parseRangeQuery(r *http.Request) RangeQuery {
	q := r.URL.Query()
	return RangeQuery{StartDate: q.Get("start_date"), EndDate: q.Get("end_date")}
}

func parseSensorRangeQuery(r *http.Request) SensorRangeQuery {
	return SensorRangeQuery{RangeQuery: parseRangeQuery(r), Sensor: sensorParam(r)}
}

// sensorParam returns the sensor query parameter, defaulting to temperature.
func sensorParam(r *http.Request) string {
	if s := r.URL.Query().Get("sensor"); s != "" {
		return s
	}
	return string(models.SensorTemperature)
}

// validateQuery validates a query struct. A missing required parameter is
// reported with missingMsg; malformed values keep the validator's message.
func validateQuery(q interface{}, missingMsg string) *validation.APIError {
	verr := validation.ValidateStruct(q)
	if verr == nil {
		return nil
	}
	for _, e := range verr.Errors() {
		if e.Tag() == "required" {
			return &validation.APIError{Code: codeValidation, Message: missingMsg}
		}
	}
	return verr.ToAPIError()
}

// rangeOrderError rejects an end date before the start date. Both dates
// must already be valid.
func rangeOrderError(q RangeQuery) *validation.APIError {
	if q.EndDate < q.StartDate {
		return &validation.APIError{Code: codeValidation, Message: "end_date must not be before start_date"}
	}
	return nil
}
