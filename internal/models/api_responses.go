// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

package models

// APIResponse is the envelope returned by every /api endpoint.
//
// Exactly one payload field is set: Data for reads, Status for
// /api/system-status, Message for commands, Error on failure.
//
//	{"success": true, "data": {"labels": ["14:00"], "values": [1]}}
//	{"success": false, "error": "Date parameter required", "code": "VALIDATION_ERROR"}
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Status  interface{} `json:"status,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// ChartSeries holds parallel label/value arrays for line charts.
type ChartSeries struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// AlertSeries holds parallel label/count arrays for the alerts bar chart.
type AlertSeries struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

// Intrusion is one alert row shown in the intrusion log.
type Intrusion struct {
	Timestamp string    `json:"timestamp"` // 2006-01-02 15:04:05
	EventType EventType `json:"event_type"`
	Details   string    `json:"details"`
}

// LiveData is the payload of /api/live-data. Absent numeric feeds are null.
type LiveData struct {
	AlarmStatus string   `json:"alarm_status"`
	Temperature *float64 `json:"temperature"`
	Humidity    *float64 `json:"humidity"`
	Timestamp   string   `json:"timestamp"`
}

// SystemStatus is the payload of /api/system-status.
type SystemStatus struct {
	Alarm       string   `json:"alarm"`
	Temperature *float64 `json:"temperature"`
	Humidity    *float64 `json:"humidity"`
	LastUpdate  string   `json:"last_update"`
}

// ControlRequest is the body of POST /api/control.
type ControlRequest struct {
	Device string `json:"device" validate:"required"`
	Action CommandValue `json:"action" validate:"required"`
}

// SecurityToggleRequest is the body of POST /api/security-toggle. Enabled
// is a pointer so a missing field can be told apart from false.
type SecurityToggleRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}
