// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

package models

import "time"

// Alarm status tokens published on the "status" feed.
const (
	AlarmArmed    = "armed"
	AlarmDisarmed = "disarmed"
	AlarmAlert    = "alert"
	AlarmUnknown  = "unknown"
)

// EventType classifies a security event.
type EventType string

const (
	EventAlert       EventType = "alert"
	EventIntrusion   EventType = "intrusion"
	EventStateChange EventType = "state_change"
)

// EventTypeForStatus derives the event type from a raw alarm status.
// Only "alert" is an alert; every other status is a state change.
func EventTypeForStatus(status string) EventType {
	if status == AlarmAlert {
		return EventAlert
	}
	return EventStateChange
}

// SecurityEvent is one alarm status change.
type SecurityEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`
	EventType EventType `json:"event_type"`
	Details   string    `json:"details"`
}

// NewSecurityEvent builds the event recorded for a status logged at ts.
func NewSecurityEvent(ts time.Time, status string) SecurityEvent {
	return SecurityEvent{
		Timestamp: ts,
		Status:    status,
		EventType: EventTypeForStatus(status),
		Details:   "System " + status,
	}
}

// HourCount is the number of alarm rows logged during one hour of the day.
type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}
