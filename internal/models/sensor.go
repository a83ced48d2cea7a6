// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

package models

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// SensorType names a registered environmental sensor. Each type has its own
// table in the store, named after the type.
type SensorType string

const (
	SensorTemperature SensorType = "temperature"
	SensorHumidity    SensorType = "humidity"
)

// SensorTypes lists every registered sensor.
var SensorTypes = []SensorType{SensorTemperature, SensorHumidity}

// Valid reports whether s is a registered sensor.
func (s SensorType) Valid() bool {
	switch s {
	case SensorTemperature, SensorHumidity:
		return true
	}
	return false
}

// Unit returns the measurement unit stored alongside readings.
func (s SensorType) Unit() string {
	switch s {
	case SensorTemperature:
		return "°C"
	case SensorHumidity:
		return "%"
	}
	return ""
}

// SensorReading is a single sample written by the reconciler.
type SensorReading struct {
	SensorType SensorType `json:"sensor_type"`
	Timestamp  time.Time  `json:"timestamp"`
	Value      float64    `json:"value"`
	Unit       string     `json:"unit"`
}

// ReadingPoint is a (time, value) pair read back for charting.
type ReadingPoint struct {
	Timestamp time.Time `json:"time"`
	Value     float64   `json:"value"`
}

// FeedValue is the latest datum of a broker feed. Value is always a string
// on the wire; numeric feeds are converted with Float.
type FeedValue struct {
	ID        string `json:"id,omitempty"`
	FeedKey   string `json:"feed_key,omitempty"`
	Value     string `json:"value"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Float parses the value as a finite float64.
func (f FeedValue) Float() (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(f.Value), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// FeedInfo describes one feed on the broker account.
type FeedInfo struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	LastValue string `json:"last_value,omitempty"`
}
