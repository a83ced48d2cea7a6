// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

/*
Package models defines the data structures shared by the DomSafe store,
the CSV reconciler and the HTTP API.

Domain records:
  - SensorReading: one temperature/humidity sample, identified by (timestamp, sensor type)
  - SecurityEvent: one alarm status change, identified by (timestamp, event type, details)
  - FeedValue: the last value of a broker feed

API shapes:
  - APIResponse: the {success, data|status|message|error} envelope
  - ChartSeries / AlertSeries: parallel label/value arrays for the dashboard charts
  - Intrusion, LiveData, SystemStatus
*/
package models
