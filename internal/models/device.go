// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

package models

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/goccy/go-json"
)

// Feed keys polled by the live dashboard.
const (
	FeedStatus      = "status"
	FeedTemperature = "temperature"
	FeedHumidity    = "humidity"
)

// controlFeeds maps controllable device names to the feed that receives
// their commands.
var controlFeeds = map[string]string{
	"system": "system",
	"screen": "screen",
	"light":  "light",
	"buzzer": "buzzer",
	"clock":  "clock",
	"dht":    "dht",
}

// ControlFeed returns the feed key for a controllable device.
func ControlFeed(device string) (string, bool) {
	key, ok := controlFeeds[device]
	return key, ok
}

// ControlDevices returns the controllable device names in sorted order.
func ControlDevices() []string {
	devices := make([]string, 0, len(controlFeeds))
	for d := range controlFeeds {
		devices = append(devices, d)
	}
	sort.Strings(devices)
	return devices
}

// AlarmValue returns the status feed value for the security toggle.
func AlarmValue(enabled bool) string {
	if enabled {
		return AlarmArmed
	}
	return AlarmDisarmed
}

// CommandValue is a value pushed to a device feed. The broker stores every
// value as text, so JSON numbers are kept in their literal form and booleans
// are sent as True or False, the text the devices already parse.
type CommandValue string

// UnmarshalJSON accepts a JSON string, number or boolean.
func (c *CommandValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = CommandValue(s)
		return nil
	}

	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch b := v.(type) {
	case float64:
		*c = CommandValue(data)
		return nil
	case bool:
		*c = "False"
		if b {
			*c = "True"
		}
		return nil
	}
	return fmt.Errorf("command value must be a string, number or boolean, got %s", data)
}
