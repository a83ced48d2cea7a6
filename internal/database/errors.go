// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

package database

import (
	"errors"
	"io"

	"github.com/tomtom215/domsafe/internal/logging"
)

var (
	// ErrUnknownSensor is returned for a sensor type without a table.
	ErrUnknownSensor = errors.New("unknown sensor type")

	// ErrUnavailable wraps failures to open or reach the database file.
	ErrUnavailable = errors.New("database unavailable")
)

// closeWithLog closes a resource and logs any error
func closeWithLog(closer io.Closer, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}

// closeQuietly closes a resource and explicitly ignores any error
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}
