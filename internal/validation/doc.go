// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is built once and shared. Field names in error
// messages come from the query or json tag so they match what the client
// sent.
//
// # Custom Tags
//
//   - isodate: a calendar date in YYYY-MM-DD form
//   - sensor: a registered sensor type (temperature, humidity)
//
// # Usage
//
//	type historyQuery struct {
//	    Date   string `query:"date" validate:"required,isodate"`
//	    Sensor string `query:"sensor" validate:"sensor"`
//	}
//
//	if err := validation.ValidateStruct(&q); err != nil {
//	    apiErr := err.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message)
//	    return
//	}
package validation
