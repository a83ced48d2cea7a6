// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/domsafe/internal/logging"
	"github.com/tomtom215/domsafe/internal/models"
)

// Error codes written into the envelope.
const (
	codeValidation     = "VALIDATION_ERROR"
	codeUnknownDevice  = "UNKNOWN_DEVICE"
	codeDatabase       = "DATABASE_ERROR"
	codeFeed           = "FEED_ERROR"
	codeNotReady       = "NOT_READY"
	maxRequestBodySize = 1 << 16
)

var errEmptyBody = errors.New("empty body")

// sanitizeLogValue replaces control characters so client-supplied values
// cannot forge log lines.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends a JSON response with proper headers
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

func respondData(w http.ResponseWriter, data interface{}) {
	respondJSON(w, http.StatusOK, &models.APIResponse{Success: true, Data: data})
}

func respondMessage(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusOK, &models.APIResponse{Success: true, Message: message})
}

// respondError sends an error response. err is logged, never sent.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	if err != nil {
		logging.Ctx(r.Context()).Error().
			Str("code", code).
			Str("path", sanitizeLogValue(r.URL.Path)).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API Error")
	}

	respondJSON(w, status, &models.APIResponse{
		Success: false,
		Error:   message,
		Code:    code,
	})
}

// decodeJSONBody decodes a size-limited JSON request body into dst.
func decodeJSONBody(r *http.Request, dst interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodySize))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if len(body) == 0 {
		return errEmptyBody
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}
