// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

package api

import (
	"fmt"
	"net/http"

	"github.com/tomtom215/domsafe/internal/logging"
	"github.com/tomtom215/domsafe/internal/models"
	"github.com/tomtom215/domsafe/internal/validation"
)

// Control forwards an action to a device feed.
func (h *Handler) Control(w http.ResponseWriter, r *http.Request) {
	var req models.ControlRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, codeValidation, msgInvalidRequest, nil)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondError(w, r, http.StatusBadRequest, codeValidation, msgInvalidRequest, nil)
		return
	}

	feedKey, ok := models.ControlFeed(req.Device)
	if !ok {
		respondError(w, r, http.StatusBadRequest, codeUnknownDevice, "Unknown device", nil)
		return
	}

	if !h.feeds.SendCommand(r.Context(), feedKey, string(req.Action)) {
		respondError(w, r, http.StatusInternalServerError, codeFeed, "Failed to send command", nil)
		return
	}

	logging.Ctx(r.Context()).Info().
		Str("device", req.Device).
		Str("action", sanitizeLogValue(string(req.Action))).
		Msg("Device command sent")
	respondMessage(w, fmt.Sprintf("Command sent to %s", req.Device))
}

// SecurityToggle arms or disarms the alarm.
func (h *Handler) SecurityToggle(w http.ResponseWriter, r *http.Request) {
	var req models.SecurityToggleRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, codeValidation, msgInvalidRequest, nil)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondError(w, r, http.StatusBadRequest, codeValidation, msgInvalidRequest, nil)
		return
	}

	enabled := *req.Enabled
	if !h.feeds.SendCommand(r.Context(), models.FeedStatus, models.AlarmValue(enabled)) {
		respondError(w, r, http.StatusInternalServerError, codeFeed, "Failed to toggle security system", nil)
		return
	}

	state := "disabled"
	if enabled {
		state = "enabled"
	}
	logging.Ctx(r.Context()).Info().Bool("enabled", enabled).Msg("Security system toggled")
	respondMessage(w, "Security system "+state)
}
