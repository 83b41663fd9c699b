// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-backend-kit/internal/logger"
	"github.com/MKhiriev/go-backend-kit/internal/utils"
)

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// errorResponse is the JSON envelope written for every failed request.
type errorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Error      string `json:"error"`
	Details    any    `json:"details,omitempty"`
	Path       string `json:"path"`
	Method     string `json:"method"`
	Timestamp  string `json:"timestamp"`
	TraceID    string `json:"traceId,omitempty"`
}

// writeError logs err and writes its envelope. Server errors are logged at
// error level with the cause, client errors at debug level.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	httpErr := toHTTPError(err, h.cfg.IsProduction())

	log := logger.FromRequest(r)
	if httpErr.Status >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", httpErr.Status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", httpErr.Status).Msg("request rejected")
	}

	resp := errorResponse{
		StatusCode: httpErr.Status,
		Message:    httpErr.Message,
		Error:      http.StatusText(httpErr.Status),
		Details:    httpErr.Details,
		Path:       r.URL.Path,
		Method:     r.Method,
		Timestamp:  time.Now().UTC().Format(timestampLayout),
	}
	if traceID, ok := utils.GetTraceIDFromContext(r.Context()); ok {
		resp.TraceID = traceID
	}

	if _, writeErr := utils.WriteJSON(w, resp, httpErr.Status); writeErr != nil {
		log.Error().Err(writeErr).Msg("error writing error response")
	}
}
