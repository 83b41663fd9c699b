// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"
)

// Sentinel errors raised by the transport layer itself. Callers can match
// against them with [errors.Is].
var (
	// ErrRouteNotFound is reported for requests that match no route.
	ErrRouteNotFound = errors.New("route not found")

	// ErrMethodNotAllowed is reported when the path exists but the method
	// is not registered for it.
	ErrMethodNotAllowed = errors.New("method not allowed")

	// ErrEndpointDisabled is reported by endpoints that are switched off in
	// the current environment.
	ErrEndpointDisabled = errors.New("endpoint is disabled")

	// ErrInvalidRequestBody is reported when a request body cannot be decoded.
	ErrInvalidRequestBody = errors.New("invalid request body")
)

// HTTPError is an error that carries the response it should produce. Handlers
// return it to control the status, message and details of the envelope.
type HTTPError struct {
	Status  int
	Message string
	Details any
	Err     error
}

// NewHTTPError returns an HTTPError with status and message.
func NewHTTPError(status int, message string) *HTTPError {
	return &HTTPError{Status: status, Message: message}
}

func BadRequest(message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message)
}

func NotFound(message string) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message)
}

func Forbidden(message string) *HTTPError {
	return NewHTTPError(http.StatusForbidden, message)
}

func UnprocessableEntity(message string) *HTTPError {
	return NewHTTPError(http.StatusUnprocessableEntity, message)
}

func InternalServerError(message string) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, message)
}

// WithDetails attaches structured details to the envelope.
func (e *HTTPError) WithDetails(details any) *HTTPError {
	e.Details = details
	return e
}

// Wrap records the underlying cause. It is logged but not sent to clients.
func (e *HTTPError) Wrap(err error) *HTTPError {
	e.Err = err
	return e
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}
