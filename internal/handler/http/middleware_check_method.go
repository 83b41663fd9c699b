// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
)

// notFound is registered as the router's NotFound handler.
func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, r, fmt.Errorf("%w: %s %s", ErrRouteNotFound, r.Method, r.URL.Path))
}

// methodNotAllowed is registered as the router's MethodNotAllowed handler.
func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, r, fmt.Errorf("%w: %s %s", ErrMethodNotAllowed, r.Method, r.URL.Path))
}

// rejectInProduction hides the wrapped routes when app.nodeEnv is production.
func (h *Handler) rejectInProduction(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.cfg.IsProduction() {
			h.writeError(w, r, fmt.Errorf("%w: %s", ErrEndpointDisabled, r.URL.Path))
			return
		}
		next.ServeHTTP(w, r)
	})
}
