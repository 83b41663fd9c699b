package http

import "net/http"

// HandlerFunc is an HTTP handler that reports failures by returning them.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handle adapts fn to [http.HandlerFunc]. A returned [*HTTPError] is written
// as is; other errors are mapped by status and, when unknown, reported as a
// 500 with a generic message in production.
func (h *Handler) Handle(fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			h.writeError(w, r, err)
		}
	}
}
