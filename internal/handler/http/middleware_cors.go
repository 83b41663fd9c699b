package http

import (
	"net/http"
	"slices"

	"github.com/MKhiriev/go-backend-kit/internal/config"
	"github.com/go-chi/cors"
)

const corsMaxAgeSeconds = 300

var defaultCORSOrigins = []string{"*"}

// withCORS applies the CORS policy from app.corsOrigin, a comma separated
// list of origins where "*" allows any origin. Credentials are only allowed
// for an explicit origin list.
func (h *Handler) withCORS() func(http.Handler) http.Handler {
	origins := config.ParseStringList(h.cfg.App.CORSOrigin, defaultCORSOrigins)
	if len(origins) == 0 {
		origins = defaultCORSOrigins
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", traceIDHeader},
		ExposedHeaders:   []string{traceIDHeader},
		AllowCredentials: !slices.Contains(origins, "*"),
		MaxAge:           corsMaxAgeSeconds,
	})
}
