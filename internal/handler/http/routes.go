package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const compressionLevel = 5

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(
		h.withTraceID,
		h.withLogging,
		h.withRecovery,
		h.withCORS(),
		middleware.Compress(compressionLevel),
	)

	router.NotFound(h.notFound)
	router.MethodNotAllowed(h.methodNotAllowed)

	router.Get("/health", h.Handle(h.health))
	router.Get("/api/version", h.Handle(h.getVersion))
	router.Get("/api/build", h.Handle(h.getBuildInfo))

	// configuration introspection is development tooling only
	router.Group(func(r chi.Router) {
		r.Use(h.rejectInProduction)
		r.Get("/api/config", h.Handle(h.getConfig))
		r.Post("/api/config/validate", h.Handle(h.validateConfig))
	})

	if h.cfg.Features.EnableMetrics && h.metrics != nil {
		router.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	}

	return router
}
