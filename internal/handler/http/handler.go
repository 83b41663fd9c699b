package http

import (
	"github.com/MKhiriev/go-backend-kit/internal/config"
	"github.com/MKhiriev/go-backend-kit/internal/logger"
	"github.com/MKhiriev/go-backend-kit/internal/metrics"
	"github.com/MKhiriev/go-backend-kit/models"
)

type Handler struct {
	cfg     *config.Config
	metrics *metrics.HTTP
	build   models.BuildInfo

	logger *logger.Logger
}

// NewHandler creates the HTTP handler. m may be nil, in which case no
// request metrics are recorded and /metrics is not served.
func NewHandler(cfg *config.Config, m *metrics.HTTP, build models.BuildInfo, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		cfg:     cfg,
		metrics: m,
		build:   build,
		logger:  logger,
	}
}
