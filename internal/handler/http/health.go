package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-backend-kit/internal/utils"
)

type healthResponse struct {
	Status      string `json:"status"`
	Name        string `json:"name"`
	Environment string `json:"environment"`
	Timestamp   string `json:"timestamp"`
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) error {
	_, err := utils.WriteJSON(w, healthResponse{
		Status:      "ok",
		Name:        h.cfg.App.Name,
		Environment: h.cfg.App.NodeEnv,
		Timestamp:   time.Now().UTC().Format(timestampLayout),
	}, http.StatusOK)
	return err
}
