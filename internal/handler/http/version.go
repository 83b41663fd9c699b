package http

import (
	"net/http"

	"github.com/MKhiriev/go-backend-kit/internal/utils"
)

func (h *Handler) getVersion(w http.ResponseWriter, r *http.Request) error {
	_, err := utils.WriteText(w, h.build.Version(), http.StatusOK)
	return err
}

func (h *Handler) getBuildInfo(w http.ResponseWriter, r *http.Request) error {
	_, err := utils.WriteJSON(w, h.build.Response(), http.StatusOK)
	return err
}
