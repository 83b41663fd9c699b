package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-backend-kit/internal/config"
	"github.com/MKhiriev/go-backend-kit/internal/utils"
)

const maxConfigBodyBytes = 1 << 20

type validateConfigResponse struct {
	Valid  bool          `json:"valid"`
	Config config.Values `json:"config,omitempty"`
}

// getConfig returns the running configuration with secrets masked.
func (h *Handler) getConfig(w http.ResponseWriter, r *http.Request) error {
	masked, err := h.cfg.Masked()
	if err != nil {
		return err
	}

	_, err = utils.WriteJSON(w, masked, http.StatusOK)
	return err
}

// validateConfig validates the JSON configuration tree in the request body.
// With ?partial=true only the present fields are checked; otherwise the full
// schema and the production secret gate apply and the normalized result is
// returned masked.
func (h *Handler) validateConfig(w http.ResponseWriter, r *http.Request) error {
	var raw config.Values
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxConfigBodyBytes)).Decode(&raw); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequestBody, err)
	}
	if raw == nil {
		return fmt.Errorf("%w: expected a JSON object", ErrInvalidRequestBody)
	}

	if config.ParseBool(r.URL.Query().Get("partial"), false) {
		if _, err := config.ValidatePartial(raw); err != nil {
			return err
		}
		_, err := utils.WriteJSON(w, validateConfigResponse{Valid: true}, http.StatusOK)
		return err
	}

	cfg, err := config.Validate(raw)
	if err != nil {
		return err
	}
	masked, err := cfg.Masked()
	if err != nil {
		return err
	}

	_, err = utils.WriteJSON(w, validateConfigResponse{Valid: true, Config: masked}, http.StatusOK)
	return err
}
