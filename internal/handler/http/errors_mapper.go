package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-backend-kit/internal/config"
)

const internalErrorMessage = "Internal server error"

// errorStatuses is checked in order; the first target matched by a
// joined or wrapped error decides the status.
var errorStatuses = []struct {
	target error
	status int
}{
	{ErrInvalidRequestBody, http.StatusBadRequest},
	{ErrMethodNotAllowed, http.StatusMethodNotAllowed},
	{ErrRouteNotFound, http.StatusNotFound},
	{ErrEndpointDisabled, http.StatusNotFound},

	{config.ErrInvalidConfig, http.StatusUnprocessableEntity},
	{config.ErrInsecureProductionConfig, http.StatusUnprocessableEntity},
	{config.ErrConfigFileInvalid, http.StatusUnprocessableEntity},
	{config.ErrUnsupportedFileFormat, http.StatusUnsupportedMediaType},
	{config.ErrUnknownPreset, http.StatusBadRequest},
	{config.ErrConfigFileNotFound, http.StatusNotFound},
	{config.ErrEnvFileNotFound, http.StatusNotFound},
}

func statusFromError(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.target) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// toHTTPError converts any handler error into the HTTPError describing its
// response. Unknown errors become a 500 whose message is hidden when hide
// is true.
func toHTTPError(err error, hide bool) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		message := internalErrorMessage
		if !hide {
			message = err.Error()
		}
		return InternalServerError(message).Wrap(err)
	}

	var validationErr *config.ValidationError
	if errors.As(err, &validationErr) {
		return NewHTTPError(status, "configuration is invalid").
			WithDetails(validationErr.Issues).
			Wrap(err)
	}

	return NewHTTPError(status, err.Error()).Wrap(err)
}
