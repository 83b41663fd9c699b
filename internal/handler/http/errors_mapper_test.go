package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-backend-kit/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"route not found", ErrRouteNotFound, http.StatusNotFound},
		{"wrapped method not allowed", fmt.Errorf("%w: PUT /health", ErrMethodNotAllowed), http.StatusMethodNotAllowed},
		{"endpoint disabled", ErrEndpointDisabled, http.StatusNotFound},
		{"invalid body", fmt.Errorf("%w: EOF", ErrInvalidRequestBody), http.StatusBadRequest},
		{"validation error", &config.ValidationError{Issues: []config.Issue{{Path: "app.port", Message: "is required"}}}, http.StatusUnprocessableEntity},
		{"insecure production config", fmt.Errorf("%w: auth.jwtSecret", config.ErrInsecureProductionConfig), http.StatusUnprocessableEntity},
		{"unknown preset", config.ErrUnknownPreset, http.StatusBadRequest},
		{"config file not found", config.ErrConfigFileNotFound, http.StatusNotFound},
		{"unsupported format", config.ErrUnsupportedFileFormat, http.StatusUnsupportedMediaType},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}

func TestStatusFromError_JoinedErrorsAreDeterministic(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "invalid config before missing file",
			err:  errors.Join(config.ErrConfigFileNotFound, &config.ValidationError{}),
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "unsupported format before unknown preset",
			err:  errors.Join(config.ErrUnknownPreset, config.ErrUnsupportedFileFormat),
			want: http.StatusUnsupportedMediaType,
		},
		{
			name: "invalid body before route errors",
			err:  errors.Join(ErrRouteNotFound, ErrInvalidRequestBody),
			want: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 50; i++ {
				require.Equal(t, tt.want, statusFromError(tt.err))
			}
		})
	}
}

func TestToHTTPError_PassesThroughHTTPError(t *testing.T) {
	original := Forbidden("no access").WithDetails(map[string]string{"role": "guest"})

	got := toHTTPError(fmt.Errorf("wrapped: %w", original), true)

	assert.Same(t, original, got)
}

func TestToHTTPError_UnknownErrors(t *testing.T) {
	cause := errors.New("database exploded")

	t.Run("hidden", func(t *testing.T) {
		got := toHTTPError(cause, true)

		assert.Equal(t, http.StatusInternalServerError, got.Status)
		assert.Equal(t, internalErrorMessage, got.Message)
		assert.ErrorIs(t, got, cause)
	})

	t.Run("shown", func(t *testing.T) {
		got := toHTTPError(cause, false)

		assert.Equal(t, http.StatusInternalServerError, got.Status)
		assert.Equal(t, "database exploded", got.Message)
	})
}

func TestToHTTPError_ValidationDetails(t *testing.T) {
	issues := []config.Issue{
		{Path: "database.host", Message: "is required"},
		{Path: "app.port", Message: "must be at most 65535"},
	}

	got := toHTTPError(&config.ValidationError{Issues: issues}, true)

	assert.Equal(t, http.StatusUnprocessableEntity, got.Status)
	assert.Equal(t, "configuration is invalid", got.Message)
	assert.Equal(t, issues, got.Details)
}

func TestToHTTPError_MappedMessageIsShownEvenInProduction(t *testing.T) {
	err := fmt.Errorf("%w: auth.jwtSecret must be at least 32 characters long in production", config.ErrInsecureProductionConfig)

	got := toHTTPError(err, true)

	assert.Equal(t, http.StatusUnprocessableEntity, got.Status)
	assert.Equal(t, err.Error(), got.Message)
}

func TestHTTPError(t *testing.T) {
	tests := []struct {
		name   string
		err    *HTTPError
		status int
	}{
		{"bad request", BadRequest("m"), http.StatusBadRequest},
		{"not found", NotFound("m"), http.StatusNotFound},
		{"forbidden", Forbidden("m"), http.StatusForbidden},
		{"unprocessable", UnprocessableEntity("m"), http.StatusUnprocessableEntity},
		{"internal", InternalServerError("m"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Equal(t, "m", tt.err.Error())
			assert.Nil(t, tt.err.Unwrap())
		})
	}

	cause := errors.New("cause")
	wrapped := BadRequest("bad input").Wrap(cause)
	require.ErrorIs(t, wrapped, cause)
	assert.Equal(t, "bad input: cause", wrapped.Error())
}
