package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/MKhiriev/go-backend-kit/internal/config"
	myHTTP "github.com/MKhiriev/go-backend-kit/internal/handler/http"
	"github.com/MKhiriev/go-backend-kit/internal/logger"
	"github.com/MKhiriev/go-backend-kit/internal/server"
	"github.com/MKhiriev/go-backend-kit/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRunEnv(t *testing.T, prefix string, vars map[string]string) {
	t.Helper()
	t.Setenv("ENV_FILE", "")
	t.Setenv("CONFIG_PRESET", "")
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("ENV_PREFIX", prefix)
	for k, v := range vars {
		t.Setenv(prefix+k, v)
	}
}

func TestRun_ConfigError(t *testing.T) {
	setRunEnv(t, "RUNCFG_", nil)

	called := false
	err := run(models.NewBuildInfo("v1", "", ""), func(*myHTTP.Handler, config.App, *logger.Logger) (server.Server, error) {
		called = true
		return nil, nil
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.False(t, called)
}

func TestRun_ServerErrorIsLoggedAndReturned(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "server.log")
	setRunEnv(t, "RUNSRV_", map[string]string{
		"DATABASE_HOST":      "db",
		"DATABASE_USERNAME":  "svc",
		"DATABASE_PASSWORD":  "pw",
		"DATABASE_NAME":      "svc",
		"JWT_SECRET":         "0123456789abcdef",
		"JWT_REFRESH_SECRET": "fedcba9876543210",
		"ADMIN_EMAIL":        "admin@example.com",
		"ADMIN_PASSWORD":     "admin-pass",
		"STORAGE_ENDPOINT":   "s3",
		"STORAGE_ACCESS_KEY": "a",
		"STORAGE_SECRET_KEY": "s",
		"STORAGE_BUCKET":     "bucket",
		"RABBITMQ_URI":       "amqp://localhost:5672",
		"FEATURE_METRICS":    "false",
		"LOG_TRANSPORTS":     "file",
		"LOG_FILE_PATH":      logPath,
	})
	boom := errors.New("listener unavailable")

	err := run(models.NewBuildInfo("v1", "", ""), func(*myHTTP.Handler, config.App, *logger.Logger) (server.Server, error) {
		return nil, boom
	})

	require.ErrorIs(t, err, boom)
	data, readErr := os.ReadFile(logPath)
	require.NoError(t, readErr)
	assert.Contains(t, string(data), "error creating server")
	assert.Contains(t, string(data), "listener unavailable")
}

func TestMetricsNamespace(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "go-backend-kit", want: "go_backend_kit"},
		{name: "billing", want: "billing"},
		{name: "9lives", want: "_lives"},
		{name: "api v2", want: "api_v2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, metricsNamespace(tt.name))
		})
	}
}
