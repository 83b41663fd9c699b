package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-backend-kit/internal/config"
	"github.com/MKhiriev/go-backend-kit/internal/logger"
	"github.com/MKhiriev/go-backend-kit/internal/metrics"
	"github.com/MKhiriev/go-backend-kit/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// testConfig returns the validated test configuration after applying mutate.
func testConfig(t *testing.T, mutate func(*config.Config)) *config.Config {
	t.Helper()
	cfg, err := config.NewBuilder().FromTest().Build()
	require.NoError(t, err)
	if mutate != nil {
		mutate(cfg)
	}
	return cfg
}

func productionConfig(t *testing.T) *config.Config {
	return testConfig(t, func(c *config.Config) { c.App.NodeEnv = config.EnvProduction })
}

var testBuild = models.NewBuildInfo("test-version", "2026-01-02", "abc123")

// newTestHandler creates a Handler over the test configuration with a nop
// logger and no metrics.
func newTestHandler() *Handler {
	cfg, err := config.Validate(config.LoadTestConfig())
	if err != nil {
		panic(err)
	}
	return &Handler{cfg: cfg, build: testBuild, logger: logger.Nop()}
}

// newRouter builds the full router for cfg with fresh metrics.
func newRouter(t *testing.T, cfg *config.Config) (http.Handler, *metrics.HTTP) {
	t.Helper()
	m := metrics.NewHTTP("test")
	return NewHandler(cfg, m, testBuild, logger.Nop()).Init(), m
}

func serve(h http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// injectLogger puts zerolog.Logger into request context the same way
// withTraceID middleware does (via zerolog/log.Ctx).
func injectLogger(r *http.Request, l zerolog.Logger) *http.Request {
	ctx := l.WithContext(r.Context())
	return r.WithContext(ctx)
}

// makeRequest creates a test request with a logger writing to buf in context.
func makeRequest(method, path string, buf *bytes.Buffer) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	return injectLogger(req, zerolog.New(buf).With().Timestamp().Logger())
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), rr.Body.String())
	return resp
}
