package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/MKhiriev/go-backend-kit/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs confcheck with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd("test")
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// requiredEnv returns every variable without a default, named with prefix.
func requiredEnv(prefix string) map[string]string {
	vars := map[string]string{
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
	}
	out := make(map[string]string, len(vars))
	for k, v := range vars {
		out[prefix+k] = v
	}
	return out
}

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// ── validate ──

func TestValidate_TestConfig(t *testing.T) {
	stdout, _, err := execute(t, "validate", "--test")

	require.NoError(t, err)
	assert.Equal(t, "configuration is valid (nodeEnv: test)\n", stdout)
}

func TestValidate_ProductionPresetRejectsTestSecrets(t *testing.T) {
	_, stderr, err := execute(t, "validate", "--test", "--preset", "production")

	require.Error(t, err)
	assert.ErrorIs(t, err, errConfigInvalid)
	assert.ErrorIs(t, err, config.ErrInsecureProductionConfig)
	assert.Contains(t, stderr, "admin.password")
}

func TestValidate_ReportsEveryIssue(t *testing.T) {
	path := writeFile(t, "bad.json", `{"app": {"port": 0}, "redis": {"db": 99}}`)

	_, stderr, err := execute(t, "validate", "--test", "--file", path)

	require.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.Contains(t, stderr, "  - app.port: must be at least 1\n")
	assert.Contains(t, stderr, "  - redis.db: must be at most 15\n")
}

func TestValidate_FromEnvironment(t *testing.T) {
	setEnvVars(t, requiredEnv("CC_"))

	stdout, _, err := execute(t, "validate", "--env-prefix", "CC_")

	require.NoError(t, err)
	assert.Contains(t, stdout, "nodeEnv: development")
}

func TestPrint_EnvironmentWinsOverPresetAndFile(t *testing.T) {
	setEnvVars(t, requiredEnv("CCP_"))
	t.Setenv("CCP_LOG_LEVEL", "error")
	t.Setenv("CCP_PORT", "7000")
	path := writeFile(t, "cfg.yaml", "app:\n  port: 7100\n  name: from-file\n")

	stdout, _, err := execute(t, "print", "--env-prefix", "CCP_", "--preset", "staging", "--file", path)

	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	app := out[config.SectionApp].(map[string]any)
	assert.Equal(t, float64(7000), app["port"])
	assert.Equal(t, "from-file", app["name"])
	assert.Equal(t, config.EnvStaging, app["nodeEnv"])
	assert.Equal(t, "error", out[config.SectionLogging].(map[string]any)["level"])
}

func TestValidate_EnvFile(t *testing.T) {
	t.Setenv("CCF_DATABASE_HOST", "")
	path := writeFile(t, ".env", "CCF_DATABASE_HOST=from-file\n")

	_, stderr, err := execute(t, "validate", "--env-prefix", "CCF_", "--env-file", path, "--override-env-file")

	// the env file only provides the database host
	require.Error(t, err)
	assert.NotContains(t, stderr, "database.host")
	assert.Contains(t, stderr, "database.username: is required")
}

func TestValidate_MissingEnvFileIsSkipped(t *testing.T) {
	_, stderr, err := execute(t, "validate", "--env-file", "/nonexistent/.env", "--log-level", "warn")

	require.Error(t, err)
	assert.Contains(t, stderr, "env file not found")
}

func TestValidate_Partial(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{name: "valid subset", content: "app:\n  port: 8080\n"},
		{name: "wrong type", content: "app:\n  port: high\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "partial.yaml", tt.content)

			stdout, stderr, err := execute(t, "validate", "--partial", "--file", path)

			if tt.wantErr {
				require.ErrorIs(t, err, config.ErrInvalidConfig)
				assert.Contains(t, stderr, "app.port: expected integer, got string")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "partial configuration is valid\n", stdout)
		})
	}
}

func TestValidate_UnknownPreset(t *testing.T) {
	_, _, err := execute(t, "validate", "--test", "--preset", "qa")

	assert.ErrorIs(t, err, config.ErrUnknownPreset)
}

func TestValidate_RejectsArguments(t *testing.T) {
	_, _, err := execute(t, "validate", "extra")

	assert.Error(t, err)
}

// ── print ──

func TestPrint_JSONIsMasked(t *testing.T) {
	stdout, _, err := execute(t, "print", "--test")

	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, config.MaskedValue, out[config.SectionAuth])
	assert.Equal(t, "app-test", out[config.SectionApp].(map[string]any)["name"])
	assert.NotContains(t, stdout, "test-jwt-secret")
}

func TestPrint_YAML(t *testing.T) {
	stdout, _, err := execute(t, "print", "--test", "-o", "yaml")

	require.NoError(t, err)
	assert.Contains(t, stdout, "name: app-test")
	assert.Contains(t, stdout, config.MaskedValue)
}

func TestPrint_Raw(t *testing.T) {
	path := writeFile(t, "cfg.json", `{"app": {"port": "not-validated"}}`)

	stdout, _, err := execute(t, "print", "--test", "--raw", "--file", path)

	require.NoError(t, err)
	assert.Contains(t, stdout, `"port":"not-validated"`)
	assert.Contains(t, stdout, config.MaskedValue)
}

func TestPrint_UnknownOutput(t *testing.T) {
	_, _, err := execute(t, "print", "--test", "-o", "toml")

	assert.ErrorIs(t, err, config.ErrUnsupportedFileFormat)
}

func TestPrint_InvalidConfig(t *testing.T) {
	stdout, stderr, err := execute(t, "print", "--test", "--preset", "production")

	require.ErrorIs(t, err, errConfigInvalid)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "in production")
}

// ── presets and root ──

func TestPresets(t *testing.T) {
	stdout, _, err := execute(t, "presets")

	require.NoError(t, err)
	assert.Equal(t, "development\nproduction\nstaging\ntest\n", stdout)
}

func TestRoot_Version(t *testing.T) {
	stdout, _, err := execute(t, "--version")

	require.NoError(t, err)
	assert.Equal(t, "confcheck version test\n", stdout)
}

func TestRoot_InvalidLogLevel(t *testing.T) {
	_, _, err := execute(t, "validate", "--test", "--log-level", "loud")

	assert.Error(t, err)
}
