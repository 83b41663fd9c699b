package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	strongJWTSecret     = "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08"
	strongRefreshSecret = "60303ae22b998861bce3b28f33eec1be758a213c86c93c076dbe9f558c11c752"
	strongAdminPassword = "Adm1n-Sup3r-Str0ng!"
	strongDBPassword    = "Db-Pr0duction-Pass"
)

// productionValues returns the test configuration switched to production
// with secrets that pass the production gate.
func productionValues() Values {
	return Merge(LoadTestConfig(), Values{
		SectionApp:      Values{"nodeEnv": EnvProduction},
		SectionDatabase: Values{"password": strongDBPassword},
		SectionAuth: Values{
			"jwtSecret":        strongJWTSecret,
			"jwtRefreshSecret": strongRefreshSecret,
		},
		SectionAdmin: Values{"password": strongAdminPassword},
	})
}

// sectionOf returns the named section of v, failing the test if it is missing.
func sectionOf(t *testing.T, v Values, name string) Values {
	t.Helper()
	s, ok := v[name].(Values)
	require.Truef(t, ok, "section %q missing or not a map", name)
	return s
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	for k, v := range vars {
		t.Setenv(k, v)
	}
}
