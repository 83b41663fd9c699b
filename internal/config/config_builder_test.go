package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── chaining ──

func TestBuilder_ChainMethodsReturnSameBuilder(t *testing.T) {
	b := NewBuilder()

	assert.Same(t, b, b.FromTest())
	assert.Same(t, b, b.Preset(PresetTest))
	assert.Same(t, b, b.Merge(Values{}))
	assert.Same(t, b, b.Override(nil))
	assert.Same(t, b, b.App(Values{"port": 1}))
	assert.Same(t, b, b.When(false, func(*Builder) {}))
	assert.Same(t, b, b.WhenEnv(EnvProduction, func(*Builder) {}))
	assert.Same(t, b, b.Preset("unknown"))
	assert.Same(t, b, b.FromFile("/nonexistent.json"))
	assert.Same(t, b, b.Reset())
}

func TestBuilder_ProductionFromTestConfig(t *testing.T) {
	// Arrange
	b := NewBuilder().
		FromTest().
		Preset(PresetProduction).
		Merge(Values{
			SectionDatabase: Values{"password": strongDBPassword},
			SectionAuth: Values{
				"jwtSecret":        strongJWTSecret,
				"jwtRefreshSecret": strongRefreshSecret,
			},
			SectionAdmin: Values{"password": strongAdminPassword},
		}).
		Override(Values{SectionApp: Values{"port": 4000}})

	// Act
	cfg, err := b.Build()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.App.Port)
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.Database.SSL)
	assert.Equal(t, "warn", cfg.Logging.Level)
	// untouched test values survive the preset
	assert.Equal(t, "app_test", cfg.Database.Database)
}

func TestBuilder_LastWriteWins(t *testing.T) {
	tests := []struct {
		name  string
		first string
		last  string
	}{
		{name: "debug then error", first: "debug", last: "error"},
		{name: "error then debug", first: "error", last: "debug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewBuilder().
				FromTest().
				Logging(Values{"level": tt.first}).
				Logging(Values{"level": tt.last}).
				Build()

			require.NoError(t, err)
			assert.Equal(t, tt.last, cfg.Logging.Level)
		})
	}
}

func TestBuilder_FromTest(t *testing.T) {
	cfg, err := NewBuilder().FromTest().Build()

	require.NoError(t, err)
	assert.Equal(t, EnvTest, cfg.App.NodeEnv)
	assert.True(t, cfg.Database.DropSchema)
	assert.GreaterOrEqual(t, len(cfg.Auth.JWTSecret), minProductionTokenSecretLength)
}

func TestBuilder_SectionSetters(t *testing.T) {
	cfg, err := NewBuilder().
		FromTest().
		App(Values{"name": "setter-app"}).
		Database(Values{"host": "setter-db"}).
		Auth(Values{"maxLoginAttempts": 9}).
		Redis(Values{"db": 3}).
		Admin(Values{"allowedIps": []string{"10.1.1.1"}}).
		Email(Values{"from": "setter@example.com"}).
		Storage(Values{"bucket": "setter-bucket"}).
		Queue(Values{"exchange": "setter.events"}).
		Logging(Values{"format": "pretty"}).
		Features(Values{"enableSwagger": true}).
		Build()

	require.NoError(t, err)
	assert.Equal(t, "setter-app", cfg.App.Name)
	assert.Equal(t, "setter-db", cfg.Database.Host)
	assert.Equal(t, 9, cfg.Auth.MaxLoginAttempts)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, []string{"10.1.1.1"}, cfg.Admin.AllowedIPs)
	assert.Equal(t, "setter@example.com", cfg.Email.From)
	assert.Equal(t, "setter-bucket", cfg.Storage.Bucket)
	assert.Equal(t, "setter.events", cfg.Queue.Exchange)
	assert.Equal(t, "pretty", cfg.Logging.Format)
	assert.True(t, cfg.Features.EnableSwagger)
	// sibling keys are kept
	assert.Equal(t, "localhost", cfg.Redis.Host)
}

// ── conditionals ──

func TestBuilder_When(t *testing.T) {
	for _, cond := range []bool{true, false} {
		called := false

		NewBuilder().When(cond, func(*Builder) { called = true })

		assert.Equal(t, cond, called)
	}
}

func TestBuilder_WhenEnvDependsOnOrder(t *testing.T) {
	enableSwagger := func(b *Builder) { b.Features(Values{"enableSwagger": true}) }

	t.Run("env set before check", func(t *testing.T) {
		cfg, err := NewBuilder().
			FromTest().
			App(Values{"nodeEnv": EnvStaging}).
			WhenEnv(EnvStaging, enableSwagger).
			Build()

		require.NoError(t, err)
		assert.True(t, cfg.Features.EnableSwagger)
	})

	t.Run("env set after check", func(t *testing.T) {
		cfg, err := NewBuilder().
			FromTest().
			WhenEnv(EnvStaging, enableSwagger).
			App(Values{"nodeEnv": EnvStaging}).
			Build()

		require.NoError(t, err)
		assert.False(t, cfg.Features.EnableSwagger)
	})

	t.Run("empty builder", func(t *testing.T) {
		called := false

		NewBuilder().WhenEnv(EnvDevelopment, func(*Builder) { called = true })

		assert.False(t, called)
	})
}

// ── inspection and copies ──

func TestBuilder_PeekDoesNotAffectBuilder(t *testing.T) {
	b := NewBuilder().App(Values{"port": 1234})

	peeked := b.Peek()
	peeked[SectionDatabase] = Values{"host": "peeked"}

	_, hasDatabase := b.Peek()[SectionDatabase]
	assert.False(t, hasDatabase)
	assert.EqualValues(t, 1234, sectionOf(t, b.Peek(), SectionApp)["port"])
}

func TestBuilder_CloneIsIndependent(t *testing.T) {
	base := NewBuilder().FromTest()
	clone := base.Clone()

	clone.App(Values{"port": 5000})

	baseCfg, err := base.Build()
	require.NoError(t, err)
	cloneCfg, err := clone.Build()
	require.NoError(t, err)

	assert.Equal(t, 3001, baseCfg.App.Port)
	assert.Equal(t, 5000, cloneCfg.App.Port)
}

func TestBuilder_CloneKeepsCollectedErrors(t *testing.T) {
	clone := NewBuilder().FromTest().Preset("unknown").Clone()

	_, err := clone.Build()

	assert.ErrorIs(t, err, ErrUnknownPreset)
}

func TestBuilder_Reset(t *testing.T) {
	b := NewBuilder().FromTest().Preset("unknown")

	b.Reset()

	assert.Empty(t, b.Peek())
	_, err := b.Build()
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.NotErrorIs(t, err, ErrUnknownPreset)
}

func TestBuilder_BuildUnsafeSkipsValidation(t *testing.T) {
	b := NewBuilder().App(Values{"port": "not-a-number"})

	raw := b.BuildUnsafe()
	sectionOf(t, raw, SectionApp)["port"] = 1

	assert.Equal(t, "not-a-number", sectionOf(t, b.Peek(), SectionApp)["port"])
	_, err := b.Build()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

// ── source errors ──

func TestBuilder_SourceErrorsSurfaceOnBuild(t *testing.T) {
	cfg, err := NewBuilder().
		FromTest().
		Preset("qa").
		FromFile("/nonexistent/config.yaml").
		Build()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownPreset)
	assert.ErrorIs(t, err, ErrConfigFileNotFound)
	assert.Contains(t, err.Error(), "error occurred during building config")
}

func TestBuilder_FromFileMergesOverPreviousLayers(t *testing.T) {
	path := writeTempFile(t, "override.yaml", "redis:\n  keyPrefix: \"file:\"\n")

	cfg, err := NewBuilder().FromTest().FromFile(path).Build()

	require.NoError(t, err)
	assert.Equal(t, "file:", cfg.Redis.KeyPrefix)
	assert.Equal(t, 6380, cfg.Redis.Port)
}

func TestBuilder_FromEnvDefaultsOverrideEarlierLayers(t *testing.T) {
	setEnvVars(t, map[string]string{
		"BLD_REDIS_DB":  "7",
		"BLD_LOG_LEVEL": "debug",
	})

	cfg, err := NewBuilder().FromTest().FromEnv("BLD_").Build()

	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Redis.DB)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// unset variables still contribute their defaults
	assert.Equal(t, 6379, cfg.Redis.Port)
	// required values without a variable are kept
	assert.Equal(t, "app_test", cfg.Database.Database)
}

func TestBuilder_FromEnvOverridesKeepsEarlierLayers(t *testing.T) {
	setEnvVars(t, map[string]string{
		"BLD_REDIS_DB":  "7",
		"BLD_LOG_LEVEL": "debug",
	})
	base := LoadTestConfig()

	cfg, err := NewBuilder().FromTest().FromEnvOverrides("BLD_").Build()

	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Redis.DB)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, base[SectionRedis].(Values)["port"], cfg.Redis.Port)
	assert.Equal(t, "app_test", cfg.Database.Database)
}
