package config

import (
	"errors"
	"fmt"
)

// LoadOptions selects the sources used by [Load].
type LoadOptions struct {
	// EnvFile is an optional .env file loaded before environment variables
	// are read. A missing file is ignored.
	EnvFile string
	// OverrideEnv lets EnvFile replace variables that are already set.
	OverrideEnv bool
	// Preset is an optional preset merged over the schema defaults.
	Preset string
	// File is an optional JSON or YAML file merged over the preset.
	File string
	// EnvPrefix is prepended to every environment variable name.
	EnvPrefix string
	// Overrides are merged last.
	Overrides Values
}

// Load assembles the service configuration in the following priority order
// (last source wins):
//  1. Schema defaults (via [LoadFromEnv])
//  2. Preset
//  3. Configuration file
//  4. Environment variables that are set (after loading EnvFile)
//  5. Overrides
//
// Returns the validated *Config or an error if a source fails to load or the
// result fails validation.
func Load(opts LoadOptions) (*Config, error) {
	if opts.EnvFile != "" {
		if err := LoadEnvFile(opts.EnvFile, opts.OverrideEnv); err != nil && !errors.Is(err, ErrEnvFileNotFound) {
			return nil, fmt.Errorf("error loading env file: %w", err)
		}
	}

	return NewBuilder().
		FromEnv(opts.EnvPrefix).
		When(opts.Preset != "", func(b *Builder) { b.Preset(opts.Preset) }).
		When(opts.File != "", func(b *Builder) { b.FromFile(opts.File) }).
		FromEnvOverrides(opts.EnvPrefix).
		Override(opts.Overrides).
		Build()
}
