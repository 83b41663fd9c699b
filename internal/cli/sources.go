package cli

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-backend-kit/internal/config"
	"github.com/MKhiriev/go-backend-kit/internal/logger"
	"github.com/spf13/cobra"
)

type loggerFactory func() (*logger.Logger, error)

// sourceOptions selects the configuration sources shared by every command.
type sourceOptions struct {
	preset          string
	file            string
	envPrefix       string
	envFile         string
	overrideEnvFile bool
	test            bool
}

func (o *sourceOptions) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&o.preset, "preset", "", "Preset merged over the schema defaults (development, production, staging, test)")
	flags.StringVarP(&o.file, "file", "f", "", "JSON or YAML configuration file merged over the preset")
	flags.StringVar(&o.envPrefix, "env-prefix", "", "Prefix of the environment variables; set variables win over --preset and --file")
	flags.StringVar(&o.envFile, "env-file", "", ".env file loaded before reading the environment")
	flags.BoolVar(&o.overrideEnvFile, "override-env-file", false, "Let --env-file replace variables that are already set")
	flags.BoolVar(&o.test, "test", false, "Start from the built-in test configuration instead of the environment")
}

// builder layers the selected sources: schema defaults from the environment
// loader (or the test configuration), then the preset, then the file, then
// the environment variables that are set. Test mode ignores the environment.
func (o *sourceOptions) builder(log *logger.Logger) (*config.Builder, error) {
	if o.envFile != "" && !o.test {
		err := config.LoadEnvFile(o.envFile, o.overrideEnvFile)
		switch {
		case errors.Is(err, config.ErrEnvFileNotFound):
			log.Warn().Str("path", o.envFile).Msg("env file not found, skipping")
		case err != nil:
			return nil, fmt.Errorf("error loading env file: %w", err)
		default:
			log.Debug().Str("path", o.envFile).Bool("override", o.overrideEnvFile).Msg("env file loaded")
		}
	}

	b := config.NewBuilder().
		When(o.test, func(b *config.Builder) { b.FromTest() }).
		When(!o.test, func(b *config.Builder) { b.FromEnv(o.envPrefix) })

	return o.layers(b).
		When(!o.test, func(b *config.Builder) { b.FromEnvOverrides(o.envPrefix) }), nil
}

// layers merges the preset and the file over b.
func (o *sourceOptions) layers(b *config.Builder) *config.Builder {
	return b.
		When(o.preset != "", func(b *config.Builder) { b.Preset(o.preset) }).
		When(o.file != "", func(b *config.Builder) { b.FromFile(o.file) })
}
