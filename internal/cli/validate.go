package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/go-backend-kit/internal/config"
	"github.com/spf13/cobra"
)

var errConfigInvalid = errors.New("configuration is invalid")

func newValidateCmd(newLogger loggerFactory) *cobra.Command {
	var (
		opts    sourceOptions
		partial bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the assembled configuration",
		Long: `Validate assembles the configuration and checks it against the schema.
Outside of --partial mode the production secret rules also apply when
app.nodeEnv is production.

With --partial only the preset and file are checked, and only for the fields
they contain: nothing is required and no defaults are applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger()
			if err != nil {
				return err
			}
			defer log.Close()

			if partial {
				values := opts.layers(config.NewBuilder()).BuildUnsafe()
				if _, err := config.ValidatePartial(values); err != nil {
					return report(cmd.ErrOrStderr(), err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "partial configuration is valid")
				return nil
			}

			b, err := opts.builder(log)
			if err != nil {
				return err
			}
			cfg, err := b.Build()
			if err != nil {
				return report(cmd.ErrOrStderr(), err)
			}

			log.Debug().Str("nodeEnv", cfg.App.NodeEnv).Msg("configuration validated")
			fmt.Fprintf(cmd.OutOrStdout(), "configuration is valid (nodeEnv: %s)\n", cfg.App.NodeEnv)
			return nil
		},
	}
	opts.bind(cmd)
	cmd.Flags().BoolVar(&partial, "partial", false, "Check only the fields present in --preset and --file")

	return cmd
}

// report prints one line per problem and returns errConfigInvalid wrapping err.
func report(w io.Writer, err error) error {
	var validationErr *config.ValidationError
	if errors.As(err, &validationErr) {
		for _, issue := range validationErr.Issues {
			fmt.Fprintf(w, "  - %s\n", issue)
		}
	} else {
		fmt.Fprintf(w, "  - %v\n", err)
	}
	return fmt.Errorf("%w: %w", errConfigInvalid, err)
}
