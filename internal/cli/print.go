package cli

import (
	"fmt"

	"github.com/MKhiriev/go-backend-kit/internal/config"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
)

const (
	outputJSON = "json"
	outputYAML = "yaml"
)

func newPrintCmd(newLogger loggerFactory) *cobra.Command {
	var (
		opts   sourceOptions
		output string
		raw    bool
	)

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print the assembled configuration with secrets masked",
		Long: `Print validates the assembled configuration and writes it with every
secret replaced by ` + config.MaskedValue + `. With --raw the merged sources are
printed without validation or defaults, still masked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parser, err := outputParser(output)
			if err != nil {
				return err
			}

			log, err := newLogger()
			if err != nil {
				return err
			}
			defer log.Close()

			b, err := opts.builder(log)
			if err != nil {
				return err
			}

			var masked config.Values
			if raw {
				masked = config.Mask(b.BuildUnsafe())
			} else {
				cfg, err := b.Build()
				if err != nil {
					return report(cmd.ErrOrStderr(), err)
				}
				if masked, err = cfg.Masked(); err != nil {
					return err
				}
			}

			data, err := parser.Marshal(masked)
			if err != nil {
				return fmt.Errorf("error encoding configuration: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(append(data, '\n'))
			return err
		},
	}
	opts.bind(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", outputJSON, "Output format: json or yaml")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the merged sources without validation")

	return cmd
}

func outputParser(format string) (koanf.Parser, error) {
	switch format {
	case outputJSON:
		return json.Parser(), nil
	case outputYAML:
		return yaml.Parser(), nil
	default:
		return nil, fmt.Errorf("%w: %q (expected json or yaml)", config.ErrUnsupportedFileFormat, format)
	}
}
