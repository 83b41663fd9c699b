// Package cli implements the confcheck command line tool, which assembles
// the service configuration from the same sources as the server and
// validates or prints it without starting anything.
package cli

import (
	"fmt"

	"github.com/MKhiriev/go-backend-kit/internal/logger"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the confcheck command tree.
func NewRootCmd(version string) *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "confcheck",
		Short: "Validate and inspect service configuration",
		Long: `confcheck assembles the service configuration from environment
variables, presets and configuration files, validates it against the schema
and the production secret rules, and prints the result with secrets masked.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: error, warn, info, debug or verbose")

	// stdout carries command output only
	newLogger := func() (*logger.Logger, error) {
		stderr := rootCmd.ErrOrStderr()
		return logger.NewWithConsole("confcheck", logger.Options{
			Level:  logLevel,
			Format: logger.FormatPretty,
		}, stderr, stderr)
	}

	rootCmd.AddCommand(
		newValidateCmd(newLogger),
		newPrintCmd(newLogger),
		newPresetsCmd(),
	)
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetVersionTemplate(fmt.Sprintf("confcheck version %s\n", version))

	return rootCmd
}
