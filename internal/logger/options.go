package logger

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
	"github.com/MKhiriev/go-backend-kit/internal/config"
	"github.com/rs/zerolog"
)

// Output formats.
const (
	FormatJSON   = "json"
	FormatPretty = "pretty"
)

// Transports.
const (
	TransportConsole = "console"
	TransportFile    = "file"
)

var (
	ErrUnknownLevel     = errors.New("unknown log level")
	ErrUnknownFormat    = errors.New("unknown log format")
	ErrUnknownTransport = errors.New("unknown log transport")
	ErrFilePathRequired = errors.New("file transport requires a file path")
)

var levels = map[string]zerolog.Level{
	"error":   zerolog.ErrorLevel,
	"warn":    zerolog.WarnLevel,
	"info":    zerolog.InfoLevel,
	"debug":   zerolog.DebugLevel,
	"verbose": zerolog.TraceLevel,
}

// Options configures [New].
type Options struct {
	// Level is one of error, warn, info, debug or verbose.
	Level string
	// Format is json or pretty.
	Format string
	// Transports lists console and/or file.
	Transports []string
	File       FileOptions
}

// FileOptions configures the rotating file transport.
type FileOptions struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultOptions mirrors the defaults of the logging configuration section.
func DefaultOptions() Options {
	return Options{
		Level:      "info",
		Format:     FormatJSON,
		Transports: []string{TransportConsole},
		File: FileOptions{
			MaxSizeMB:  10,
			MaxBackups: 5,
			MaxAgeDays: 14,
		},
	}
}

// withDefaults fills zero fields from [DefaultOptions]. A file section with a
// path is taken as configured, so zero retention limits (keep everything)
// survive.
func (o Options) withDefaults() (Options, error) {
	file := o.File
	if err := mergo.Merge(&o, DefaultOptions()); err != nil {
		return Options{}, fmt.Errorf("error applying default logger options: %w", err)
	}
	if file.Path != "" {
		o.File = file
	}
	return o, nil
}

// OptionsFromConfig converts the logging configuration section.
func OptionsFromConfig(cfg config.Logging) Options {
	opts := Options{
		Level:      cfg.Level,
		Format:     cfg.Format,
		Transports: append([]string(nil), cfg.Transports...),
	}
	if cfg.File != nil {
		opts.File = FileOptions{
			Path:       cfg.File.Path,
			MaxSizeMB:  cfg.File.MaxSizeMB,
			MaxBackups: cfg.File.MaxBackups,
			MaxAgeDays: cfg.File.MaxAgeDays,
			Compress:   cfg.File.Compress,
		}
	}
	return opts
}

// ParseLevel maps a configured level name to a zerolog level.
func ParseLevel(name string) (zerolog.Level, error) {
	level, ok := levels[name]
	if !ok {
		return zerolog.NoLevel, fmt.Errorf("%w: %q", ErrUnknownLevel, name)
	}
	return level, nil
}
