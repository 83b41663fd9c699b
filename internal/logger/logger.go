// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger provides a thin wrapper around zerolog.Logger that adds
// convenience constructors and context-aware helpers used throughout the
// service.
//
// The Logger type embeds zerolog.Logger so all standard zerolog methods
// (Debug, Info, Warn, Error, Fatal, etc.) are available directly on *Logger.
// Application code should pass *Logger by pointer and obtain request-scoped
// loggers via FromContext or FromRequest.
//
// [New] builds a logger from the logging section of the configuration:
// level filter, output format and console or rotating file transports.
package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime"

	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is a thin wrapper around zerolog.Logger.
// Embedding zerolog.Logger exposes the full zerolog API while allowing the
// application to add helper methods without modifying the upstream type.
type Logger struct {
	zerolog.Logger

	closers []io.Closer
}

// NewLogger constructs a *Logger for the given role label (e.g. "server",
// "confcheck").
//
// The logger is configured with:
//   - global log level set to Debug (all levels are emitted);
//   - a "role" field set to role, useful for filtering logs from different
//     application components;
//   - a "ts" timestamp field added to every log entry;
//   - a "func" caller field that records the fully-qualified function name
//     (instead of the default file:line format) for easier log navigation.
//
// Output is written to os.Stdout in JSON format.
func NewLogger(role string) *Logger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	setCallerFormat()

	logger := zerolog.New(os.Stdout).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{Logger: logger}
}

// New constructs a *Logger for role according to opts. Zero fields of opts
// take their values from [DefaultOptions].
//
// Console output sends warnings and errors to os.Stderr and everything else
// to os.Stdout. The file transport rotates its file with lumberjack; call
// [Logger.Close] to release it.
func New(role string, opts Options) (*Logger, error) {
	return NewWithConsole(role, opts, os.Stdout, os.Stderr)
}

// NewWithConsole is like [New] but writes console output to stdout and stderr.
func NewWithConsole(role string, opts Options, stdout, stderr io.Writer) (*Logger, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}

	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	if opts.Format != FormatJSON && opts.Format != FormatPretty {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}

	var (
		writers []io.Writer
		closers []io.Closer
	)
	for _, transport := range opts.Transports {
		switch transport {
		case TransportConsole:
			writers = append(writers, consoleWriter{
				out: formatWriter(stdout, opts.Format, false),
				err: formatWriter(stderr, opts.Format, false),
			})
		case TransportFile:
			if opts.File.Path == "" {
				return nil, ErrFilePathRequired
			}
			sink := &lumberjack.Logger{
				Filename:   opts.File.Path,
				MaxSize:    opts.File.MaxSizeMB,
				MaxBackups: opts.File.MaxBackups,
				MaxAge:     opts.File.MaxAgeDays,
				Compress:   opts.File.Compress,
			}
			writers = append(writers, formatWriter(sink, opts.Format, true))
			closers = append(closers, sink)
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownTransport, transport)
		}
	}

	// per-logger levels are filtered by Level below
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	setCallerFormat()

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{Logger: logger, closers: closers}, nil
}

// Nop returns a *Logger that discards all log output.
// It is intended for use in tests and other contexts where logging is
// undesirable or would produce noise.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// Close releases the file transports of l. Child loggers share them and must
// not be used afterwards.
func (l *Logger) Close() error {
	var errs []error
	for _, c := range l.closers {
		errs = append(errs, c.Close())
	}
	l.closers = nil
	return errors.Join(errs...)
}

// GetChildLogger returns a new *Logger that inherits all fields of the
// receiver. The child logger can be enriched with additional context fields
// without affecting the parent logger.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{Logger: l.With().Logger()}
}

// FromRequest extracts the zerolog.Logger stored in the request's context by
// zerolog's log.Ctx helper and returns it as a *Logger.
//
// This is typically used in HTTP middleware that has previously attached a
// request-scoped logger to the context via zerolog's WithContext.
func FromRequest(r *http.Request) *Logger {
	return &Logger{Logger: *log.Ctx(r.Context())}
}

// FromContext extracts the zerolog.Logger stored in ctx by zerolog's log.Ctx
// helper and returns it as a *Logger.
//
// If no logger has been attached to ctx, zerolog returns its global logger,
// so this function never returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{Logger: *log.Ctx(ctx)}
}

func setCallerFormat() {
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"
}

func formatWriter(w io.Writer, format string, isFile bool) io.Writer {
	if format != FormatPretty {
		return w
	}
	return zerolog.ConsoleWriter{Out: w, NoColor: isFile}
}

// consoleWriter routes warnings and errors to err and every other entry to out.
type consoleWriter struct {
	out io.Writer
	err io.Writer
}

func (w consoleWriter) Write(p []byte) (int, error) {
	return w.out.Write(p)
}

func (w consoleWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level >= zerolog.WarnLevel && level <= zerolog.PanicLevel {
		return w.err.Write(p)
	}
	return w.out.Write(p)
}
