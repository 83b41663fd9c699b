package config

import "errors"

// Errors returned while loading, merging and validating configuration.
// Callers can match against them with [errors.Is].
var (
	// ErrInvalidConfig is matched by every [*ValidationError]: a field is
	// missing, has the wrong type or violates a constraint.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrInsecureProductionConfig indicates that a secret does not meet the
	// strength requirements enforced when app.nodeEnv is "production".
	ErrInsecureProductionConfig = errors.New("insecure production configuration")
	// ErrUnknownPreset is returned for a preset name outside [PresetNames].
	ErrUnknownPreset = errors.New("unknown configuration preset")
	// ErrConfigFileNotFound indicates that the configuration file does not exist.
	ErrConfigFileNotFound = errors.New("configuration file not found")
	// ErrConfigFileInvalid indicates that the configuration file could not be parsed.
	ErrConfigFileInvalid = errors.New("configuration file could not be parsed")
	// ErrUnsupportedFileFormat is returned for file extensions without a parser.
	ErrUnsupportedFileFormat = errors.New("unsupported configuration file format")
	// ErrEnvFileNotFound indicates that the requested .env file does not exist.
	ErrEnvFileNotFound = errors.New(".env file not found")
)
