package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// LoadFromFile reads a partial configuration from a JSON (.json) or YAML
// (.yaml, .yml) file. Relative paths are resolved against the working
// directory.
//
// A missing file yields an error wrapping [ErrConfigFileNotFound]; content
// that cannot be parsed yields one wrapping [ErrConfigFileInvalid]. Both
// name the resolved path and keep the underlying cause.
func LoadFromFile(path string) (Values, error) {
	resolved, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("error resolving config file path %s: %w", path, err)
	}

	parser, err := parserFor(resolved)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(resolved); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %w", ErrConfigFileNotFound, resolved, err)
		}
		return nil, fmt.Errorf("error reading config file %s: %w", resolved, err)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(resolved), parser); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfigFileInvalid, resolved, err)
	}

	return k.Raw(), nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return json.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileFormat, path)
	}
}
