package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Preset names accepted by [GetPreset] and [Builder.Preset].
const (
	PresetDevelopment = EnvDevelopment
	PresetProduction  = EnvProduction
	PresetStaging     = EnvStaging
	PresetTest        = EnvTest
)

// presets build a fresh tree on every call so that callers can never alter
// the shared definition.
var presets = map[string]func() Values{
	PresetDevelopment: func() Values {
		return Values{
			SectionApp: Values{"nodeEnv": EnvDevelopment},
			SectionDatabase: Values{
				"synchronize":   true,
				"logging":       true,
				"runMigrations": false,
			},
			SectionAuth:     Values{"bcryptRounds": 10},
			SectionLogging:  Values{"level": "debug", "format": "pretty"},
			SectionFeatures: Values{"enableSwagger": true, "enableRateLimit": false},
		}
	},
	PresetProduction: func() Values {
		return Values{
			SectionApp: Values{"nodeEnv": EnvProduction},
			SectionDatabase: Values{
				"synchronize":   false,
				"logging":       false,
				"ssl":           true,
				"runMigrations": true,
				"dropSchema":    false,
			},
			SectionAuth:    Values{"bcryptRounds": 12},
			SectionLogging: Values{"level": "warn", "format": "json"},
			SectionFeatures: Values{
				"enableSwagger":   false,
				"enableMetrics":   true,
				"enableRateLimit": true,
			},
		}
	},
	PresetStaging: func() Values {
		return Values{
			SectionApp: Values{"nodeEnv": EnvStaging},
			SectionDatabase: Values{
				"synchronize":   false,
				"ssl":           true,
				"runMigrations": true,
			},
			SectionLogging: Values{"level": "info", "format": "json"},
			SectionFeatures: Values{
				"enableSwagger":   true,
				"enableMetrics":   true,
				"enableRateLimit": true,
			},
		}
	},
	PresetTest: func() Values {
		return Values{
			SectionApp: Values{"nodeEnv": EnvTest},
			SectionDatabase: Values{
				"synchronize":   true,
				"dropSchema":    true,
				"logging":       false,
				"runMigrations": false,
			},
			SectionAuth:     Values{"bcryptRounds": bcrypt.MinCost},
			SectionEmail:    Values{"enabled": false},
			SectionLogging:  Values{"level": "error"},
			SectionFeatures: Values{"enableRateLimit": false, "enableMetrics": false},
		}
	},
}

// PresetNames lists the names accepted by [GetPreset].
func PresetNames() []string {
	return []string{PresetDevelopment, PresetProduction, PresetStaging, PresetTest}
}

// GetPreset returns a copy of the named preset, or an error wrapping
// [ErrUnknownPreset].
func GetPreset(name string) (Values, error) {
	preset, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (expected one of %v)", ErrUnknownPreset, name, PresetNames())
	}
	return preset(), nil
}
