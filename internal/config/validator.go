// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
)

// Minimum secret lengths enforced by the production secret gate.
const (
	minProductionTokenSecretLength = 32
	minProductionPasswordLength    = 12
)

var timespanPattern = regexp.MustCompile(`^\d+(ms|s|m|h|d|w)$`)

// knownPlaceholders are secret values shipped in example env files. A secret
// matches when it equals one of them, ignoring case and surrounding space.
var knownPlaceholders = []string{
	"changeme",
	"change-me",
	"change_me",
	"placeholder",
	"your-secret",
	"your-secret-key-change-in-production",
	"your-refresh-secret-key-change-in-production",
	"changeme-admin-password",
	"changeme-database-password",
}

var rules = newRules()

func newRules() *validator.Validate {
	v := validator.New()
	// registration only fails for an empty tag or nil func
	_ = v.RegisterValidation("timespan", func(fl validator.FieldLevel) bool {
		return timespanPattern.MatchString(fl.Field().String())
	})
	return v
}

// Issue is a single schema violation.
type Issue struct {
	// Path is the dotted path of the offending field, e.g. "database.host".
	Path string `json:"path"`
	// Message describes the broken constraint.
	Message string `json:"message"`
}

func (i Issue) String() string {
	return i.Path + ": " + i.Message
}

// ValidationError aggregates every schema violation found in one pass.
// Its message holds one "path: message" line per issue.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	lines := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		lines[i] = issue.String()
	}
	return strings.Join(lines, "\n")
}

// Is reports whether target is [ErrInvalidConfig].
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// Result is the non-raising outcome of [SafeValidate].
type Result struct {
	Success bool
	Config  *Config
	Errors  []string
}

// Validate checks raw against [Schema], fills defaults and returns the typed
// configuration.
//
// Every schema violation is collected into a single [*ValidationError]. Only
// when the schema passes is the production secret gate applied; it stops at
// the first failing secret and returns an error wrapping
// [ErrInsecureProductionConfig].
func Validate(raw Values) (*Config, error) {
	var issues []Issue
	normalized := checkSection(Schema, raw, "", false, &issues)
	issues = append(issues, checkCrossFields(normalized)...)
	if len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}

	cfg, err := decode(normalized)
	if err != nil {
		return nil, err
	}

	if err := checkProductionSecrets(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SafeValidate runs [Validate] and reports the outcome as a [Result] instead
// of an error. Each line of the error message becomes one entry of Errors.
func SafeValidate(raw Values) Result {
	cfg, err := Validate(raw)
	if err != nil {
		return Result{Success: false, Errors: splitLines(err.Error())}
	}
	return Result{Success: true, Config: cfg}
}

// ValidatePartial checks the fields present in raw without requiring any
// field and without applying defaults. Types, formats and ranges are still
// enforced. It returns true, or false with a [*ValidationError].
func ValidatePartial(raw Values) (bool, error) {
	var issues []Issue
	checkSection(Schema, raw, "", true, &issues)
	if len(issues) > 0 {
		return false, &ValidationError{Issues: issues}
	}
	return true, nil
}

// checkSection validates in against fields and returns the normalized
// section. Keys not declared in fields are dropped.
func checkSection(fields []Field, in map[string]any, path string, partial bool, issues *[]Issue) Values {
	out := Values{}
	for _, f := range fields {
		p := joinPath(path, f.Name)

		raw, present := in[f.Name]
		if !present || raw == nil {
			switch {
			case partial:
			case f.Kind == KindSection && f.Required:
				out[f.Name] = checkSection(f.Fields, nil, p, partial, issues)
			case f.Default != nil:
				out[f.Name] = cloneDefault(f.Default)
			case f.Required:
				*issues = append(*issues, Issue{Path: p, Message: "is required"})
			}
			continue
		}

		val, ok := coerce(f.Kind, raw)
		if !ok {
			*issues = append(*issues, Issue{
				Path:    p,
				Message: fmt.Sprintf("expected %s, got %s", f.Kind, describeType(raw)),
			})
			continue
		}

		if f.Kind == KindSection {
			out[f.Name] = checkSection(f.Fields, val.(map[string]any), p, partial, issues)
			continue
		}

		if issue, ok := checkRules(p, f, val); !ok {
			*issues = append(*issues, issue...)
			continue
		}
		out[f.Name] = val
	}
	return out
}

// checkCrossFields reports constraints spanning several fields of a
// normalized configuration.
func checkCrossFields(normalized Values) []Issue {
	logging, _ := normalized[SectionLogging].(Values)
	transports, _ := logging["transports"].([]string)
	if !slices.Contains(transports, "file") {
		return nil
	}
	if _, ok := logging["file"]; ok {
		return nil
	}
	return []Issue{{Path: SectionLogging + ".file", Message: `is required when transports contains "file"`}}
}

func checkRules(path string, f Field, val any) ([]Issue, bool) {
	if f.Rules != "" {
		if err := rules.Var(val, f.Rules); err != nil {
			return []Issue{{Path: path, Message: describeRuleError(err)}}, false
		}
	}

	items, isList := val.([]string)
	if !isList || f.ItemRules == "" {
		return nil, true
	}

	var issues []Issue
	for i, item := range items {
		if err := rules.Var(item, f.ItemRules); err != nil {
			issues = append(issues, Issue{
				Path:    fmt.Sprintf("%s[%d]", path, i),
				Message: describeRuleError(err),
			})
		}
	}
	return issues, len(issues) == 0
}

// coerce converts raw to the Go representation of kind. Integral floats
// are accepted for integers because JSON numbers decode as float64.
func coerce(kind Kind, raw any) (any, bool) {
	switch kind {
	case KindString:
		s, ok := raw.(string)
		return s, ok
	case KindBool:
		b, ok := raw.(bool)
		return b, ok
	case KindInt:
		return coerceInt(raw)
	case KindStringList:
		return coerceStringList(raw)
	case KindSection:
		m, ok := raw.(map[string]any)
		return m, ok
	default:
		return nil, false
	}
}

func coerceInt(raw any) (any, bool) {
	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := rv.Int()
		if n < math.MinInt || n > math.MaxInt {
			return nil, false
		}
		return int(n), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n := rv.Uint()
		if n > math.MaxInt {
			return nil, false
		}
		return int(n), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		// float64(math.MaxInt) rounds up to 2^63, so the upper bound is exclusive
		if f != math.Trunc(f) || f < math.MinInt || f >= math.MaxInt {
			return nil, false
		}
		return int(f), true
	default:
		return nil, false
	}
}

func coerceStringList(raw any) (any, bool) {
	switch list := raw.(type) {
	case []string:
		return append([]string{}, list...), true
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

func describeType(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case map[string]any:
		return "section"
	case []any, []string:
		return "list"
	case float32, float64:
		return "number"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		if _, ok := coerceInt(v); !ok {
			return "out-of-range integer"
		}
		return "integer"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func describeRuleError(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err.Error()
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "min":
		return describeBound(fe.Kind(), "at least", fe.Param())
	case "max":
		return describeBound(fe.Kind(), "at most", fe.Param())
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "url":
		return "must be a valid URL"
	case "email":
		return "must be a valid email address"
	case "ip":
		return "must be a valid IP address"
	case "timespan":
		return `must be a timespan such as "15m" or "7d"`
	default:
		return fmt.Sprintf("failed the %q rule", fe.Tag())
	}
}

func describeBound(kind reflect.Kind, bound, param string) string {
	switch kind {
	case reflect.String:
		return fmt.Sprintf("must be %s %s characters long", bound, param)
	case reflect.Slice:
		return fmt.Sprintf("must contain %s %s items", bound, param)
	default:
		return fmt.Sprintf("must be %s %s", bound, param)
	}
}

// decode converts a normalized tree into the typed [Config].
func decode(normalized Values) (*Config, error) {
	cfg := new(Config)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  cfg,
		TagName: "json",
	})
	if err != nil {
		return nil, fmt.Errorf("error creating config decoder: %w", err)
	}

	if err := decoder.Decode(normalized); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	return cfg, nil
}

// checkProductionSecrets enforces secret strength when the application runs
// in production. The first failing secret is reported.
func checkProductionSecrets(cfg *Config) error {
	if !cfg.IsProduction() {
		return nil
	}

	secrets := []struct {
		path      string
		value     string
		minLength int
	}{
		{"auth.jwtSecret", cfg.Auth.JWTSecret, minProductionTokenSecretLength},
		{"auth.jwtRefreshSecret", cfg.Auth.JWTRefreshSecret, minProductionTokenSecretLength},
		{"admin.password", cfg.Admin.Password, minProductionPasswordLength},
		{"database.password", cfg.Database.Password, minProductionPasswordLength},
	}

	for _, s := range secrets {
		if len(s.value) < s.minLength {
			return fmt.Errorf("%w: %s must be at least %d characters long in production",
				ErrInsecureProductionConfig, s.path, s.minLength)
		}
		if isPlaceholder(s.value) {
			return fmt.Errorf("%w: %s must not be a placeholder value in production",
				ErrInsecureProductionConfig, s.path)
		}
	}
	return nil
}

func isPlaceholder(secret string) bool {
	secret = strings.TrimSpace(secret)
	for _, known := range knownPlaceholders {
		if strings.EqualFold(secret, known) {
			return true
		}
	}
	return false
}

func cloneDefault(def any) any {
	if list, ok := def.([]string); ok {
		return append([]string{}, list...)
	}
	return def
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

func splitLines(msg string) []string {
	var out []string
	for _, line := range strings.Split(msg, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
