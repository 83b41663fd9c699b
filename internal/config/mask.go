package config

import "strings"

// MaskedValue replaces every sensitive value in the output of [Mask].
const MaskedValue = "***MASKED***"

// sensitiveTerms are matched as substrings of lower-cased keys.
var sensitiveTerms = []string{
	"password",
	"secret",
	"apikey",
	"token",
	"secretkey",
	"accesskey",
	"clientsecret",
	"auth",
}

// Mask returns a copy of v that is safe to log. Any key whose lower-cased
// name contains a sensitive term has its value replaced by [MaskedValue],
// whatever the value is; a matching section is replaced wholesale rather
// than walked. Other sections are masked recursively.
func Mask(v Values) Values {
	out := make(Values, len(v))
	for key, val := range v {
		if isSensitiveKey(key) {
			out[key] = MaskedValue
			continue
		}

		if section, ok := val.(map[string]any); ok {
			out[key] = Mask(section)
			continue
		}
		out[key] = val
	}
	return out
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, term := range sensitiveTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
