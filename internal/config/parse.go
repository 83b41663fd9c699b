package config

import (
	"strconv"
	"strings"
)

// ParseBool interprets raw as a boolean flag.
//
// "true", "1" and "yes" are true and "false", "0" and "no" are false, all
// compared case-insensitively. An empty raw value or any other text yields def.
func ParseBool(raw string, def bool) bool {
	if b, ok := parseBool(raw); ok {
		return b
	}
	return def
}

func parseBool(raw string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes":
		return true, true
	case "false", "0", "no":
		return false, true
	default:
		return false, false
	}
}

// ParseInt parses raw as a base-10 integer, returning def when raw is empty
// or not a number.
func ParseInt(raw string, def int) int {
	if n, ok := parseInt(raw); ok {
		return n
	}
	return def
}

func parseInt(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	return n, err == nil
}

// ParseStringList splits raw on commas, trims every element and drops the
// empty ones. An empty raw value yields def.
func ParseStringList(raw string, def []string) []string {
	if raw == "" {
		return def
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
