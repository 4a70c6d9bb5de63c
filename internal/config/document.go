package config

import (
	"fmt"
	"strings"
)

// An rc file is a list of lines. Blank lines and lines starting with #
// are kept untouched by edits. A # preceded by whitespace starts an
// inline comment, which edits carry over to the new value.

// Parse reads key=value lines into a map. Values wrapped in double quotes
// are unquoted. Later keys override earlier ones.
func Parse(lines []string) (map[string]string, error) {
	cfg := make(map[string]string)

	for i, line := range lines {
		if i == 0 {
			line = strings.TrimPrefix(line, "\uFEFF")
		}
		if isBlankOrComment(line) {
			continue
		}

		key, value, ok := strings.Cut(strings.TrimSpace(line), "=")
		if !ok {
			return nil, fmt.Errorf("config: line %d: expected key=value", i+1)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("config: line %d: empty key", i+1)
		}

		value, _ = splitComment(value)
		cfg[key] = unquote(value)
	}

	return cfg, nil
}

// Assign sets key to value, rewriting the last line that defines key or
// appending a new one. It reports whether an existing line was rewritten.
func Assign(lines []string, key, value string) ([]string, bool) {
	out := append([]string(nil), lines...)
	for i := len(out) - 1; i >= 0; i-- {
		k, rest, ok := entry(out[i])
		if !ok || k != key {
			continue
		}
		line := key + "=" + quote(value)
		if _, comment := splitComment(rest); comment != "" {
			line += " " + comment
		}
		out[i] = line
		return out, true
	}
	return append(out, key+"="+quote(value)), false
}

// Remove drops every line defining key and reports whether any existed.
func Remove(lines []string, key string) ([]string, bool) {
	var out []string
	removed := false
	for _, line := range lines {
		if k, _, ok := entry(line); ok && k == key {
			removed = true
			continue
		}
		out = append(out, line)
	}
	return out, removed
}

func isBlankOrComment(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || strings.HasPrefix(trimmed, "#")
}

// entry splits an assignment line into its key and raw remainder.
func entry(line string) (key, rest string, ok bool) {
	if isBlankOrComment(line) {
		return "", "", false
	}
	key, rest, ok = strings.Cut(strings.TrimSpace(line), "=")
	return strings.TrimSpace(key), rest, ok
}

func splitComment(raw string) (value, comment string) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, `"`) {
		if end := strings.Index(raw[1:], `"`); end >= 0 {
			value, rest := raw[:end+2], strings.TrimSpace(raw[end+2:])
			if strings.HasPrefix(rest, "#") {
				return value, rest
			}
		}
	}
	for i := 1; i < len(raw); i++ {
		if raw[i] == '#' && (raw[i-1] == ' ' || raw[i-1] == '\t') {
			return strings.TrimSpace(raw[:i]), strings.TrimSpace(raw[i:])
		}
	}
	return raw, ""
}

func unquote(value string) string {
	if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
		return value[1 : len(value)-1]
	}
	return value
}

// quote wraps values that would not survive Parse unchanged.
func quote(value string) string {
	if value != strings.TrimSpace(value) || strings.ContainsAny(value, " \t#") {
		return `"` + value + `"`
	}
	return value
}
