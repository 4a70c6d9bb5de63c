package config

import (
	"strconv"
	"strings"

	"github.com/footprint-tools/commands/internal/domain"
	"github.com/footprint-tools/commands/internal/log"
	"github.com/footprint-tools/commands/internal/paths"
	"github.com/footprint-tools/commands/internal/usage"
)

// Provider reads settings from an rc file, falling back to the registered
// defaults, and implements domain.ConfigProvider. Writes are limited to
// registered keys.
type Provider struct {
	file *File
}

// NewProvider returns a provider over ~/.cmdshrc. When the home directory
// cannot be found, reads yield defaults and writes fail.
func NewProvider() *Provider {
	path, err := paths.ConfigFilePath()
	if err != nil {
		log.Warn("config: %v", err)
	}
	return NewProviderAt(path)
}

// NewProviderAt returns a provider over the rc file at path.
func NewProviderAt(path string) *Provider {
	return &Provider{file: Open(path)}
}

// Get returns the file's value for key, or the key's default. A file
// that cannot be read or parsed counts as empty.
func (p *Provider) Get(key string) (string, bool) {
	if cfg, err := p.file.Values(); err == nil {
		if value, ok := cfg[key]; ok {
			return value, true
		}
	}
	return domain.GetDefaultValue(key)
}

// GetAll returns every default overlaid with the file's values, including
// keys the file defines that are not registered.
func (p *Provider) GetAll() (map[string]string, error) {
	result := make(map[string]string, len(domain.ConfigKeys))
	for _, key := range domain.ConfigKeys {
		result[key.Name] = key.Default
	}

	cfg, err := p.file.Values()
	if err != nil {
		return result, nil
	}
	for key, value := range cfg {
		result[key] = value
	}
	return result, nil
}

// Set validates and stores a value.
func (p *Provider) Set(key, value string) error {
	if !domain.IsValidConfigKey(key) {
		return usage.InvalidConfigKey(key)
	}
	if err := Validate(key, value); err != nil {
		return err
	}
	return p.file.Update(func(lines []string) []string {
		lines, _ = Assign(lines, key, value)
		return lines
	})
}

// Unset removes a value so the default applies again.
func (p *Provider) Unset(key string) error {
	if !domain.IsValidConfigKey(key) {
		return usage.InvalidConfigKey(key)
	}
	return p.file.Update(func(lines []string) []string {
		lines, _ = Remove(lines, key)
		return lines
	})
}

// Validate checks value against the type implied by key.
func Validate(key, value string) error {
	switch key {
	case "enable_log", "enable_history", "suggest":
		if _, err := strconv.ParseBool(value); err != nil {
			return usage.InvalidConfigValue(key, value, "expected true or false")
		}
	case "history_limit":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return usage.InvalidConfigValue(key, value, "expected a non-negative integer")
		}
	case "log_level":
		switch strings.ToLower(value) {
		case "debug", "info", "warn", "error":
		default:
			return usage.InvalidConfigValue(key, value, "expected debug, info, warn or error")
		}
	}
	return nil
}

// Bool reads key as a boolean, falling back to def when unset or malformed.
// A nil provider yields def.
func Bool(p domain.ConfigProvider, key string, def bool) bool {
	if p == nil {
		return def
	}
	raw, ok := p.Get(key)
	if !ok {
		return def
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	return v
}

// Int reads key as an integer, falling back to def when unset or malformed.
func Int(p domain.ConfigProvider, key string, def int) int {
	if p == nil {
		return def
	}
	raw, ok := p.Get(key)
	if !ok {
		return def
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	return v
}

// Verify Provider implements domain.ConfigProvider
var _ domain.ConfigProvider = (*Provider)(nil)
