package domain

// ConfigKey defines a configuration key with its metadata.
type ConfigKey struct {
	Name        string
	Default     string
	Description string
	Section     string // Section for grouping in UI (Shell, Display, History, etc.)
	Hidden      bool   // Hidden keys are not shown in help or config list
	HideIfEmpty bool   // Only show in config list if explicitly set
}

// ConfigKeys defines all available configuration keys.
// This is the single source of truth for configuration.
// Order determines display order in `show config`.
var ConfigKeys = []ConfigKey{
	// Shell
	{
		Name:        "prompt",
		Default:     "cmdsh",
		Description: "Text shown before the > prompt marker",
		Section:     "Shell",
	},
	{
		Name:        "suggest",
		Default:     "true",
		Description: "Suggest similar commands after a failed match (true/false)",
		Section:     "Shell",
	},
	// Display
	{
		Name:        "theme",
		Default:     "default",
		Description: "Color theme: default, neon, mono, ocean, contrast (optionally -dark or -light)",
		Section:     "Display",
	},
	{
		Name:        "display_date",
		Default:     "Jan 02",
		Description: "Date format: dd/mm/yyyy, mm/dd/yyyy, yyyy-mm-dd, or Go format",
		Section:     "Display",
	},
	{
		Name:        "display_time",
		Default:     "24h",
		Description: "Time format: 12h, 24h",
		Section:     "Display",
	},
	// History
	{
		Name:        "enable_history",
		Default:     "true",
		Description: "Record entered lines in the history database (true/false)",
		Section:     "History",
	},
	{
		Name:        "history_limit",
		Default:     "1000",
		Description: "Number of history entries kept after each session",
		Section:     "History",
	},
	// Logging
	{
		Name:        "enable_log",
		Default:     "true",
		Description: "Enable logging to file (true/false)",
		Section:     "Logging",
	},
	{
		Name:        "log_level",
		Default:     "warn",
		Description: "Minimum log level: debug, info, warn, error",
		Section:     "Logging",
	},
	// Hidden (internal)
	{
		Name:        "last_session",
		Default:     "",
		Description: "ID of the most recent interactive session",
		Section:     "Shell",
		Hidden:      true,
	},
	// Color Overrides - override specific colors from the current theme (ANSI 0-255)
	{
		Name:        "color_success",
		Description: "Override success color from current theme (ANSI 0-255)",
		Section:     "Color Overrides",
		HideIfEmpty: true,
	},
	{
		Name:        "color_warning",
		Description: "Override warning color from current theme (ANSI 0-255)",
		Section:     "Color Overrides",
		HideIfEmpty: true,
	},
	{
		Name:        "color_error",
		Description: "Override error color from current theme (ANSI 0-255)",
		Section:     "Color Overrides",
		HideIfEmpty: true,
	},
	{
		Name:        "color_info",
		Description: "Override info color from current theme (ANSI 0-255)",
		Section:     "Color Overrides",
		HideIfEmpty: true,
	},
	{
		Name:        "color_muted",
		Description: "Override muted text color from current theme (ANSI 0-255)",
		Section:     "Color Overrides",
		HideIfEmpty: true,
	},
	{
		Name:        "color_header",
		Description: "Override header style from current theme (ANSI 0-255 or 'bold')",
		Section:     "Color Overrides",
		HideIfEmpty: true,
	},
	{
		Name:        "color_prompt",
		Description: "Override prompt color from current theme (ANSI 0-255 or 'bold')",
		Section:     "Color Overrides",
		HideIfEmpty: true,
	},
	{
		Name:        "color_command",
		Description: "Override command literal color from current theme (ANSI 0-255)",
		Section:     "Color Overrides",
		HideIfEmpty: true,
	},
	{
		Name:        "color_parameter",
		Description: "Override parameter placeholder color from current theme (ANSI 0-255)",
		Section:     "Color Overrides",
		HideIfEmpty: true,
	},
	{
		Name:        "color_ui_active",
		Description: "Override focused/active UI color from current theme (ANSI 0-255)",
		Section:     "Color Overrides",
		HideIfEmpty: true,
	},
	{
		Name:        "color_ui_dim",
		Description: "Override unfocused/inactive UI color from current theme (ANSI 0-255)",
		Section:     "Color Overrides",
		HideIfEmpty: true,
	},
}

// configKeyMap is a lookup map for configuration keys.
var configKeyMap map[string]ConfigKey

func init() {
	configKeyMap = make(map[string]ConfigKey, len(ConfigKeys))
	for _, key := range ConfigKeys {
		configKeyMap[key.Name] = key
	}
}

// GetConfigKey returns the ConfigKey for a given name.
func GetConfigKey(name string) (ConfigKey, bool) {
	key, ok := configKeyMap[name]
	return key, ok
}

// IsValidConfigKey checks if a key name is valid.
func IsValidConfigKey(name string) bool {
	_, ok := configKeyMap[name]
	return ok
}

// GetDefaultValue returns the default value for a config key.
func GetDefaultValue(name string) (string, bool) {
	if key, ok := configKeyMap[name]; ok {
		return key.Default, true
	}
	return "", false
}

// VisibleConfigKeys returns all non-hidden configuration keys.
func VisibleConfigKeys() []ConfigKey {
	var visible []ConfigKey
	for _, key := range ConfigKeys {
		if !key.Hidden {
			visible = append(visible, key)
		}
	}
	return visible
}

// ConfigSections returns the ordered list of section names.
func ConfigSections() []string {
	return []string{"Shell", "Display", "History", "Logging", "Color Overrides"}
}

// ConfigKeysBySection returns visible config keys grouped by section.
func ConfigKeysBySection() map[string][]ConfigKey {
	result := make(map[string][]ConfigKey)
	for _, key := range ConfigKeys {
		if !key.Hidden {
			result[key.Section] = append(result[key.Section], key)
		}
	}
	return result
}
