package style

import (
	"os"
	"strings"

	"github.com/muesli/termenv"
)

// ColorConfig holds all configurable colors for the UI.
// Values can be ANSI color numbers (0-255) or "bold" for bold styling.
type ColorConfig struct {
	Success   string
	Warning   string
	Error     string
	Info      string
	Muted     string
	Header    string
	Prompt    string
	Command   string // literals: commands, flags, named keys
	Parameter string // placeholders: <name>
	UIActive  string // focused pane border and selection
	UIDim     string // unfocused pane border
}

// BaseThemeNames lists available theme bases (auto-detects dark/light).
var BaseThemeNames = []string{
	"default",
	"neon",
	"mono",
	"ocean",
	"contrast",
}

// Themes contains the built-in color themes.
// Dark themes use bright colors, light themes use dark ones.
var Themes = map[string]ColorConfig{
	"default-dark": {
		Success:   "10",
		Warning:   "11",
		Error:     "9",
		Info:      "14",
		Muted:     "245",
		Header:    "bold",
		Prompt:    "12",
		Command:   "15",
		Parameter: "13",
		UIActive:  "14",
		UIDim:     "240",
	},
	"default-light": {
		Success:   "28",
		Warning:   "130",
		Error:     "124",
		Info:      "27",
		Muted:     "243",
		Header:    "bold",
		Prompt:    "25",
		Command:   "235",
		Parameter: "90",
		UIActive:  "27",
		UIDim:     "250",
	},

	// Vivid saturated colors.
	"neon-dark": {
		Success:   "48",
		Warning:   "220",
		Error:     "197",
		Info:      "51",
		Muted:     "244",
		Header:    "bold",
		Prompt:    "201",
		Command:   "231",
		Parameter: "46",
		UIActive:  "201",
		UIDim:     "238",
	},
	"neon-light": {
		Success:   "29",
		Warning:   "166",
		Error:     "161",
		Info:      "32",
		Muted:     "245",
		Header:    "bold",
		Prompt:    "127",
		Command:   "232",
		Parameter: "28",
		UIActive:  "127",
		UIDim:     "252",
	},

	// Grayscale only; errors stay readable through weight, not hue.
	"mono-dark": {
		Success:   "252",
		Warning:   "250",
		Error:     "bold",
		Info:      "248",
		Muted:     "242",
		Header:    "bold",
		Prompt:    "bold",
		Command:   "255",
		Parameter: "246",
		UIActive:  "255",
		UIDim:     "238",
	},
	"mono-light": {
		Success:   "236",
		Warning:   "238",
		Error:     "bold",
		Info:      "240",
		Muted:     "246",
		Header:    "bold",
		Prompt:    "bold",
		Command:   "232",
		Parameter: "242",
		UIActive:  "232",
		UIDim:     "250",
	},

	// Blues and teals.
	"ocean-dark": {
		Success:   "43",
		Warning:   "222",
		Error:     "210",
		Info:      "75",
		Muted:     "244",
		Header:    "bold",
		Prompt:    "39",
		Command:   "195",
		Parameter: "80",
		UIActive:  "39",
		UIDim:     "24",
	},
	"ocean-light": {
		Success:   "30",
		Warning:   "136",
		Error:     "160",
		Info:      "25",
		Muted:     "244",
		Header:    "bold",
		Prompt:    "24",
		Command:   "17",
		Parameter: "31",
		UIActive:  "25",
		UIDim:     "153",
	},

	// Basic 16-color palette at maximum contrast.
	"contrast-dark": {
		Success:   "10",
		Warning:   "11",
		Error:     "9",
		Info:      "14",
		Muted:     "7",
		Header:    "bold",
		Prompt:    "11",
		Command:   "15",
		Parameter: "14",
		UIActive:  "11",
		UIDim:     "7",
	},
	"contrast-light": {
		Success:   "2",
		Warning:   "3",
		Error:     "1",
		Info:      "4",
		Muted:     "8",
		Header:    "bold",
		Prompt:    "4",
		Command:   "0",
		Parameter: "5",
		UIActive:  "4",
		UIDim:     "8",
	},
}

// ThemeNames lists all themes with explicit dark/light variants.
func ThemeNames() []string {
	names := make([]string, 0, len(BaseThemeNames)*2)
	for _, base := range BaseThemeNames {
		names = append(names, base+"-dark", base+"-light")
	}
	return names
}

// colorConfigKeys maps config key names to the field they override.
var colorConfigKeys = map[string]func(*ColorConfig) *string{
	"color_success":   func(c *ColorConfig) *string { return &c.Success },
	"color_warning":   func(c *ColorConfig) *string { return &c.Warning },
	"color_error":     func(c *ColorConfig) *string { return &c.Error },
	"color_info":      func(c *ColorConfig) *string { return &c.Info },
	"color_muted":     func(c *ColorConfig) *string { return &c.Muted },
	"color_header":    func(c *ColorConfig) *string { return &c.Header },
	"color_prompt":    func(c *ColorConfig) *string { return &c.Prompt },
	"color_command":   func(c *ColorConfig) *string { return &c.Command },
	"color_parameter": func(c *ColorConfig) *string { return &c.Parameter },
	"color_ui_active": func(c *ColorConfig) *string { return &c.UIActive },
	"color_ui_dim":    func(c *ColorConfig) *string { return &c.UIDim },
}

// IsDarkBackground returns true if the terminal has a dark background.
// Uses termenv to query the terminal. Returns true if detection fails.
var IsDarkBackground = termenv.HasDarkBackground

// ResolveThemeName takes a theme name and returns the full theme name.
// If the name doesn't have a -dark/-light suffix, it appends one based
// on terminal background detection.
func ResolveThemeName(name string) string {
	if strings.HasSuffix(name, "-dark") || strings.HasSuffix(name, "-light") {
		return name
	}

	if IsDarkBackground() {
		return name + "-dark"
	}
	return name + "-light"
}

// LoadColorConfig builds a ColorConfig from the given configuration map.
// Resolution priority:
//  1. Environment variable (CMDSH_COLOR_*)
//  2. Config file value
//  3. Theme value (from the theme key, or CMDSH_THEME)
//  4. Default theme (auto-detected based on terminal background)
func LoadColorConfig(cfg map[string]string) ColorConfig {
	themeName := ResolveThemeName("default")

	if envTheme := os.Getenv("CMDSH_THEME"); envTheme != "" {
		themeName = ResolveThemeName(envTheme)
	} else if cfgTheme, ok := cfg["theme"]; ok && cfgTheme != "" {
		themeName = ResolveThemeName(cfgTheme)
	}

	result, ok := Themes[themeName]
	if !ok {
		result = Themes["default-dark"]
	}

	for configKey, field := range colorConfigKeys {
		if envVal := os.Getenv("CMDSH_" + strings.ToUpper(configKey)); envVal != "" {
			*field(&result) = envVal
			continue
		}

		if cfgVal, ok := cfg[configKey]; ok && cfgVal != "" {
			*field(&result) = cfgVal
		}
	}

	return result
}
