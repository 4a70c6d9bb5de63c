// Package style provides semantic terminal styling using lipgloss.
//
// Styling is semantic (Success, Prompt, Command, etc.) rather than visual.
// When disabled, all helpers return the input string unchanged with no ANSI
// codes.
package style

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	enabled bool
	colors  ColorConfig

	// Only used when enabled is true.
	successStyle   lipgloss.Style
	warningStyle   lipgloss.Style
	errorStyle     lipgloss.Style
	infoStyle      lipgloss.Style
	headerStyle    lipgloss.Style
	mutedStyle     lipgloss.Style
	promptStyle    lipgloss.Style
	commandStyle   lipgloss.Style
	parameterStyle lipgloss.Style
)

// Init initializes the style package with the given enabled state and config.
// NO_COLOR and CMDSH_NO_COLOR (any non-empty value) disable styling
// regardless of enable.
//
// cfg supplies the theme and individual color overrides; nil uses the
// default theme. Calling Init again re-applies the settings after they change.
func Init(enable bool, cfg map[string]string) {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("CMDSH_NO_COLOR") != "" {
		enabled = false
		return
	}

	enabled = enable

	if enabled {
		colors = LoadColorConfig(cfg)
		initStyles(colors)
	}
}

// GetColors returns the current color configuration.
// Returns empty config if styling is not enabled.
func GetColors() ColorConfig {
	return colors
}

func initStyles(colors ColorConfig) {
	// ANSI256 covers both the basic (0-15) and extended palette values used
	// by the themes, independent of TTY detection.
	lipgloss.SetColorProfile(termenv.ANSI256)

	successStyle = makeStyle(colors.Success)
	warningStyle = makeStyle(colors.Warning)
	errorStyle = makeStyle(colors.Error)
	infoStyle = makeStyle(colors.Info)
	mutedStyle = makeStyle(colors.Muted)
	headerStyle = makeStyle(colors.Header)
	promptStyle = makeStyle(colors.Prompt).Bold(true)
	commandStyle = makeStyle(colors.Command)
	parameterStyle = makeStyle(colors.Parameter)
}

// makeStyle creates a lipgloss style from a color value.
// The value can be "bold" for bold styling, or an ANSI color number (0-255).
func makeStyle(value string) lipgloss.Style {
	if value == "bold" {
		return lipgloss.NewStyle().Bold(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(value))
}

// Enabled returns whether styling is currently enabled.
func Enabled() bool {
	return enabled
}

func render(s lipgloss.Style, text string) string {
	if !enabled {
		return text
	}
	return s.Render(text)
}

func Success(text string) string { return render(successStyle, text) }
func Warning(text string) string { return render(warningStyle, text) }
func Error(text string) string   { return render(errorStyle, text) }
func Info(text string) string    { return render(infoStyle, text) }
func Header(text string) string  { return render(headerStyle, text) }
func Muted(text string) string   { return render(mutedStyle, text) }

// Prompt styles the shell prompt.
func Prompt(text string) string { return render(promptStyle, text) }

// Command styles command and flag literals in listings.
func Command(text string) string { return render(commandStyle, text) }

// Parameter styles value placeholders such as <host>.
func Parameter(text string) string { return render(parameterStyle, text) }
