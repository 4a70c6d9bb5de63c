package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/footprint-tools/commands/internal/domain"
	"github.com/footprint-tools/commands/internal/ui/style"
	"github.com/footprint-tools/commands/parser"
)

// List prints every theme with a sample of its colors.
func List(app *domain.Application) parser.Handler {
	deps := DefaultDeps(app)
	return func(inv parser.Invocation) error {
		return list(inv, deps)
	}
}

func list(_ parser.Invocation, deps Deps) error {
	current, _ := deps.Get("theme")
	if current == "" {
		current = "default"
	}
	current = deps.Resolve(current)

	_, _ = deps.Println("Available themes (* = current)\n")

	for _, name := range deps.ThemeNames {
		marker := "  "
		if name == current {
			marker = deps.Styler.Success("* ")
		}
		_, _ = deps.Printf("%s%-16s  %s\n", marker, name, renderColorPreview(deps.Themes[name]))
	}

	_, _ = deps.Println("\nUse 'set theme <name>' to change")
	return nil
}

// renderColorPreview returns colored text samples for a theme.
func renderColorPreview(cfg style.ColorConfig) string {
	colorize := func(text, color string) string {
		if color == "" || color == "bold" {
			return lipgloss.NewStyle().Bold(true).Render(text)
		}
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(text)
	}

	return colorize("success ", cfg.Success) +
		colorize("warning ", cfg.Warning) +
		colorize("error ", cfg.Error) +
		colorize("info ", cfg.Info) +
		colorize("muted", cfg.Muted) +
		"   " +
		colorize("show ", cfg.Command) +
		colorize("<name>", cfg.Parameter)
}
