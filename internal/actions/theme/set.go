package theme

import (
	"fmt"
	"slices"

	"github.com/footprint-tools/commands/internal/domain"
	"github.com/footprint-tools/commands/internal/ui/style"
	"github.com/footprint-tools/commands/parser"
)

// Set stores the theme named by the "theme" value and restyles output.
// Base names such as "ocean" pick the variant matching the terminal.
func Set(app *domain.Application) parser.Handler {
	deps := DefaultDeps(app)
	return func(inv parser.Invocation) error {
		return setTheme(inv, deps)
	}
}

func setTheme(inv parser.Invocation, deps Deps) error {
	themeName, _ := inv.Values.Get("name")

	if !known(deps, themeName) {
		_, _ = deps.Printf("%s unknown theme: %s\n", deps.Styler.Error("error:"), themeName)
		_, _ = deps.Println("")
		_, _ = deps.Println("available themes:")
		for _, name := range deps.ThemeNames {
			_, _ = deps.Printf("  %s\n", name)
		}
		return fmt.Errorf("unknown theme: %s", themeName)
	}

	if err := deps.Set("theme", themeName); err != nil {
		return err
	}

	if deps.Restyle != nil {
		if all, err := deps.GetAll(); err == nil {
			deps.Restyle(all)
		}
	}

	_, _ = deps.Printf("theme set to %s\n", deps.Styler.Success(themeName))
	return nil
}

func known(deps Deps, name string) bool {
	if _, ok := deps.Themes[name]; ok {
		return true
	}
	return slices.Contains(style.BaseThemeNames, name)
}
