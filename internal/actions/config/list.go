package config

import (
	"github.com/footprint-tools/commands/internal/domain"
	"github.com/footprint-tools/commands/internal/ui"
	"github.com/footprint-tools/commands/parser"
)

// Show prints one key when a key is given, otherwise every visible key
// grouped by section.
func Show(app *domain.Application) parser.Handler {
	deps := DefaultDeps(app)
	return func(inv parser.Invocation) error {
		if inv.Values.Has("key") {
			return get(inv, deps)
		}
		return list(inv, deps)
	}
}

func list(_ parser.Invocation, deps Deps) error {
	configMap, err := deps.GetAll()
	if err != nil {
		return err
	}

	bySection := domain.ConfigKeysBySection()
	first := true
	for _, section := range domain.ConfigSections() {
		var rows []ui.Row
		for _, key := range bySection[section] {
			value, exists := configMap[key.Name]
			if key.HideIfEmpty && (!exists || value == "") {
				continue
			}

			right := value
			if value == key.Default {
				right += " " + deps.Styler.Muted("(default)")
			}
			rows = append(rows, ui.Row{Left: key.Name, Right: right})
		}
		if len(rows) == 0 {
			continue
		}

		if !first {
			_, _ = deps.Println()
		}
		first = false
		_, _ = deps.Println(deps.Styler.Header(section))
		_, _ = deps.Printf("%s", ui.Columns(rows, 2))
	}

	return nil
}
