package config

import (
	"github.com/footprint-tools/commands/internal/domain"
	"github.com/footprint-tools/commands/parser"
)

func Unset(app *domain.Application) parser.Handler {
	deps := DefaultDeps(app)
	return func(inv parser.Invocation) error {
		return unset(inv, deps)
	}
}

func unset(inv parser.Invocation, deps Deps) error {
	key, _ := inv.Values.Get("key")

	if err := deps.Unset(key); err != nil {
		return err
	}
	restyle(deps, key)

	if def, ok := domain.GetDefaultValue(key); ok && def != "" {
		_, _ = deps.Printf("unset %s %s\n", key, deps.Styler.Muted("(now "+def+")"))
		return nil
	}
	_, _ = deps.Printf("unset %s\n", key)
	return nil
}
