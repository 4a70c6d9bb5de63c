package config

import (
	"github.com/footprint-tools/commands/internal/domain"
	"github.com/footprint-tools/commands/parser"
)

func Set(app *domain.Application) parser.Handler {
	deps := DefaultDeps(app)
	return func(inv parser.Invocation) error {
		return set(inv, deps)
	}
}

func set(inv parser.Invocation, deps Deps) error {
	key, _ := inv.Values.Get("key")
	value, _ := inv.Values.Get("value")

	previous, had := deps.Get(key)

	if err := deps.Set(key, value); err != nil {
		return err
	}
	restyle(deps, key)

	if had && previous != "" && previous != value {
		_, _ = deps.Printf("%s=%s %s\n", key, value, deps.Styler.Muted("(was "+previous+")"))
		return nil
	}
	_, _ = deps.Printf("%s=%s\n", key, value)
	return nil
}
