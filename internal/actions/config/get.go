package config

import (
	"github.com/footprint-tools/commands/internal/domain"
	"github.com/footprint-tools/commands/internal/usage"
	"github.com/footprint-tools/commands/parser"
)

func get(inv parser.Invocation, deps Deps) error {
	key, _ := inv.Values.Get("key")

	if !domain.IsValidConfigKey(key) {
		return usage.InvalidConfigKey(key)
	}

	value, _ := deps.Get(key)
	_, _ = deps.Println(value)
	return nil
}
