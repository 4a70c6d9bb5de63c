package actions

import (
	"runtime"

	"github.com/footprint-tools/commands/internal/domain"
	"github.com/footprint-tools/commands/parser"
)

func ShowVersion(a *domain.Application) parser.Handler {
	deps := defaultDeps(a)
	return func(inv parser.Invocation) error {
		return showVersion(inv, deps)
	}
}

func showVersion(_ parser.Invocation, deps actionDependencies) error {
	_, _ = deps.Printf("cmdsh version %v (%s/%s)\n", deps.Version(), runtime.GOOS, runtime.GOARCH)
	if deps.SessionID != "" {
		_, _ = deps.Printf("%s\n", deps.Styler.Muted("session "+deps.SessionID))
	}
	return nil
}
