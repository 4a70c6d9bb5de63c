package cli

import (
	"strings"

	"github.com/footprint-tools/commands/internal/domain"
	"github.com/footprint-tools/commands/internal/grammarfile"
	"github.com/footprint-tools/commands/parser"
)

// Echo gives every command of a loaded grammar a handler that prints the
// command path and the values bound to it, one per line:
//
//	show interface
//	  name = eth0
func Echo(app *domain.Application) grammarfile.HandlerFunc {
	return func(path []string) parser.Handler {
		name := strings.Join(path, " ")
		return func(inv parser.Invocation) error {
			_, _ = app.Output.Println(name)
			for _, key := range inv.Values.Names() {
				for _, v := range inv.Values.All(key) {
					_, _ = app.Output.Printf("  %s = %s\n", key, v)
				}
			}
			return nil
		}
	}
}
