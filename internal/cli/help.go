package cli

import (
	"github.com/footprint-tools/commands/internal/domain"
	"github.com/footprint-tools/commands/internal/ui"
	"github.com/footprint-tools/commands/internal/ui/style"
	"github.com/footprint-tools/commands/parser"
)

// Help lists the visible commands two levels deep.
func Help(app *domain.Application, root func() *parser.RootNode) parser.Handler {
	styler := app.Styler
	if styler == nil {
		styler = style.NopStyler{}
	}
	return func(parser.Invocation) error {
		_, err := app.Output.Printf("%s", helpText(root(), styler))
		return err
	}
}

func helpText(root *parser.RootNode, styler domain.Styler) string {
	var rows []ui.Row
	for _, top := range commands(root) {
		rows = append(rows, ui.Row{Left: styler.Command(top.Name()), Right: styler.Muted(top.HelpText())})
		for _, sub := range commands(top) {
			rows = append(rows, ui.Row{Left: "  " + styler.Command(sub.Name()), Right: styler.Muted(sub.HelpText())})
		}
	}

	return styler.Header("Commands:") + "\n" +
		ui.Columns(rows, 2) + "\n" +
		styler.Muted("Commands may be abbreviated. End a line with ? to list what can follow.") + "\n"
}

// commands returns the visible commands and wrappers below n, in the
// order of listings.
func commands(n parser.Node) []parser.Node {
	var out []parser.Node
	for _, s := range parser.SortNodes(parser.VisibleNodes(n.Successors())) {
		switch s.(type) {
		case *parser.CommandNode, *parser.WrapperNode:
			out = append(out, s)
		}
	}
	return out
}
