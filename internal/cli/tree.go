// Package cli declares the built-in command grammar of the shell.
package cli

import (
	"github.com/footprint-tools/commands/internal/actions"
	"github.com/footprint-tools/commands/internal/actions/config"
	"github.com/footprint-tools/commands/internal/actions/history"
	"github.com/footprint-tools/commands/internal/actions/logs"
	"github.com/footprint-tools/commands/internal/actions/theme"
	"github.com/footprint-tools/commands/internal/browser"
	"github.com/footprint-tools/commands/internal/domain"
	"github.com/footprint-tools/commands/internal/shell"
	"github.com/footprint-tools/commands/parser"
)

// Build freezes the built-in grammar.
func Build(app *domain.Application) (*parser.RootNode, error) {
	var root *parser.RootNode
	r, err := BuildTree(app, func() *parser.RootNode { return root }).Finalize()
	if err != nil {
		return nil, err
	}
	root = r
	return root, nil
}

// BuildTree declares the device-shell grammar. root must return the frozen
// grammar once it exists; help and browse read it when they run.
func BuildTree(app *domain.Application, root func() *parser.RootNode) *parser.CommandTree {
	tree := parser.NewCommandTree().
		Command(showCommand(app)).
		Command(parser.NewCommand("set").
			Help("Change a setting").
			Parameter(ConfigKeyValueArgs).
			Handler(config.Set(app)).
			Subcommand(parser.NewCommand("theme").
				Help("Switch the color theme").
				Parameter(ThemeNameArg).
				Handler(theme.Set(app)))).
		Command(parser.NewCommand("unset").
			Help("Restore a setting to its default").
			Parameter(ConfigKeyArg.Required(true)).
			Handler(config.Unset(app))).
		Command(withParameters(parser.NewCommand("ping").
			Help("Probe a host with TCP connects").
			Parameter(HostArg), PingFlags).
			Handler(actions.Ping(app))).
		Command(parser.NewCommand("clear").
			Help("Remove recorded data").
			Subcommand(withParameters(parser.NewCommand("history").
				Help("Delete command history"), ClearHistoryFlags).
				Handler(history.Clear(app))).
			Subcommand(parser.NewCommand("logging").
				Help("Empty the log file").
				Handler(logs.Clear(app)))).
		Command(parser.NewCommand("sh-int").
			Help("Shorthand for show interface").
			Hidden(true).
			Wraps("show interface").
			Parameter(BriefFlag).
			Parameter(InterfaceNameArg))

	for _, c := range Builtins(app, root) {
		tree.Command(c)
	}
	return tree
}

func showCommand(app *domain.Application) parser.Command {
	return parser.NewCommand("show").
		Help("Display system state").
		Subcommand(parser.NewCommand("version").
			Help("Software version and session").
			Handler(actions.ShowVersion(app))).
		Subcommand(parser.NewCommand("interface").
			Help("Network interface status").
			Parameter(BriefFlag).
			Parameter(InterfaceNameArg).
			Handler(actions.ShowInterface(app))).
		Subcommand(withParameters(parser.NewCommand("history").
			Help("Previously entered lines"), HistoryFlags).
			Handler(history.Show(app))).
		Subcommand(parser.NewCommand("config").
			Help("Current settings").
			Parameter(ConfigKeyArg).
			Handler(config.Show(app))).
		Subcommand(parser.NewCommand("themes").
			Help("Available color themes").
			Handler(theme.List(app))).
		Subcommand(withParameters(parser.NewCommand("logging").
			Help("Recent log lines"), LoggingFlags).
			Handler(logs.Show(app)))
}

// Builtins returns the commands every grammar gets: help, browse and exit.
// They are appended to grammars loaded from files as well.
func Builtins(app *domain.Application, root func() *parser.RootNode) []parser.Command {
	return []parser.Command{
		parser.NewCommand("help").
			Help("List available commands").
			Handler(Help(app, root)),
		parser.NewCommand("browse").
			Help("Explore commands in a full-screen browser").
			Handler(browser.Command("cmdsh commands", root)),
		parser.NewCommand("exit").
			Help("Leave the shell").
			Handler(func(parser.Invocation) error { return shell.ErrExit }),
	}
}

func withParameters(c parser.Command, params []parser.Parameter) parser.Command {
	for _, p := range params {
		c = c.Parameter(p)
	}
	return c
}
