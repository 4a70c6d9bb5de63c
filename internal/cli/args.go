package cli

import "github.com/footprint-tools/commands/parser"

// Positional parameters shared by several commands.
var (
	ConfigKeyArg = parser.NewParameter("key").
			Help("Configuration key")

	ConfigKeyValueArgs = parser.NewParameter("key").
				Help("Configuration key").
				Required(true).
				Then(parser.NewParameter("value").
					Help("Value to assign").
					Required(true))

	InterfaceNameArg = parser.NewParameter("name").
				Help("Interface name (e.g., eth0)")

	ThemeNameArg = parser.NewParameter("name").
			Help("Theme name (e.g., ocean, neon-light)").
			Required(true)

	HostArg = parser.NewParameter("host").
		Help("Host name or address to probe").
		Required(true)
)
