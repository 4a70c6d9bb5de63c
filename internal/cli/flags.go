package cli

import "github.com/footprint-tools/commands/parser"

func flag(name, help string) parser.Parameter {
	return parser.NewParameter(name).Kind(parser.Flag).Help(help)
}

func named(name, help string) parser.Parameter {
	return parser.NewParameter(name).Kind(parser.Named).Help(help)
}

var (
	BriefFlag = flag("brief", "One line per interface")

	HistoryFlags = []parser.Parameter{
		flag("all", "Include every session, not just this one"),
		flag("ago", "Show relative times"),
		named("--limit", "Maximum number of entries (default 20)").Alias("-n"),
		named("--outcome", "Only entries with this outcome (ok, no_match, ambiguous, missing, tokenize, failed)"),
		named("--contains", "Only lines containing this text"),
		named("--since", "Only entries newer than this duration (e.g., 2h)"),
	}

	ClearHistoryFlags = []parser.Parameter{
		named("--keep", "Keep the newest n entries"),
	}

	LoggingFlags = []parser.Parameter{
		flag("json", "Print entries as JSON"),
		flag("session", "Only lines from this session"),
		named("--limit", "Maximum number of lines (default 50)").Alias("-n"),
		named("--level", "Minimum level (debug, info, warn, error)"),
	}

	PingFlags = []parser.Parameter{
		named("--count", "Number of probes (default 4)").Alias("-c"),
		named("--port", "TCP port to connect to (default 80)").Alias("-p"),
		flag("--verbose", "Print every probe").Alias("-v"),
	}
)
