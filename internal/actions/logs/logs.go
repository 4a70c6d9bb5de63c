package logs

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/footprint-tools/commands/internal/domain"
	"github.com/footprint-tools/commands/internal/log"
	"github.com/footprint-tools/commands/internal/usage"
	"github.com/footprint-tools/commands/parser"
)

const defaultLogLimit = 50

// Show prints the last lines of the log file.
//
// Parameters: --limit n, --level name (minimum severity), and the flags
// "session" (only lines from this session) and "json".
func Show(app *domain.Application) parser.Handler {
	deps := DefaultDeps(app)
	return func(inv parser.Invocation) error {
		return show(inv, deps)
	}
}

func show(inv parser.Invocation, deps Deps) error {
	jsonOutput := inv.Values.Has("json")
	logPath := deps.LogFilePath()

	limit := defaultLogLimit
	if raw, ok := inv.Values.Get("--limit"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return usage.InvalidFlag("--limit " + raw)
		}
		limit = n
	}

	minLevel := log.LevelDebug
	if raw, ok := inv.Values.Get("--level"); ok {
		lvl, valid := parseLevel(raw)
		if !valid {
			return usage.InvalidFlag("--level " + raw)
		}
		minLevel = lvl
	}

	info, err := deps.Stat(logPath)
	if os.IsNotExist(err) {
		return printEmpty(deps, jsonOutput, "No log file found at "+logPath)
	}
	if err != nil {
		return fmt.Errorf("stat log file: %w", err)
	}
	if info.Size() == 0 {
		return printEmpty(deps, jsonOutput, "Log file is empty")
	}

	content, err := deps.ReadFile(logPath)
	if err != nil {
		return fmt.Errorf("read log file: %w", err)
	}

	session := ""
	if inv.Values.Has("session") {
		session = shortSession(deps.SessionID)
	}

	var entries []entry
	for line := range strings.SplitSeq(string(content), "\n") {
		if line == "" {
			continue
		}
		e := parseLine(line)
		if e.Level != "" && log.ParseLevel(e.Level) < minLevel {
			continue
		}
		if e.Level == "" && minLevel > log.LevelDebug {
			continue
		}
		if session != "" && e.Session != session {
			continue
		}
		entries = append(entries, e)
	}

	if len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}

	if jsonOutput {
		return printJSON(entries, deps)
	}
	if len(entries) == 0 {
		_, _ = deps.Println(deps.Styler.Muted("No matching log lines"))
		return nil
	}
	for _, e := range entries {
		_, _ = deps.Println(colorize(e, deps.Styler))
	}
	return nil
}

func printEmpty(deps Deps, jsonOutput bool, msg string) error {
	if jsonOutput {
		_, _ = deps.Println("[]")
		return nil
	}
	_, _ = deps.Println(deps.Styler.Muted(msg))
	return nil
}

// entry is one parsed log line. Lines that do not follow the logger's
// format keep only Raw.
type entry struct {
	Timestamp string `json:"timestamp,omitempty"`
	Session   string `json:"session,omitempty"`
	Level     string `json:"level,omitempty"`
	Message   string `json:"message"`
	Raw       string `json:"-"`
}

// logEntryRegex matches "[2025-01-29 10:30:45] [1a2b3c4d] INFO: message",
// the session tag being optional.
var logEntryRegex = regexp.MustCompile(`^\[([^\]]+)\]\s+(?:\[([0-9a-f-]+)\]\s+)?(DEBUG|INFO|WARN|ERROR):\s*(.*)$`)

func parseLine(line string) entry {
	m := logEntryRegex.FindStringSubmatch(line)
	if m == nil {
		return entry{Message: line, Raw: line}
	}
	return entry{
		Timestamp: m[1],
		Session:   m[2],
		Level:     m[3],
		Message:   m[4],
		Raw:       line,
	}
}

func parseLevel(s string) (log.Level, bool) {
	switch strings.ToLower(s) {
	case "debug", "info", "warn", "error":
		return log.ParseLevel(s), true
	}
	return 0, false
}

func shortSession(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func printJSON(entries []entry, deps Deps) error {
	if entries == nil {
		entries = []entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	_, _ = deps.Println(string(data))
	return nil
}

func colorize(e entry, styler domain.Styler) string {
	switch e.Level {
	case "ERROR":
		return styler.Error(e.Raw)
	case "WARN":
		return styler.Warning(e.Raw)
	case "INFO":
		return styler.Info(e.Raw)
	case "DEBUG":
		return styler.Muted(e.Raw)
	}
	return e.Raw
}

// Clear empties the log file.
func Clear(app *domain.Application) parser.Handler {
	deps := DefaultDeps(app)
	return func(inv parser.Invocation) error {
		return clearLog(inv, deps)
	}
}

func clearLog(_ parser.Invocation, deps Deps) error {
	if err := deps.WriteFile(deps.LogFilePath(), []byte{}, 0600); err != nil {
		return fmt.Errorf("clear log file: %w", err)
	}
	_, _ = deps.Println(deps.Styler.Success("Log file cleared"))
	return nil
}
