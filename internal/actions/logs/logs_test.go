package logs

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/commands/internal/ui/style"
	"github.com/footprint-tools/commands/internal/usage"
	"github.com/footprint-tools/commands/parser"
)

const sampleLog = `[2025-01-29 10:30:45] [aaaa1111] INFO: session started
[2025-01-29 10:30:46] [aaaa1111] DEBUG: parsed "show version"
[2025-01-29 10:30:47] WARN: history disabled
stray line
[2025-01-29 10:31:02] [bbbb2222] ERROR: handler failed: boom
`

func testDeps(t *testing.T, content string, out *bytes.Buffer) Deps {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cmdsh.log")
	if content != "" {
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	}
	return Deps{
		LogFilePath: func() string { return path },
		SessionID:   "bbbb2222-0000-4000-8000-000000000000",
		Printf:      func(f string, a ...any) (int, error) { return fmt.Fprintf(out, f, a...) },
		Println:     func(a ...any) (int, error) { return fmt.Fprintln(out, a...) },
		ReadFile:    os.ReadFile,
		WriteFile:   os.WriteFile,
		Stat:        os.Stat,
		Styler:      style.NopStyler{},
	}
}

func logsTree(t *testing.T, deps Deps) *parser.RootNode {
	t.Helper()
	root, err := parser.NewCommandTree().
		Command(parser.NewCommand("show").
			Subcommand(parser.NewCommand("logging").
				Parameter(parser.NewParameter("json").Kind(parser.Flag)).
				Parameter(parser.NewParameter("session").Kind(parser.Flag)).
				Parameter(parser.NewParameter("--limit").Kind(parser.Named)).
				Parameter(parser.NewParameter("--level").Kind(parser.Named)).
				Handler(func(inv parser.Invocation) error { return show(inv, deps) }))).
		Command(parser.NewCommand("clear").
			Subcommand(parser.NewCommand("logging").
				Handler(func(inv parser.Invocation) error { return clearLog(inv, deps) }))).
		Finalize()
	require.NoError(t, err)
	return root
}

func run(t *testing.T, deps Deps, line string) error {
	t.Helper()
	return parser.Run(logsTree(t, deps), strings.Fields(line))
}

func TestShow(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{
			name: "everything",
			line: "show logging",
			want: sampleLog,
		},
		{
			name: "limit keeps the tail",
			line: "show logging --limit 2",
			want: "stray line\n[2025-01-29 10:31:02] [bbbb2222] ERROR: handler failed: boom\n",
		},
		{
			name: "minimum level drops unparsed lines",
			line: "show logging --level warn",
			want: "[2025-01-29 10:30:47] WARN: history disabled\n[2025-01-29 10:31:02] [bbbb2222] ERROR: handler failed: boom\n",
		},
		{
			name: "current session only",
			line: "show logging session",
			want: "[2025-01-29 10:31:02] [bbbb2222] ERROR: handler failed: boom\n",
		},
		{
			name: "json output",
			line: "show logging session --level debug --limit 1 json",
			want: "[\n  {\n    \"timestamp\": \"2025-01-29 10:31:02\",\n    \"session\": \"bbbb2222\",\n    \"level\": \"ERROR\",\n    \"message\": \"handler failed: boom\"\n  }\n]\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, run(t, testDeps(t, sampleLog, &out), tt.line))
			require.Equal(t, tt.want, out.String())
		})
	}
}

func TestShow_JSONKeepsRawLinesAsMessages(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(t, testDeps(t, "stray line\n", &out), "show logging json"))
	require.Equal(t, "[\n  {\n    \"message\": \"stray line\"\n  }\n]\n", out.String())
}

func TestShow_MissingAndEmptyFile(t *testing.T) {
	var out bytes.Buffer
	deps := testDeps(t, "", &out)
	require.NoError(t, run(t, deps, "show logging"))
	require.Contains(t, out.String(), "No log file found at "+deps.LogFilePath())

	out.Reset()
	require.NoError(t, os.WriteFile(deps.LogFilePath(), nil, 0600))
	require.NoError(t, run(t, deps, "show logging"))
	require.Equal(t, "Log file is empty\n", out.String())

	out.Reset()
	require.NoError(t, run(t, deps, "show logging json"))
	require.Equal(t, "[]\n", out.String())
}

func TestShow_NoMatchingLines(t *testing.T) {
	var out bytes.Buffer
	deps := testDeps(t, sampleLog, &out)
	deps.SessionID = "cccc3333"

	require.NoError(t, run(t, deps, "show logging session"))
	require.Equal(t, "No matching log lines\n", out.String())
}

func TestShow_InvalidParameters(t *testing.T) {
	for _, line := range []string{
		"show logging --limit 0",
		"show logging --limit lots",
		"show logging --level loud",
	} {
		t.Run(line, func(t *testing.T) {
			var out bytes.Buffer
			err := run(t, testDeps(t, sampleLog, &out), line)

			var uerr *usage.Error
			require.ErrorAs(t, err, &uerr)
			require.Equal(t, usage.ErrInvalidFlag, uerr.Kind)
		})
	}
}

func TestShow_StatAndReadErrors(t *testing.T) {
	var out bytes.Buffer
	deps := testDeps(t, sampleLog, &out)
	deps.Stat = func(string) (os.FileInfo, error) { return nil, errors.New("stat error") }
	require.ErrorContains(t, run(t, deps, "show logging"), "stat log file")

	deps = testDeps(t, sampleLog, &out)
	deps.ReadFile = func(string) ([]byte, error) { return nil, errors.New("read error") }
	require.ErrorContains(t, run(t, deps, "show logging"), "read log file")
}

func TestClear(t *testing.T) {
	var out bytes.Buffer
	deps := testDeps(t, sampleLog, &out)

	require.NoError(t, run(t, deps, "clear logging"))
	require.Equal(t, "Log file cleared\n", out.String())

	data, err := os.ReadFile(deps.LogFilePath())
	require.NoError(t, err)
	require.Empty(t, data)

	deps.WriteFile = func(string, []byte, os.FileMode) error { return errors.New("read-only") }
	require.ErrorContains(t, run(t, deps, "clear logging"), "clear log file")
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		line string
		want entry
	}{
		{
			line: "[2025-01-29 10:30:45] [aaaa1111] INFO: started",
			want: entry{Timestamp: "2025-01-29 10:30:45", Session: "aaaa1111", Level: "INFO", Message: "started"},
		},
		{
			line: "[2025-01-29 10:30:45] ERROR: failed: x",
			want: entry{Timestamp: "2025-01-29 10:30:45", Level: "ERROR", Message: "failed: x"},
		},
		{
			line: "no brackets here",
			want: entry{Message: "no brackets here"},
		},
		{
			line: "[2025-01-29 10:30:45] NOTICE: unknown level",
			want: entry{Message: "[2025-01-29 10:30:45] NOTICE: unknown level"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			tt.want.Raw = tt.line
			require.Equal(t, tt.want, parseLine(tt.line))
		})
	}
}
