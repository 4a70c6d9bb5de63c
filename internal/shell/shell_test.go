package shell

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/commands/internal/domain"
	"github.com/footprint-tools/commands/internal/testutil"
	"github.com/footprint-tools/commands/internal/ui"
	"github.com/footprint-tools/commands/internal/ui/style"
	"github.com/footprint-tools/commands/internal/usage"
	"github.com/footprint-tools/commands/parser"
)

type mapConfig map[string]string

func (m mapConfig) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m mapConfig) GetAll() (map[string]string, error) { return m, nil }

func (m mapConfig) Set(key, value string) error {
	m[key] = value
	return nil
}

func (m mapConfig) Unset(key string) error {
	delete(m, key)
	return nil
}

type fixture struct {
	shell *Shell
	out   *bytes.Buffer
	store domain.HistoryStore
	ran   []string
}

var clock = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{out: &bytes.Buffer{}, store: testutil.NewTestStore(t)}

	handler := func(name string) parser.Handler {
		return func(inv parser.Invocation) error {
			entry := name
			for _, n := range inv.Values.Names() {
				entry += " " + n + "=" + strings.Join(inv.Values.All(n), ",")
			}
			f.ran = append(f.ran, entry)
			return nil
		}
	}

	root, err := parser.NewCommandTree().
		Command(parser.NewCommand("show").Help("Show information").
			Subcommand(parser.NewCommand("version").Help("Software version").Handler(handler("show version"))).
			Subcommand(parser.NewCommand("interface").Help("Interface status").
				Parameter(parser.NewParameter("brief").Kind(parser.Flag).Help("One line per interface")).
				Parameter(parser.NewParameter("name").Help("Interface name")).
				Handler(handler("show interface")))).
		Command(parser.NewCommand("set").Help("Change a setting").
			Parameter(parser.NewParameter("--level").Kind(parser.Named).Alias("-l").Required(true).Help("Level")).
			Parameter(parser.NewParameter("--verbose").Kind(parser.Flag)).
			Handler(handler("set"))).
		Command(parser.NewCommand("fail").Handler(func(parser.Invocation) error { return errors.New("boom") })).
		Command(parser.NewCommand("exit").Handler(func(parser.Invocation) error { return ErrExit })).
		Command(parser.NewCommand("shutdown").Hidden(true)).
		Finalize()
	require.NoError(t, err)

	app := &domain.Application{
		Store:     f.store,
		Config:    mapConfig{"prompt": "lab"},
		Output:    ui.NewWriterTo(f.out),
		Styler:    style.NopStyler{},
		SessionID: "sess-1",
	}
	opts = append([]Option{WithClock(func() time.Time { return clock })}, opts...)
	f.shell = New(app, root, opts...)
	return f
}

func (f *fixture) history(t *testing.T) []domain.HistoryEntry {
	t.Helper()
	entries, err := f.store.List(domain.HistoryFilter{})
	require.NoError(t, err)
	return entries
}

func TestEval_RunsHandler(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.shell.Eval("sho int brief eth0"))
	require.NoError(t, f.shell.Eval("  set -l 3  "))
	require.Equal(t, []string{
		"show interface brief=true name=eth0",
		"set --level=3",
	}, f.ran)

	entries := f.history(t)
	require.Len(t, entries, 2)
	require.Equal(t, "set -l 3", entries[0].Line)
	require.Equal(t, domain.OutcomeOK, entries[0].Outcome)
	require.Equal(t, "sess-1", entries[0].SessionID)
	require.True(t, clock.Equal(entries[0].Timestamp))
}

func TestEval_Outcomes(t *testing.T) {
	tests := []struct {
		line string
		want domain.Outcome
	}{
		{"show version", domain.OutcomeOK},
		{"bogus", domain.OutcomeNoMatch},
		{"s", domain.OutcomeAmbiguous},
		{"set --verbose", domain.OutcomeMissing},
		{"set --level", domain.OutcomeMissing},
		{`show "unterminated`, domain.OutcomeTokenize},
		{"fail", domain.OutcomeFailed},
		{"exit", domain.OutcomeOK},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			f := newFixture(t)
			_ = f.shell.Eval(tt.line)

			entries := f.history(t)
			require.Len(t, entries, 1)
			require.Equal(t, tt.want, entries[0].Outcome)
		})
	}
}

func TestEval_BlankAndHelpLinesAreNotRecorded(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.shell.Eval("   "))
	require.NoError(t, f.shell.Eval("show ?"))
	require.Empty(t, f.history(t))
	require.Empty(t, f.ran)
}

func TestEval_WithoutHistory(t *testing.T) {
	f := newFixture(t)
	f.shell.history = nil

	require.NoError(t, f.shell.Eval("show version"))
	n, err := f.shell.PruneHistory()
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestEval_Help(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
		not  []string
	}{
		{
			name: "top level",
			line: "?",
			want: []string{"Possible options:", "exit", "fail", "set", "show", "Show information"},
			not:  []string{"shutdown", "<cr>"},
		},
		{
			name: "partial word",
			line: "sh?",
			want: []string{"show"},
			not:  []string{"set", "shutdown"},
		},
		{
			name: "after a command",
			line: "show interface ?",
			want: []string{"brief", "<name>", "Interface name", "<cr>"},
		},
		{
			name: "aliases and named values",
			line: "set ?",
			want: []string{"--level <level>", "-l", "--verbose"},
			not:  []string{"<cr>"},
		},
		{
			name: "nothing left",
			line: "show version ?",
			want: []string{"<cr>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			require.NoError(t, f.shell.Eval(tt.line))

			out := f.out.String()
			for _, w := range tt.want {
				require.Contains(t, out, w)
			}
			for _, n := range tt.not {
				require.NotContains(t, out, n)
			}
		})
	}
}

func TestEval_HelpInvalidPrefix(t *testing.T) {
	f := newFixture(t)
	err := f.shell.Eval("nope ?")
	require.ErrorIs(t, err, parser.ErrNoMatches)
}

func TestRunLine_Diagnostics(t *testing.T) {
	tests := []struct {
		name string
		line string
		kind usage.ErrorKind
		want []string
	}{
		{
			name: "unknown token",
			line: "show verison",
			kind: usage.ErrUnknownCommand,
			want: []string{
				"'verison' is not a valid command",
				"  show verison\n       ^",
				"Possible options:",
				"Did you mean: version?",
			},
		},
		{
			name: "ambiguous",
			line: "s",
			kind: usage.ErrAmbiguousCommand,
			want: []string{"'s' is ambiguous: set, show", "Can be interpreted as:", "Change a setting"},
		},
		{
			name: "missing value",
			line: "set --level",
			kind: usage.ErrMissingArgument,
			want: []string{"missing required argument '--level'", "Possible options:", "--level <level>"},
		},
		{
			name: "missing required",
			line: "set --verbose",
			kind: usage.ErrMissingArgument,
			want: []string{"missing required argument '--level'"},
		},
		{
			name: "bad quoting",
			line: `set 'x`,
			kind: usage.ErrInvalidInput,
			want: []string{"unterminated quote", "  set 'x\n      ^"},
		},
		{
			name: "handler failure",
			line: "fail",
			kind: usage.ErrCommandFailed,
			want: []string{"boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			err := f.shell.RunLine(tt.line)

			var uerr *usage.Error
			require.ErrorAs(t, err, &uerr)
			require.Equal(t, tt.kind, uerr.Kind)

			out := f.out.String()
			for _, w := range tt.want {
				require.Contains(t, out, w)
			}
		})
	}
}

func TestRunLine_MarkerSkipsNamedValues(t *testing.T) {
	f := newFixture(t)
	_ = f.shell.RunLine("set --level 3 bogus")
	require.Contains(t, f.out.String(), "  set --level 3 bogus\n"+strings.Repeat(" ", 16)+"^")
}

func TestRunLine_SuggestionsCanBeDisabled(t *testing.T) {
	f := newFixture(t)
	f.shell.suggest = false
	_ = f.shell.RunLine("show verison")
	require.NotContains(t, f.out.String(), "Did you mean")
}

func TestRunLine_Success(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.shell.RunLine("show version"))
	require.NoError(t, f.shell.RunLine("exit"))
	require.Equal(t, []string{"show version"}, f.ran)
}

func TestRun_ReadsUntilExit(t *testing.T) {
	input := "show version\nbogus\n\nset -l 1\nexit\nshow version\n"
	f := newFixture(t, WithInput(strings.NewReader(input)))

	require.NoError(t, f.shell.Run(context.Background()))
	require.Equal(t, []string{"show version", "set --level=1"}, f.ran)
	require.Contains(t, f.out.String(), "'bogus' is not a valid command")
	require.Len(t, f.history(t), 4)
}

func TestRun_StopsAtEOF(t *testing.T) {
	f := newFixture(t, WithInput(strings.NewReader("show version")))
	require.NoError(t, f.shell.Run(context.Background()))
	require.Equal(t, []string{"show version"}, f.ran)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := newFixture(t, WithInput(strings.NewReader("show version\n")))
	require.ErrorIs(t, f.shell.Run(ctx), context.Canceled)
	require.Empty(t, f.ran)
}

func TestRun_PrunesHistory(t *testing.T) {
	f := newFixture(t, WithInput(strings.NewReader("")))
	f.shell.config = mapConfig{"history_limit": "2"}
	testutil.SeedHistory(t, f.store, "old", clock.Add(-time.Hour), "a", "b", "c", "d")

	require.NoError(t, f.shell.Run(context.Background()))

	entries := f.history(t)
	require.Len(t, entries, 2)
	require.Equal(t, "d", entries[0].Line)
}

func TestRecent_OldestFirstOnlySuccessful(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.shell.Eval("show version"))
	_ = f.shell.Eval("bogus")
	f.shell.now = func() time.Time { return clock.Add(time.Second) }
	require.NoError(t, f.shell.Eval("set -l 2"))

	require.Equal(t, []string{"show version", "set -l 2"}, f.shell.recent(10))
}

func TestPrompt(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, "lab> ", f.shell.prompt())

	f.shell.config = nil
	require.Equal(t, "cmdsh> ", f.shell.prompt())
}
