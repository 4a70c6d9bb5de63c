package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func names(nodes []Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name()
	}
	return out
}

func requireParseError(t *testing.T, err error, kind ErrorKind) *Error {
	t.Helper()
	require.Error(t, err)
	var perr *Error
	require.True(t, errors.As(err, &perr), "expected *parser.Error, got %T", err)
	require.Equal(t, kind, perr.Kind)
	return perr
}

func TestParse_ShowScenario(t *testing.T) {
	var calls []Values
	root := mustFinalize(t, NewCommandTree().Command(
		NewCommand("show").
			Help("Show information").
			Parameter(NewParameter("target")).
			Handler(func(inv Invocation) error {
				calls = append(calls, inv.Values)
				return nil
			}),
	))
	p := New(root)

	for _, line := range [][]string{{"show"}, {"sh"}} {
		s, err := p.Parse(line)
		require.NoError(t, err)
		require.Equal(t, "show", s.Command().Name())
		require.NoError(t, s.Verify())
		require.NoError(t, s.Execute())
	}
	require.Len(t, calls, 2)
	for _, v := range calls {
		require.False(t, v.Has("target"))
		require.Zero(t, v.Len())
	}

	_, err := p.Parse([]string{"foo"})
	perr := requireParseError(t, err, NoMatches)
	require.Equal(t, "foo", perr.Token)
	require.Equal(t, []string{"show"}, names(perr.Nodes))
	require.True(t, errors.Is(err, ErrNoMatches))
}

func TestParse_SetScenario(t *testing.T) {
	root := mustFinalize(t, NewCommandTree().Command(
		NewCommand("set").
			Parameter(NewParameter("--level").Kind(Named).Required(true).Priority(PriorityDefault)).
			Parameter(NewParameter("--verbose").Kind(Flag)),
	))
	p := New(root)

	_, err := p.Parse([]string{"set", "--level"})
	perr := requireParseError(t, err, NoMatches)
	require.Empty(t, perr.Token)
	require.Equal(t, []string{"--level"}, names(perr.Nodes))

	s, err := p.Parse([]string{"set", "--verbose"})
	require.NoError(t, err)
	require.True(t, s.Values().Has("--verbose"))

	err = s.Verify()
	perr = requireParseError(t, err, MissingRequired)
	require.Equal(t, []string{"--level"}, perr.Missing)
	require.True(t, errors.Is(err, ErrMissingRequired))
	require.Equal(t, "missing required parameters: --level", err.Error())

	s, err = p.Parse([]string{"set", "--level", "3", "--verbose"})
	require.NoError(t, err)
	require.NoError(t, s.Verify())
	level, ok := s.Values().Get("--level")
	require.True(t, ok)
	require.Equal(t, "3", level)
	require.Equal(t, []string{"--level", "--verbose"}, s.Values().Names())
}

func TestParse_ExactMatchBeatsPrefix(t *testing.T) {
	root := mustFinalize(t, NewCommandTree().
		Command(NewCommand("showall")).
		Command(NewCommand("show")),
	)
	p := New(root)

	s, err := p.Parse([]string{"show"})
	require.NoError(t, err)
	require.Equal(t, "show", s.Command().Name())

	_, err = p.Parse([]string{"sh"})
	perr := requireParseError(t, err, AmbiguousMatch)
	require.Equal(t, "sh", perr.Token)
	require.ElementsMatch(t, []string{"show", "showall"}, names(perr.Nodes))
	require.True(t, errors.Is(err, ErrAmbiguousMatch))
}

func TestParse_ExactMatchBeatsHigherPriorityPrefix(t *testing.T) {
	root := mustFinalize(t, NewCommandTree().
		Command(NewCommand("show")).
		Command(NewCommand("showall").Priority(50)),
	)

	s, err := New(root).Parse([]string{"show"})
	require.NoError(t, err)
	require.Equal(t, "show", s.Command().Name())
}

func TestParse_PriorityBreaksTies(t *testing.T) {
	orders := map[string]*CommandTree{
		"low first": NewCommandTree().
			Command(NewCommand("show")).
			Command(NewCommand("shutdown").Priority(5)),
		"high first": NewCommandTree().
			Command(NewCommand("shutdown").Priority(5)).
			Command(NewCommand("show")),
	}

	for name, tree := range orders {
		t.Run(name, func(t *testing.T) {
			s, err := New(mustFinalize(t, tree)).Parse([]string{"sh"})
			require.NoError(t, err)
			require.Equal(t, "shutdown", s.Command().Name())
		})
	}
}

func TestParse_FlagAndSubcommandOverlap(t *testing.T) {
	// A flag and a sub-command share a prefix; priority decides.
	root := mustFinalize(t, NewCommandTree().Command(
		NewCommand("show").
			Parameter(NewParameter("detail").Kind(Flag).Priority(PriorityDefault+1)).
			Subcommand(NewCommand("details")),
	))

	s, err := New(root).Parse([]string{"show", "det"})
	require.NoError(t, err)
	require.Equal(t, "show", s.Command().Name())
	require.True(t, s.Values().Has("detail"))
}

func TestParse_HiddenNodes(t *testing.T) {
	root := mustFinalize(t, NewCommandTree().
		Command(NewCommand("show")).
		Command(NewCommand("shell").Hidden(true)).
		Command(NewCommand("debug").Hidden(true)),
	)
	p := New(root)

	s, err := p.Parse([]string{"debug"})
	require.NoError(t, err, "hidden commands still match")
	require.Equal(t, "debug", s.Command().Name())

	_, err = p.Parse([]string{"zzz"})
	perr := requireParseError(t, err, NoMatches)
	require.Equal(t, []string{"show"}, names(perr.Nodes))

	_, err = p.Parse([]string{"sh"})
	perr = requireParseError(t, err, AmbiguousMatch)
	require.ElementsMatch(t, []string{"show", "shell"}, names(perr.Nodes))
	require.Equal(t, []string{"show"}, names(VisibleNodes(perr.Nodes)))
}

func TestParse_NoMatchesListingOrder(t *testing.T) {
	root := mustFinalize(t, NewCommandTree().
		Command(NewCommand("zeta")).
		Command(NewCommand("alpha")).
		Command(NewCommand("urgent").Priority(10)).
		Command(NewCommand("legacy").Priority(-5)).
		Command(NewCommand("beta")),
	)

	_, err := New(root).Parse([]string{"x"})
	perr := requireParseError(t, err, NoMatches)
	require.Equal(t, []string{"urgent", "alpha", "beta", "zeta", "legacy"}, names(perr.Nodes))
}

func TestParse_RepeatableParameters(t *testing.T) {
	root := mustFinalize(t, NewCommandTree().Command(
		NewCommand("tag").
			Parameter(NewParameter("--add").Kind(Named).Repeatable(true)).
			Parameter(NewParameter("-v").Kind(Flag).Repeatable(true)).
			Parameter(NewParameter("hosts").Repeatable(true)),
	))

	s, err := New(root).Parse([]string{"tag", "--add", "a", "r1", "-v", "--add", "b", "r2", "-v", "--add", "c"})
	require.NoError(t, err)

	v := s.Values()
	require.Equal(t, []string{"a", "b", "c"}, v.All("--add"))
	require.Equal(t, []string{"r1", "r2"}, v.All("hosts"))
	require.Equal(t, []string{"true", "true"}, v.All("-v"))

	last, ok := v.Get("--add")
	require.True(t, ok)
	require.Equal(t, "c", last)
}

func TestParse_NonRepeatableLeavesFrontier(t *testing.T) {
	root := mustFinalize(t, NewCommandTree().Command(
		NewCommand("ping").
			Parameter(NewParameter("--verbose").Kind(Flag)).
			Parameter(NewParameter("--count").Kind(Named)),
	))
	p := New(root)

	_, err := p.Parse([]string{"ping", "--verbose", "--verbose"})
	perr := requireParseError(t, err, NoMatches)
	require.Equal(t, "--verbose", perr.Token)
	require.Equal(t, []string{"--count"}, names(perr.Nodes))

	_, err = p.Parse([]string{"ping", "--count", "1", "--count", "2"})
	requireParseError(t, err, NoMatches)
}

func TestParse_PositionalParametersInOrder(t *testing.T) {
	root := mustFinalize(t, NewCommandTree().Command(
		NewCommand("copy").
			Parameter(NewParameter("source").Required(true)).
			Parameter(NewParameter("--force").Kind(Flag)).
			Parameter(NewParameter("destination").Required(true)),
	))
	p := New(root)

	s, err := p.Parse([]string{"copy", "running", "--force", "startup"})
	require.NoError(t, err)
	require.NoError(t, s.Verify())

	v := s.Values()
	src, _ := v.Get("source")
	dst, _ := v.Get("destination")
	require.Equal(t, "running", src)
	require.Equal(t, "startup", dst)
	require.True(t, v.Has("--force"))

	s, err = p.Parse([]string{"copy", "running"})
	require.NoError(t, err)
	perr := requireParseError(t, s.Verify(), MissingRequired)
	require.Equal(t, []string{"destination"}, perr.Missing)

	_, err = p.Parse([]string{"copy", "a", "b", "c"})
	perr = requireParseError(t, err, NoMatches)
	require.Equal(t, "c", perr.Token)
}

func TestParse_PositionalRankedBelowLiterals(t *testing.T) {
	root := mustFinalize(t, NewCommandTree().Command(
		NewCommand("show").
			Parameter(NewParameter("name")).
			Subcommand(NewCommand("brief")),
	))
	p := New(root)

	s, err := p.Parse([]string{"show", "brief"})
	require.NoError(t, err)
	require.Equal(t, "brief", s.Command().Name())

	// A prefix of a literal still selects the literal.
	s, err = p.Parse([]string{"show", "br"})
	require.NoError(t, err)
	require.Equal(t, "brief", s.Command().Name())

	s, err = p.Parse([]string{"show", "eth0"})
	require.NoError(t, err)
	require.Equal(t, "show", s.Command().Name())
	name, _ := s.Values().Get("name")
	require.Equal(t, "eth0", name)
}

func TestParse_PositionalAboveLowerPriorityLiteral(t *testing.T) {
	root := mustFinalize(t, NewCommandTree().Command(
		NewCommand("echo").
			Parameter(NewParameter("text").Priority(PriorityDefault)).
			Parameter(NewParameter("--loud").Kind(Flag).Priority(PriorityMinimum)),
	))

	s, err := New(root).Parse([]string{"echo", "--loud"})
	require.NoError(t, err)
	text, _ := s.Values().Get("text")
	require.Equal(t, "--loud", text)
	require.False(t, s.Values().Has("--loud"))
}

func TestParse_PositionalTiesWithLiteralOfEqualPriority(t *testing.T) {
	// Equal priority: the positional parameter steps aside.
	root := mustFinalize(t, NewCommandTree().Command(
		NewCommand("echo").
			Parameter(NewParameter("text")).
			Parameter(NewParameter("--loud").Kind(Flag).Priority(PriorityParameter)),
	))

	s, err := New(root).Parse([]string{"echo", "--loud"})
	require.NoError(t, err)
	require.True(t, s.Values().Has("--loud"))
	require.False(t, s.Values().Has("text"))
}

func TestParse_Aliases(t *testing.T) {
	root := mustFinalize(t, NewCommandTree().Command(
		NewCommand("ping").
			Parameter(NewParameter("--count").Kind(Named).Alias("-c")).
			Parameter(NewParameter("--verbose").Kind(Flag).Alias("-v")),
	))
	p := New(root)

	s, err := p.Parse([]string{"ping", "-c", "5", "-v"})
	require.NoError(t, err)
	count, _ := s.Values().Get("--count")
	require.Equal(t, "5", count)
	require.True(t, s.Values().Has("--verbose"), "aliases bind under the canonical name")

	s, err = p.Parse([]string{"ping", "--cou", "2"})
	require.NoError(t, err)
	count, _ = s.Values().Get("--count")
	require.Equal(t, "2", count)

	// On a shared prefix the flag outranks the named parameter.
	s, err = p.Parse([]string{"ping", "-"})
	require.NoError(t, err)
	require.True(t, s.Values().Has("--verbose"))
}

func TestParse_Subcommands(t *testing.T) {
	var ran string
	handler := func(name string) Handler {
		return func(Invocation) error {
			ran = name
			return nil
		}
	}

	root := mustFinalize(t, NewCommandTree().Command(
		NewCommand("show").
			Handler(handler("show")).
			Subcommand(NewCommand("interface").
				Handler(handler("show interface")).
				Parameter(NewParameter("name")).
				Subcommand(NewCommand("brief").Handler(handler("show interface brief")))).
			Subcommand(NewCommand("version").Handler(handler("show version"))),
	))
	p := New(root)

	tests := []struct {
		tokens []string
		want   string
	}{
		{[]string{"show"}, "show"},
		{[]string{"sh", "int"}, "show interface"},
		{[]string{"show", "interface", "brief"}, "show interface brief"},
		{[]string{"sh", "i", "b"}, "show interface brief"},
		{[]string{"show", "ver"}, "show version"},
	}

	for _, tt := range tests {
		s, err := p.Parse(tt.tokens)
		require.NoError(t, err, tt.tokens)
		require.NoError(t, s.Execute())
		require.Equal(t, tt.want, ran, tt.tokens)
	}

	s, err := p.Parse([]string{"show", "interface", "eth0"})
	require.NoError(t, err)
	require.Equal(t, "interface", s.Command().Name())
	require.Equal(t, []string{"show", "interface", "name"}, names(s.Trace()))
}

func TestParse_ParameterSuccessors(t *testing.T) {
	root := mustFinalize(t, NewCommandTree().Command(
		NewCommand("route").
			Parameter(NewParameter("--via").Kind(Named).Then(NewParameter("--metric").Kind(Named))).
			Parameter(NewParameter("--tag").Kind(Named).Repeatable(true)).
			Parameter(NewParameter("--quiet").Kind(Flag)),
	))
	p := New(root)

	_, err := p.Parse([]string{"route", "--metric", "5"})
	requireParseError(t, err, NoMatches)

	s, err := p.Parse([]string{"route", "--tag", "a", "--via", "10.0.0.1", "--tag", "b", "--metric", "5", "--quiet"})
	require.NoError(t, err)
	v := s.Values()
	require.Equal(t, []string{"a", "b"}, v.All("--tag"))
	metric, _ := v.Get("--metric")
	require.Equal(t, "5", metric)
	require.True(t, v.Has("--quiet"))

	s, err = p.Parse([]string{"route", "--via", "10.0.0.1"})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"--tag", "--quiet", "--metric"}, names(s.Frontier()))
}

func TestParse_EmptyInput(t *testing.T) {
	root := mustFinalize(t, NewCommandTree().Command(NewCommand("show")))

	s, err := New(root).Parse(nil)
	require.NoError(t, err)
	require.Nil(t, s.Command())
	require.NoError(t, s.Verify())
	require.NoError(t, s.Execute())
	require.Equal(t, []string{"show"}, names(s.Frontier()))
}

func TestParse_EmptyTokenIsNotAPrefix(t *testing.T) {
	root := mustFinalize(t, NewCommandTree().Command(
		NewCommand("set").Parameter(NewParameter("--motd").Kind(Flag)).Parameter(NewParameter("text")),
	))

	s, err := New(root).Parse([]string{"set", ""})
	require.NoError(t, err)
	text, ok := s.Values().Get("text")
	require.True(t, ok)
	require.Empty(t, text)
}

func TestParse_Deterministic(t *testing.T) {
	root := mustFinalize(t, NewCommandTree().
		Command(NewCommand("show").Parameter(NewParameter("--a").Kind(Flag)).Parameter(NewParameter("x").Repeatable(true))).
		Command(NewCommand("shutdown")),
	)
	p := New(root)

	inputs := [][]string{
		{"show", "--a", "1", "2"},
		{"sh"},
		{"nothing"},
	}
	for _, in := range inputs {
		s1, err1 := p.Parse(in)
		s2, err2 := p.Parse(in)
		require.Equal(t, err1, err2)
		if err1 == nil {
			require.Equal(t, s1.Values(), s2.Values())
			require.Equal(t, s1.Command(), s2.Command())
		}
	}
}

func TestVerify_Monotonic(t *testing.T) {
	root := mustFinalize(t, NewCommandTree().Command(
		NewCommand("user").
			Parameter(NewParameter("name").Required(true)).
			Parameter(NewParameter("--role").Kind(Named).Required(true)).
			Parameter(NewParameter("--admin").Kind(Flag)),
	))
	p := New(root)

	s, err := p.Parse([]string{"user"})
	require.NoError(t, err)
	perr := requireParseError(t, s.Verify(), MissingRequired)
	require.Equal(t, []string{"name", "--role"}, perr.Missing)

	s, err = p.Parse([]string{"user", "alice"})
	require.NoError(t, err)
	perr = requireParseError(t, s.Verify(), MissingRequired)
	require.Equal(t, []string{"--role"}, perr.Missing)

	s, err = p.Parse([]string{"user", "alice", "--role", "ops", "--admin"})
	require.NoError(t, err)
	require.NoError(t, s.Verify())
}

func TestExecute_Wrapper(t *testing.T) {
	var got Invocation
	root := mustFinalize(t, NewCommandTree().
		Command(NewCommand("show").Subcommand(
			NewCommand("interface").
				Parameter(NewParameter("name")).
				Handler(func(inv Invocation) error {
					got = inv
					return nil
				}))).
		Command(NewCommand("sif").Wraps("show interface").Parameter(NewParameter("port").Required(true))),
	)
	p := New(root)

	s, err := p.Parse([]string{"sif"})
	require.NoError(t, err)
	perr := requireParseError(t, s.Verify(), MissingRequired)
	require.Equal(t, []string{"port"}, perr.Missing)

	s, err = p.Parse([]string{"sif", "ge-0/0/1"})
	require.NoError(t, err)
	require.NoError(t, s.Verify())
	require.NoError(t, s.Execute())

	require.Equal(t, "interface", got.Command.Name())
	require.Equal(t, "sif", got.Matched.Name())
	port, ok := got.Values.Get("port")
	require.True(t, ok)
	require.Equal(t, "ge-0/0/1", port)
	require.False(t, got.Values.Has("name"))
}

func TestExecute_NoHandler(t *testing.T) {
	root := mustFinalize(t, NewCommandTree().Command(NewCommand("list-only")))

	s, err := New(root).Parse([]string{"list-only"})
	require.NoError(t, err)
	require.NoError(t, s.Execute())
}

func TestExecute_ReturnsHandlerError(t *testing.T) {
	boom := errors.New("boom")
	root := mustFinalize(t, NewCommandTree().Command(
		NewCommand("fail").Handler(func(Invocation) error { return boom }),
	))

	require.ErrorIs(t, Run(root, []string{"fail"}), boom)
}

func TestRun_ShortCircuits(t *testing.T) {
	calls := 0
	root := mustFinalize(t, NewCommandTree().Command(
		NewCommand("set").
			Parameter(NewParameter("key").Required(true)).
			Handler(func(Invocation) error {
				calls++
				return nil
			}),
	))

	requireParseError(t, Run(root, []string{"bogus"}), NoMatches)
	requireParseError(t, Run(root, []string{"set"}), MissingRequired)
	require.Zero(t, calls)

	require.NoError(t, Run(root, []string{"set", "k"}))
	require.Equal(t, 1, calls)
}

func TestValues_AreCopies(t *testing.T) {
	root := mustFinalize(t, NewCommandTree().Command(
		NewCommand("tag").Parameter(NewParameter("v").Repeatable(true)),
	))

	s, err := New(root).Parse([]string{"tag", "a", "b"})
	require.NoError(t, err)

	all := s.Values().All("v")
	all[0] = "mutated"
	require.Equal(t, []string{"a", "b"}, s.Values().All("v"))
}

func TestError_Messages(t *testing.T) {
	require.Equal(t, `no matches for "x"`, (&Error{Kind: NoMatches, Token: "x"}).Error())
	require.Equal(t, "no matches: missing value", (&Error{Kind: NoMatches}).Error())
	require.Equal(t, `ambiguous match for "s"`, (&Error{Kind: AmbiguousMatch, Token: "s"}).Error())
	require.Equal(t, "missing required parameters: a, b", (&Error{Kind: MissingRequired, Missing: []string{"a", "b"}}).Error())
	require.False(t, errors.Is(&Error{Kind: NoMatches}, ErrAmbiguousMatch))
}
