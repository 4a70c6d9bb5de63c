package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func completionTexts(cs []Completion) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		if c.Text == "" {
			out[i] = c.Node.HelpSymbol()
			continue
		}
		out[i] = c.Text
	}
	return out
}

func completionTree(t *testing.T) *Parser {
	t.Helper()
	return New(mustFinalize(t, NewCommandTree().
		Command(NewCommand("show").
			Subcommand(NewCommand("interface").
				Parameter(NewParameter("brief").Kind(Flag)).
				Parameter(NewParameter("name"))).
			Subcommand(NewCommand("version"))).
		Command(NewCommand("set").
			Parameter(NewParameter("--level").Kind(Named).Alias("-l")).
			Parameter(NewParameter("--secret").Kind(Named).Hidden(true))).
		Command(NewCommand("shutdown").Hidden(true)),
	))
}

func TestComplete(t *testing.T) {
	p := completionTree(t)

	tests := []struct {
		name    string
		tokens  []string
		partial string
		want    []string
	}{
		{
			name: "top level",
			want: []string{"set", "show"},
		},
		{
			name:    "prefix filters literals",
			partial: "sh",
			want:    []string{"show"},
		},
		{
			name:   "sub-commands",
			tokens: []string{"sho"},
			want:   []string{"interface", "version"},
		},
		{
			name:   "flag then placeholder",
			tokens: []string{"show", "int"},
			want:   []string{"brief", "<name>"},
		},
		{
			name:    "placeholder survives any partial",
			tokens:  []string{"show", "int"},
			partial: "eth",
			want:    []string{"<name>"},
		},
		{
			name:   "aliases are offered",
			tokens: []string{"set"},
			want:   []string{"--level", "-l"},
		},
		{
			name:   "pending named value",
			tokens: []string{"set", "--level"},
			want:   []string{"--level <level>"},
		},
		{
			name:   "hidden named value",
			tokens: []string{"set", "--secret"},
			want:   []string{},
		},
		{
			name:   "bound parameters are not offered again",
			tokens: []string{"set", "-l", "3"},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Complete(tt.tokens, tt.partial)
			require.NoError(t, err)
			require.Equal(t, tt.want, completionTexts(got))
		})
	}
}

func TestComplete_InvalidPrefix(t *testing.T) {
	_, err := completionTree(t).Complete([]string{"nope"}, "")
	requireParseError(t, err, NoMatches)
}
