package shell

import (
	"github.com/chzyer/readline"

	"github.com/footprint-tools/commands/parser"
	"github.com/footprint-tools/commands/tokenizer"
)

// completer adapts parser completion to readline's tab completion.
type completer struct {
	root *parser.RootNode
}

// Do returns the suffixes that complete the word before pos, each
// followed by a space, and the length of that word in runes.
func (c *completer) Do(line []rune, pos int) ([][]rune, int) {
	tokens, partial, err := tokenizer.SplitPartial(string(line[:pos]))
	if err != nil {
		return nil, 0
	}

	completions, err := parser.New(c.root).Complete(tokens, partial)
	if err != nil {
		return nil, 0
	}

	var out [][]rune
	for _, comp := range completions {
		if comp.Text == "" {
			continue
		}
		suffix := []rune(comp.Text)[len([]rune(partial)):]
		out = append(out, append(suffix, ' '))
	}
	return out, len([]rune(partial))
}

var _ readline.AutoCompleter = (*completer)(nil)
