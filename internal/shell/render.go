package shell

import (
	"errors"
	"strings"

	"github.com/footprint-tools/commands/internal/ui"
	"github.com/footprint-tools/commands/internal/usage"
	"github.com/footprint-tools/commands/parser"
	"github.com/footprint-tools/commands/tokenizer"
)

const (
	headerOptions   = "Possible options:"
	headerAmbiguous = "Can be interpreted as:"
	crSymbol        = "<cr>"
)

// report prints the diagnostic for a failed line: the usage message, a
// marker under the offending token and the options that would have fit.
func (s *Shell) report(line string, err error) {
	u := usage.FromParse(err)
	s.out.Println(s.styler.Error(u.Message))

	var tokErr *tokenizer.Error
	if errors.As(err, &tokErr) {
		s.marker(line, tokErr.Offset)
		return
	}

	var perr *parser.Error
	if !errors.As(err, &perr) {
		return
	}

	switch perr.Kind {
	case parser.NoMatches:
		if perr.Token != "" {
			if offset, ok := s.failedOffset(line); ok {
				s.marker(line, offset)
			}
		}
		s.listing(headerOptions, perr.Nodes)
		if perr.Token != "" && s.suggest {
			if hints := similar(perr.Token, perr.Nodes); len(hints) > 0 {
				s.out.Println(s.styler.Muted("Did you mean: " + strings.Join(hints, ", ") + "?"))
			}
		}
	case parser.AmbiguousMatch:
		s.listing(headerAmbiguous, parser.SortNodes(parser.VisibleNodes(perr.Nodes)))
	}
}

// listing prints nodes as "symbol  help" rows under header.
func (s *Shell) listing(header string, nodes []parser.Node) {
	if len(nodes) == 0 {
		return
	}
	rows := make([]ui.Row, 0, len(nodes))
	for _, n := range nodes {
		rows = append(rows, ui.Row{Left: s.symbol(n), Right: n.HelpText()})
	}
	s.out.Println(s.styler.Header(header))
	s.out.Printf("%s", ui.Columns(rows, 2))
}

func (s *Shell) symbol(n parser.Node) string {
	if p, ok := n.(*parser.SimpleParameterNode); ok {
		return s.styler.Parameter(p.HelpSymbol())
	}
	if p, ok := n.(*parser.NamedParameterNode); ok {
		name, rest, _ := strings.Cut(p.HelpSymbol(), " ")
		return s.styler.Command(name) + " " + s.styler.Parameter(rest)
	}
	return s.styler.Command(n.HelpSymbol())
}

// marker echoes line and points at offset.
func (s *Shell) marker(line string, offset int) {
	if offset < 0 || offset > len(line) {
		return
	}
	width := len([]rune(line[:offset]))
	s.out.Printf("  %s\n  %s%s\n", line, strings.Repeat(" ", width), s.styler.Error("^"))
}

// failedOffset finds where in line the parse first failed on a real
// token. Prefixes ending in a named parameter without its value are
// skipped, since the full line supplies that value.
func (s *Shell) failedOffset(line string) (int, bool) {
	toks, err := tokenizer.Scan(line)
	if err != nil {
		return 0, false
	}

	texts := make([]string, len(toks))
	for i, t := range toks {
		texts[i] = t.Text
	}

	p := parser.New(s.root)
	for i := 1; i <= len(texts); i++ {
		_, err := p.Parse(texts[:i])
		var perr *parser.Error
		if errors.As(err, &perr) && perr.Token != "" {
			return toks[i-1].Start, true
		}
	}
	return 0, false
}

// describe answers a line ending in "?": it lists what may be typed next
// without running anything.
func (s *Shell) describe(line string) error {
	tokens, partial, err := tokenizer.SplitPartial(line)
	if err != nil {
		return err
	}

	p := parser.New(s.root)
	completions, err := p.Complete(tokens, partial)
	if err != nil {
		return err
	}

	rows := make([]ui.Row, 0, len(completions)+1)
	for _, c := range completions {
		left := s.symbol(c.Node)
		if c.Text != "" && c.Text != c.Node.Name() {
			// alias
			left = s.styler.Command(c.Text)
		}
		rows = append(rows, ui.Row{Left: left, Right: c.Node.HelpText()})
	}

	if partial == "" {
		if st, err := p.Parse(tokens); err == nil && st.Command() != nil && st.Verify() == nil {
			rows = append(rows, ui.Row{Left: s.styler.Muted(crSymbol)})
		}
	}

	if len(rows) == 0 {
		s.out.Println(s.styler.Muted("No options."))
		return nil
	}
	s.out.Println(s.styler.Header(headerOptions))
	s.out.Printf("%s", ui.Columns(rows, 2))
	return nil
}
