package parser

import "strings"

// Parser matches token sequences against a frozen grammar. It holds no
// per-parse state and may be used from several goroutines.
type Parser struct {
	root *RootNode
}

// New returns a Parser for root.
func New(root *RootNode) *Parser {
	return &Parser{root: root}
}

// Root returns the grammar the parser matches against.
func (p *Parser) Root() *RootNode {
	return p.root
}

// Parse consumes tokens left to right. On success the returned State holds
// the matched command and bindings; required parameters are not checked
// here (see State.Verify). On failure the error is an *Error of kind
// NoMatches or AmbiguousMatch for the first token that could not be
// resolved.
func (p *Parser) Parse(tokens []string) (*State, error) {
	s, err := p.match(tokens, false)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (p *Parser) match(tokens []string, allowPendingValue bool) (*State, error) {
	s := newState(p.root)

	for i := 0; i < len(tokens); i++ {
		token := tokens[i]

		winner, err := s.selectNode(token)
		if err != nil {
			return s, err
		}

		switch n := winner.(type) {
		case *CommandNode, *WrapperNode:
		case *FlagParameterNode:
			s.bind(n, "true")
		case *NamedParameterNode:
			if i+1 >= len(tokens) {
				if allowPendingValue {
					s.awaiting = n
					s.trace = append(s.trace, n)
					return s, nil
				}
				return s, &Error{Kind: NoMatches, Nodes: VisibleNodes([]Node{n})}
			}
			i++
			s.bind(n, tokens[i])
		case *SimpleParameterNode:
			s.bind(n, token)
		case *RootNode:
			panic("parser: root node in frontier")
		}

		s.advance(winner)
	}

	return s, nil
}

// selectNode resolves one token against the frontier.
func (s *State) selectNode(token string) (Node, error) {
	candidates := s.candidates(token)
	if len(candidates) == 0 {
		return nil, &Error{Kind: NoMatches, Token: token, Nodes: acceptable(s.frontier)}
	}

	top := candidates[0].Priority()
	for _, c := range candidates[1:] {
		if c.Priority() > top {
			top = c.Priority()
		}
	}

	var tied []Node
	for _, c := range candidates {
		if c.Priority() == top {
			tied = append(tied, c)
		}
	}
	if len(tied) > 1 {
		return nil, &Error{Kind: AmbiguousMatch, Token: token, Nodes: tied}
	}
	return tied[0], nil
}

// candidates returns the frontier nodes that token can select: exact
// literal matches, otherwise prefix matches, plus the pending positional
// parameter unless a literal of at least its priority already matched.
func (s *State) candidates(token string) []Node {
	var exact []Node
	for _, n := range s.frontier {
		if matchesLiteral(n, token, false) {
			exact = append(exact, n)
		}
	}

	matched := exact
	if len(matched) == 0 && token != "" {
		for _, n := range s.frontier {
			if matchesLiteral(n, token, true) {
				matched = append(matched, n)
			}
		}
	}

	if positional := s.pendingSimple(); positional != nil {
		outranked := false
		for _, m := range matched {
			if m.Priority() >= positional.Priority() {
				outranked = true
				break
			}
		}
		if !outranked {
			matched = append(matched, positional)
		}
	}

	return matched
}

func matchesLiteral(n Node, token string, prefix bool) bool {
	for _, lit := range literals(n) {
		if lit == token || (prefix && strings.HasPrefix(lit, token)) {
			return true
		}
	}
	return false
}

// pendingSimple is the first positional parameter still in the frontier.
// Positional parameters are consumed strictly in declaration order.
func (s *State) pendingSimple() *SimpleParameterNode {
	for _, n := range s.frontier {
		if sp, ok := n.(*SimpleParameterNode); ok {
			return sp
		}
	}
	return nil
}

// advance moves the frontier past the node that just matched.
func (s *State) advance(matched Node) {
	s.trace = append(s.trace, matched)

	switch n := matched.(type) {
	case *CommandNode:
		s.command = n
		s.frontier = n.successors
	case *WrapperNode:
		s.command = n
		s.frontier = n.successors
	case ParameterNode:
		next := make([]Node, 0, len(s.frontier)+len(successorsOf(n)))
		for _, f := range s.frontier {
			if f == matched && !n.Repeatable() {
				continue
			}
			next = append(next, f)
		}
		for _, succ := range successorsOf(n) {
			if !containsNode(next, succ) {
				next = append(next, succ)
			}
		}
		s.frontier = next
	}
}

func containsNode(nodes []Node, n Node) bool {
	for _, x := range nodes {
		if x == n {
			return true
		}
	}
	return false
}
