package parser

import "strings"

// Completion is one candidate for the word being typed.
type Completion struct {
	// Text is the literal to insert. It is empty for value placeholders
	// (positional parameters and the value of a named parameter).
	Text string
	Node Node
}

// Complete lists what may follow tokens, restricted to literals that start
// with partial. Hidden nodes are never offered. The order is the same as
// in NoMatches listings.
func (p *Parser) Complete(tokens []string, partial string) ([]Completion, error) {
	s, err := p.match(tokens, true)
	if err != nil {
		return nil, err
	}

	if s.awaiting != nil {
		if s.awaiting.Hidden() {
			return nil, nil
		}
		return []Completion{{Node: s.awaiting}}, nil
	}

	positional := s.pendingSimple()

	var out []Completion
	for _, n := range acceptable(s.frontier) {
		switch n := n.(type) {
		case *SimpleParameterNode:
			if n == positional {
				out = append(out, Completion{Node: n})
			}
		default:
			for _, lit := range literals(n) {
				if strings.HasPrefix(lit, partial) {
					out = append(out, Completion{Text: lit, Node: n})
				}
			}
		}
	}
	return out, nil
}
