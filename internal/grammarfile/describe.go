package grammarfile

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/footprint-tools/commands/parser"
)

// Describe converts a frozen grammar back into its file form. Priorities
// equal to the kind's default are left out.
func Describe(root *parser.RootNode) File {
	var f File
	for _, n := range root.Successors() {
		if c, ok := describeCommand(n); ok {
			f.Commands = append(f.Commands, c)
		}
	}
	return f
}

// Marshal renders root as a YAML grammar document.
func Marshal(root *parser.RootNode) ([]byte, error) {
	data, err := yaml.Marshal(Describe(root))
	if err != nil {
		return nil, fmt.Errorf("encode grammar: %w", err)
	}
	return data, nil
}

func describeCommand(n parser.Node) (CommandSpec, bool) {
	c := CommandSpec{
		Name:   n.Name(),
		Help:   n.HelpText(),
		Hidden: n.Hidden(),
	}
	if n.Priority() != parser.PriorityDefault {
		c.Priority = intPtr(n.Priority())
	}

	switch n := n.(type) {
	case *parser.WrapperNode:
		c.Wraps = n.Target()
	case *parser.CommandNode:
	default:
		return c, false
	}

	for _, s := range n.Successors() {
		switch s := s.(type) {
		case parser.ParameterNode:
			c.Parameters = append(c.Parameters, describeParameter(s))
		case *parser.CommandNode, *parser.WrapperNode:
			if sub, ok := describeCommand(s); ok {
				c.Subcommands = append(c.Subcommands, sub)
			}
		}
	}
	return c, true
}

func describeParameter(p parser.ParameterNode) ParameterSpec {
	spec := ParameterSpec{
		Name:       p.Name(),
		Aliases:    p.Aliases(),
		Help:       p.HelpText(),
		Hidden:     p.Hidden(),
		Repeatable: p.Repeatable(),
		Required:   p.Required(),
	}
	if p.Kind() != parser.Simple {
		spec.Kind = p.Kind().String()
	}

	def := parser.PriorityParameter
	if p.Kind() == parser.Flag {
		def = parser.PriorityDefault
	}
	if p.Priority() != def {
		spec.Priority = intPtr(p.Priority())
	}

	for _, s := range p.Successors() {
		if next, ok := s.(parser.ParameterNode); ok {
			spec.Then = append(spec.Then, describeParameter(next))
		}
	}
	return spec
}

func intPtr(v int) *int { return &v }
