package parser

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalidGrammar is returned by Finalize when a description cannot be
// turned into a consistent tree.
var ErrInvalidGrammar = errors.New("invalid grammar")

// ParameterKind selects which parameter node a Parameter description
// produces.
type ParameterKind int

const (
	Simple ParameterKind = iota
	Flag
	Named
)

func (k ParameterKind) String() string {
	switch k {
	case Simple:
		return "simple"
	case Flag:
		return "flag"
	case Named:
		return "named"
	default:
		return "unknown"
	}
}

// ParseParameterKind converts "simple", "flag" or "named" to a kind.
func ParseParameterKind(s string) (ParameterKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "simple":
		return Simple, nil
	case "flag":
		return Flag, nil
	case "named":
		return Named, nil
	default:
		return Simple, fmt.Errorf("%w: unknown parameter kind %q", ErrInvalidGrammar, s)
	}
}

// Parameter describes a parameter before the tree is frozen. Methods
// return modified copies, so a description can be reused as a template.
type Parameter struct {
	name        string
	help        string
	hidden      bool
	repeatable  bool
	required    bool
	priority    int
	hasPriority bool
	aliases     []string
	kind        ParameterKind
	successors  []Parameter
}

// NewParameter starts a Simple parameter description.
func NewParameter(name string) Parameter {
	return Parameter{name: name}
}

func (p Parameter) Kind(kind ParameterKind) Parameter {
	p.kind = kind
	return p
}

func (p Parameter) Help(text string) Parameter {
	p.help = text
	return p
}

func (p Parameter) Hidden(hidden bool) Parameter {
	p.hidden = hidden
	return p
}

func (p Parameter) Repeatable(repeatable bool) Parameter {
	p.repeatable = repeatable
	return p
}

func (p Parameter) Required(required bool) Parameter {
	p.required = required
	return p
}

// Priority overrides the kind's default priority.
func (p Parameter) Priority(priority int) Parameter {
	p.priority = priority
	p.hasPriority = true
	return p
}

// Alias adds another literal the parameter can be matched by.
func (p Parameter) Alias(alias string) Parameter {
	p.aliases = append(slices.Clone(p.aliases), alias)
	return p
}

// Then declares a parameter that only becomes eligible once p has been
// matched.
func (p Parameter) Then(next Parameter) Parameter {
	p.successors = append(slices.Clone(p.successors), next)
	return p
}

func (p Parameter) effectivePriority() int {
	if p.hasPriority {
		return p.priority
	}
	if p.kind == Flag {
		return PriorityDefault
	}
	return PriorityParameter
}

// Command describes a command before the tree is frozen.
type Command struct {
	name        string
	help        string
	hidden      bool
	priority    int
	parameters  []Parameter
	subcommands []Command
	wraps       string
	handler     Handler
}

// NewCommand starts a command description with PriorityDefault.
func NewCommand(name string) Command {
	return Command{name: name, priority: PriorityDefault}
}

func (c Command) Help(text string) Command {
	c.help = text
	return c
}

func (c Command) Hidden(hidden bool) Command {
	c.hidden = hidden
	return c
}

func (c Command) Priority(priority int) Command {
	c.priority = priority
	return c
}

func (c Command) Parameter(p Parameter) Command {
	c.parameters = append(slices.Clone(c.parameters), p)
	return c
}

// Subcommand nests a command below c, as in "show interface".
func (c Command) Subcommand(sub Command) Command {
	c.subcommands = append(slices.Clone(c.subcommands), sub)
	return c
}

// Wraps turns the command into a wrapper for the command at path.
func (c Command) Wraps(path string) Command {
	c.wraps = path
	return c
}

func (c Command) Handler(h Handler) Command {
	c.handler = h
	return c
}

// CommandTree collects command descriptions and freezes them into a
// RootNode.
type CommandTree struct {
	commands []Command
}

// NewCommandTree returns an empty tree.
func NewCommandTree() *CommandTree {
	return &CommandTree{}
}

// Command adds a top-level command.
func (t *CommandTree) Command(c Command) *CommandTree {
	t.commands = append(t.commands, c)
	return t
}

// Finalize builds the immutable grammar. The tree can keep collecting
// commands afterwards; every Finalize produces an independent RootNode.
func (t *CommandTree) Finalize() (*RootNode, error) {
	root := &RootNode{}
	var wrappers []*WrapperNode

	successors, err := buildCommands(t.commands, nil, &wrappers)
	if err != nil {
		return nil, err
	}
	root.successors = successors

	for _, w := range wrappers {
		if root.Lookup(w.target) == nil {
			return nil, fmt.Errorf("%w: wrapper %q targets unknown command %q", ErrInvalidGrammar, w.name, w.target)
		}
	}

	return root, nil
}

func buildCommands(commands []Command, parent []string, wrappers *[]*WrapperNode) ([]Node, error) {
	nodes := make([]Node, 0, len(commands))
	seen := make(map[string]bool)

	for _, c := range commands {
		path := append(slices.Clone(parent), c.name)
		if strings.TrimSpace(c.name) == "" {
			return nil, fmt.Errorf("%w: command with empty name under %q", ErrInvalidGrammar, strings.Join(parent, " "))
		}
		if seen[c.name] {
			return nil, fmt.Errorf("%w: duplicate command %q", ErrInvalidGrammar, strings.Join(path, " "))
		}
		seen[c.name] = true

		n, err := buildCommand(c, path, wrappers)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}

	return nodes, nil
}

func buildCommand(c Command, path []string, wrappers *[]*WrapperNode) (Node, error) {
	var (
		declared   []ParameterNode
		successors []Node
	)
	names := make(map[string]bool)

	for _, p := range c.parameters {
		n, err := buildParameter(p, path, names, &declared)
		if err != nil {
			return nil, err
		}
		successors = append(successors, n)
	}

	base := treeNode{
		name:     c.name,
		help:     c.help,
		hidden:   c.hidden,
		priority: c.priority,
	}

	if c.wraps != "" {
		if len(c.subcommands) > 0 {
			return nil, fmt.Errorf("%w: wrapper %q cannot have sub-commands", ErrInvalidGrammar, strings.Join(path, " "))
		}
		if c.handler != nil {
			return nil, fmt.Errorf("%w: wrapper %q cannot have a handler", ErrInvalidGrammar, strings.Join(path, " "))
		}
		base.successors = successors
		w := &WrapperNode{treeNode: base, parameters: declared, target: strings.Join(strings.Fields(c.wraps), " ")}
		*wrappers = append(*wrappers, w)
		return w, nil
	}

	subs, err := buildCommands(c.subcommands, path, wrappers)
	if err != nil {
		return nil, err
	}
	base.successors = append(successors, subs...)

	return &CommandNode{treeNode: base, parameters: declared, handler: c.handler}, nil
}

// buildParameter creates the node for p and its successors. Every node is
// recorded once in declared; the same pointer is returned for use in the
// successor list.
func buildParameter(p Parameter, path []string, names map[string]bool, declared *[]ParameterNode) (ParameterNode, error) {
	if strings.TrimSpace(p.name) == "" {
		return nil, fmt.Errorf("%w: parameter with empty name in %q", ErrInvalidGrammar, strings.Join(path, " "))
	}
	if names[p.name] {
		return nil, fmt.Errorf("%w: duplicate parameter %q in %q", ErrInvalidGrammar, p.name, strings.Join(path, " "))
	}
	names[p.name] = true

	base := parameterNode{
		treeNode: treeNode{
			name:     p.name,
			help:     p.help,
			hidden:   p.hidden,
			priority: p.effectivePriority(),
		},
		aliases:    slices.Clone(p.aliases),
		repeatable: p.repeatable,
		required:   p.required,
	}

	var n ParameterNode
	switch p.kind {
	case Flag:
		n = &FlagParameterNode{parameterNode: base}
	case Named:
		n = &NamedParameterNode{parameterNode: base}
	case Simple:
		if len(p.aliases) > 0 {
			return nil, fmt.Errorf("%w: positional parameter %q cannot have aliases", ErrInvalidGrammar, p.name)
		}
		n = &SimpleParameterNode{parameterNode: base}
	default:
		return nil, fmt.Errorf("%w: parameter %q has unknown kind %d", ErrInvalidGrammar, p.name, int(p.kind))
	}
	*declared = append(*declared, n)

	var next []Node
	for _, s := range p.successors {
		child, err := buildParameter(s, path, names, declared)
		if err != nil {
			return nil, err
		}
		next = append(next, child)
	}
	setSuccessors(n, next)

	return n, nil
}

func setSuccessors(n ParameterNode, successors []Node) {
	switch n := n.(type) {
	case *FlagParameterNode:
		n.successors = successors
	case *NamedParameterNode:
		n.successors = successors
	case *SimpleParameterNode:
		n.successors = successors
	}
}
