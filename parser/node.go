// Package parser matches tokenized command lines against a frozen command
// grammar, binds parameter values and dispatches the selected command.
//
// A grammar is a rooted tree of nodes built once through CommandTree and
// never mutated afterwards. A frozen tree may be shared by any number of
// concurrent Parse calls; each call owns its own State.
package parser

import "strings"

// Priorities used when several sibling nodes match the same token.
const (
	PriorityMinimum   = -10000
	PriorityParameter = -10
	PriorityDefault   = 0
)

// Node is a vertex of a frozen grammar tree.
//
// The set of implementations is closed: *RootNode, *CommandNode,
// *WrapperNode, *FlagParameterNode, *NamedParameterNode and
// *SimpleParameterNode.
type Node interface {
	// Name is the literal the node matches (empty for the root).
	Name() string
	// HelpText is the optional one-line description.
	HelpText() string
	// HelpSymbol is the canonical printed form used in listings.
	HelpSymbol() string
	// Hidden nodes match but are never listed.
	Hidden() bool
	Priority() int
	// Successors returns the nodes eligible after this one.
	Successors() []Node

	node()
}

type treeNode struct {
	name       string
	help       string
	hidden     bool
	priority   int
	successors []Node
}

func (n *treeNode) Name() string       { return n.name }
func (n *treeNode) HelpText() string   { return n.help }
func (n *treeNode) HelpSymbol() string { return n.name }
func (n *treeNode) Hidden() bool       { return n.hidden }
func (n *treeNode) Priority() int      { return n.priority }

func (n *treeNode) Successors() []Node {
	return append([]Node(nil), n.successors...)
}

func (n *treeNode) node() {}

// RootNode is the single entry point of a grammar. Its successors are the
// top-level commands.
type RootNode struct {
	treeNode
}

// Lookup resolves a space separated command path such as "show interface"
// to the command it names, or nil.
func (r *RootNode) Lookup(path string) *CommandNode {
	var current Node = r
	for _, name := range strings.Fields(path) {
		var next Node
		for _, s := range successorsOf(current) {
			switch n := s.(type) {
			case *CommandNode:
				if n.name == name {
					next = n
				}
			case *WrapperNode:
				if n.name == name {
					next = n
				}
			}
			if next != nil {
				break
			}
		}
		if next == nil {
			return nil
		}
		current = next
	}
	cmd, _ := current.(*CommandNode)
	return cmd
}

// CommandNode is a named command. Its successors are its parameters in
// declaration order followed by its sub-commands.
type CommandNode struct {
	treeNode
	parameters []ParameterNode
	handler    Handler
}

// Parameters returns every parameter declared by the command, including
// parameters that only become reachable after another parameter.
func (c *CommandNode) Parameters() []ParameterNode {
	return append([]ParameterNode(nil), c.parameters...)
}

// Handler returns the function run when the command is executed, or nil.
func (c *CommandNode) Handler() Handler { return c.handler }

// WrapperNode matches like a command but executes the command found at
// Target, passing the wrapper's own bound values.
type WrapperNode struct {
	treeNode
	parameters []ParameterNode
	target     string
}

// Parameters returns the wrapper's declared parameters.
func (w *WrapperNode) Parameters() []ParameterNode {
	return append([]ParameterNode(nil), w.parameters...)
}

// Target is the space separated path of the wrapped command.
func (w *WrapperNode) Target() string { return w.target }

// ParameterNode is implemented by the three parameter kinds.
type ParameterNode interface {
	Node
	Kind() ParameterKind
	Aliases() []string
	Repeatable() bool
	Required() bool
}

type parameterNode struct {
	treeNode
	aliases    []string
	repeatable bool
	required   bool
}

func (p *parameterNode) Aliases() []string { return append([]string(nil), p.aliases...) }
func (p *parameterNode) Repeatable() bool  { return p.repeatable }
func (p *parameterNode) Required() bool    { return p.required }

func (p *parameterNode) repeatSuffix() string {
	if p.repeatable {
		return "..."
	}
	return ""
}

// FlagParameterNode is a presence-only parameter such as "--verbose".
type FlagParameterNode struct {
	parameterNode
}

func (f *FlagParameterNode) Kind() ParameterKind { return Flag }

func (f *FlagParameterNode) HelpSymbol() string {
	return f.name + f.repeatSuffix()
}

// NamedParameterNode is a key followed by a value, such as "--level 3".
type NamedParameterNode struct {
	parameterNode
}

func (n *NamedParameterNode) Kind() ParameterKind { return Named }

func (n *NamedParameterNode) HelpSymbol() string {
	return n.name + " <" + strings.TrimLeft(n.name, "-") + ">" + n.repeatSuffix()
}

// SimpleParameterNode is a positional value with no literal key.
type SimpleParameterNode struct {
	parameterNode
}

func (s *SimpleParameterNode) Kind() ParameterKind { return Simple }

func (s *SimpleParameterNode) HelpSymbol() string {
	return "<" + s.name + ">" + s.repeatSuffix()
}

// successorsOf reads successors without copying. Every node kind is listed
// so a new kind fails to compile here until handled.
func successorsOf(n Node) []Node {
	switch n := n.(type) {
	case *RootNode:
		return n.successors
	case *CommandNode:
		return n.successors
	case *WrapperNode:
		return n.successors
	case *FlagParameterNode:
		return n.successors
	case *NamedParameterNode:
		return n.successors
	case *SimpleParameterNode:
		return n.successors
	}
	return nil
}

// literals lists the strings a node can be matched by. Simple parameters
// and the root have none.
func literals(n Node) []string {
	switch n := n.(type) {
	case *RootNode:
		return nil
	case *CommandNode:
		return []string{n.name}
	case *WrapperNode:
		return []string{n.name}
	case *FlagParameterNode:
		return append([]string{n.name}, n.aliases...)
	case *NamedParameterNode:
		return append([]string{n.name}, n.aliases...)
	case *SimpleParameterNode:
		return nil
	}
	return nil
}

// Compile-time checks that each kind satisfies its interface.
var (
	_ Node          = (*RootNode)(nil)
	_ Node          = (*CommandNode)(nil)
	_ Node          = (*WrapperNode)(nil)
	_ ParameterNode = (*FlagParameterNode)(nil)
	_ ParameterNode = (*NamedParameterNode)(nil)
	_ ParameterNode = (*SimpleParameterNode)(nil)
)
