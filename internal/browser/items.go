package browser

import (
	"strings"

	"github.com/footprint-tools/commands/parser"
)

// generalCategory collects top-level commands without sub-commands.
const generalCategory = "general"

// item is one sidebar row: either a category header or a command.
type item struct {
	path     string
	category bool
	node     parser.Node // *parser.CommandNode or *parser.WrapperNode
}

// buildItems walks the visible part of the grammar. Every top-level
// command with visible sub-commands becomes a category holding itself (when
// it can run on its own) and all of its descendants.
func buildItems(root *parser.RootNode) []item {
	var (
		items   []item
		general []item
	)

	for _, top := range parser.VisibleNodes(root.Successors()) {
		if !isCommand(top) {
			continue
		}
		subs := visibleCommands(top)
		if len(subs) == 0 {
			general = append(general, item{path: top.Name(), node: top})
			continue
		}

		items = append(items, item{path: top.Name(), category: true})
		if runnable(top) {
			items = append(items, item{path: top.Name(), node: top})
		}
		collect(top.Name(), subs, &items)
	}

	if len(general) > 0 {
		items = append(items, item{path: generalCategory, category: true})
		items = append(items, general...)
	}
	return items
}

func collect(prefix string, nodes []parser.Node, out *[]item) {
	for _, n := range nodes {
		path := prefix + " " + n.Name()
		*out = append(*out, item{path: path, node: n})
		collect(path, visibleCommands(n), out)
	}
}

func visibleCommands(n parser.Node) []parser.Node {
	var out []parser.Node
	for _, s := range parser.VisibleNodes(n.Successors()) {
		if isCommand(s) {
			out = append(out, s)
		}
	}
	return out
}

func isCommand(n parser.Node) bool {
	switch n.(type) {
	case *parser.CommandNode, *parser.WrapperNode:
		return true
	}
	return false
}

// runnable reports whether the command does something when invoked bare
// or with parameters, as opposed to being a pure prefix.
func runnable(n parser.Node) bool {
	switch n := n.(type) {
	case *parser.CommandNode:
		return n.Handler() != nil || len(n.Parameters()) > 0
	case *parser.WrapperNode:
		return true
	}
	return false
}

func parametersOf(n parser.Node) []parser.ParameterNode {
	switch n := n.(type) {
	case *parser.CommandNode:
		return n.Parameters()
	case *parser.WrapperNode:
		return n.Parameters()
	}
	return nil
}

// synopsis renders a one-line usage such as
// "show interface [brief] [<name>]". Hidden parameters are left out.
func synopsis(it item) string {
	parts := []string{it.path}
	for _, p := range parametersOf(it.node) {
		if p.Hidden() {
			continue
		}
		if p.Required() {
			parts = append(parts, p.HelpSymbol())
			continue
		}
		parts = append(parts, "["+p.HelpSymbol()+"]")
	}
	return strings.Join(parts, " ")
}

// matches reports whether the item's path or help contains query,
// ignoring case.
func (it item) matches(query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(it.path), q) {
		return true
	}
	return it.node != nil && strings.Contains(strings.ToLower(it.node.HelpText()), q)
}
