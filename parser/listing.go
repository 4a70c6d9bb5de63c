package parser

import "sort"

// VisibleNodes drops hidden nodes, keeping order.
func VisibleNodes(nodes []Node) []Node {
	var out []Node
	for _, n := range nodes {
		if !n.Hidden() {
			out = append(out, n)
		}
	}
	return out
}

// SortNodes returns a copy ordered by priority (highest first), then by
// name. This is the order suggestion listings are printed in.
func SortNodes(nodes []Node) []Node {
	out := append([]Node(nil), nodes...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority() != out[j].Priority() {
			return out[i].Priority() > out[j].Priority()
		}
		return out[i].Name() < out[j].Name()
	})
	return out
}

func acceptable(frontier []Node) []Node {
	return SortNodes(VisibleNodes(frontier))
}
