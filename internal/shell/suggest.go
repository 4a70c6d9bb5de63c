package shell

import (
	"sort"
	"strings"

	"github.com/footprint-tools/commands/parser"
)

const (
	maxSuggestions = 3
	maxDistance    = 3
)

// levenshtein calculates the edit distance between two strings
func levenshtein(a, b string) int {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

type suggestion struct {
	name     string
	distance int
}

// similar returns up to maxSuggestions literals of nodes close to token,
// nearest first. Hidden nodes are never suggested.
func similar(token string, nodes []parser.Node) []string {
	if token == "" {
		return nil
	}

	var found []suggestion
	seen := make(map[string]bool)
	for _, n := range parser.VisibleNodes(nodes) {
		for _, lit := range literalsOf(n) {
			if seen[lit] {
				continue
			}
			seen[lit] = true
			if d := levenshtein(token, lit); d > 0 && d <= maxDistance && d < len(lit) {
				found = append(found, suggestion{name: lit, distance: d})
			}
		}
	}

	// Sort by distance (ascending), then alphabetically for stability
	sort.Slice(found, func(i, j int) bool {
		if found[i].distance != found[j].distance {
			return found[i].distance < found[j].distance
		}
		return found[i].name < found[j].name
	})

	if len(found) > maxSuggestions {
		found = found[:maxSuggestions]
	}

	out := make([]string, len(found))
	for i, s := range found {
		out[i] = s.name
	}
	return out
}

// literalsOf lists what the user can type to select n. Positional
// parameters have no literal.
func literalsOf(n parser.Node) []string {
	switch n := n.(type) {
	case *parser.CommandNode, *parser.WrapperNode:
		return []string{n.Name()}
	case parser.ParameterNode:
		if n.Kind() == parser.Simple {
			return nil
		}
		return append([]string{n.Name()}, n.Aliases()...)
	}
	return nil
}
