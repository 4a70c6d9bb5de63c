package parser

import "slices"

// Values is a read-only view of the parameter bindings of one parse.
type Values struct {
	bound map[string][]string
	order []string
}

// Get returns the last value bound to name.
func (v Values) Get(name string) (string, bool) {
	vals := v.bound[name]
	if len(vals) == 0 {
		return "", false
	}
	return vals[len(vals)-1], true
}

// All returns every value bound to name in encounter order. Repeatable
// parameters accumulate one entry per occurrence.
func (v Values) All(name string) []string {
	return slices.Clone(v.bound[name])
}

// Has reports whether name was bound at least once. For flags this is the
// flag's presence.
func (v Values) Has(name string) bool {
	return len(v.bound[name]) > 0
}

// Names lists bound parameter names in the order they were first bound.
func (v Values) Names() []string {
	return slices.Clone(v.order)
}

// Len is the number of distinct bound parameters.
func (v Values) Len() int {
	return len(v.order)
}

// State is the result of matching one token sequence. It is owned by the
// call that produced it and is never shared.
type State struct {
	root     *RootNode
	frontier []Node
	bound    map[string][]string
	order    []string
	command  Node
	trace    []Node

	// awaiting is set when completion parsing stops after a named
	// parameter whose value has not been typed yet.
	awaiting *NamedParameterNode
}

func newState(root *RootNode) *State {
	return &State{
		root:     root,
		frontier: root.successors,
		bound:    make(map[string][]string),
	}
}

// Command returns the matched *CommandNode or *WrapperNode, or nil when no
// command was matched.
func (s *State) Command() Node {
	return s.command
}

// Values returns the bindings collected during the parse.
func (s *State) Values() Values {
	bound := make(map[string][]string, len(s.bound))
	for k, v := range s.bound {
		bound[k] = slices.Clone(v)
	}
	return Values{bound: bound, order: slices.Clone(s.order)}
}

// Trace lists the nodes matched so far, one per consumed key token.
func (s *State) Trace() []Node {
	return slices.Clone(s.trace)
}

// Frontier lists the nodes that could match a further token.
func (s *State) Frontier() []Node {
	return slices.Clone(s.frontier)
}

func (s *State) bind(p ParameterNode, value string) {
	name := p.Name()
	if _, ok := s.bound[name]; !ok {
		s.order = append(s.order, name)
	}
	if p.Repeatable() {
		s.bound[name] = append(s.bound[name], value)
		return
	}
	s.bound[name] = []string{value}
}

// Verify checks that every required parameter of the matched command was
// bound. It returns an *Error of kind MissingRequired naming all of them.
func (s *State) Verify() error {
	var params []ParameterNode
	switch c := s.command.(type) {
	case nil:
		return nil
	case *CommandNode:
		params = c.parameters
	case *WrapperNode:
		params = c.parameters
	}

	var missing []string
	for _, p := range params {
		if p.Required() && len(s.bound[p.Name()]) == 0 {
			missing = append(missing, p.Name())
		}
	}
	if len(missing) > 0 {
		return &Error{Kind: MissingRequired, Missing: missing}
	}
	return nil
}
