package parser

// Invocation is what a handler receives when its command runs.
type Invocation struct {
	// Command is the command whose handler is running.
	Command *CommandNode
	// Matched is the node the user typed: Command itself, or the
	// *WrapperNode that redirected to it.
	Matched Node
	// Values are the bindings of this parse.
	Values Values
	// Trace lists the matched nodes, for diagnostics.
	Trace []Node
}

// Handler runs a command. Its error is returned unchanged by Execute.
type Handler func(inv Invocation) error

// Execute runs the handler of the matched command. A wrapper runs the
// handler of its target with the wrapper's own bindings. Without a matched
// command or a handler, Execute does nothing.
func (s *State) Execute() error {
	var target *CommandNode
	switch c := s.command.(type) {
	case nil:
		return nil
	case *CommandNode:
		target = c
	case *WrapperNode:
		target = s.root.Lookup(c.target)
	}

	if target == nil || target.handler == nil {
		return nil
	}

	return target.handler(Invocation{
		Command: target,
		Matched: s.command,
		Values:  s.Values(),
		Trace:   s.Trace(),
	})
}

// Run parses, verifies and executes tokens against root, stopping at the
// first failing stage.
func Run(root *RootNode, tokens []string) error {
	s, err := New(root).Parse(tokens)
	if err != nil {
		return err
	}
	if err := s.Verify(); err != nil {
		return err
	}
	return s.Execute()
}
