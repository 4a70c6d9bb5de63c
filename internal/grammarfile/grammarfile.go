// Package grammarfile loads command grammars described in YAML.
//
// A file lists top-level commands; each command may declare parameters,
// sub-commands or a wrapped target:
//
//	commands:
//	  - name: show
//	    help: Show running system information
//	    subcommands:
//	      - name: interface
//	        parameters:
//	          - name: brief
//	            kind: flag
//	          - name: name
//	  - name: sh-int
//	    hidden: true
//	    wraps: show interface
package grammarfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/footprint-tools/commands/parser"
)

// File is the document root.
type File struct {
	Commands []CommandSpec `yaml:"commands"`
}

// CommandSpec describes one command.
type CommandSpec struct {
	Name        string          `yaml:"name"`
	Help        string          `yaml:"help,omitempty"`
	Hidden      bool            `yaml:"hidden,omitempty"`
	Priority    *int            `yaml:"priority,omitempty"`
	Wraps       string          `yaml:"wraps,omitempty"`
	Parameters  []ParameterSpec `yaml:"parameters,omitempty"`
	Subcommands []CommandSpec   `yaml:"subcommands,omitempty"`
}

// ParameterSpec describes one parameter. Kind is "simple" (default),
// "flag" or "named".
type ParameterSpec struct {
	Name       string          `yaml:"name"`
	Kind       string          `yaml:"kind,omitempty"`
	Aliases    []string        `yaml:"aliases,omitempty"`
	Help       string          `yaml:"help,omitempty"`
	Hidden     bool            `yaml:"hidden,omitempty"`
	Priority   *int            `yaml:"priority,omitempty"`
	Repeatable bool            `yaml:"repeatable,omitempty"`
	Required   bool            `yaml:"required,omitempty"`
	Then       []ParameterSpec `yaml:"then,omitempty"`
}

// HandlerFunc returns the handler for the command at path, or nil to
// leave the command without one. Wrappers never get a handler.
type HandlerFunc func(path []string) parser.Handler

// ErrEmpty is returned for a document without commands.
var ErrEmpty = errors.New("grammar has no commands")

// Load reads and decodes the grammar at path.
func Load(path string, handlers HandlerFunc) (*parser.CommandTree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read grammar: %w", err)
	}
	tree, err := Parse(data, handlers)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tree, nil
}

// Parse decodes a YAML grammar held in memory.
func Parse(data []byte, handlers HandlerFunc) (*parser.CommandTree, error) {
	return Decode(bytes.NewReader(data), handlers)
}

// Decode reads one YAML document from r. Unknown fields are rejected so
// typos surface instead of silently changing the grammar.
func Decode(r io.Reader, handlers HandlerFunc) (*parser.CommandTree, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("decode grammar: %w", err)
	}
	return f.Tree(handlers)
}

// Tree converts the decoded document to a command tree. The tree is not
// finalized, so callers may add further commands first.
func (f File) Tree(handlers HandlerFunc) (*parser.CommandTree, error) {
	if len(f.Commands) == 0 {
		return nil, ErrEmpty
	}

	tree := parser.NewCommandTree()
	for _, c := range f.Commands {
		cmd, err := c.build(nil, handlers)
		if err != nil {
			return nil, err
		}
		tree.Command(cmd)
	}
	return tree, nil
}

func (c CommandSpec) build(parent []string, handlers HandlerFunc) (parser.Command, error) {
	path := append(append([]string(nil), parent...), c.Name)

	cmd := parser.NewCommand(c.Name).
		Help(c.Help).
		Hidden(c.Hidden)
	if c.Priority != nil {
		cmd = cmd.Priority(*c.Priority)
	}

	for _, p := range c.Parameters {
		param, err := p.build()
		if err != nil {
			return cmd, fmt.Errorf("command %q: %w", strings.Join(path, " "), err)
		}
		cmd = cmd.Parameter(param)
	}

	if c.Wraps != "" {
		return cmd.Wraps(c.Wraps), nil
	}

	for _, s := range c.Subcommands {
		sub, err := s.build(path, handlers)
		if err != nil {
			return cmd, err
		}
		cmd = cmd.Subcommand(sub)
	}

	if handlers != nil {
		if h := handlers(path); h != nil {
			cmd = cmd.Handler(h)
		}
	}
	return cmd, nil
}

func (p ParameterSpec) build() (parser.Parameter, error) {
	kind, err := parser.ParseParameterKind(p.Kind)
	if err != nil {
		return parser.Parameter{}, fmt.Errorf("parameter %q: %w", p.Name, err)
	}

	param := parser.NewParameter(p.Name).
		Kind(kind).
		Help(p.Help).
		Hidden(p.Hidden).
		Repeatable(p.Repeatable).
		Required(p.Required)
	if p.Priority != nil {
		param = param.Priority(*p.Priority)
	}
	for _, a := range p.Aliases {
		param = param.Alias(a)
	}

	for _, next := range p.Then {
		child, err := next.build()
		if err != nil {
			return param, err
		}
		param = param.Then(child)
	}
	return param, nil
}
