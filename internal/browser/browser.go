// Package browser is a full-screen viewer for a frozen command grammar:
// a sidebar of visible commands and a detail pane with usage, parameters
// and sub-commands.
package browser

import (
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/footprint-tools/commands/internal/ui/style"
	"github.com/footprint-tools/commands/parser"
)

// ErrNotTerminal is returned when stdin or stdout is not a terminal.
var ErrNotTerminal = errors.New("the command browser requires an interactive terminal")

type Deps struct {
	IsTerminal func() bool
	Colors     func() style.ColorConfig
	// Run drives the program until it quits.
	Run func(tea.Model) error
}

func DefaultDeps() Deps {
	return Deps{
		IsTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
		},
		Colors: style.GetColors,
		Run: func(m tea.Model) error {
			_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
			return err
		},
	}
}

// Command returns a handler that browses the grammar returned by root.
// root is resolved at run time so the handler can be part of the grammar
// it shows.
func Command(title string, root func() *parser.RootNode) parser.Handler {
	deps := DefaultDeps()
	return func(parser.Invocation) error {
		return browse(title, root(), deps)
	}
}

func browse(title string, root *parser.RootNode, deps Deps) error {
	if !deps.IsTerminal() {
		return ErrNotTerminal
	}
	return deps.Run(newModel(root, title, deps.Colors()))
}
