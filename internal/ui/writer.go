// Package ui provides terminal output helpers.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/footprint-tools/commands/internal/domain"
)

// Writer implements domain.OutputWriter.
type Writer struct {
	out io.Writer
}

// NewWriter creates a new Writer that writes to stdout.
func NewWriter() *Writer {
	return &Writer{out: os.Stdout}
}

// NewWriterTo creates a new Writer that writes to the specified writer.
func NewWriterTo(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (n int, err error) {
	return w.out.Write(p)
}

// Printf formats and prints to the output.
func (w *Writer) Printf(format string, args ...any) (int, error) {
	return fmt.Fprintf(w.out, format, args...)
}

// Println prints a line to the output.
func (w *Writer) Println(args ...any) (int, error) {
	return fmt.Fprintln(w.out, args...)
}

// IsTerminal reports whether the writer is attached to a terminal.
func (w *Writer) IsTerminal() bool {
	f, ok := w.out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Row is one line of a two-column listing.
type Row struct {
	Left  string
	Right string
}

// Columns renders rows with the right column aligned, indented by indent
// spaces. Widths are measured in terminal cells so styled text lines up.
func Columns(rows []Row, indent int) string {
	width := 0
	for _, r := range rows {
		width = max(width, lipgloss.Width(r.Left))
	}

	var b strings.Builder
	pad := strings.Repeat(" ", indent)
	for _, r := range rows {
		b.WriteString(pad)
		b.WriteString(r.Left)
		if r.Right != "" {
			b.WriteString(strings.Repeat(" ", width-lipgloss.Width(r.Left)+2))
			b.WriteString(r.Right)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Verify Writer implements domain.OutputWriter
var _ domain.OutputWriter = (*Writer)(nil)
