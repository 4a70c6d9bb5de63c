// Package splitpanel lays out a bordered sidebar and content pane side by
// side, each with its own scrollbar.
package splitpanel

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/footprint-tools/commands/internal/ui/style"
)

// Panel is the visible slice of one pane.
type Panel struct {
	Lines      []string // already scrolled
	ScrollPos  int
	TotalItems int // zero means len(Lines)
}

// Config holds layout configuration.
type Config struct {
	SidebarWidthPercent float64
	SidebarMinWidth     int
	SidebarMaxWidth     int
}

// chrome is border(2) + padding(2) + scrollbar column(2).
const chrome = 6

// Layout holds computed dimensions and renders the split panel.
type Layout struct {
	Width        int
	Height       int
	SidebarWidth int
	ContentWidth int
	FocusSidebar bool
	Colors       style.ColorConfig
}

// NewLayout splits width between the sidebar and the content pane.
func NewLayout(width int, cfg Config, colors style.ColorConfig) *Layout {
	sidebarWidth := int(float64(width) * cfg.SidebarWidthPercent)
	sidebarWidth = max(sidebarWidth, cfg.SidebarMinWidth)
	if cfg.SidebarMaxWidth > 0 {
		sidebarWidth = min(sidebarWidth, cfg.SidebarMaxWidth)
	}

	return &Layout{
		Width:        width,
		SidebarWidth: sidebarWidth,
		ContentWidth: max(width-sidebarWidth, chrome+1),
		Colors:       colors,
		FocusSidebar: true,
	}
}

// Render draws both panes at the given outer height.
func (l *Layout) Render(sidebar, content Panel, height int) string {
	l.Height = height
	active := lipgloss.Color(l.Colors.UIActive)
	dim := lipgloss.Color(l.Colors.UIDim)

	left := l.buildPanel(sidebar, l.SidebarWidth, height, l.FocusSidebar, active, dim)
	right := l.buildPanel(content, l.ContentWidth, height, !l.FocusSidebar, active, dim)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (l *Layout) buildPanel(panel Panel, width, height int, focused bool, active, dim lipgloss.Color) string {
	innerWidth := max(width-chrome, 1)
	visible := max(height-2, 1)

	lines := panel.Lines
	if len(lines) > visible {
		lines = lines[:visible]
	}

	total := panel.TotalItems
	if total == 0 {
		total = len(panel.Lines)
	}
	bar := BuildScrollbar(visible, total, panel.ScrollPos, active, dim, focused)

	rows := make([]string, visible)
	for i := range rows {
		line := ""
		if i < len(lines) {
			line = fit(lines[i], innerWidth)
		} else {
			line = strings.Repeat(" ", innerWidth)
		}
		rows[i] = line + " " + bar[i]
	}

	border := dim
	if focused {
		border = active
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Render(strings.Join(rows, "\n"))
}

// fit pads or truncates s to exactly width cells.
func fit(s string, width int) string {
	w := lipgloss.Width(s)
	if w == width {
		return s
	}
	if w < width {
		return s + strings.Repeat(" ", width-w)
	}
	runes := []rune(s)
	for i := len(runes); i > 0; i-- {
		candidate := string(runes[:i])
		if lipgloss.Width(candidate) <= width-1 {
			return candidate + "…" + strings.Repeat(" ", width-1-lipgloss.Width(candidate))
		}
	}
	return strings.Repeat(" ", width)
}

// SidebarContentWidth returns usable width for sidebar content.
func (l *Layout) SidebarContentWidth() int {
	return max(l.SidebarWidth-chrome, 1)
}

// MainContentWidth returns usable width for main content.
func (l *Layout) MainContentWidth() int {
	return max(l.ContentWidth-chrome, 1)
}

// VisibleHeight returns visible lines in a panel.
func (l *Layout) VisibleHeight() int {
	return max(l.Height-2, 1)
}
