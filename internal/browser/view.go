package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/footprint-tools/commands/internal/ui/splitpanel"
	"github.com/footprint-tools/commands/parser"
)

const (
	defaultWidth  = 100
	defaultHeight = 30
)

func (m model) size() (int, int) {
	width, height := m.width, m.height
	if width == 0 {
		width = defaultWidth
	}
	if height == 0 {
		height = defaultHeight
	}
	return width, height
}

func (m model) layout() *splitpanel.Layout {
	width, _ := m.size()
	layout := splitpanel.NewLayout(width, splitpanel.Config{
		SidebarWidthPercent: 0.3,
		SidebarMinWidth:     24,
		SidebarMaxWidth:     40,
	}, m.colors)
	layout.FocusSidebar = m.focusSidebar
	return layout
}

func (m model) View() string {
	width, _ := m.size()
	mainHeight := m.mainHeight()

	layout := m.layout()
	sidebar := m.buildSidebarPanel(mainHeight)
	content := m.buildContentPanel(layout, mainHeight)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(width),
		layout.Render(sidebar, content, mainHeight),
		m.renderFooter(width),
	)
}

func (m model) renderHeader(width int) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.colors.Info))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.colors.Muted))

	total := countCommands(m.allItems)
	count := fmt.Sprintf(" (%d commands)", total)
	if m.searchQuery != "" {
		count = fmt.Sprintf(" (%d/%d commands)", countCommands(m.items), total)
	}

	search := ""
	switch {
	case m.searchMode:
		search = titleStyle.UnsetBold().Render(fmt.Sprintf("  Search: %s_", m.searchQuery))
	case m.searchQuery != "":
		search = mutedStyle.Render("  Filter: " + m.searchQuery)
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Render(titleStyle.Render(m.title)+mutedStyle.Render(count)+search) + "\n"
}

func (m model) mainHeight() int {
	_, height := m.size()
	return max(height-headerHeight-footerHeight, 3)
}

// scrollFor returns the smallest change to offset that keeps cursor
// within a window of visible rows.
func scrollFor(cursor, offset, visible int) int {
	if cursor < offset {
		return cursor
	}
	if cursor >= offset+visible {
		return cursor - visible + 1
	}
	return offset
}

func (m model) buildSidebarPanel(height int) splitpanel.Panel {
	visible := max(height-2, 1)
	scroll := scrollFor(m.cursor, m.sidebarScroll, visible)

	if len(m.items) == 0 {
		empty := lipgloss.NewStyle().Foreground(lipgloss.Color(m.colors.Muted)).Italic(true)
		return splitpanel.Panel{Lines: []string{empty.Render("No matches found")}}
	}

	categoryStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.colors.Muted))
	activeStyle := lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color(m.colors.UIActive))
	inactiveStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.colors.Warning))
	commandStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.colors.Command))

	var lines []string
	for i := scroll; i < len(m.items) && len(lines) < visible; i++ {
		it := m.items[i]
		if it.category {
			lines = append(lines, categoryStyle.Render(it.path))
			continue
		}

		label := it.path
		if cat := categoryOf(m.items, i); cat != "" && cat != generalCategory && label != cat {
			label = strings.TrimPrefix(label, cat+" ")
		}

		switch {
		case i == m.cursor && m.focusSidebar:
			lines = append(lines, "> "+activeStyle.Render(label))
		case i == m.cursor:
			lines = append(lines, "* "+inactiveStyle.Render(label))
		default:
			lines = append(lines, "  "+commandStyle.Render(label))
		}
	}

	return splitpanel.Panel{
		Lines:      lines,
		ScrollPos:  scroll,
		TotalItems: len(m.items),
	}
}

// categoryOf returns the header above index i.
func categoryOf(items []item, i int) string {
	for ; i >= 0; i-- {
		if items[i].category {
			return items[i].path
		}
	}
	return ""
}

func (m model) buildContentPanel(layout *splitpanel.Layout, height int) splitpanel.Panel {
	it, ok := m.selected()
	if !ok {
		empty := lipgloss.NewStyle().Foreground(lipgloss.Color(m.colors.Muted))
		return splitpanel.Panel{Lines: []string{empty.Render("No command selected")}}
	}

	lines := strings.Split(m.renderCommand(it, layout.MainContentWidth()), "\n")
	total := len(lines)
	visible := max(height-2, 1)

	scroll := min(m.contentScroll, max(total-visible, 0))
	lines = lines[scroll:]
	if len(lines) > visible {
		lines = lines[:visible]
	}

	return splitpanel.Panel{
		Lines:      lines,
		ScrollPos:  scroll,
		TotalItems: total,
	}
}

// renderCommand describes one command: help text, usage line, parameters
// with their markers, wrapped target and sub-commands.
func (m model) renderCommand(it item, width int) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.colors.Info))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.colors.Muted))
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.colors.Success))
	commandStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.colors.Command))
	paramStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.colors.Parameter))

	var b strings.Builder

	b.WriteString(titleStyle.Render(it.path))
	b.WriteString("\n")
	if help := it.node.HelpText(); help != "" {
		b.WriteString(mutedStyle.Render(wrapText(help, width)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(headerStyle.Render("USAGE"))
	b.WriteString("\n   ")
	b.WriteString(commandStyle.Render(synopsis(it)))
	b.WriteString("\n\n")

	if w, ok := it.node.(*parser.WrapperNode); ok {
		b.WriteString(headerStyle.Render("RUNS"))
		b.WriteString("\n   ")
		b.WriteString(commandStyle.Render(w.Target()))
		b.WriteString("\n\n")
	}

	var params []parser.ParameterNode
	for _, p := range parametersOf(it.node) {
		if !p.Hidden() {
			params = append(params, p)
		}
	}
	if len(params) > 0 {
		b.WriteString(headerStyle.Render("PARAMETERS"))
		b.WriteString("\n")
		for _, p := range params {
			symbol := p.HelpSymbol()
			if aliases := p.Aliases(); len(aliases) > 0 {
				symbol += ", " + strings.Join(aliases, ", ")
			}
			style := commandStyle
			if p.Kind() == parser.Simple {
				style = paramStyle
			}
			b.WriteString("   ")
			b.WriteString(style.Render(fmt.Sprintf("%-24s", symbol)))
			b.WriteString("  ")
			b.WriteString(mutedStyle.Render(describeParameter(p)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if subs := visibleCommands(it.node); len(subs) > 0 {
		b.WriteString(headerStyle.Render("SUBCOMMANDS"))
		b.WriteString("\n")
		for _, s := range subs {
			b.WriteString("   ")
			b.WriteString(commandStyle.Render(fmt.Sprintf("%-24s", s.Name())))
			b.WriteString("  ")
			b.WriteString(mutedStyle.Render(s.HelpText()))
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// describeParameter returns the help text followed by the parameter's
// kind and markers, e.g. "Interface name (simple, required)".
func describeParameter(p parser.ParameterNode) string {
	markers := []string{p.Kind().String()}
	if p.Required() {
		markers = append(markers, "required")
	}
	if p.Repeatable() {
		markers = append(markers, "repeatable")
	}
	suffix := "(" + strings.Join(markers, ", ") + ")"
	if p.HelpText() == "" {
		return suffix
	}
	return p.HelpText() + " " + suffix
}

func (m model) renderFooter(width int) string {
	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color(m.colors.Info)).
		Padding(0, 1)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.colors.Muted))
	sep := lipgloss.NewStyle().Foreground(lipgloss.Color(m.colors.UIDim)).Render(" | ")

	var parts []string
	if m.searchMode {
		parts = []string{
			keyStyle.Render("Enter") + labelStyle.Render(" confirm"),
			keyStyle.Render("Esc") + labelStyle.Render(" cancel"),
		}
	} else {
		for _, b := range m.keys.footerBindings() {
			h := b.Help()
			parts = append(parts, keyStyle.Render(h.Key)+labelStyle.Render(" "+h.Desc))
		}
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Render(strings.Join(parts, sep))
}

func wrapText(text string, width int) string {
	if width <= 0 {
		width = 72
	}

	var out []string
	for _, line := range strings.Split(text, "\n") {
		if len(line) <= width {
			out = append(out, line)
			continue
		}
		current := ""
		for _, word := range strings.Fields(line) {
			switch {
			case current == "":
				current = word
			case len(current)+1+len(word) <= width:
				current += " " + word
			default:
				out = append(out, current)
				current = word
			}
		}
		if current != "" {
			out = append(out, current)
		}
	}
	return strings.Join(out, "\n")
}
