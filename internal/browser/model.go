package browser

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/footprint-tools/commands/internal/ui/style"
	"github.com/footprint-tools/commands/parser"
)

const (
	headerHeight = 2
	footerHeight = 1
	pageSize     = 5
)

type model struct {
	allItems      []item
	items         []item // after filtering
	cursor        int
	sidebarScroll int
	contentScroll int
	width         int
	height        int
	colors        style.ColorConfig
	keys          KeyMap
	focusSidebar  bool
	searchMode    bool
	searchQuery   string
	title         string
}

func newModel(root *parser.RootNode, title string, colors style.ColorConfig) model {
	items := buildItems(root)
	m := model{
		allItems:     items,
		items:        items,
		colors:       colors,
		keys:         DefaultKeyMap,
		focusSidebar: true,
		title:        title,
	}
	m.jumpToFirst()
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	m.sidebarScroll = scrollFor(m.cursor, m.sidebarScroll, max(m.mainHeight()-2, 1))
	return m, cmd
}

func (m model) update(msg tea.Msg) (model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg), nil

	case tea.KeyMsg:
		if m.searchMode {
			return m.updateSearch(msg), nil
		}

		switch {
		case msg.Type == tea.KeyEsc && m.searchQuery != "":
			m.searchQuery = ""
			m.filterItems()
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Search):
			m.searchMode = true
		case key.Matches(msg, m.keys.FocusToggle):
			m.focusSidebar = !m.focusSidebar
		case key.Matches(msg, m.keys.Up):
			m.navigate(-1)
		case key.Matches(msg, m.keys.Down):
			m.navigate(1)
		case key.Matches(msg, m.keys.PageUp):
			m.navigate(-pageSize)
		case key.Matches(msg, m.keys.PageDown):
			m.navigate(pageSize)
		case key.Matches(msg, m.keys.Home):
			if m.focusSidebar {
				m.jumpToFirst()
			}
			m.contentScroll = 0
		case key.Matches(msg, m.keys.End):
			if m.focusSidebar {
				m.jumpToLast()
				m.contentScroll = 0
			}
		}
	}

	return m, nil
}

func (m model) updateSearch(msg tea.KeyMsg) model {
	switch msg.Type {
	case tea.KeyEsc:
		m.searchMode = false
		m.searchQuery = ""
		m.filterItems()
	case tea.KeyEnter:
		m.searchMode = false
	case tea.KeyBackspace:
		if r := []rune(m.searchQuery); len(r) > 0 {
			m.searchQuery = string(r[:len(r)-1])
			m.filterItems()
		}
	case tea.KeyRunes, tea.KeySpace:
		m.searchQuery += string(msg.Runes)
		m.filterItems()
	}
	return m
}

// navigate moves the sidebar cursor or scrolls the detail pane by delta,
// depending on focus.
func (m *model) navigate(delta int) {
	if m.focusSidebar {
		step := 1
		if delta < 0 {
			step = -1
		}
		for range abs(delta) {
			m.moveCursor(step)
		}
		m.contentScroll = 0
		return
	}
	m.contentScroll = max(m.contentScroll+delta, 0)
}

func (m model) handleMouse(msg tea.MouseMsg) model {
	if msg.Action != tea.MouseActionPress {
		return m
	}
	inSidebar := msg.X < m.layout().SidebarWidth

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.focusSidebar = inSidebar
		m.navigate(-1)
	case tea.MouseButtonWheelDown:
		m.focusSidebar = inSidebar
		m.navigate(1)
	case tea.MouseButtonLeft:
		m.focusSidebar = inSidebar
		if !inSidebar {
			return m
		}
		// One row for the panel border.
		clicked := m.sidebarScroll + msg.Y - headerHeight - 1
		if clicked >= 0 && clicked < len(m.items) && !m.items[clicked].category {
			m.cursor = clicked
			m.contentScroll = 0
		}
	}
	return m
}

// moveCursor steps over category headers and stops at either end.
func (m *model) moveCursor(delta int) {
	for next := m.cursor + delta; next >= 0 && next < len(m.items); next += delta {
		if !m.items[next].category {
			m.cursor = next
			return
		}
	}
}

func (m *model) jumpToFirst() {
	for i, it := range m.items {
		if !it.category {
			m.cursor = i
			return
		}
	}
	m.cursor = 0
}

func (m *model) jumpToLast() {
	for i := len(m.items) - 1; i >= 0; i-- {
		if !m.items[i].category {
			m.cursor = i
			return
		}
	}
}

// filterItems keeps matching commands and the headers of categories that
// still hold at least one of them.
func (m *model) filterItems() {
	if m.searchQuery == "" {
		m.items = m.allItems
	} else {
		var (
			filtered []item
			header   *item
		)
		for i := range m.allItems {
			it := m.allItems[i]
			if it.category {
				header = &m.allItems[i]
				continue
			}
			if !it.matches(m.searchQuery) {
				continue
			}
			if header != nil {
				filtered = append(filtered, *header)
				header = nil
			}
			filtered = append(filtered, it)
		}
		m.items = filtered
	}

	m.jumpToFirst()
	m.sidebarScroll = 0
	m.contentScroll = 0
}

// selected returns the command under the cursor.
func (m model) selected() (item, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) || m.items[m.cursor].category {
		return item{}, false
	}
	return m.items[m.cursor], true
}

func countCommands(items []item) int {
	n := 0
	for _, it := range items {
		if !it.category {
			n++
		}
	}
	return n
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
