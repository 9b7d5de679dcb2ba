package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/viewmenu/internal/logging"
	"github.com/atomicstack/viewmenu/internal/logging/events"
	"github.com/atomicstack/viewmenu/internal/menu"
)

type contenter interface {
	Content() string
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.handleTextInput(keyMsg) {
		return nil
	}
	switch keyMsg.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc":
		return m.handleEscapeKey()
	case "enter":
		return m.handleEnterKey()
	case "tab":
		m.toggleMenu()
	case "ctrl+x":
		m.markActive()
	case "up":
		m.moveCursor(m.list.Up)
	case "down":
		m.moveCursor(m.list.Down)
	case "pgup":
		m.moveCursor(func() bool { return m.list.PageUp(m.maxVisibleItems()) })
	case "pgdown":
		m.moveCursor(func() bool { return m.list.PageDown(m.maxVisibleItems()) })
	case "home":
		m.moveCursor(m.list.Home)
	case "end":
		m.moveCursor(m.list.End)
	}
	return nil
}

// handleEscapeKey clears a typed filter first and quits on an empty one.
func (m *Model) handleEscapeKey() tea.Cmd {
	if m.list.Query.Empty() {
		return tea.Quit
	}
	m.clearFilter()
	m.errMsg = ""
	m.forceClearInfo()
	return nil
}

func (m *Model) handleEnterKey() tea.Cmd {
	item, ok := m.list.Current()
	if !ok {
		return nil
	}
	events.UI.MenuEnter(item.ID, item.Label, m.list.Query.String())
	if !item.Enabled {
		m.setInfo(fmt.Sprintf("%s is already open", item.Label))
		return nil
	}
	m.clearFilter()
	m.errMsg = ""
	m.forceClearInfo()
	if item.ID == "" {
		m.clickCustom(item)
		return nil
	}
	view, err := m.builder.NavigateTo(item.ID)
	if err != nil {
		logging.Error(fmt.Errorf("navigate to %s: %w", item.ID, err))
		m.errMsg = err.Error()
		return nil
	}
	m.showView(item.ID, view)
	return nil
}

// clickCustom runs the handler of an entry added with AddMenuItem. Custom
// entries have no route, so they are matched by label.
func (m *Model) clickCustom(item menu.Item) {
	for _, e := range m.builder.Entries() {
		if e.ID == "" && e.Label == item.Label {
			e.Click()
			return
		}
	}
	m.setInfo(fmt.Sprintf("%s is no longer available", item.Label))
}

func (m *Model) handleViewChangedMsg(msg tea.Msg) tea.Cmd {
	changed, ok := msg.(ViewChangedMsg)
	if !ok {
		return nil
	}
	if changed.Route == m.route {
		return nil
	}
	m.showView(changed.Route, changed.View)
	return nil
}

// showView puts view on screen and disables its entry.
func (m *Model) showView(route string, view menu.View) {
	if view == nil {
		return
	}
	m.route = route
	m.content = ""
	if c, ok := view.(contenter); ok {
		m.content = c.Content()
	}
	m.builder.SetActive(route)
	events.UI.MarkActive(route)
	m.refresh()
	if idx := m.list.IndexOf(route); idx >= 0 {
		m.list.Cursor = idx
		m.syncViewport()
	}
}

// markActive disables the entry under the cursor without navigating.
func (m *Model) markActive() {
	item, ok := m.list.Current()
	if !ok || item.ID == "" {
		return
	}
	m.builder.SetActive(item.ID)
	events.UI.MarkActive(item.ID)
	m.refresh()
}

func (m *Model) toggleMenu() {
	visible := m.builder.ToggleMenuVisible()
	events.UI.ToggleMenu(visible)
	m.syncViewport()
}

func (m *Model) moveCursor(move func() bool) {
	if move() {
		events.UI.MenuCursor(m.list.Cursor)
	}
	m.syncViewport()
}

func (m *Model) syncViewport() {
	m.list.Scroll(m.maxVisibleItems())
}
