package ui

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atomicstack/viewmenu/internal/logging/events"
	uistate "github.com/atomicstack/viewmenu/internal/ui/state"
)

const filterPlaceholder = "(type to search)"

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

// edit applies fn to the filter query and keeps the caret and viewport in
// step with the change.
func (m *Model) edit(fn func(q *uistate.Query) bool) bool {
	before := m.list.Query.Pos()
	text := m.list.Query.String()
	if !m.list.Edit(fn) {
		return false
	}
	if before != m.list.Query.Pos() {
		m.filterCursorDirty = true
	}
	if text != m.list.Query.String() {
		m.forceClearInfo()
		m.errMsg = ""
	}
	m.syncViewport()
	return true
}

func (m *Model) clearFilter() {
	if m.edit((*uistate.Query).Clear) {
		events.Filter.Cleared()
	}
}

func (m *Model) handleTextInput(msg tea.KeyMsg) bool {
	query := &m.list.Query
	switch msg.String() {
	case "ctrl+u":
		if query.String() == "" {
			return false
		}
		m.clearFilter()
		return true
	case "ctrl+w":
		if !m.edit((*uistate.Query).DeleteWord) {
			return false
		}
		events.Filter.WordBackspace(query.String())
		return true
	case "ctrl+a":
		return m.moveFilterCursor((*uistate.Query).Start)
	case "ctrl+e":
		return m.moveFilterCursor((*uistate.Query).End)
	case "alt+b":
		return m.moveFilterCursor((*uistate.Query).WordLeft)
	case "alt+f":
		return m.moveFilterCursor((*uistate.Query).WordRight)
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		if !m.edit((*uistate.Query).Backspace) {
			return false
		}
		events.Filter.Backspace(query.String())
		return true
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return false
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) || unicode.IsSpace(r) {
				return false
			}
		}
		return m.appendToFilter(string(msg.Runes))
	case tea.KeySpace:
		// a leading space would filter nothing and only move the caret
		if query.String() == "" {
			return false
		}
		return m.appendToFilter(" ")
	case tea.KeyLeft:
		return m.moveFilterCursor((*uistate.Query).Left)
	case tea.KeyRight:
		return m.moveFilterCursor((*uistate.Query).Right)
	}
	return false
}

func (m *Model) appendToFilter(text string) bool {
	if !m.edit(func(q *uistate.Query) bool { return q.Insert(text) }) {
		return false
	}
	events.Filter.Append(m.list.Query.String())
	return true
}

func (m *Model) moveFilterCursor(move func(q *uistate.Query) bool) bool {
	if !m.edit(move) {
		return false
	}
	events.Filter.Cursor(m.list.Query.Pos())
	return true
}

func (m *Model) filterPrompt() string {
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	if styles.Cursor != nil {
		m.filterCursor.Style = *styles.Cursor
	}
	if styles.Filter != nil {
		m.filterCursor.TextStyle = *styles.Filter
	} else {
		m.filterCursor.TextStyle = lipgloss.Style{}
	}
	prompt := "» "
	if styles.FilterPrompt != nil {
		prompt = styles.FilterPrompt.Render(prompt)
	}
	runes := []rune(m.list.Query.String())
	if len(runes) == 0 {
		placeholder := []rune(filterPlaceholder)
		if styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = *styles.FilterPlaceholder
		}
		caret := m.renderFilterCursor(string(placeholder[0]))
		return prompt + caret + render(styles.FilterPlaceholder, string(placeholder[1:]))
	}
	pos := max(0, min(m.list.Query.Pos(), len(runes)))
	before := render(styles.Filter, string(runes[:pos]))
	caretRune := " "
	after := ""
	if pos < len(runes) {
		caretRune = string(runes[pos])
		after = render(styles.Filter, string(runes[pos+1:]))
	}
	return prompt + before + m.renderFilterCursor(caretRune) + after
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)

	base := m.filterCursor.TextStyle.Inline(true)
	if m.filterCursor.Blink {
		return base.Render(char)
	}
	if styles.Cursor != nil {
		return base.Inherit(styles.Cursor.Inline(true)).Blink(false).Render(char)
	}
	return base.Reverse(true).Render(char)
}
