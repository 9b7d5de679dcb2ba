package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/viewmenu/internal/menu"
)

const (
	itemIndicator = "▌"
	footerText    = "↑/↓ move  enter open  tab menu  ctrl+x mark active  esc clear/quit  ctrl+c quit"
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
}

// View implements tea.Model. The menu parts are drawn in the order the
// builder lays them out; the view content, messages and the filter prompt
// follow.
func (m *Model) View() string {
	m.syncViewport()
	lines := make([]styledLine, 0, 16)
	for _, c := range m.builder.Components() {
		switch part := c.(type) {
		case menu.Part:
			lines = append(lines, m.partLines(part)...)
		default:
			if text := c.Render(); text != "" {
				lines = append(lines, styledLine{text: text, style: styles.Secondary})
			}
		}
	}
	lines = append(lines, m.contentLines()...)
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{}, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{}, styledLine{text: footerText, style: styles.Footer})
	}
	lines = limitHeight(lines, m.height-2, m.width)
	lines = applyWidth(lines, m.width)

	var status styledLine
	if m.errMsg != "" {
		status = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	}
	bottom := applyWidth([]styledLine{status, {text: m.filterPrompt()}}, m.width)
	return renderLines(append(lines, bottom...))
}

func (m *Model) partLines(part menu.Part) []styledLine {
	switch part {
	case menu.PartHeader:
		if title := m.builder.MenuTitle(); title != "" {
			return []styledLine{{text: title, style: styles.Title}}
		}
	case menu.PartToggle:
		if m.collapsed() {
			return []styledLine{{text: m.toggleLine(), style: styles.Toggle}}
		}
	case menu.PartItems:
		if m.itemsShown() {
			return m.itemLines()
		}
	}
	return nil
}

func (m *Model) toggleLine() string {
	arrow := "▸"
	if m.builder.MenuVisible() {
		arrow = "▾"
	}
	return fmt.Sprintf("%s %s", arrow, m.toggleLabel)
}

// collapsed reports whether the terminal is narrow enough to hide the
// entries behind the toggle.
func (m *Model) collapsed() bool {
	return m.width > 0 && m.width < m.collapseWidth
}

func (m *Model) itemsShown() bool {
	return !m.collapsed() || m.builder.MenuVisible()
}

func (m *Model) itemLines() []styledLine {
	if len(m.list.Items) == 0 {
		msg := "(no entries)"
		if q := m.list.Query.String(); q != "" {
			msg = fmt.Sprintf("No matches for %q", q)
		}
		return []styledLine{{text: msg, style: styles.Info}}
	}
	window, first := m.list.Window(m.maxVisibleItems())
	lines := make([]styledLine, 0, len(window))
	for i, item := range window {
		lines = append(lines, m.buildItemLine(item, first+i == m.list.Cursor))
	}
	return lines
}

// buildItemLine renders one entry. The cursor row is padded to the full width
// so its background spans the line.
func (m *Model) buildItemLine(item menu.Item, atCursor bool) styledLine {
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	switch {
	case atCursor:
		lineStyle = styles.CursorItem
		indicatorStyle = styles.CursorIndicator
	case !item.Enabled:
		lineStyle = styles.DisabledItem
	case item.Selected:
		lineStyle = styles.SelectedItem
	}
	mark := " "
	if item.Selected {
		mark = "•"
	}
	text := fmt.Sprintf("%s%s%s %s", itemIndicator, mark, item.Icon.Glyph(), item.Label)
	if atCursor && m.width > 0 {
		if pad := m.width - ansi.StringWidth(text); pad > 0 {
			text += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          text,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1,
	}
}

func (m *Model) contentLines() []styledLine {
	if m.content == "" {
		return nil
	}
	body := strings.Split(m.content, "\n")
	lines := make([]styledLine, 0, len(body)+1)
	lines = append(lines, styledLine{})
	for _, line := range body {
		lines = append(lines, styledLine{text: line, style: styles.Content})
	}
	return lines
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.syncViewport()
	return nil
}

// maxVisibleItems returns how many entries fit below the other parts, or -1
// when the height is unknown.
func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := 2 // status + filter prompt
	for _, c := range m.builder.Components() {
		switch part := c.(type) {
		case menu.Part:
			if part != menu.PartItems {
				used += len(m.partLines(part))
			}
		default:
			if c.Render() != "" {
				used++
			}
		}
	}
	used += len(m.contentLines())
	if m.currentInfo() != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	return max(m.height-used, 1)
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.forceClearInfo()
	}
	return m.infoMsg
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	return append(trimmed, styledLine{text: truncateText("…", width)})
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		line.text = truncateText(line.text, width)
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

// truncateText cuts text to width terminal cells. Escape sequences do not
// count towards the width.
func truncateText(text string, width int) string {
	if width <= 0 || ansi.StringWidth(text) <= width {
		return text
	}
	if width == 1 {
		return truncate.String(text, 1)
	}
	return truncate.StringWithTail(text, uint(width), "…")
}
