package ui

import (
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/viewmenu/internal/menu"
	"github.com/atomicstack/viewmenu/internal/theme"
	uistate "github.com/atomicstack/viewmenu/internal/ui/state"
)

const (
	defaultToggleLabel = "Menu"
	// below this width the entries collapse behind the toggle line.
	defaultCollapseWidth = 40
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// ViewChangedMsg reports a navigation that happened outside the model, for
// example through the HTTP API. The model shows the new view and marks it
// active.
type ViewChangedMsg struct {
	Route string
	View  menu.View
}

// Options configures a Model.
type Options struct {
	// Width and Height pin the layout; zero follows the terminal.
	Width  int
	Height int
	// ShowFooter adds the key help line.
	ShowFooter bool
	// Host is passed to Attach for title detection.
	Host interface{}
	// ToggleLabel is the text of the collapsed-menu toggle.
	ToggleLabel string
	// CollapseWidth overrides the width below which the menu collapses.
	CollapseWidth int
}

// Model implements the Bubble Tea model for the view menu.
type Model struct {
	builder *menu.Builder
	host    interface{}
	list    *uistate.List

	route   string
	content string

	errMsg     string
	infoMsg    string
	infoExpire time.Time

	width         int
	height        int
	fixedWidth    bool
	fixedHeight   bool
	showFooter    bool
	toggleLabel   string
	collapseWidth int

	filterCursor      cursor.Model
	filterCursorDirty bool

	handlers map[reflect.Type]msgHandler
}

// NewModel wraps a builder. The builder should already be initialised.
func NewModel(b *menu.Builder, opts Options) *Model {
	m := &Model{
		builder:       b,
		host:          opts.Host,
		list:          uistate.NewList(b.Items()),
		showFooter:    opts.ShowFooter,
		toggleLabel:   opts.ToggleLabel,
		collapseWidth: opts.CollapseWidth,
	}
	if m.toggleLabel == "" {
		m.toggleLabel = defaultToggleLabel
	}
	if m.collapseWidth <= 0 {
		m.collapseWidth = defaultCollapseWidth
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = *styles.Cursor
	}
	if styles.Filter != nil {
		c.TextStyle = *styles.Filter
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.registerHandlers()
	return m
}

// Init attaches the menu to its host and starts the filter caret.
func (m *Model) Init() tea.Cmd {
	m.builder.Attach(m.host)
	m.refresh()
	if e := m.builder.Selected(); e != nil {
		if idx := m.list.IndexOf(e.ID); idx >= 0 {
			m.list.Cursor = idx
		}
	}
	return m.filterCursor.Focus()
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 2)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(ViewChangedMsg{}):    m.handleViewChangedMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	m.refresh()
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// refresh picks up entry state changed behind the model's back, such as a
// rebuild or an entry marked active over HTTP.
func (m *Model) refresh() {
	m.list.SetItems(m.builder.Items())
	m.syncViewport()
}

// Route returns the route of the view on screen.
func (m *Model) Route() string {
	return m.route
}
