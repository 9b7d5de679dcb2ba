package menu

import "sync"

// Item is a value snapshot of an entry for renderers.
type Item struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Icon     Icon   `json:"icon"`
	Selected bool   `json:"selected"`
	Enabled  bool   `json:"enabled"`
}

// Entry is one clickable menu row. Its state is changed only by the Builder
// that owns it and is guarded by that builder's lock.
type Entry struct {
	ID    string
	Label string
	Icon  Icon

	mu       *sync.Mutex
	selected bool
	disabled bool
	onClick  func()
}

// NewEntry builds a custom entry for AddMenuItem.
func NewEntry(label string, icon Icon, onClick func()) *Entry {
	return &Entry{Label: label, Icon: icon.orDefault(), onClick: onClick}
}

func (e *Entry) lock() func() {
	if e.mu == nil {
		return func() {}
	}
	e.mu.Lock()
	return e.mu.Unlock
}

// Selected reports whether the entry is highlighted.
func (e *Entry) Selected() bool {
	defer e.lock()()
	return e.selected
}

// Enabled reports whether the entry accepts clicks.
func (e *Entry) Enabled() bool {
	defer e.lock()()
	return !e.disabled
}

// Click runs the entry's handler unless the entry is disabled. The handler
// runs without the lock held, so it may navigate.
func (e *Entry) Click() {
	if e == nil || e.onClick == nil || !e.Enabled() {
		return
	}
	e.onClick()
}

func (e *Entry) snapshot() Item {
	return Item{ID: e.ID, Label: e.Label, Icon: e.Icon, Selected: e.selected, Enabled: !e.disabled}
}

// Component is anything that can sit in the menu layout.
type Component interface {
	Render() string
}

// Part identifies a built-in layout slot. Renderers draw these themselves.
type Part int

const (
	PartHeader Part = iota
	PartToggle
	PartItems
)

// Render is empty: built-in parts are drawn by the renderer.
func (Part) Render() string { return "" }

func (p Part) String() string {
	switch p {
	case PartHeader:
		return "header"
	case PartToggle:
		return "toggle"
	case PartItems:
		return "items"
	default:
		return "unknown"
	}
}
