package state

import "github.com/atomicstack/viewmenu/internal/menu"

// List is the on-screen view of the menu entries: the full snapshot, the
// entries matching the quick filter, a cursor and a scroll offset.
type List struct {
	All    []menu.Item
	Items  []menu.Item
	Query  Query
	Cursor int
	Offset int

	// cursor position before a filter was typed, -1 when none.
	saved int
}

// NewList builds a list with the cursor on the selected entry, or the first
// one when nothing is selected.
func NewList(items []menu.Item) *List {
	l := &List{saved: -1}
	l.SetItems(items)
	if idx := SelectedIndex(l.Items); idx >= 0 {
		l.Cursor = idx
	}
	return l
}

// SetItems replaces the snapshot. The cursor stays on the same entry when it
// is still visible.
func (l *List) SetItems(items []menu.Item) {
	keep := ""
	if cur, ok := l.Current(); ok {
		keep = cur.ID
	}
	l.All = append([]menu.Item(nil), items...)
	l.Items = Match(l.All, l.Query.String())
	if idx := l.IndexOf(keep); idx >= 0 {
		l.Cursor = idx
	}
	l.clamp()
}

// Current returns the entry under the cursor.
func (l *List) Current() (menu.Item, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return menu.Item{}, false
	}
	return l.Items[l.Cursor], true
}

// IndexOf returns the visible index of the entry with id. Custom entries have
// no id and are never found.
func (l *List) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range l.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// SelectedIndex returns the index of the highlighted entry in items.
func SelectedIndex(items []menu.Item) int {
	for i, item := range items {
		if item.Selected {
			return i
		}
	}
	return -1
}

func (l *List) clamp() {
	switch {
	case len(l.Items) == 0:
		l.Cursor = 0
		l.Offset = 0
	case l.Cursor < 0:
		l.Cursor = 0
	case l.Cursor >= len(l.Items):
		l.Cursor = len(l.Items) - 1
	}
	if l.Offset > len(l.Items)-1 {
		l.Offset = 0
	}
}
