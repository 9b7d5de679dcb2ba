package state

import (
	"testing"

	"github.com/atomicstack/viewmenu/internal/menu"
)

func newTestList(ids ...string) *List {
	items := make([]menu.Item, len(ids))
	for i, id := range ids {
		items[i] = menu.Item{ID: id, Label: id, Enabled: true}
	}
	return NewList(items)
}

func TestUpDownWrap(t *testing.T) {
	l := newTestList("a", "b", "c")
	if !l.Up() || l.Cursor != 2 {
		t.Fatalf("expected wrap to last entry, got %d", l.Cursor)
	}
	if !l.Down() || l.Cursor != 0 {
		t.Fatalf("expected wrap to first entry, got %d", l.Cursor)
	}
	empty := newTestList()
	if empty.Up() || empty.Down() {
		t.Fatalf("expected no movement on an empty list")
	}
}

func TestHomeEnd(t *testing.T) {
	l := newTestList("a", "b", "c")
	if !l.End() || l.Cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", l.Cursor)
	}
	if l.End() {
		t.Fatalf("expected no movement when already at the end")
	}
	if !l.Home() || l.Cursor != 0 {
		t.Fatalf("expected cursor 0, got %d", l.Cursor)
	}
	empty := newTestList()
	if empty.Home() || empty.End() {
		t.Fatalf("expected no movement on an empty list")
	}
}

func TestPaging(t *testing.T) {
	l := newTestList("a", "b", "c", "d", "e")
	steps := []struct {
		move func() bool
		want int
		ok   bool
	}{
		{func() bool { return l.PageDown(2) }, 2, true},
		{func() bool { return l.PageDown(2) }, 4, true},
		{func() bool { return l.PageDown(2) }, 4, false},
		{func() bool { return l.PageUp(2) }, 2, true},
		{func() bool { return l.PageUp(10) }, 0, true},
	}
	for i, step := range steps {
		if got := step.move(); got != step.ok || l.Cursor != step.want {
			t.Fatalf("step %d: expected (%v, %d), got (%v, %d)", i, step.ok, step.want, got, l.Cursor)
		}
	}
}

func TestScrollKeepsCursorVisible(t *testing.T) {
	l := newTestList("a", "b", "c", "d", "e")
	l.Cursor = 4
	l.Scroll(2)
	if l.Offset != 3 {
		t.Fatalf("expected offset 3, got %d", l.Offset)
	}
	l.Cursor = 1
	l.Scroll(3)
	if l.Offset != 1 {
		t.Fatalf("expected offset to follow the cursor up, got %d", l.Offset)
	}
	l.Scroll(0)
	if l.Offset != 0 {
		t.Fatalf("expected offset reset without a window, got %d", l.Offset)
	}

	l.Cursor = 3
	window, first := l.Window(2)
	if first != 2 || len(window) != 2 || window[1].ID != "d" {
		t.Fatalf("unexpected window %v from %d", window, first)
	}
}

func TestNewListStartsOnSelectedEntry(t *testing.T) {
	items := []menu.Item{{ID: "a"}, {ID: "b", Selected: true}, {ID: "c"}}
	l := NewList(items)
	if l.Cursor != 1 {
		t.Fatalf("expected cursor on the selected entry, got %d", l.Cursor)
	}
}

func TestSetItemsFollowsEntry(t *testing.T) {
	l := newTestList("a", "b", "c")
	l.Cursor = 2
	l.SetItems([]menu.Item{{ID: "c"}, {ID: "a"}})
	if cur, _ := l.Current(); cur.ID != "c" {
		t.Fatalf("expected cursor to stay on c, got %q", cur.ID)
	}
	l.SetItems(nil)
	if _, ok := l.Current(); ok {
		t.Fatalf("expected no current entry on an empty list")
	}
	if l.IndexOf("") != -1 {
		t.Fatalf("expected empty ids never to match")
	}
}
