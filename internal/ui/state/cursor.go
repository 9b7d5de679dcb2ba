package state

import "github.com/atomicstack/viewmenu/internal/menu"

// Up moves the cursor one entry up, wrapping to the last entry.
func (l *List) Up() bool {
	return l.step(-1)
}

// Down moves the cursor one entry down, wrapping to the first entry.
func (l *List) Down() bool {
	return l.step(1)
}

func (l *List) step(delta int) bool {
	n := len(l.Items)
	if n == 0 {
		return false
	}
	old := l.Cursor
	l.Cursor = ((l.Cursor+delta)%n + n) % n
	return l.Cursor != old
}

// Home moves the cursor to the first entry.
func (l *List) Home() bool {
	return l.jump(0)
}

// End moves the cursor to the last entry.
func (l *List) End() bool {
	return l.jump(len(l.Items) - 1)
}

// PageUp moves the cursor up by one page of visible rows.
func (l *List) PageUp(visible int) bool {
	return l.jump(l.Cursor - l.page(visible))
}

// PageDown moves the cursor down by one page of visible rows.
func (l *List) PageDown(visible int) bool {
	return l.jump(l.Cursor + l.page(visible))
}

// jump moves the cursor to idx, clamped to the visible entries.
func (l *List) jump(idx int) bool {
	if len(l.Items) == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = max(0, min(idx, len(l.Items)-1))
	return l.Cursor != old
}

func (l *List) page(visible int) int {
	if visible <= 0 || visible > len(l.Items) {
		return max(len(l.Items), 1)
	}
	return visible
}

// Scroll adjusts the offset so the cursor is inside a window of visible
// rows. A non-positive window shows everything.
func (l *List) Scroll(visible int) {
	l.clamp()
	if visible <= 0 || len(l.Items) <= visible {
		l.Offset = 0
		return
	}
	maxOffset := len(l.Items) - visible
	l.Offset = max(0, min(l.Offset, maxOffset))
	if l.Cursor < l.Offset {
		l.Offset = l.Cursor
	}
	if last := l.Offset + visible - 1; l.Cursor > last {
		l.Offset = min(l.Cursor-visible+1, maxOffset)
	}
}

// Window returns the entries inside the scroll window and the index of the
// first one.
func (l *List) Window(visible int) ([]menu.Item, int) {
	l.Scroll(visible)
	if visible <= 0 || len(l.Items) <= visible {
		return l.Items, 0
	}
	return l.Items[l.Offset : l.Offset+visible], l.Offset
}
