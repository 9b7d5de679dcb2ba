package state

import (
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/atomicstack/viewmenu/internal/menu"
)

// Query is the quick filter text with a rune cursor.
type Query struct {
	text []rune
	pos  int
}

// NewQuery returns a query holding text with the cursor at the end.
func NewQuery(text string) Query {
	r := []rune(text)
	return Query{text: r, pos: len(r)}
}

func (q Query) String() string { return string(q.text) }

// Pos returns the cursor as a rune offset.
func (q Query) Pos() int { return q.pos }

// Empty reports whether the query has no text.
func (q Query) Empty() bool { return strings.TrimSpace(string(q.text)) == "" }

// Insert adds s at the cursor.
func (q *Query) Insert(s string) bool {
	add := []rune(s)
	if len(add) == 0 {
		return false
	}
	next := make([]rune, 0, len(q.text)+len(add))
	next = append(next, q.text[:q.pos]...)
	next = append(next, add...)
	next = append(next, q.text[q.pos:]...)
	q.text = next
	q.pos += len(add)
	return true
}

// Backspace removes the rune before the cursor.
func (q *Query) Backspace() bool {
	if q.pos == 0 {
		return false
	}
	q.text = append(q.text[:q.pos-1:q.pos-1], q.text[q.pos:]...)
	q.pos--
	return true
}

// DeleteWord removes the word before the cursor along with any spaces
// between the two.
func (q *Query) DeleteWord() bool {
	start := q.wordStart()
	if start == q.pos {
		return false
	}
	q.text = append(q.text[:start:start], q.text[q.pos:]...)
	q.pos = start
	return true
}

// Clear empties the query.
func (q *Query) Clear() bool {
	if len(q.text) == 0 {
		return false
	}
	q.text = nil
	q.pos = 0
	return true
}

func (q *Query) Left() bool      { return q.moveTo(q.pos - 1) }
func (q *Query) Right() bool     { return q.moveTo(q.pos + 1) }
func (q *Query) Start() bool     { return q.moveTo(0) }
func (q *Query) End() bool       { return q.moveTo(len(q.text)) }
func (q *Query) WordLeft() bool  { return q.moveTo(q.wordStart()) }
func (q *Query) WordRight() bool { return q.moveTo(q.wordEnd()) }

func (q *Query) moveTo(pos int) bool {
	pos = max(0, min(pos, len(q.text)))
	if pos == q.pos {
		return false
	}
	q.pos = pos
	return true
}

func (q *Query) wordStart() int {
	i := q.pos
	for i > 0 && unicode.IsSpace(q.text[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(q.text[i-1]) {
		i--
	}
	return i
}

func (q *Query) wordEnd() int {
	i := q.pos
	for i < len(q.text) && !unicode.IsSpace(q.text[i]) {
		i++
	}
	for i < len(q.text) && unicode.IsSpace(q.text[i]) {
		i++
	}
	return i
}

// Edit applies fn to the query and refilters when the text changed. Typing
// the first character remembers the cursor, clearing the filter restores it.
func (l *List) Edit(fn func(q *Query) bool) bool {
	before := l.Query.String()
	wasEmpty := l.Query.Empty()
	if !fn(&l.Query) {
		return false
	}
	if l.Query.String() == before {
		return true
	}
	if wasEmpty && !l.Query.Empty() {
		l.saved = l.Cursor
	}
	l.Items = Match(l.All, l.Query.String())
	switch {
	case !l.Query.Empty():
		l.Cursor = max(BestMatch(l.Items, l.Query.String()), 0)
	case !wasEmpty:
		l.Cursor = l.saved
		l.saved = -1
	}
	l.clamp()
	return true
}

// Match returns the entries whose label fuzzy-matches query, in menu order.
// When nothing matches fuzzily, entries whose id contains query are used.
func Match(items []menu.Item, query string) []menu.Item {
	query = strings.TrimSpace(query)
	if query == "" {
		return append([]menu.Item(nil), items...)
	}
	hit := make([]bool, len(items))
	found := false
	for _, rank := range fuzzy.RankFindNormalizedFold(query, labels(items)) {
		hit[rank.OriginalIndex] = true
		found = true
	}
	if !found {
		lower := strings.ToLower(query)
		for i, item := range items {
			hit[i] = strings.Contains(strings.ToLower(item.ID), lower)
		}
	}
	out := make([]menu.Item, 0, len(items))
	for i, item := range items {
		if hit[i] {
			out = append(out, item)
		}
	}
	return out
}

// BestMatch picks the entry the cursor should land on for query: an exact
// label or id, then a label prefix, then the closest fuzzy match. It returns
// -1 for an empty slice.
func BestMatch(items []menu.Item, query string) int {
	if len(items) == 0 {
		return -1
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return 0
	}
	lower := strings.ToLower(query)
	for i, item := range items {
		if strings.EqualFold(item.Label, query) || strings.EqualFold(item.ID, query) {
			return i
		}
	}
	for i, item := range items {
		if strings.HasPrefix(strings.ToLower(item.Label), lower) {
			return i
		}
	}
	best := -1
	bestDistance := 0
	for _, rank := range fuzzy.RankFindNormalizedFold(query, labels(items)) {
		if best < 0 || rank.Distance < bestDistance ||
			(rank.Distance == bestDistance && rank.OriginalIndex < best) {
			best = rank.OriginalIndex
			bestDistance = rank.Distance
		}
	}
	return max(best, 0)
}

func labels(items []menu.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Label
	}
	return out
}
