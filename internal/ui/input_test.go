package ui

import (
	"reflect"
	"strings"
	"testing"
)

func TestTypingFiltersEntries(t *testing.T) {
	h := newFixture(t).harness(Options{})
	h.Keys("cus")
	if got := visibleIDs(h); !reflect.DeepEqual(got, []string{"customer-list"}) {
		t.Fatalf("expected only customers, got %v", got)
	}
	if pos := h.Model().list.Query.Pos(); pos != 3 {
		t.Fatalf("expected caret at 3, got %d", pos)
	}
	if !strings.Contains(h.Model().filterPrompt(), "cus") {
		t.Fatalf("expected query in prompt")
	}
}

func TestFilterEditingKeys(t *testing.T) {
	h := newFixture(t).harness(Options{})
	h.Keys("ab cd")
	h.Send(key("ctrl+w"))
	if q := h.Model().list.Query.String(); q != "ab " {
		t.Fatalf("expected word removed, got %q", q)
	}
	h.Send(key("backspace"))
	if q := h.Model().list.Query.String(); q != "ab" {
		t.Fatalf("expected rune removed, got %q", q)
	}
	h.Send(key("left"))
	if pos := h.Model().list.Query.Pos(); pos != 1 {
		t.Fatalf("expected caret at 1, got %d", pos)
	}
	h.Send(key("ctrl+a"))
	if pos := h.Model().list.Query.Pos(); pos != 0 {
		t.Fatalf("expected caret at start, got %d", pos)
	}
	h.Send(key("right"))
	if pos := h.Model().list.Query.Pos(); pos != 1 {
		t.Fatalf("expected caret at 1, got %d", pos)
	}
	h.Send(key("ctrl+u"))
	if q := h.Model().list.Query.String(); q != "" {
		t.Fatalf("expected cleared filter, got %q", q)
	}
	if n := len(h.Model().list.Items); n != 6 {
		t.Fatalf("expected all entries back, got %d", n)
	}
}

func TestLeadingSpaceIsIgnored(t *testing.T) {
	h := newFixture(t).harness(Options{})
	h.Keys(" ")
	if q := h.Model().list.Query.String(); q != "" {
		t.Fatalf("expected empty filter, got %q", q)
	}
}

func TestFilterRestoresCursorWhenCleared(t *testing.T) {
	h := newFixture(t).harness(Options{})
	h.Send(key("down"))
	h.Send(key("down"))
	h.Keys("about")
	if got := currentID(t, h); got != "about" {
		t.Fatalf("expected cursor on about, got %s", got)
	}
	h.Send(key("ctrl+u"))
	if got := currentID(t, h); got != "customer-list" {
		t.Fatalf("expected cursor restored to customer-list, got %s", got)
	}
}

func TestEnterOnFilteredEntry(t *testing.T) {
	f := newFixture(t)
	h := f.harness(Options{})
	h.Keys("faq")
	h.Send(key("enter"))
	if h.Model().Route() != "faq" {
		t.Fatalf("expected faq, got %q", h.Model().Route())
	}
	if q := h.Model().list.Query.String(); q != "" {
		t.Fatalf("expected filter cleared after opening, got %q", q)
	}
}

func TestFilterPromptPlaceholder(t *testing.T) {
	h := newFixture(t).harness(Options{})
	prompt := h.Model().filterPrompt()
	if !strings.Contains(prompt, "type to search") {
		t.Fatalf("expected placeholder in prompt, got %q", prompt)
	}
}
