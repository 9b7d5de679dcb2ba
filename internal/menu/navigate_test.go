package menu

import (
	"errors"
	"os"
	"strings"
	"testing"
)

func TestNavigateToKnownRoute(t *testing.T) {
	nav := newFakeNavigator()
	reports := &ReportsView{}
	nav.views["reports"] = reports
	obs := &countingObserver{}
	b := New(standardRegistry(), nav, WithObserver(obs))
	b.Init()
	b.ToggleMenuVisible()

	var during int
	nav.during = func() { during = len(nav.listeners) }

	view, err := b.NavigateTo("reports")
	if err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if view != reports {
		t.Fatalf("expected the navigated view, got %#v", view)
	}
	if during != 1 {
		t.Fatalf("expected one transient listener during navigation, got %d", during)
	}
	if len(nav.listeners) != 0 {
		t.Fatalf("expected transient listener removed, %d left", len(nav.listeners))
	}
	entry, _ := b.Lookup("reports")
	if b.Selected() != entry || !entry.Selected() {
		t.Fatalf("expected reports highlighted")
	}
	if b.MenuVisible() {
		t.Fatalf("expected navigation to close the collapsed menu")
	}
	if found, ok := obs.navigated["reports"]; !ok || !found {
		t.Fatalf("expected observer to record the navigation")
	}
}

func TestNavigateToUnknownRouteIsNoop(t *testing.T) {
	nav := newFakeNavigator()
	b := New(standardRegistry(), nav)
	b.Init()
	home, _ := b.Lookup("home")
	b.EmphasizeAsSelected(home)

	view, err := b.NavigateTo("nowhere")
	if view != nil || err != nil {
		t.Fatalf("expected (nil, nil), got (%v, %v)", view, err)
	}
	if len(nav.calls) != 0 {
		t.Fatalf("expected navigator untouched, got calls %v", nav.calls)
	}
	if b.Selected() != home {
		t.Fatalf("expected selection unchanged")
	}
}

func TestNavigateToFailureKeepsSelection(t *testing.T) {
	nav := newFakeNavigator()
	b := New(standardRegistry(), nav)
	b.Init()
	home, _ := b.Lookup("home")
	b.EmphasizeAsSelected(home)

	boom := errors.New("boom")
	nav.err = boom
	view, err := b.NavigateTo("about")
	if !errors.Is(err, boom) {
		t.Fatalf("expected navigator error, got %v", err)
	}
	if view != nil {
		t.Fatalf("expected nil view on failure")
	}
	if len(nav.listeners) != 0 {
		t.Fatalf("expected listener removed after failure")
	}
	if b.Selected() != home {
		t.Fatalf("expected selection unchanged after failure")
	}
}

func TestNavigateToWithoutNavigator(t *testing.T) {
	b := New(standardRegistry(), nil)
	b.Init()
	view, err := b.NavigateTo("home")
	if view != nil || err != nil {
		t.Fatalf("expected (nil, nil) without navigator, got (%v, %v)", view, err)
	}
}

func TestNavigateToViewUnroutedClosesMenu(t *testing.T) {
	nav := newFakeNavigator()
	b := New(standardRegistry(), nav)
	b.ToggleMenuVisible()
	draft, _ := standardRegistry().Find("DraftView")

	view, err := b.NavigateToView(draft)
	if view != nil || err != nil {
		t.Fatalf("expected (nil, nil), got (%v, %v)", view, err)
	}
	if b.MenuVisible() {
		t.Fatalf("expected menu closed")
	}
	if len(nav.calls) != 0 {
		t.Fatalf("expected no navigation for an unrouted view")
	}
}

func TestNavigateToViewUsesConventionRoute(t *testing.T) {
	nav := newFakeNavigator()
	b := New(standardRegistry(), nav)
	b.Init()
	cl, _ := standardRegistry().Find("CustomerListView")
	if _, err := b.NavigateToView(cl); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if len(nav.calls) != 1 || nav.calls[0] != "customer-list" {
		t.Fatalf("expected navigation to customer-list, got %v", nav.calls)
	}
}

func TestEntryClickNavigates(t *testing.T) {
	nav := newFakeNavigator()
	b := New(standardRegistry(), nav)
	b.Init()
	about, _ := b.Lookup("about")

	about.Click()
	if nav.state != "about" {
		t.Fatalf("expected click to navigate, state %q", nav.state)
	}
	if !about.Selected() {
		t.Fatalf("expected clicked entry highlighted")
	}

	b.SetActive("about")
	about.Click()
	if len(nav.calls) != 1 {
		t.Fatalf("expected disabled entry to ignore clicks, got calls %v", nav.calls)
	}
}

func TestEntryClickFailureIsLogged(t *testing.T) {
	logPath := captureLog(t)
	nav := newFakeNavigator()
	nav.err = errors.New("unreachable")
	b := New(standardRegistry(), nav)
	b.Init()
	home, _ := b.Lookup("home")
	home.Click()
	if home.Selected() {
		t.Fatalf("expected failed navigation to leave the entry unselected")
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "navigate to HomeView: unreachable") {
		t.Fatalf("expected click failure logged, got %q", data)
	}
	var nilEntry *Entry
	nilEntry.Click()
}
