package app

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/language"

	"github.com/atomicstack/viewmenu/internal/logging"
	"github.com/atomicstack/viewmenu/internal/menu"
	"github.com/atomicstack/viewmenu/internal/testutil"
	"github.com/atomicstack/viewmenu/internal/ui"
)

func quietLogs(t *testing.T) {
	t.Helper()
	logging.Configure(filepath.Join(t.TempDir(), "viewmenu.log"))
	t.Cleanup(func() { logging.Configure("") })
}

func ids(b *menu.Builder) []string {
	var out []string
	for _, item := range b.Items() {
		out = append(out, item.ID)
	}
	return out
}

func TestWireDefaults(t *testing.T) {
	quietLogs(t)
	stack, err := Wire(Config{}, nil)
	if err != nil {
		t.Fatalf("wire: %v", err)
	}
	want := []string{"home", "dashboard", "customer-list", "reports", "faq", "about"}
	if got := ids(stack.Builder); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if stack.Locale != language.AmericanEnglish {
		t.Fatalf("expected en-US, got %s", stack.Locale)
	}
	if stack.Builder.SecondaryComponent() != nil || stack.Builder.MenuTitle() != "" {
		t.Fatalf("expected no badge and no title before attach")
	}
	if got := stack.Navigator.Routes(); len(got) != 8 {
		t.Fatalf("expected every routed view bound, got %v", got)
	}
}

func TestWireAppliesConfig(t *testing.T) {
	quietLogs(t)
	signedOut := false
	stack, err := Wire(Config{
		Locale:  "de-AT",
		Allowed: []string{"home", "customer-list"},
		Title:   "Shop",
		User:    "ada",
	}, func() { signedOut = true })
	if err != nil {
		t.Fatalf("wire: %v", err)
	}
	b := stack.Builder
	items := b.Items()
	var labels []string
	for _, item := range items {
		labels = append(labels, item.Label)
	}
	want := []string{"Startseite", "Kunden", "Abmelden"}
	if !reflect.DeepEqual(labels, want) {
		t.Fatalf("expected %v, got %v", want, labels)
	}
	if b.MenuTitle() != "Shop" {
		t.Fatalf("expected explicit title, got %q", b.MenuTitle())
	}
	if badge := b.SecondaryComponent(); badge == nil || badge.Render() != "signed in as ada" {
		t.Fatalf("expected user badge, got %#v", badge)
	}
	entries := b.Entries()
	entries[len(entries)-1].Click()
	if !signedOut {
		t.Fatalf("expected sign out entry to run its handler")
	}
}

func TestWireLoadsExtraBundles(t *testing.T) {
	quietLogs(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "menubundle_fr.toml"), []byte("[menu]\nhome = \"Maison\"\n"), 0o644); err != nil {
		t.Fatalf("write bundle: %v", err)
	}
	stack, err := Wire(Config{Locale: "fr", BundleDir: dir}, nil)
	if err != nil {
		t.Fatalf("wire: %v", err)
	}
	home, ok := stack.Builder.Lookup("home")
	if !ok || home.Label != "Maison" {
		t.Fatalf("expected overridden caption, got %#v", home)
	}
}

func TestWireErrors(t *testing.T) {
	quietLogs(t)
	if _, err := Wire(Config{Locale: "not a tag"}, nil); err == nil {
		t.Fatalf("expected locale error")
	}
	if _, err := Wire(Config{BundleDir: filepath.Join(t.TempDir(), "missing")}, nil); err == nil {
		t.Fatalf("expected bundle dir error")
	}
}

func TestWriteList(t *testing.T) {
	quietLogs(t)
	stack, err := Wire(Config{}, func() {})
	if err != nil {
		t.Fatalf("wire: %v", err)
	}
	var out strings.Builder
	if err := WriteList(&out, stack.Builder); err != nil {
		t.Fatalf("write: %v", err)
	}
	testutil.AssertGolden(t, "list.golden", out.String())
}

func TestForwarderSendsViewChanges(t *testing.T) {
	sent := make(chan tea.Msg, 1)
	f := &forwarder{send: func(msg tea.Msg) { sent <- msg }}
	if !f.BeforeViewChange(menu.ViewChangeEvent{Route: "home"}) {
		t.Fatalf("expected forwarder to allow navigation")
	}
	f.AfterViewChange(menu.ViewChangeEvent{Route: "home"})
	msg, ok := (<-sent).(ui.ViewChangedMsg)
	if !ok || msg.Route != "home" {
		t.Fatalf("expected a view change for home, got %#v", msg)
	}
}
