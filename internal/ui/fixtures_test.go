package ui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/viewmenu/internal/i18n"
	"github.com/atomicstack/viewmenu/internal/logging"
	"github.com/atomicstack/viewmenu/internal/menu"
	"github.com/atomicstack/viewmenu/internal/navigator"
	"github.com/atomicstack/viewmenu/internal/views"
)

type fixture struct {
	builder *menu.Builder
	nav     *navigator.Navigator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logging.Configure(filepath.Join(t.TempDir(), "viewmenu.log"))
	t.Cleanup(func() { logging.Configure("") })

	tr, err := i18n.Default()
	if err != nil {
		t.Fatalf("load bundles: %v", err)
	}
	reg := views.Registry()
	nav := navigator.New()
	navigator.Bind(nav, reg)
	b := menu.New(reg, nav, menu.WithTranslator(tr))
	b.Init()
	return &fixture{builder: b, nav: nav}
}

func (f *fixture) harness(opts Options) *Harness {
	if opts.Host == nil {
		opts.Host = &views.BackOfficeUI{}
	}
	return NewHarness(NewModel(f.builder, opts))
}

func key(name string) tea.KeyMsg {
	switch name {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+a":
		return tea.KeyMsg{Type: tea.KeyCtrlA}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	case "ctrl+w":
		return tea.KeyMsg{Type: tea.KeyCtrlW}
	case "ctrl+x":
		return tea.KeyMsg{Type: tea.KeyCtrlX}
	}
	panic("unknown key " + name)
}

func currentID(t *testing.T, h *Harness) string {
	t.Helper()
	item, ok := h.Model().list.Current()
	if !ok {
		t.Fatalf("expected an entry under the cursor")
	}
	return item.ID
}

func visibleIDs(h *Harness) []string {
	items := h.Model().list.Items
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}

type veto struct{ route string }

func (v *veto) BeforeViewChange(evt menu.ViewChangeEvent) bool { return evt.Route != v.route }
func (v *veto) AfterViewChange(menu.ViewChangeEvent)           {}
