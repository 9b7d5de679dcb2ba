package menu

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"golang.org/x/text/language"

	"github.com/atomicstack/viewmenu/internal/logging"
)

// captureLog points the error log at a temp file for the duration of t.
func captureLog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "viewmenu.log")
	logging.Configure(path)
	t.Cleanup(func() { logging.Configure("") })
	return path
}

type HomeView struct{}

func (*HomeView) Route() string { return "home" }
func (*HomeView) MenuItem() Descriptor {
	return Descriptor{Order: OrderBeginning, Icon: IconHome}
}

type ReportsView struct{}

func (*ReportsView) Route() string             { return "reports" }
func (*ReportsView) MenuItem() Descriptor      { return Descriptor{Icon: IconList} }
func (*ReportsView) CustomIcon() (Icon, error) { return IconChart, nil }

type CustomerListView struct{}

func (*CustomerListView) Route() string        { return UseConventions }
func (*CustomerListView) MenuItem() Descriptor { return Descriptor{Icon: IconUsers} }

type FAQView struct{}

func (*FAQView) Route() string        { return "faq" }
func (*FAQView) MenuItem() Descriptor { return Descriptor{Title: "menu.faq"} }

type AboutView struct{}

func (*AboutView) Route() string        { return "about" }
func (*AboutView) MenuItem() Descriptor { return Descriptor{Order: OrderEnd, Icon: IconInfo} }

type SettingsView struct{}

func (*SettingsView) Route() string        { return "settings" }
func (*SettingsView) MenuItem() Descriptor { return Descriptor{Disabled: true} }

// AuditView is routable but carries no descriptor.
type AuditView struct{}

func (*AuditView) Route() string { return "audit" }

// DraftView has a descriptor but no route.
type DraftView struct{}

func (*DraftView) MenuItem() Descriptor { return Descriptor{} }

type BrokenIconView struct{}

func (*BrokenIconView) Route() string        { return "broken" }
func (*BrokenIconView) MenuItem() Descriptor { return Descriptor{Icon: IconCog} }
func (*BrokenIconView) CustomIcon() (Icon, error) {
	return "", errors.New("icon lookup failed")
}

type BlankIconView struct{}

func (*BlankIconView) Route() string             { return "blank" }
func (*BlankIconView) MenuItem() Descriptor      { return Descriptor{} }
func (*BlankIconView) CustomIcon() (Icon, error) { return "", nil }

// routeView lets tests build views with arbitrary routes and descriptors.
type routeView struct {
	route string
	desc  Descriptor
}

func (v *routeView) Route() string        { return v.route }
func (v *routeView) MenuItem() Descriptor { return v.desc }

func standardRegistry() *ViewRegistry {
	reg := NewViewRegistry()
	reg.Register(func() View { return &ReportsView{} })
	reg.Register(func() View { return &AboutView{} })
	reg.Register(func() View { return &SettingsView{} })
	reg.Register(func() View { return &FAQView{} })
	reg.Register(func() View { return &AuditView{} })
	reg.Register(func() View { return &DraftView{} })
	reg.Register(func() View { return &CustomerListView{} })
	reg.Register(func() View { return &HomeView{} })
	return reg
}

// staticSource serves a fixed list so tests can control registry order.
type staticSource []ViewType

func (s staticSource) Views() []ViewType { return s }

func viewType(name string, proto View) ViewType {
	return ViewType{Name: name, proto: proto, factory: func() View { return proto }}
}

type mapTranslator map[string]map[string]string

func (m mapTranslator) Translate(bundle, key string, locale language.Tag) (string, error) {
	if bundle != DefaultBundle {
		return "", fmt.Errorf("bundle %q not found", bundle)
	}
	base, _ := locale.Base()
	texts, ok := m[base.String()]
	if !ok {
		return "", fmt.Errorf("no texts for %s", locale)
	}
	text, ok := texts[key]
	if !ok {
		return "", fmt.Errorf("missing key %q", key)
	}
	return text, nil
}

type fakeNavigator struct {
	views     map[string]View
	state     string
	err       error
	calls     []string
	listeners []ViewChangeListener
	// during is called while listeners are attached.
	during func()
}

func newFakeNavigator() *fakeNavigator {
	return &fakeNavigator{views: map[string]View{}}
}

func (f *fakeNavigator) NavigateTo(route string) error {
	f.calls = append(f.calls, route)
	if f.err != nil {
		return f.err
	}
	if f.during != nil {
		f.during()
	}
	view := f.views[route]
	if view == nil {
		view = route
	}
	evt := ViewChangeEvent{Route: route, NewView: view}
	for _, l := range append([]ViewChangeListener(nil), f.listeners...) {
		if !l.BeforeViewChange(evt) {
			return errors.New("blocked")
		}
	}
	f.state = route
	for _, l := range append([]ViewChangeListener(nil), f.listeners...) {
		l.AfterViewChange(evt)
	}
	return nil
}

func (f *fakeNavigator) State() string { return f.state }

func (f *fakeNavigator) AddViewChangeListener(l ViewChangeListener) {
	f.listeners = append(f.listeners, l)
}

func (f *fakeNavigator) RemoveViewChangeListener(l ViewChangeListener) {
	for i, existing := range f.listeners {
		if existing == l {
			f.listeners = append(f.listeners[:i:i], f.listeners[i+1:]...)
			return
		}
	}
}

type countingObserver struct {
	built     []int
	navigated map[string]bool
	fallbacks []string
}

func (o *countingObserver) Built(n int) { o.built = append(o.built, n) }

func (o *countingObserver) Navigated(route string, found bool) {
	if o.navigated == nil {
		o.navigated = map[string]bool{}
	}
	o.navigated[route] = found
}

func (o *countingObserver) IconFallback(view string) { o.fallbacks = append(o.fallbacks, view) }

func itemIDs(items []Item) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}

func viewNames(vts []ViewType) []string {
	names := make([]string, len(vts))
	for i, vt := range vts {
		names[i] = vt.Name
	}
	return names
}
