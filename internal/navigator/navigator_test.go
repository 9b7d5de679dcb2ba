package navigator

import (
	"errors"
	"reflect"
	"testing"

	"github.com/atomicstack/viewmenu/internal/menu"
)

type page struct{ name string }

type recorder struct {
	veto    bool
	before  []string
	after   []menu.ViewChangeEvent
	onAfter func()
}

func (r *recorder) BeforeViewChange(evt menu.ViewChangeEvent) bool {
	r.before = append(r.before, evt.Route)
	return !r.veto
}

func (r *recorder) AfterViewChange(evt menu.ViewChangeEvent) {
	r.after = append(r.after, evt)
	if r.onAfter != nil {
		r.onAfter()
	}
}

func TestNavigateToNotifiesListeners(t *testing.T) {
	nav := New()
	nav.Register("home", func() menu.View { return &page{name: "home"} })
	nav.Register("reports", func() menu.View { return &page{name: "reports"} })

	rec := &recorder{}
	var stateSeen string
	rec.onAfter = func() { stateSeen = nav.State() }
	nav.AddViewChangeListener(rec)

	if err := nav.NavigateTo("home"); err != nil {
		t.Fatalf("navigate home: %v", err)
	}
	if err := nav.NavigateTo("reports"); err != nil {
		t.Fatalf("navigate reports: %v", err)
	}

	if !reflect.DeepEqual(rec.before, []string{"home", "reports"}) {
		t.Fatalf("unexpected before calls %v", rec.before)
	}
	if len(rec.after) != 2 {
		t.Fatalf("expected 2 after calls, got %d", len(rec.after))
	}
	last := rec.after[1]
	if last.Route != "reports" || !reflect.DeepEqual(last.OldView, &page{name: "home"}) || !reflect.DeepEqual(last.NewView, &page{name: "reports"}) {
		t.Fatalf("unexpected event %#v", last)
	}
	if stateSeen != "reports" {
		t.Fatalf("expected listener to see the new state, got %q", stateSeen)
	}
	if nav.State() != "reports" {
		t.Fatalf("expected state reports, got %q", nav.State())
	}
	if !reflect.DeepEqual(nav.CurrentView(), &page{name: "reports"}) {
		t.Fatalf("unexpected current view %#v", nav.CurrentView())
	}
}

func TestNavigateToUnknownRoute(t *testing.T) {
	nav := New()
	if err := nav.NavigateTo("missing"); !errors.Is(err, ErrUnknownRoute) {
		t.Fatalf("expected ErrUnknownRoute, got %v", err)
	}
	if nav.State() != "" || nav.CurrentView() != nil {
		t.Fatalf("expected no state change")
	}
}

func TestListenerVetoKeepsState(t *testing.T) {
	nav := New()
	nav.Register("home", func() menu.View { return &page{name: "home"} })
	rec := &recorder{veto: true}
	nav.AddViewChangeListener(rec)

	if err := nav.NavigateTo("home"); !errors.Is(err, ErrNavigationBlocked) {
		t.Fatalf("expected ErrNavigationBlocked, got %v", err)
	}
	if len(rec.after) != 0 {
		t.Fatalf("expected no after calls, got %d", len(rec.after))
	}
	if nav.State() != "" {
		t.Fatalf("expected empty state, got %q", nav.State())
	}
}

func TestRemoveViewChangeListener(t *testing.T) {
	nav := New()
	nav.Register("home", func() menu.View { return &page{} })
	first := &recorder{}
	second := &recorder{}
	nav.AddViewChangeListener(first)
	nav.AddViewChangeListener(second)
	nav.AddViewChangeListener(nil)

	nav.RemoveViewChangeListener(first)
	if err := nav.NavigateTo("home"); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if len(first.after) != 0 || len(second.after) != 1 {
		t.Fatalf("expected only the remaining listener notified, got %d/%d", len(first.after), len(second.after))
	}
}

type routedView struct{ route string }

func (v *routedView) Route() string { return v.route }

type CustomerListView struct{}

func (*CustomerListView) Route() string { return menu.UseConventions }

type plainView struct{}

func TestBindRegistersRoutedViews(t *testing.T) {
	reg := menu.NewViewRegistry()
	reg.Register(func() menu.View { return &routedView{route: "home"} })
	reg.Register(func() menu.View { return &CustomerListView{} })
	reg.Register(func() menu.View { return &plainView{} })

	nav := New()
	routes := Bind(nav, reg)

	if !reflect.DeepEqual(routes, []string{"home", "customer-list"}) {
		t.Fatalf("unexpected bound routes %v", routes)
	}
	if got := nav.Routes(); !reflect.DeepEqual(got, []string{"customer-list", "home"}) {
		t.Fatalf("unexpected routes %v", got)
	}
	if err := nav.NavigateTo("customer-list"); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if _, ok := nav.CurrentView().(*CustomerListView); !ok {
		t.Fatalf("expected a customer list view, got %T", nav.CurrentView())
	}
}
