package menu

import (
	"github.com/atomicstack/viewmenu/internal/logging/events"
)

// ViewChangeEvent describes one navigation.
type ViewChangeEvent struct {
	Route   string
	OldView View
	NewView View
}

// ViewChangeListener observes navigations. BeforeViewChange may veto by
// returning false.
type ViewChangeListener interface {
	BeforeViewChange(ViewChangeEvent) bool
	AfterViewChange(ViewChangeEvent)
}

// Navigator is the navigation engine the menu drives. NavigateTo must
// complete the navigation, including listener calls, before returning.
type Navigator interface {
	NavigateTo(route string) error
	State() string
	AddViewChangeListener(ViewChangeListener)
	RemoveViewChangeListener(ViewChangeListener)
}

// capture records the view produced by a single navigation.
type capture struct {
	view View
}

func (*capture) BeforeViewChange(ViewChangeEvent) bool { return true }

func (c *capture) AfterViewChange(evt ViewChangeEvent) {
	c.view = evt.NewView
}

// NavigateToView navigates to the route of a view type.
func (b *Builder) NavigateToView(vt ViewType) (View, error) {
	route, ok := RouteFor(vt)
	if !ok {
		b.closeMenu()
		events.Menu.Navigate(vt.Name, false)
		return nil, nil
	}
	return b.NavigateTo(route)
}

// NavigateTo navigates to route and returns the view that navigation
// produced. Unknown routes return a nil view and leave the selection alone.
func (b *Builder) NavigateTo(route string) (View, error) {
	b.closeMenu()
	b.mu.Lock()
	entry, ok := b.current.byID[route]
	b.mu.Unlock()

	events.Menu.Navigate(route, ok)
	if b.observer != nil {
		b.observer.Navigated(route, ok)
	}
	if !ok || b.navigator == nil {
		return nil, nil
	}

	view, err := b.navigateOnce(route)
	if err != nil {
		return nil, err
	}
	b.EmphasizeAsSelected(entry)
	return view, nil
}

// navigateOnce observes exactly the navigation it triggers: the listener is
// attached right before the call and removed right after it.
func (b *Builder) navigateOnce(route string) (View, error) {
	c := &capture{}
	b.navigator.AddViewChangeListener(c)
	defer b.navigator.RemoveViewChangeListener(c)
	if err := b.navigator.NavigateTo(route); err != nil {
		return nil, err
	}
	return c.view, nil
}

func (b *Builder) closeMenu() {
	b.mu.Lock()
	b.menuVisible = false
	b.mu.Unlock()
}
