// Package navigator is an in-memory navigation engine: routes map to view
// factories and every navigation is announced to view change listeners
// before it returns.
package navigator

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/atomicstack/viewmenu/internal/logging/events"
	"github.com/atomicstack/viewmenu/internal/menu"
)

var (
	ErrUnknownRoute      = errors.New("unknown route")
	ErrNavigationBlocked = errors.New("navigation blocked by listener")
)

// Factory creates the view shown for a route.
type Factory func() menu.View

// Navigator implements menu.Navigator.
type Navigator struct {
	mu        sync.Mutex
	routes    map[string]Factory
	listeners []menu.ViewChangeListener
	state     string
	current   menu.View
}

// New returns a navigator with no routes.
func New() *Navigator {
	return &Navigator{routes: make(map[string]Factory)}
}

// Register maps route to factory, replacing an earlier mapping.
func (n *Navigator) Register(route string, factory Factory) {
	n.mu.Lock()
	n.routes[route] = factory
	n.mu.Unlock()
	events.Nav.Register(route)
}

// Bind registers every routed view type of source.
func Bind(n *Navigator, source menu.Source) []string {
	var routes []string
	for _, vt := range source.Views() {
		route, ok := menu.RouteFor(vt)
		if !ok {
			continue
		}
		n.Register(route, vt.New)
		routes = append(routes, route)
	}
	return routes
}

// Routes lists registered routes in lexical order.
func (n *Navigator) Routes() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.routes))
	for r := range n.routes {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// State returns the route of the view on screen.
func (n *Navigator) State() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// CurrentView returns the view on screen, nil before the first navigation.
func (n *Navigator) CurrentView() menu.View {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// AddViewChangeListener appends l; listeners run in registration order.
func (n *Navigator) AddViewChangeListener(l menu.ViewChangeListener) {
	if l == nil {
		return
	}
	n.mu.Lock()
	n.listeners = append(n.listeners, l)
	n.mu.Unlock()
}

// RemoveViewChangeListener removes the first listener identical to l.
func (n *Navigator) RemoveViewChangeListener(l menu.ViewChangeListener) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, existing := range n.listeners {
		if existing == l {
			n.listeners = append(n.listeners[:i:i], n.listeners[i+1:]...)
			return
		}
	}
}

// NavigateTo switches to route. Listeners are called without the lock held,
// so they may query the navigator.
func (n *Navigator) NavigateTo(route string) error {
	n.mu.Lock()
	factory, ok := n.routes[route]
	old := n.current
	from := n.state
	listeners := append([]menu.ViewChangeListener(nil), n.listeners...)
	n.mu.Unlock()

	if !ok {
		events.Nav.Unknown(route)
		return fmt.Errorf("navigate to %q: %w", route, ErrUnknownRoute)
	}

	evt := menu.ViewChangeEvent{Route: route, OldView: old, NewView: factory()}
	for _, l := range listeners {
		if !l.BeforeViewChange(evt) {
			events.Nav.Blocked(route)
			return fmt.Errorf("navigate to %q: %w", route, ErrNavigationBlocked)
		}
	}

	n.mu.Lock()
	n.state = route
	n.current = evt.NewView
	n.mu.Unlock()
	events.Nav.Change(from, route)

	for _, l := range listeners {
		l.AfterViewChange(evt)
	}
	return nil
}
