package menu

import (
	"reflect"
	"strings"
)

// View is a screen produced by the navigation engine.
type View interface{}

// UseConventions makes Routed.Route derive the route from the type name.
const UseConventions = "USE CONVENTIONS"

// Routed marks a view type as reachable through the navigator.
type Routed interface {
	Route() string
}

// CustomIconer lets add-on view types override the descriptor icon.
type CustomIconer interface {
	CustomIcon() (Icon, error)
}

// Titled is implemented by hosting pages that declare a page title.
type Titled interface {
	PageTitle() string
}

// ViewType is one registered view: its simple type name, a prototype used
// for capability checks and the factory that creates fresh instances.
type ViewType struct {
	Name    string
	proto   View
	factory func() View
}

// Prototype returns the instance capabilities are read from.
func (vt ViewType) Prototype() View {
	return vt.proto
}

// New creates a fresh view instance.
func (vt ViewType) New() View {
	if vt.factory == nil {
		return nil
	}
	return vt.factory()
}

// Source enumerates registered view types.
type Source interface {
	Views() []ViewType
}

// ViewRegistry keeps view types in registration order.
type ViewRegistry struct {
	types []ViewType
	names map[string]int
}

// NewViewRegistry returns an empty registry.
func NewViewRegistry() *ViewRegistry {
	return &ViewRegistry{names: make(map[string]int)}
}

// Register adds the view type produced by factory. The factory is called
// once to obtain the prototype. Registering a type name twice replaces the
// earlier registration in place.
func (r *ViewRegistry) Register(factory func() View) ViewType {
	proto := factory()
	vt := ViewType{Name: TypeName(proto), proto: proto, factory: factory}
	if idx, ok := r.names[vt.Name]; ok {
		r.types[idx] = vt
		return vt
	}
	r.names[vt.Name] = len(r.types)
	r.types = append(r.types, vt)
	return vt
}

// Views returns all registered view types.
func (r *ViewRegistry) Views() []ViewType {
	out := make([]ViewType, len(r.types))
	copy(out, r.types)
	return out
}

// Find locates a view type by its simple type name.
func (r *ViewRegistry) Find(name string) (ViewType, bool) {
	idx, ok := r.names[name]
	if !ok {
		return ViewType{}, false
	}
	return r.types[idx], true
}

// TypeName returns the simple type name of v with pointers removed.
func TypeName(v interface{}) string {
	if v == nil {
		return ""
	}
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// RouteFor returns the route a view type is mapped to, resolving
// UseConventions. ok is false for types that are not Routed.
func RouteFor(vt ViewType) (route string, ok bool) {
	routed, ok := vt.proto.(Routed)
	if !ok {
		return "", false
	}
	route = routed.Route()
	if route == UseConventions {
		route = conventionRoute(vt.Name)
	}
	return route, true
}

func descriptorOf(vt ViewType) (Descriptor, bool) {
	described, ok := vt.proto.(Described)
	if !ok {
		return Descriptor{}, false
	}
	return described.MenuItem(), true
}

// conventionRoute maps CustomerListView to customer-list.
func conventionRoute(typeName string) string {
	return upperCamelToLowerHyphen(strings.TrimSuffix(typeName, "View"))
}
