package menu

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/atomicstack/viewmenu/internal/logging"
	"github.com/atomicstack/viewmenu/internal/logging/events"
	"golang.org/x/text/language"
)

// DefaultBundle is the resource bundle descriptor titles are looked up in.
const DefaultBundle = "menubundle"

// Translator resolves localization keys.
type Translator interface {
	Translate(bundle, key string, locale language.Tag) (string, error)
}

// Observer is notified about builder activity, typically for metrics.
type Observer interface {
	Built(entries int)
	Navigated(route string, found bool)
	IconFallback(view string)
}

// Option configures a Builder.
type Option func(*Builder)

// WithTranslator sets the translator used for descriptor titles.
func WithTranslator(t Translator) Option {
	return func(b *Builder) { b.translator = t }
}

// WithLocale sets the locale titles are translated into.
func WithLocale(tag language.Tag) Option {
	return func(b *Builder) { b.locale = tag }
}

// WithBundle overrides DefaultBundle.
func WithBundle(name string) Option {
	return func(b *Builder) { b.bundle = name }
}

// WithAllowedViews restricts the menu to the given routes.
func WithAllowedViews(routes []string) Option {
	return func(b *Builder) { b.setAllowed(routes) }
}

// WithObserver registers an activity observer.
func WithObserver(o Observer) Option {
	return func(b *Builder) { b.observer = o }
}

// layout is everything Init replaces at once.
type layout struct {
	entries []*Entry
	byID    map[string]*Entry
}

// Builder turns registered view types into menu entries and keeps the
// selection, active and title state of one menu instance.
type Builder struct {
	source     Source
	navigator  Navigator
	translator Translator
	observer   Observer
	bundle     string

	mu          sync.Mutex
	locale      language.Tag
	allowed     []string
	allowedSet  map[string]struct{}
	current     layout
	custom      []*Entry
	selected    *Entry
	active      *Entry
	secondary   Component
	components  []Component
	title       string
	titleSet    bool
	attached    bool
	menuVisible bool
}

// New creates a builder over the given registry and navigator. Call Init to
// build the entries.
func New(source Source, navigator Navigator, opts ...Option) *Builder {
	b := &Builder{
		source:     source,
		navigator:  navigator,
		bundle:     DefaultBundle,
		locale:     language.AmericanEnglish,
		components: []Component{PartHeader, PartToggle, PartItems},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// SetAllowedViews restricts the menu to the given routes; nil lifts the
// restriction. Takes effect on the next Init.
func (b *Builder) SetAllowedViews(routes []string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.setAllowed(routes)
}

func (b *Builder) setAllowed(routes []string) {
	if routes == nil {
		b.allowed = nil
		b.allowedSet = nil
		return
	}
	b.allowed = append([]string(nil), routes...)
	b.allowedSet = make(map[string]struct{}, len(routes))
	for _, r := range routes {
		b.allowedSet[r] = struct{}{}
	}
}

// AllowedViews returns the allow-list, or nil when every view is allowed.
func (b *Builder) AllowedViews() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.allowed == nil {
		return nil
	}
	return append([]string(nil), b.allowed...)
}

// Locale returns the locale used for titles.
func (b *Builder) Locale() language.Tag {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.locale
}

// SetLocale changes the title locale. Takes effect on the next Init.
func (b *Builder) SetLocale(tag language.Tag) {
	b.mu.Lock()
	b.locale = tag
	b.mu.Unlock()
}

type candidate struct {
	vt    ViewType
	route string
	order int
	label string
}

// AvailableViews returns the view types eligible for the menu in menu order.
func (b *Builder) AvailableViews() []ViewType {
	b.mu.Lock()
	allowed := b.allowedSet
	locale := b.locale
	b.mu.Unlock()

	cands := b.candidates(allowed, locale)
	out := make([]ViewType, len(cands))
	for i, c := range cands {
		out[i] = c.vt
	}
	return out
}

func (b *Builder) candidates(allowed map[string]struct{}, locale language.Tag) []candidate {
	if b.source == nil {
		return nil
	}
	all := b.source.Views()
	cands := make([]candidate, 0, len(all))
	for _, vt := range all {
		route, routed := RouteFor(vt)
		desc, described := descriptorOf(vt)
		if !routed || !described || !desc.Enabled() {
			continue
		}
		if allowed != nil {
			if _, ok := allowed[route]; !ok {
				continue
			}
		}
		cands = append(cands, candidate{
			vt:    vt,
			route: route,
			order: orderOf(vt),
			label: b.nameFor(vt, locale),
		})
	}
	slices.SortStableFunc(cands, compareCandidates)
	return cands
}

func compareCandidates(a, b candidate) int {
	if c := cmp.Compare(a.order, b.order); c != 0 {
		return c
	}
	if c := cmp.Compare(a.label, b.label); c != 0 {
		return c
	}
	if c := cmp.Compare(a.vt.Name, b.vt.Name); c != 0 {
		return c
	}
	return cmp.Compare(a.route, b.route)
}

func orderOf(vt ViewType) int {
	if desc, ok := descriptorOf(vt); ok {
		return desc.Order
	}
	return OrderDefault
}

// NameFor returns the display label of a view type.
func (b *Builder) NameFor(vt ViewType) string {
	return b.nameFor(vt, b.Locale())
}

func (b *Builder) nameFor(vt ViewType, locale language.Tag) string {
	if desc, ok := descriptorOf(vt); ok && desc.Title != "" {
		return b.caption(desc.Title, locale)
	}
	return DeriveLabel(vt.Name)
}

// Caption translates key for locale, returning the key itself when no
// translation is available for any reason.
func (b *Builder) Caption(key string, locale language.Tag) string {
	return b.caption(key, locale)
}

func (b *Builder) caption(key string, locale language.Tag) string {
	if b.translator == nil {
		return key
	}
	text, err := b.translator.Translate(b.bundle, key, locale)
	if err != nil || text == "" {
		events.Menu.TranslationMissing(b.bundle, key, locale.String(), err)
		return key
	}
	return text
}

// IconFor resolves the icon of a view type: custom icon, then descriptor
// icon, then the file icon.
func (b *Builder) IconFor(vt ViewType) Icon {
	if custom, ok := vt.proto.(CustomIconer); ok {
		icon, err := custom.CustomIcon()
		switch {
		case err != nil:
			logging.Error(fmt.Errorf("custom icon for %s: %w", vt.Name, err))
			events.Menu.IconFallback(vt.Name, err)
			b.noteIconFallback(vt.Name)
		case icon == "":
			events.Menu.IconFallback(vt.Name, nil)
			b.noteIconFallback(vt.Name)
		default:
			return icon
		}
	}
	if desc, ok := descriptorOf(vt); ok {
		return desc.Icon.orDefault()
	}
	return IconFile
}

func (b *Builder) noteIconFallback(name string) {
	if b.observer != nil {
		b.observer.IconFallback(name)
	}
}

// Init rebuilds every entry from the registry and swaps the new set in as a
// whole. Selection and active state of the previous entries are dropped.
func (b *Builder) Init() {
	b.mu.Lock()
	allowed := b.allowedSet
	locale := b.locale
	b.mu.Unlock()

	cands := b.candidates(allowed, locale)
	next := layout{
		entries: make([]*Entry, 0, len(cands)),
		byID:    make(map[string]*Entry, len(cands)),
	}
	for _, c := range cands {
		vt := c.vt
		entry := &Entry{ID: c.route, Label: c.label, Icon: b.IconFor(vt), mu: &b.mu}
		entry.onClick = func() {
			if _, err := b.NavigateToView(vt); err != nil {
				logging.Error(fmt.Errorf("navigate to %s: %w", vt.Name, err))
			}
		}
		if _, dup := next.byID[c.route]; dup {
			events.Menu.DuplicateRoute(c.route, vt.Name)
		}
		next.byID[c.route] = entry
		next.entries = append(next.entries, entry)
	}

	b.mu.Lock()
	for _, e := range b.custom {
		e.selected = false
		e.disabled = false
	}
	next.entries = append(next.entries, b.custom...)
	b.current = next
	b.selected = nil
	b.active = nil
	attached := b.attached
	b.mu.Unlock()

	events.Menu.Build(len(next.entries), b.AllowedViews())
	if b.observer != nil {
		b.observer.Built(len(next.entries))
	}
	if attached {
		b.emphasizeCurrentState()
	}
}

// Entries returns the current entries in menu order.
func (b *Builder) Entries() []*Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*Entry(nil), b.current.entries...)
}

// Items returns value snapshots of the current entries.
func (b *Builder) Items() []Item {
	b.mu.Lock()
	defer b.mu.Unlock()
	items := make([]Item, len(b.current.entries))
	for i, e := range b.current.entries {
		items[i] = e.snapshot()
	}
	return items
}

// Lookup returns the entry mapped to a route.
func (b *Builder) Lookup(route string) (*Entry, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.current.byID[route]
	return e, ok
}

// AddMenuItem appends a custom entry after the discovered ones. Custom
// entries survive Init but cannot be reached by route.
func (b *Builder) AddMenuItem(e *Entry) {
	if e == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	e.mu = &b.mu
	b.custom = append(b.custom, e)
	b.current.entries = append(append([]*Entry(nil), b.current.entries...), e)
}

// EmphasizeAsSelected highlights e and clears the previous highlight.
func (b *Builder) EmphasizeAsSelected(e *Entry) {
	if e == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.emphasize(e)
}

func (b *Builder) emphasize(e *Entry) {
	if b.selected != nil {
		b.selected.selected = false
	}
	e.selected = true
	b.selected = e
	events.Menu.Select(e.ID)
}

// Selected returns the highlighted entry, if any.
func (b *Builder) Selected() *Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.selected
}

// SetActive re-enables the previously active entry and disables the entry
// for viewID, so the view on screen cannot be navigated to again.
func (b *Builder) SetActive(viewID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.active != nil {
		b.active.disabled = false
	}
	b.active = b.current.byID[viewID]
	if b.active != nil {
		b.active.disabled = true
	}
	events.Menu.Active(viewID, b.active != nil)
}

// Active returns the entry disabled by SetActive, if any.
func (b *Builder) Active() *Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active
}

// Attach is called when the menu is shown. The first call detects the menu
// title from host unless one was set explicitly; every call highlights the
// entry for the navigator's current route.
func (b *Builder) Attach(host interface{}) {
	b.mu.Lock()
	if !b.attached && !b.titleSet && host != nil {
		b.title = detectTitle(host)
		events.Menu.Title(b.title, true)
	}
	b.attached = true
	b.mu.Unlock()
	b.emphasizeCurrentState()
}

func detectTitle(host interface{}) string {
	if titled, ok := host.(Titled); ok {
		return titled.PageTitle()
	}
	return stripUI(TypeName(host))
}

func (b *Builder) emphasizeCurrentState() {
	if b.navigator == nil {
		return
	}
	state := b.navigator.State()
	b.mu.Lock()
	defer b.mu.Unlock()
	if e, ok := b.current.byID[state]; ok {
		b.emphasize(e)
	}
}

// MenuTitle returns the title shown above the entries.
func (b *Builder) MenuTitle() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.title
}

// SetMenuTitle sets the title; it is never replaced by detection.
func (b *Builder) SetMenuTitle(title string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.title = title
	b.titleSet = true
	events.Menu.Title(title, false)
}

// SetSecondaryComponent places c right below the header, replacing any
// previous one. Setting the same component again does nothing; nil clears
// the slot.
func (b *Builder) SetSecondaryComponent(c Component) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.secondary == c {
		return
	}
	if b.secondary != nil {
		b.components = slices.DeleteFunc(b.components, func(x Component) bool { return x == b.secondary })
		events.Menu.SecondaryRemoved()
	}
	b.secondary = c
	if c == nil {
		return
	}
	b.components = slices.Insert(b.components, 1, c)
	events.Menu.SecondaryAdded()
}

// SecondaryComponent returns the component in the secondary slot.
func (b *Builder) SecondaryComponent() Component {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.secondary
}

// Components returns the menu layout from top to bottom.
func (b *Builder) Components() []Component {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Component(nil), b.components...)
}

// ToggleMenuVisible flips the collapsed-menu visibility used on narrow screens.
func (b *Builder) ToggleMenuVisible() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.menuVisible = !b.menuVisible
	return b.menuVisible
}

// MenuVisible reports whether the collapsed menu is open.
func (b *Builder) MenuVisible() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.menuVisible
}
