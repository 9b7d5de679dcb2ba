package events

import "github.com/atomicstack/viewmenu/internal/logging"

type MenuTracer struct{}

type NavTracer struct{}

var (
	Menu = MenuTracer{}
	Nav  = NavTracer{}
)

func (MenuTracer) Build(entries int, allowed []string) {
	logging.Trace("menu.build", map[string]interface{}{"entries": entries, "allowed": allowed})
}

func (MenuTracer) DuplicateRoute(route, view string) {
	logging.Trace("menu.route.duplicate", map[string]interface{}{"route": route, "view": view})
}

func (MenuTracer) Navigate(route string, found bool) {
	logging.Trace("menu.navigate", map[string]interface{}{"route": route, "found": found})
}

func (MenuTracer) Select(id string) {
	logging.Trace("menu.select", map[string]interface{}{"id": id})
}

func (MenuTracer) Active(id string, found bool) {
	logging.Trace("menu.active", map[string]interface{}{"id": id, "found": found})
}

func (MenuTracer) Title(title string, detected bool) {
	logging.Trace("menu.title", map[string]interface{}{"title": title, "detected": detected})
}

func (MenuTracer) SecondaryAdded() {
	logging.Trace("menu.secondary.add", nil)
}

func (MenuTracer) SecondaryRemoved() {
	logging.Trace("menu.secondary.remove", nil)
}

func (MenuTracer) IconFallback(view string, err error) {
	payload := map[string]interface{}{"view": view}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("menu.icon.fallback", payload)
}

func (MenuTracer) TranslationMissing(bundle, key, locale string, err error) {
	payload := map[string]interface{}{"bundle": bundle, "key": key, "locale": locale}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("menu.caption.missing", payload)
}

func (NavTracer) Register(route string) {
	logging.Trace("nav.register", map[string]interface{}{"route": route})
}

func (NavTracer) Change(from, to string) {
	logging.Trace("nav.change", map[string]interface{}{"from": from, "to": to})
}

func (NavTracer) Blocked(route string) {
	logging.Trace("nav.blocked", map[string]interface{}{"route": route})
}

func (NavTracer) Unknown(route string) {
	logging.Trace("nav.unknown", map[string]interface{}{"route": route})
}
