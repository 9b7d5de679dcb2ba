package events

import "github.com/atomicstack/viewmenu/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type ServerTracer struct{}

type I18nTracer struct{}

var (
	UI     = UITracer{}
	Filter = FilterTracer{}
	Server = ServerTracer{}
	I18n   = I18nTracer{}
)

func (UITracer) MenuEnter(itemID, label, filter string) {
	logging.Trace("ui.enter", map[string]interface{}{
		"item":   itemID,
		"label":  label,
		"filter": filter,
	})
}

func (UITracer) MenuCursor(cursor int) {
	logging.Trace("ui.cursor", map[string]interface{}{"cursor": cursor})
}

func (UITracer) ToggleMenu(visible bool) {
	logging.Trace("ui.toggle", map[string]interface{}{"visible": visible})
}

func (UITracer) MarkActive(id string) {
	logging.Trace("ui.active", map[string]interface{}{"id": id})
}

func (FilterTracer) Cleared() {
	logging.Trace("filter.clear", nil)
}

func (FilterTracer) WordBackspace(filter string) {
	logging.Trace("filter.word-backspace", map[string]interface{}{"filter": filter})
}

func (FilterTracer) Cursor(pos int) {
	logging.Trace("filter.cursor", map[string]interface{}{"cursor": pos})
}

func (FilterTracer) Append(filter string) {
	logging.Trace("filter.append", map[string]interface{}{"filter": filter})
}

func (FilterTracer) Backspace(filter string) {
	logging.Trace("filter.backspace", map[string]interface{}{"filter": filter})
}

func (ServerTracer) Request(method, path string, status int) {
	logging.Trace("server.request", map[string]interface{}{"method": method, "path": path, "status": status})
}

func (ServerTracer) Listen(addr string) {
	logging.Trace("server.listen", map[string]interface{}{"addr": addr})
}

func (ServerTracer) Shutdown(err error) {
	payload := map[string]interface{}{}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("server.shutdown", payload)
}

func (I18nTracer) Load(bundle, locale, source string, keys int) {
	logging.Trace("i18n.load", map[string]interface{}{
		"bundle": bundle,
		"locale": locale,
		"source": source,
		"keys":   keys,
	})
}
