package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "viewmenu"

// Counter is a labelled Prometheus counter.
type Counter struct {
	Name string
	Help string

	vec *prometheus.CounterVec
}

// Increment adds one to the series identified by the label values.
func (c *Counter) Increment(val ...string) {
	c.vec.WithLabelValues(val...).Inc()
}

// NewCounter registers a counter vector on reg.
func NewCounter(reg prometheus.Registerer, name, help string, labels ...string) *Counter {
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, labels)
	reg.MustRegister(vec)
	return &Counter{Name: name, Help: help, vec: vec}
}

// Menu collects builder activity. It implements menu.Observer.
type Menu struct {
	registry *prometheus.Registry

	builds      *Counter
	entries     prometheus.Gauge
	navigations *Counter
	fallbacks   *Counter
	requests    *Counter
}

// NewMenu creates the menu collectors on a private registry.
func NewMenu() *Menu {
	reg := prometheus.NewRegistry()
	entries := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "menu_entries",
		Help:      "Number of entries produced by the last build.",
	})
	reg.MustRegister(entries)
	return &Menu{
		registry:    reg,
		builds:      NewCounter(reg, "menu_builds_total", "Menu rebuilds."),
		entries:     entries,
		navigations: NewCounter(reg, "menu_navigations_total", "Navigation requests by route and outcome.", "route", "found"),
		fallbacks:   NewCounter(reg, "menu_icon_fallbacks_total", "Custom icon lookups that fell back.", "view"),
		requests:    NewCounter(reg, "http_requests_total", "HTTP requests by route pattern and status.", "pattern", "status"),
	}
}

func (m *Menu) Built(entries int) {
	m.builds.Increment()
	m.entries.Set(float64(entries))
}

func (m *Menu) Navigated(route string, found bool) {
	m.navigations.Increment(route, strconv.FormatBool(found))
}

func (m *Menu) IconFallback(view string) {
	m.fallbacks.Increment(view)
}

// Request records one served HTTP request.
func (m *Menu) Request(pattern string, status int) {
	m.requests.Increment(pattern, strconv.Itoa(status))
}

// Registry exposes the private registry, mainly for tests.
func (m *Menu) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the collected metrics in the Prometheus text format.
func (m *Menu) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
