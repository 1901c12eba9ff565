package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// IncrementalCounter is the subset of a counter vector the rest of the
// application needs.
type IncrementalCounter interface {
	Increment(val ...string)
}

type Counter struct {
	Name string
	Help string

	vec *prometheus.CounterVec
}

func (c *Counter) Increment(val ...string) {
	c.vec.WithLabelValues(val...).Inc()
}

func NewCounterWithRegistry(reg prometheus.Registerer, name, help string, labels ...string) *Counter {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: name,
		Help: help,
	}, labels)

	reg.MustRegister(counter)

	return &Counter{
		Name: name,
		Help: help,
		vec:  counter,
	}
}

// Registry holds every metric the menu exports.
var Registry = prometheus.NewRegistry()

var (
	Transitions = NewCounterWithRegistry(Registry,
		"voxmod_menu_transitions_total",
		"Navigation transitions applied, by operation.",
		"op")
	TransitionFailures = NewCounterWithRegistry(Registry,
		"voxmod_menu_transition_failures_total",
		"Navigation transitions that returned an error, by operation.",
		"op")
	EnumerationFailures = NewCounterWithRegistry(Registry,
		"voxmod_menu_enumeration_failures_total",
		"Generator groups resolved to zero rows because listing failed, by kind.",
		"kind")
	DomainSignals = NewCounterWithRegistry(Registry,
		"voxmod_menu_domain_signals_total",
		"Domain actions forwarded to collaborators, by action.",
		"action")
)

// GetHandler returns an HTTP handler serving Registry.
func GetHandler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
