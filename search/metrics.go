package search

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts controller outcomes. A nil *Metrics is valid and records nothing.
type Metrics struct {
	Requests  prometheus.Counter
	Debounced prometheus.Counter
	Discarded prometheus.Counter
	Failures  prometheus.Counter
}

// NewMetrics creates the controller counters and registers them with reg.
// Pass nil to create unregistered counters.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "typeahead_search_requests_total",
			Help: "Searches issued after the quiet period elapsed",
		}),
		Debounced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "typeahead_search_debounced_total",
			Help: "Pending searches cancelled by a newer query before firing",
		}),
		Discarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "typeahead_search_stale_responses_total",
			Help: "Responses dropped because a newer query superseded them",
		}),
		Failures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "typeahead_search_failures_total",
			Help: "Searches that ended in an error",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Requests, m.Debounced, m.Discarded, m.Failures)
	}
	return m
}

func (m *Metrics) requested() {
	if m != nil {
		m.Requests.Inc()
	}
}

func (m *Metrics) debounced() {
	if m != nil {
		m.Debounced.Inc()
	}
}

func (m *Metrics) discarded() {
	if m != nil {
		m.Discarded.Inc()
	}
}

func (m *Metrics) failed() {
	if m != nil {
		m.Failures.Inc()
	}
}
