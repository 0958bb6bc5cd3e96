package client

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records outbound API traffic. A nil *Metrics is valid and records nothing.
type Metrics struct {
	Requests *prometheus.CounterVec
	Latency  *prometheus.HistogramVec
}

// NewMetrics creates the client collectors and registers them with reg.
// Pass nil to create unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "typeahead_api_requests_total",
				Help: "Requests sent to the demo API",
			},
			[]string{"endpoint", "status"},
		),
		Latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "typeahead_api_latency_seconds",
				Help:    "Demo API latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Requests, m.Latency)
	}
	return m
}

func (m *Metrics) observe(endpoint, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(endpoint, status).Inc()
	m.Latency.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}
