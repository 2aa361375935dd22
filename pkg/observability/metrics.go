package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the collectors used by the dialogue controller.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	events          *prometheus.CounterVec
	gatewayDuration *prometheus.HistogramVec
	rendered        *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "animefmt_events_total",
				Help: "Inbound events handled, by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		gatewayDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "animefmt_catalog_request_duration_seconds",
				Help:    "Duration of catalog requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"op", "result"},
		),
		rendered: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "animefmt_cards_rendered_total",
				Help: "Cards rendered, by source",
			},
			[]string{"source"},
		),
	}
	reg.MustRegister(m.events, m.gatewayDuration, m.rendered)
	return m
}

// Event counts one handled event.
func (m *Metrics) Event(kind, outcome string) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(kind, outcome).Inc()
}

// CatalogRequest records the duration of one catalog call.
// result is "ok" or "error".
func (m *Metrics) CatalogRequest(op string, err error, d time.Duration) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.gatewayDuration.WithLabelValues(op, result).Observe(d.Seconds())
}

// CardRendered counts one rendered card. source is "manual" or "catalog".
func (m *Metrics) CardRendered(source string) {
	if m == nil {
		return
	}
	m.rendered.WithLabelValues(source).Inc()
}
