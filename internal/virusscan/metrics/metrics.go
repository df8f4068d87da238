package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Created     prometheus.Counter
	Transitions *prometheus.CounterVec
	BreakerOpen *prometheus.GaugeVec
}

func New() *Metrics {
	return &Metrics{
		Created: promauto.NewCounter(prometheus.CounterOpts{
			Name: "feder_virusscan_requests_created_total",
			Help: "Scan requests created for new attachments",
		}),
		Transitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "feder_virusscan_transitions_total",
			Help: "Scan request status changes, by resulting status",
		}, []string{"status"}),
		BreakerOpen: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "feder_virusscan_breaker_open",
			Help: "1 while the scan engine circuit breaker is open",
		}, []string{"breaker"}),
	}
}

func (m *Metrics) AddCreated(n int) {
	m.Created.Add(float64(n))
}

func (m *Metrics) IncrementTransition(status string) {
	m.Transitions.WithLabelValues(status).Inc()
}

// ObserveBreaker matches engine.StateObserver.
func (m *Metrics) ObserveBreaker(name string, open bool) {
	v := 0.0
	if open {
		v = 1
	}
	m.BreakerOpen.WithLabelValues(name).Set(v)
}
