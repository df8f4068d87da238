package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Reported *prometheus.CounterVec
	Solved   prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		Reported: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "feder_alerts_reported_total",
			Help: "Spam reports raised, by reporter (anonymous, operator)",
		}, []string{"reporter"}),
		Solved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "feder_alerts_solved_total",
			Help: "Alerts resolved by operators",
		}),
	}
}

func (m *Metrics) IncrementReported(anonymous bool) {
	reporter := "operator"
	if anonymous {
		reporter = "anonymous"
	}
	m.Reported.WithLabelValues(reporter).Inc()
}

func (m *Metrics) IncrementSolved() {
	m.Solved.Inc()
}
