package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Rows           *prometheus.CounterVec
	LogsCreated    prometheus.Counter
	StatusChanges  *prometheus.CounterVec
	ImportDuration prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		Rows: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "feder_deliverylogs_rows_total",
			Help: "Provider log rows processed, by outcome (saved, skipped)",
		}, []string{"outcome"}),
		LogsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "feder_deliverylogs_email_logs_created_total",
			Help: "Email logs created by reconciliation",
		}),
		StatusChanges: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "feder_deliverylogs_status_total",
			Help: "Derived delivery statuses written, by status",
		}, []string{"status"}),
		ImportDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "feder_deliverylogs_import_duration_seconds",
			Help:    "Time spent reconciling one batch of provider rows",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) IncrementRows(outcome string, n int) {
	m.Rows.WithLabelValues(outcome).Add(float64(n))
}

func (m *Metrics) IncrementCreated() {
	m.LogsCreated.Inc()
}

func (m *Metrics) IncrementStatus(status string) {
	m.StatusChanges.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveImportDuration(d time.Duration) {
	m.ImportDuration.Observe(d.Seconds())
}
