package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"feder/internal/cases/models"
)

// Metrics tracks case creation and milestone latching.
type Metrics struct {
	CasesCreated      prometheus.Counter
	MilestonesLatched *prometheus.CounterVec
	AddressLookups    *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		CasesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "feder_cases_created_total",
			Help: "Total number of cases created",
		}),
		MilestonesLatched: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "feder_case_milestones_latched_total",
			Help: "Case flags raised by inbound letters",
		}, []string{"milestone"}),
		AddressLookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "feder_case_address_lookups_total",
			Help: "Inbound address lookups by outcome (matched, orphan)",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) IncrementCasesCreated() {
	m.CasesCreated.Inc()
}

func (m *Metrics) IncrementMilestone(milestone models.Milestone) {
	m.MilestonesLatched.WithLabelValues(milestone.String()).Inc()
}

func (m *Metrics) IncrementAddressLookup(matched bool) {
	outcome := "orphan"
	if matched {
		outcome = "matched"
	}
	m.AddressLookups.WithLabelValues(outcome).Inc()
}
