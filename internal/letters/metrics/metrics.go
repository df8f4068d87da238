package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"feder/internal/letters/models"
)

// Metrics tracks inbound ingestion, moderation and outbound delivery.
type Metrics struct {
	Ingested          *prometheus.CounterVec
	Duplicates        prometheus.Counter
	AttachmentsStored prometheus.Counter
	BlobsReused       prometheus.Counter
	IngestDuration    prometheus.Histogram
	SpamMarked        *prometheus.CounterVec
	OutgoingSent      *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		Ingested: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "feder_letters_ingested_total",
			Help: "Inbound letters stored, by outcome (matched, orphan) and message type",
		}, []string{"outcome", "message_type"}),
		Duplicates: promauto.NewCounter(prometheus.CounterOpts{
			Name: "feder_letters_duplicate_deliveries_total",
			Help: "Webhook deliveries acknowledged without ingestion because the message id was already seen",
		}),
		AttachmentsStored: promauto.NewCounter(prometheus.CounterOpts{
			Name: "feder_letters_attachments_stored_total",
			Help: "Attachment rows created for inbound letters",
		}),
		BlobsReused: promauto.NewCounter(prometheus.CounterOpts{
			Name: "feder_letters_attachment_blobs_reused_total",
			Help: "Attachments whose content was already present in blob storage",
		}),
		IngestDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "feder_letters_ingest_duration_seconds",
			Help:    "Time spent ingesting one inbound message",
			Buckets: prometheus.DefBuckets,
		}),
		SpamMarked: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "feder_letters_spam_marked_total",
			Help: "Moderator spam verdicts applied, by resulting status",
		}, []string{"status"}),
		OutgoingSent: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "feder_letters_outgoing_total",
			Help: "Outgoing letters by delivery result (sent, stored, failed)",
		}, []string{"result"}),
	}
}

func (m *Metrics) IncrementIngested(matched bool, messageType models.MessageType) {
	outcome := "orphan"
	if matched {
		outcome = "matched"
	}
	m.Ingested.WithLabelValues(outcome, string(messageType)).Inc()
}

func (m *Metrics) IncrementDuplicate() {
	m.Duplicates.Inc()
}

func (m *Metrics) AddAttachments(stored, reused int) {
	m.AttachmentsStored.Add(float64(stored))
	m.BlobsReused.Add(float64(reused))
}

func (m *Metrics) ObserveIngestDuration(seconds float64) {
	m.IngestDuration.Observe(seconds)
}

func (m *Metrics) IncrementSpamMarked(status models.SpamStatus) {
	m.SpamMarked.WithLabelValues(status.String()).Inc()
}

func (m *Metrics) IncrementOutgoing(result string) {
	m.OutgoingSent.WithLabelValues(result).Inc()
}
