package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TicketsIssued counts tickets created at the entry gate.
	TicketsIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "parking",
			Name:      "tickets_issued_total",
			Help:      "The total number of issued parking tickets",
		},
	)

	// TicketsPaid counts completed payments by method.
	TicketsPaid = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "parking",
			Name:      "tickets_paid_total",
			Help:      "The total number of paid parking tickets",
		},
		[]string{"method"},
	)

	// PersistenceFailures counts snapshot writes that did not reach storage.
	PersistenceFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "parking",
			Name:      "persistence_failures_total",
			Help:      "The total number of failed ticket snapshot writes",
		},
	)

	// MessagesProcessed The total number of processed messages (counter)
	MessagesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "messages",
			Name:      "processed_total",
			Help:      "The total number of processed messages",
		},
		[]string{"topic", "handler"},
	)

	// MessagesProcessingFailed total number of message processing failures (counter)
	MessagesProcessingFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "messages",
			Name:      "processing_failed_total",
			Help:      "The total number of message processing failures",
		},
		[]string{"topic", "handler"},
	)

	// MessagesProcessingDuration The total time spent processing messages (summary with quantiles 0.5, 0.9, and 0.99)
	MessagesProcessingDuration = promauto.NewSummaryVec(
		prometheus.SummaryOpts{
			Namespace:  "messages",
			Name:       "processing_duration_seconds",
			Help:       "The total time spent processing messages",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"topic", "handler"},
	)
)
