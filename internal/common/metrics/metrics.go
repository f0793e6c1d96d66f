// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MessagesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_messages_processed_total",
			Help: "Total number of chat messages processed, by resolved intent",
		},
		[]string{"intent"},
	)

	FallbackResponses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_fallback_responses_total",
			Help: "Total number of fallback responses served, by reason",
		},
		[]string{"reason"},
	)

	MessageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "assistant_message_duration_seconds",
			Help: "Duration of full pipeline processing per message in seconds",
		},
		[]string{"intent"},
	)

	EntitiesExtracted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_entities_extracted_total",
			Help: "Total number of entities extracted, by entity type",
		},
		[]string{"entity_type"},
	)

	CalculationsPerformed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carbon_calculations_total",
			Help: "Total number of footprint calculations served, by rating",
		},
		[]string{"rating"},
	)

	ActiveSessions = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "assistant_active_sessions",
			Help: "Number of sessions currently held by the context store",
		},
		[]string{"backend"},
	)
)
