package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// TransactionMetrics groups the counters and histograms of the command core.
type TransactionMetrics struct {
	// Command pipeline
	CommandsProcessedTotal prometheus.CounterVec
	EventsAppendedTotal    prometheus.CounterVec

	// Activation payment-request cache
	PaymentRequestsCacheHitsTotal   prometheus.Counter
	PaymentRequestsCacheMissesTotal prometheus.Counter

	// Gateway interaction
	GatewayAuthorizationDuration prometheus.HistogramVec
	GatewayErrorsTotal           prometheus.CounterVec

	// Outbound queue
	QueuePublishErrorsTotal prometheus.CounterVec
}

func NewTransactionMetrics() *TransactionMetrics {
	return &TransactionMetrics{
		CommandsProcessedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transaction_commands_processed_total",
				Help: "Commands handled, labelled by command and outcome",
			},
			[]string{"command", "outcome"},
		),

		EventsAppendedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transaction_events_appended_total",
				Help: "Events appended to the transaction log by event code",
			},
			[]string{"event_code"},
		),

		PaymentRequestsCacheHitsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "payment_requests_cache_hits_total",
				Help: "Activation retries served from the payment-request-info cache",
			},
		),

		PaymentRequestsCacheMissesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "payment_requests_cache_misses_total",
				Help: "Activations that had to call the external notice service",
			},
		),

		GatewayAuthorizationDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gateway_authorization_duration_seconds",
				Help:    "Duration of gateway authorization calls",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
			},
			[]string{"gateway"},
		),

		GatewayErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gateway_errors_total",
				Help: "Gateway calls that failed or returned malformed responses",
			},
			[]string{"gateway", "reason"},
		),

		QueuePublishErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "queue_publish_errors_total",
				Help: "Events durably appended but not handed to the outbound queue",
			},
			[]string{"event_code"},
		),
	}
}
