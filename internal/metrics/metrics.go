package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// WebhookRequests counts handled requests by method, route template and
	// response status code.
	WebhookRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_bridge_requests_total",
			Help: "Total number of webhook requests handled",
		},
		[]string{"method", "route", "code"},
	)

	EventsForwarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_bridge_events_forwarded_total",
			Help: "Total number of events accepted by the broker client",
		},
		[]string{"broker"},
	)

	EventBytes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "webhook_bridge_event_bytes_total",
			Help: "Total bytes of event payload forwarded",
		},
	)

	PublishErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_bridge_publish_errors_total",
			Help: "Total number of failed publish attempts",
		},
		[]string{"broker"},
	)

	PublishDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "webhook_bridge_publish_duration_seconds",
			Help:    "Duration of the local broker send in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"broker"},
	)
)
