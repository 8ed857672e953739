package publisher

import (
	"context"
	"time"

	"github.com/PratikDhanave/webhook-events-bridge/internal/metrics"
)

type instrumented struct {
	Publisher
}

// Instrument records publish latency, forwarded events and publish errors
// for p under its broker kind.
func Instrument(p Publisher) Publisher {
	return &instrumented{Publisher: p}
}

func (i *instrumented) Publish(ctx context.Context, msg Message) error {
	kind := i.Kind()
	start := time.Now()
	err := i.Publisher.Publish(ctx, msg)
	metrics.PublishDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.PublishErrors.WithLabelValues(kind).Inc()
		return err
	}
	metrics.EventsForwarded.WithLabelValues(kind).Inc()
	metrics.EventBytes.Add(float64(len(msg.Body)))
	return nil
}
