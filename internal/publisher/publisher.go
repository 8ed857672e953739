// Package publisher forwards accepted webhook events to the downstream
// broker. Each broker kind implements Publisher; the HTTP handlers only see
// the interface.
package publisher

import (
	"context"
	"errors"
	"fmt"

	"github.com/PratikDhanave/webhook-events-bridge/internal/breadcrumb"
	"github.com/PratikDhanave/webhook-events-bridge/internal/config"
	"github.com/PratikDhanave/webhook-events-bridge/internal/logging"
)

// ErrNotConnected is returned when the broker client has no live connection.
var ErrNotConnected = errors.New("not connected to message broker")

// Message is one event to forward. Body is the inbound payload verbatim and
// Headers holds at most the breadcrumb.
type Message struct {
	Body    []byte
	Headers map[string]string
}

// CorrelationID returns the breadcrumb carried by m, if any.
func (m Message) CorrelationID() string {
	return m.Headers[breadcrumb.Header]
}

// Publisher sends messages with fire-and-forget semantics: Publish returns
// once the local broker client accepted the message and never retries.
// Implementations are safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
	// Ping reports whether the broker is reachable.
	Ping(ctx context.Context) error
	// Kind returns the broker kind, e.g. "amqp".
	Kind() string
	Close() error
}

// New builds the publisher selected by cfg.Kind, wrapped with metrics.
func New(cfg config.BrokerConfig, logger *logging.Logger) (Publisher, error) {
	var (
		p   Publisher
		err error
	)

	switch cfg.Kind {
	case config.BrokerAMQP:
		p = NewAMQP(cfg.AMQP, cfg.DialTimeout, logger)
	case config.BrokerKnative:
		p, err = NewKnative(cfg.Knative, cfg.DialTimeout)
	case config.BrokerNATS:
		p, err = NewNATS(cfg.NATS, cfg.DialTimeout, logger)
	case config.BrokerKafka:
		p = NewKafka(cfg.Kafka, cfg.DialTimeout)
	default:
		return nil, fmt.Errorf("unknown broker kind %q", cfg.Kind)
	}
	if err != nil {
		return nil, err
	}

	return Instrument(p), nil
}
