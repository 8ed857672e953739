package publisher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/PratikDhanave/webhook-events-bridge/internal/config"
)

// KafkaPublisher writes events to a Kafka topic without waiting for broker
// acknowledgements.
type KafkaPublisher struct {
	writer      *kafka.Writer
	brokers     []string
	dialTimeout time.Duration
}

func NewKafka(cfg config.KafkaConfig, dialTimeout time.Duration) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Topic:                  cfg.Topic,
			Balancer:               &kafka.LeastBytes{},
			RequiredAcks:           kafka.RequireNone,
			MaxAttempts:            1,
			BatchSize:              1,
			WriteTimeout:           dialTimeout,
			AllowAutoTopicCreation: true,
			Transport:              &kafka.Transport{DialTimeout: dialTimeout},
		},
		brokers:     cfg.Brokers,
		dialTimeout: dialTimeout,
	}
}

func (p *KafkaPublisher) Kind() string { return config.BrokerKafka }

func (p *KafkaPublisher) Publish(ctx context.Context, msg Message) error {
	if err := p.writer.WriteMessages(ctx, newKafkaMessage(msg)); err != nil {
		return fmt.Errorf("write to kafka topic %s: %w", p.writer.Topic, err)
	}
	return nil
}

// Ping succeeds as soon as one seed broker accepts a connection.
func (p *KafkaPublisher) Ping(ctx context.Context) error {
	dialer := &kafka.Dialer{Timeout: p.dialTimeout}

	var errs []error
	for _, addr := range p.brokers {
		conn, err := dialer.DialContext(ctx, "tcp", addr)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		_ = conn.Close()
		return nil
	}
	return fmt.Errorf("no kafka broker reachable: %w", errors.Join(errs...))
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func newKafkaMessage(msg Message) kafka.Message {
	m := kafka.Message{Value: msg.Body}
	if id := msg.CorrelationID(); id != "" {
		m.Key = []byte(id)
	}
	for k, v := range msg.Headers {
		m.Headers = append(m.Headers, kafka.Header{Key: k, Value: []byte(v)})
	}
	return m
}
