package publisher

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/PratikDhanave/webhook-events-bridge/internal/config"
	"github.com/PratikDhanave/webhook-events-bridge/internal/logging"
)

// NATSPublisher publishes to a NATS subject. Reconnection runs in the
// background; while disconnected Publish fails instead of buffering.
type NATSPublisher struct {
	conn    *nats.Conn
	subject string
}

func NewNATS(cfg config.NATSConfig, dialTimeout time.Duration, logger *logging.Logger) (*NATSPublisher, error) {
	conn, err := nats.Connect(cfg.URL,
		nats.Name("webhook-events-bridge"),
		nats.Timeout(dialTimeout),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.RetryOnFailedConnect(true),
		nats.ReconnectBufSize(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", logging.Broker(config.BrokerNATS), logging.Error(err))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("nats reconnected", logging.Broker(config.BrokerNATS), "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSPublisher{conn: conn, subject: cfg.Subject}, nil
}

func (p *NATSPublisher) Kind() string { return config.BrokerNATS }

func (p *NATSPublisher) Publish(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !p.conn.IsConnected() {
		return fmt.Errorf("publish to %s: %w", p.subject, ErrNotConnected)
	}

	if err := p.conn.PublishMsg(newNATSMessage(p.subject, msg)); err != nil {
		return fmt.Errorf("publish to %s: %w", p.subject, err)
	}
	return nil
}

func (p *NATSPublisher) Ping(ctx context.Context) error {
	if !p.conn.IsConnected() {
		return ErrNotConnected
	}
	return p.conn.FlushWithContext(ctx)
}

func (p *NATSPublisher) Close() error {
	if p.conn.IsConnected() {
		return p.conn.Drain()
	}
	p.conn.Close()
	return nil
}

func newNATSMessage(subject string, msg Message) *nats.Msg {
	m := nats.NewMsg(subject)
	m.Data = msg.Body
	for k, v := range msg.Headers {
		m.Header.Set(k, v)
	}
	return m
}
