package publisher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Azure/go-amqp"

	"github.com/PratikDhanave/webhook-events-bridge/internal/config"
	"github.com/PratikDhanave/webhook-events-bridge/internal/logging"
)

// AMQPPublisher sends pre-settled messages to an AMQP 1.0 address. The
// connection is opened on first use and dropped after a failed send so the
// next request dials again.
type AMQPPublisher struct {
	cfg         config.AMQPConfig
	dialTimeout time.Duration
	logger      *logging.Logger

	mu      sync.Mutex
	conn    *amqp.Conn
	session *amqp.Session
	sender  *amqp.Sender
}

func NewAMQP(cfg config.AMQPConfig, dialTimeout time.Duration, logger *logging.Logger) *AMQPPublisher {
	if dialTimeout <= 0 {
		dialTimeout = 10 * time.Second
	}
	return &AMQPPublisher{cfg: cfg, dialTimeout: dialTimeout, logger: logger}
}

func (p *AMQPPublisher) Kind() string { return config.BrokerAMQP }

func (p *AMQPPublisher) Publish(ctx context.Context, msg Message) error {
	sender, err := p.getSender(ctx)
	if err != nil {
		return err
	}

	if err := sender.Send(ctx, newAMQPMessage(msg), nil); err != nil {
		p.discard(sender)
		return fmt.Errorf("send to amqp address %s: %w", p.cfg.Address, err)
	}
	return nil
}

// Ping opens the connection if needed.
func (p *AMQPPublisher) Ping(ctx context.Context) error {
	_, err := p.getSender(ctx)
	return err
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closeLocked()
}

func (p *AMQPPublisher) getSender(ctx context.Context) (*amqp.Sender, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sender != nil {
		return p.sender, nil
	}

	dialCtx, cancel := context.WithTimeout(ctx, p.dialTimeout)
	defer cancel()

	var opts *amqp.ConnOptions
	if p.cfg.Username != "" {
		opts = &amqp.ConnOptions{SASLType: amqp.SASLTypePlain(p.cfg.Username, p.cfg.Password)}
	}

	conn, err := amqp.Dial(dialCtx, p.cfg.URL, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to amqp broker: %w", err)
	}

	session, err := conn.NewSession(dialCtx, nil)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open amqp session: %w", err)
	}

	// Pre-settled: the broker does not acknowledge individual transfers.
	sender, err := session.NewSender(dialCtx, p.cfg.Address, &amqp.SenderOptions{
		SettlementMode: amqp.SenderSettleModeSettled.Ptr(),
	})
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open amqp sender for %s: %w", p.cfg.Address, err)
	}

	p.conn, p.session, p.sender = conn, session, sender
	p.logger.Info("connected to amqp broker", logging.Broker(config.BrokerAMQP), "address", p.cfg.Address)
	return sender, nil
}

// discard drops the link if it is still the one that failed.
func (p *AMQPPublisher) discard(failed *amqp.Sender) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sender != failed {
		return
	}
	if err := p.closeLocked(); err != nil {
		p.logger.Debug("closing failed amqp connection", logging.Error(err))
	}
}

func (p *AMQPPublisher) closeLocked() error {
	if p.conn == nil {
		return nil
	}
	err := p.conn.Close()
	p.conn, p.session, p.sender = nil, nil, nil
	return err
}

func newAMQPMessage(msg Message) *amqp.Message {
	m := amqp.NewMessage(msg.Body)
	if len(msg.Headers) > 0 {
		m.ApplicationProperties = make(map[string]any, len(msg.Headers))
		for k, v := range msg.Headers {
			m.ApplicationProperties[k] = v
		}
	}
	if id := msg.CorrelationID(); id != "" {
		m.Properties = &amqp.MessageProperties{CorrelationID: id}
	}
	return m
}
