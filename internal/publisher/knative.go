package publisher

import (
	"context"
	"fmt"
	"net/http"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	cehttp "github.com/cloudevents/sdk-go/v2/protocol/http"

	"github.com/PratikDhanave/webhook-events-bridge/internal/config"
)

// knativeContentType is the data content type of forwarded events; the
// webhook body is declared as a string.
const knativeContentType = "text/plain; charset=utf-8"

// breadcrumbExtension carries the breadcrumb as a CloudEvents extension.
// Extension names are limited to lower-case alphanumerics.
const breadcrumbExtension = "breadcrumbid"

// KnativePublisher posts events in CloudEvents binary mode to a Knative
// broker ingress.
type KnativePublisher struct {
	client    cloudevents.Client
	target    string
	eventType string
	source    string
}

func NewKnative(cfg config.KnativeConfig, timeout time.Duration) (*KnativePublisher, error) {
	protocol, err := cloudevents.NewHTTP(
		cloudevents.WithTarget(cfg.URL),
		cehttp.WithClient(http.Client{Timeout: timeout}),
	)
	if err != nil {
		return nil, fmt.Errorf("create cloudevents http protocol: %w", err)
	}

	client, err := cloudevents.NewClient(protocol, cloudevents.WithTimeNow(), cloudevents.WithUUIDs())
	if err != nil {
		return nil, fmt.Errorf("create cloudevents client: %w", err)
	}

	return &KnativePublisher{
		client:    client,
		target:    cfg.URL,
		eventType: cfg.EventType,
		source:    cfg.Source,
	}, nil
}

func (p *KnativePublisher) Kind() string { return config.BrokerKnative }

func (p *KnativePublisher) Publish(ctx context.Context, msg Message) error {
	event, err := p.newEvent(msg)
	if err != nil {
		return err
	}

	if result := p.client.Send(ctx, event); !cloudevents.IsACK(result) {
		return fmt.Errorf("send event to knative broker %s: %w", p.target, result)
	}
	return nil
}

// Ping is a no-op: the broker ingress is plain HTTP and is only reached on send.
func (p *KnativePublisher) Ping(context.Context) error { return nil }

func (p *KnativePublisher) Close() error { return nil }

func (p *KnativePublisher) newEvent(msg Message) (cloudevents.Event, error) {
	event := cloudevents.NewEvent()
	event.SetType(p.eventType)
	event.SetSource(p.source)
	if id := msg.CorrelationID(); id != "" {
		event.SetExtension(breadcrumbExtension, id)
	}
	if err := event.SetData(knativeContentType, msg.Body); err != nil {
		return event, fmt.Errorf("set cloudevent data: %w", err)
	}
	return event, nil
}
