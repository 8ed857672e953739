package publisher

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PratikDhanave/webhook-events-bridge/internal/breadcrumb"
	"github.com/PratikDhanave/webhook-events-bridge/internal/config"
	"github.com/PratikDhanave/webhook-events-bridge/internal/logging"
)

func TestNewAMQPMessage(t *testing.T) {
	body := []byte("<event><type>created</type><action>new</action></event>")
	m := newAMQPMessage(Message{
		Body:    body,
		Headers: map[string]string{breadcrumb.Header: "crumb-1"},
	})

	require.Len(t, m.Data, 1)
	assert.Equal(t, body, m.Data[0])
	assert.Equal(t, "crumb-1", m.ApplicationProperties[breadcrumb.Header])
	require.NotNil(t, m.Properties)
	assert.Equal(t, "crumb-1", m.Properties.CorrelationID)
}

func TestNewAMQPMessage_NoHeaders(t *testing.T) {
	m := newAMQPMessage(Message{Body: []byte("x")})

	assert.Nil(t, m.ApplicationProperties)
	assert.Nil(t, m.Properties)
}

func TestAMQPPublisher_BrokerUnavailable(t *testing.T) {
	p := NewAMQP(config.AMQPConfig{URL: "amqp://127.0.0.1:1", Address: "Q"}, time.Second, logging.Discard())
	defer p.Close()

	err := p.Publish(context.Background(), Message{Body: []byte("x")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect to amqp broker")

	assert.Error(t, p.Ping(context.Background()))
	assert.Equal(t, config.BrokerAMQP, p.Kind())
}
