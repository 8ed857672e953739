package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestWebhookRequests_Increments(t *testing.T) {
	c := WebhookRequests.WithLabelValues("GET", "/webhook/amqpbridge", "200")
	before := testutil.ToFloat64(c)

	c.Inc()

	assert.Equal(t, before+1, testutil.ToFloat64(c))
}

func TestPublishCounters_ByBroker(t *testing.T) {
	ok := EventsForwarded.WithLabelValues("nats")
	failed := PublishErrors.WithLabelValues("nats")
	okBefore, failedBefore := testutil.ToFloat64(ok), testutil.ToFloat64(failed)

	ok.Inc()
	ok.Inc()
	failed.Inc()

	assert.Equal(t, okBefore+2, testutil.ToFloat64(ok))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(failed))
}
