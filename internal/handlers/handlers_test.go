package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/PratikDhanave/webhook-events-bridge/internal/breadcrumb"
	"github.com/PratikDhanave/webhook-events-bridge/internal/fault"
	"github.com/PratikDhanave/webhook-events-bridge/internal/logging"
	"github.com/PratikDhanave/webhook-events-bridge/internal/models"
	"github.com/PratikDhanave/webhook-events-bridge/internal/publisher"
)

// Fake publisher for testing
type fakePublisher struct {
	mu    sync.Mutex
	err   error
	calls int
	sent  []publisher.Message
}

func (f *fakePublisher) Publish(_ context.Context, msg publisher.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func newTestRouter(pub EventPublisher, opts EventOptions) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := logging.Discard()

	r := gin.New()
	r.Use(breadcrumb.Middleware(), fault.Middleware(logger))
	RegisterPingRoutes(r, logger)
	RegisterEventRoutes(r, pub, opts, logger)
	return r
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) models.ResponseMessage {
	t.Helper()
	var resp models.ResponseMessage
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}
