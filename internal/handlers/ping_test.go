package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/PratikDhanave/webhook-events-bridge/internal/models"
)

func TestPing_ReturnsOK(t *testing.T) {
	r := newTestRouter(&fakePublisher{}, EventOptions{})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, WebhookPath, nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"OK"}`, rr.Body.String())
	assert.Contains(t, rr.Body.String(), "\n", "ping response is pretty printed")

	resp := decodeEnvelope(t, rr)
	assert.Equal(t, models.StatusOK, resp.Status)
	assert.Nil(t, resp.Error)
}

func TestPing_Idempotent(t *testing.T) {
	pub := &fakePublisher{}
	r := newTestRouter(pub, EventOptions{})

	var first string
	for i := 0; i < 5; i++ {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, WebhookPath, nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		if i == 0 {
			first = rr.Body.String()
			continue
		}
		assert.Equal(t, first, rr.Body.String())
	}
	assert.Zero(t, pub.calls, "ping must not publish")
}
