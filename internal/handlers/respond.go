package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PratikDhanave/webhook-events-bridge/internal/fault"
	"github.com/PratikDhanave/webhook-events-bridge/internal/logging"
	"github.com/PratikDhanave/webhook-events-bridge/internal/models"
)

// WebhookPath serves both webhook operations.
const WebhookPath = "/webhook/amqpbridge"

const (
	opPing  = "ping"
	opEvent = "event"
)

// writeOK marshals the OK envelope explicitly so it can be logged before it
// is written. An encoding failure is reported to the fault middleware.
func writeOK(c *gin.Context, logger *logging.Logger, op string, pretty bool) {
	resp := models.NewOKResponse()

	var (
		body []byte
		err  error
	)
	if pretty {
		body, err = json.MarshalIndent(resp, "", "  ")
	} else {
		body, err = json.Marshal(resp)
	}
	if err != nil {
		fault.Abort(c, fmt.Errorf("encode %s response: %w", op, err))
		return
	}

	logger.InfoContext(c.Request.Context(), op+" response",
		logging.Operation(op),
		logging.Status(http.StatusOK),
		logging.Response(body),
	)
	c.Data(http.StatusOK, fault.ContentTypeJSON, body)
}
