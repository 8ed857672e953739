package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/PratikDhanave/webhook-events-bridge/internal/logging"
)

// RegisterPingRoutes registers the webhook verification endpoint.
//
// GET /webhook/amqpbridge
// - No body processing, no external calls
// - Always answers 200 with {"status":"OK"}
func RegisterPingRoutes(r gin.IRoutes, logger *logging.Logger) {
	r.GET(WebhookPath, func(c *gin.Context) {
		logger.InfoContext(c.Request.Context(), "received a ping event",
			logging.Operation(opPing),
			logging.Method(c.Request.Method),
			logging.Path(c.Request.URL.Path),
		)
		writeOK(c, logger, opPing, true)
	})
}
