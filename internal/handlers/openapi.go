package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PratikDhanave/webhook-events-bridge/internal/logging"
	"github.com/PratikDhanave/webhook-events-bridge/internal/openapi"
)

// OpenAPIPath serves the service's own API description.
const OpenAPIPath = "/openapi.json"

// RegisterOpenAPIRoutes serves doc unchanged as application/vnd.oai.openapi+json.
func RegisterOpenAPIRoutes(r gin.IRoutes, doc []byte, logger *logging.Logger) {
	r.GET(OpenAPIPath, func(c *gin.Context) {
		logger.DebugContext(c.Request.Context(), "serving openapi document", logging.Bytes(len(doc)))
		c.Data(http.StatusOK, openapi.ContentType, doc)
	})
}
