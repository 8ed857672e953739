package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/PratikDhanave/webhook-events-bridge/internal/logging"
	"github.com/PratikDhanave/webhook-events-bridge/internal/openapi"
)

func TestOpenAPI_ServesDocumentVerbatim(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterOpenAPIRoutes(r, openapi.Embedded(), logging.Discard())

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, OpenAPIPath, nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/vnd.oai.openapi+json", rr.Header().Get("Content-Type"))
	assert.Equal(t, openapi.Embedded(), rr.Body.Bytes())
}
