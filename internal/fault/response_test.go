package fault

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PratikDhanave/webhook-events-bridge/internal/models"
)

func TestBuildResponse_DefaultsTo500(t *testing.T) {
	c := testContext()

	code, resp := BuildResponse(c, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, models.StatusKO, resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "500", resp.Error.Code)
	assert.Equal(t, "Internal Server Error", resp.Error.Description)
	assert.Equal(t, "boom", resp.Error.Message)

	attached, _, ok := Status(c)
	assert.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, attached)
}

func TestBuildResponse_UsesAttachedStatus(t *testing.T) {
	c := testContext()
	SetStatus(c, http.StatusBadRequest, "Bad Request")

	code, resp := BuildResponse(c, Conversion("body", errors.New("empty")))

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "400", resp.Error.Code)
	assert.Equal(t, "Bad Request", resp.Error.Description)
	assert.Equal(t, "type conversion failed for body: empty", resp.Error.Message)
}

func TestBuildResponse_MissingReasonUsesStatusText(t *testing.T) {
	c := testContext()
	SetStatus(c, http.StatusBadRequest, "")

	_, resp := BuildResponse(c, nil)

	assert.Equal(t, "Bad Request", resp.Error.Description)
	assert.Equal(t, "Bad Request", resp.Error.Message)
}

func TestWriteResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rr := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rr)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	body := WriteResponse(c, errors.New("broker unavailable"))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, ContentTypeJSON, rr.Header().Get("Content-Type"))
	assert.Equal(t, string(body), rr.Body.String())

	var resp models.ResponseMessage
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, models.StatusKO, resp.Status)
	assert.Equal(t, "500", resp.Error.Code)
	assert.Equal(t, "broker unavailable", resp.Error.Message)
}

func TestFallbackBody_IsValidEnvelope(t *testing.T) {
	var resp models.ResponseMessage
	require.NoError(t, json.Unmarshal([]byte(fallbackBody), &resp))
	assert.Equal(t, models.StatusKO, resp.Status)
	assert.Equal(t, "500", resp.Error.Code)
}
