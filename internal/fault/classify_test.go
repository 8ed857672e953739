package fault

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testContext() *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantText string
	}{
		{
			name:     "conversion fault",
			err:      Conversion("body", errors.New("empty")),
			wantCode: http.StatusBadRequest,
			wantText: "Bad Request",
		},
		{
			name:     "wrapped conversion fault",
			err:      fmt.Errorf("read request: %w", Conversion("body", errors.New("not text"))),
			wantCode: http.StatusBadRequest,
			wantText: "Bad Request",
		},
		{
			name:     "broker fault",
			err:      errors.New("connection refused"),
			wantCode: http.StatusInternalServerError,
			wantText: "Internal Server Error",
		},
		{
			name:     "nil",
			err:      nil,
			wantCode: http.StatusInternalServerError,
			wantText: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, text := Classify(tt.err)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantText, text)
		})
	}
}

func TestConversionError_Message(t *testing.T) {
	err := Conversion("body", errors.New("request body is required"))

	assert.Equal(t, "type conversion failed for body: request body is required", err.Error())
	assert.True(t, IsConversion(err))
	assert.False(t, IsConversion(errors.New("other")))
}

func TestClassifyRequest_AttachesStatus(t *testing.T) {
	c := testContext()

	_, _, ok := Status(c)
	assert.False(t, ok)

	ClassifyRequest(c, Conversion("body", errors.New("x")))

	code, text, ok := Status(c)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Bad Request", text)
}
