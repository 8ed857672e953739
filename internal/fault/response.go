package fault

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/PratikDhanave/webhook-events-bridge/internal/models"
)

// ContentTypeJSON is the content type of every envelope.
const ContentTypeJSON = "application/json"

// fallbackBody is written if the envelope itself cannot be encoded.
const fallbackBody = `{"status":"KO","error":{"code":"500","description":"Internal Server Error","message":"failed to encode error response"}}`

// BuildResponse assembles the KO envelope for err using the status attached to
// c, defaulting to 500 Internal Server Error when none was attached.
func BuildResponse(c *gin.Context, err error) (int, models.ResponseMessage) {
	code, text, ok := Status(c)
	if !ok {
		code, text = http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
		SetStatus(c, code, text)
	}
	if text == "" {
		text = http.StatusText(code)
	}

	message := text
	if err != nil {
		message = err.Error()
	}

	return code, models.NewErrorResponse(strconv.Itoa(code), text, message)
}

// WriteResponse builds the KO envelope for err, encodes it and writes it to c.
// It returns the encoded body so the caller can log it.
func WriteResponse(c *gin.Context, err error) []byte {
	code, resp := BuildResponse(c, err)

	body, encErr := json.Marshal(resp)
	if encErr != nil {
		code = http.StatusInternalServerError
		SetStatus(c, code, http.StatusText(code))
		body = []byte(fallbackBody)
	}

	c.Data(code, ContentTypeJSON, body)
	return body
}
