// Package fault turns errors raised while serving a webhook into HTTP status
// codes and KO response envelopes.
package fault

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Gin context keys holding the classified status of the in-flight request.
const (
	statusCodeKey = "fault_status_code"
	statusTextKey = "fault_status_text"
)

// ConversionError reports a request value that could not be converted to the
// type the route expects. It is the only fault mapped to 400.
type ConversionError struct {
	// Param names the request parameter that failed conversion, e.g. "body".
	Param string
	Err   error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("type conversion failed for %s: %v", e.Param, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// Conversion wraps err as a ConversionError for param.
func Conversion(param string, err error) error {
	return &ConversionError{Param: param, Err: err}
}

// IsConversion reports whether err's chain contains a ConversionError.
func IsConversion(err error) bool {
	var ce *ConversionError
	return errors.As(err, &ce)
}

// Classify maps err to 400 Bad Request for conversion faults and to
// 500 Internal Server Error for anything else, nil included.
func Classify(err error) (int, string) {
	if IsConversion(err) {
		return http.StatusBadRequest, http.StatusText(http.StatusBadRequest)
	}
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}

// ClassifyRequest classifies err and attaches the result to c.
func ClassifyRequest(c *gin.Context, err error) (int, string) {
	code, text := Classify(err)
	SetStatus(c, code, text)
	return code, text
}

// SetStatus attaches an HTTP status and reason phrase to c.
func SetStatus(c *gin.Context, code int, text string) {
	c.Set(statusCodeKey, code)
	c.Set(statusTextKey, text)
}

// Status returns the status attached to c by SetStatus. ok is false when no
// status code has been attached.
func Status(c *gin.Context) (code int, text string, ok bool) {
	v, exists := c.Get(statusCodeKey)
	if !exists {
		return 0, "", false
	}
	code, ok = v.(int)
	if !ok {
		return 0, "", false
	}
	t, _ := c.Get(statusTextKey)
	text, _ = t.(string)
	return code, text, true
}
