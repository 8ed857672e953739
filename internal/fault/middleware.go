package fault

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PratikDhanave/webhook-events-bridge/internal/logging"
)

// Middleware is the single fault handler of the bridge. Handlers report a
// fault with c.Error and return; the last reported fault is classified and
// rendered exactly once. Panics are recovered and rendered without
// classification, which yields the 500 default.
func Middleware(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			err := fmt.Errorf("panic: %v", rec)
			ctx := c.Request.Context()
			logger.ErrorContext(ctx, "caught unexpected fault", logging.Error(err))
			c.Abort()
			if c.Writer.Written() {
				return
			}
			body := WriteResponse(c, err)
			logger.InfoContext(ctx, "error response", logging.Status(c.Writer.Status()), logging.Response(body))
		}()

		c.Next()

		last := c.Errors.Last()
		if last == nil || c.Writer.Written() {
			return
		}

		err := last.Err
		ctx := c.Request.Context()
		code, _ := ClassifyRequest(c, err)
		if IsConversion(err) {
			logger.ErrorContext(ctx, "caught type conversion fault", logging.Status(code), logging.Error(err))
		} else {
			logger.ErrorContext(ctx, "caught fault", logging.Status(code), logging.Error(err))
		}

		body := WriteResponse(c, err)
		logger.InfoContext(ctx, "error response", logging.Status(code), logging.Response(body))
	}
}

// Abort reports err on c and stops the handler chain. The fault middleware
// renders the response.
func Abort(c *gin.Context, err error) {
	if err == nil {
		err = errors.New("unknown fault")
	}
	_ = c.Error(err)
	c.Abort()
}
