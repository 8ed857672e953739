package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/PratikDhanave/webhook-events-bridge/internal/breadcrumb"
	"github.com/PratikDhanave/webhook-events-bridge/internal/fault"
	"github.com/PratikDhanave/webhook-events-bridge/internal/logging"
	"github.com/PratikDhanave/webhook-events-bridge/internal/publisher"
)

var (
	errMissingBody = errors.New("request body is required")
	errNotText     = errors.New("request body is not valid UTF-8 text")
)

// EventPublisher is what the event route needs from a broker client.
type EventPublisher interface {
	Publish(ctx context.Context, msg publisher.Message) error
}

// EventOptions tunes the event route.
type EventOptions struct {
	// MaxBodyBytes caps the accepted body size. Zero disables the cap.
	MaxBodyBytes int64
	// ExtractEventHeaders logs //event/type and //event/action of XML bodies.
	ExtractEventHeaders bool
}

// RegisterEventRoutes registers the forwarding endpoint.
//
// POST /webhook/amqpbridge
// - Body is required and forwarded verbatim
// - Only the breadcrumb header travels with the event
// - Returns once the broker client accepted the message; no retry on failure
func RegisterEventRoutes(r gin.IRoutes, pub EventPublisher, opts EventOptions, logger *logging.Logger) {
	r.POST(WebhookPath, func(c *gin.Context) {
		ctx := c.Request.Context()

		body, err := readBody(c, opts.MaxBodyBytes)
		if err != nil {
			fault.Abort(c, err)
			return
		}

		logger.InfoContext(ctx, "received webhook event",
			logging.Operation(opEvent),
			logging.Bytes(len(body)),
		)

		msg := publisher.Message{
			Body:    body,
			Headers: forwardHeaders(c),
		}

		if opts.ExtractEventHeaders {
			logEventHeaders(ctx, logger, body)
		}

		logger.InfoContext(ctx, "sending event to broker", logging.Operation(opEvent))
		if err := pub.Publish(ctx, msg); err != nil {
			fault.Abort(c, fmt.Errorf("forward event: %w", err))
			return
		}

		writeOK(c, logger, opEvent, false)
	})
}

// readBody reads the request body as text. Every failure is a conversion fault.
func readBody(c *gin.Context, limit int64) ([]byte, error) {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return nil, fault.Conversion("body", errMissingBody)
	}

	src := c.Request.Body
	if limit > 0 {
		src = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
	}

	body, err := io.ReadAll(src)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, fault.Conversion("body", fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit))
		}
		return nil, fault.Conversion("body", err)
	}

	if len(body) == 0 {
		return nil, fault.Conversion("body", errMissingBody)
	}
	if !utf8.Valid(body) {
		return nil, fault.Conversion("body", errNotText)
	}
	return body, nil
}

// forwardHeaders drops every inbound header except the breadcrumb.
func forwardHeaders(c *gin.Context) map[string]string {
	id := breadcrumb.ID(c)
	if id == "" {
		return nil
	}
	return map[string]string{breadcrumb.Header: id}
}
