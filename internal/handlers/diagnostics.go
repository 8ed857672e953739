package handlers

import (
	"bytes"
	"context"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/PratikDhanave/webhook-events-bridge/internal/logging"
)

const (
	eventTypeXPath   = "//event/type"
	eventActionXPath = "//event/action"
)

// extractEventHeaders reads the event type and action from an XML webhook
// body. Missing elements yield empty strings.
func extractEventHeaders(body []byte) (eventType, action string, err error) {
	doc, err := xmlquery.Parse(bytes.NewReader(body))
	if err != nil {
		return "", "", err
	}
	if n := xmlquery.FindOne(doc, eventTypeXPath); n != nil {
		eventType = strings.TrimSpace(n.InnerText())
	}
	if n := xmlquery.FindOne(doc, eventActionXPath); n != nil {
		action = strings.TrimSpace(n.InnerText())
	}
	return eventType, action, nil
}

// logEventHeaders never fails the request; the values are informational.
func logEventHeaders(ctx context.Context, logger *logging.Logger, body []byte) {
	eventType, action, err := extractEventHeaders(body)
	if err != nil {
		logger.DebugContext(ctx, "event headers not extracted", logging.Error(err))
		return
	}
	logger.InfoContext(ctx, "webhook event headers",
		logging.Operation(opEvent),
		"event_type", eventType,
		"event_action", action,
	)
}
