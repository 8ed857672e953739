package breadcrumb

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Header is the correlation header kept on forwarded events.
const Header = "breadcrumbId"

// RequestIDHeader is accepted as a fallback source for the breadcrumb.
const RequestIDHeader = "X-Request-ID"

// ginKey is the Gin context key used to store the breadcrumb.
const ginKey = "breadcrumb_id"

type contextKey struct{}

// Middleware keeps the caller's breadcrumb (or X-Request-ID) and generates one
// when neither is present. The value is echoed on the response and stored on
// both the Gin context and the request context.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(Header))
		if id == "" {
			id = strings.TrimSpace(c.GetHeader(RequestIDHeader))
		}
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(ginKey, id)
		c.Request = c.Request.WithContext(NewContext(c.Request.Context(), id))
		c.Header(Header, id)
		c.Next()
	}
}

// ID returns the breadcrumb of the current request.
func ID(c *gin.Context) string {
	v, _ := c.Get(ginKey)
	s, _ := v.(string)
	return s
}

// NewContext returns a copy of ctx carrying the breadcrumb.
func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext extracts the breadcrumb from ctx. Returns "" when absent.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}
