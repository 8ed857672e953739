package httpserver

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/PratikDhanave/webhook-events-bridge/internal/breadcrumb"
	"github.com/PratikDhanave/webhook-events-bridge/internal/config"
	"github.com/PratikDhanave/webhook-events-bridge/internal/fault"
	"github.com/PratikDhanave/webhook-events-bridge/internal/handlers"
	"github.com/PratikDhanave/webhook-events-bridge/internal/logging"
	"github.com/PratikDhanave/webhook-events-bridge/internal/metrics"
	"github.com/PratikDhanave/webhook-events-bridge/internal/publisher"
)

// readyTimeout bounds the broker ping of the readiness probe.
const readyTimeout = 2 * time.Second

// Broker is the publisher surface the router needs.
type Broker interface {
	handlers.EventPublisher
	Ping(ctx context.Context) error
	Kind() string
}

var _ Broker = publisher.Publisher(nil)

// NewRouter wires probes, metrics, the OpenAPI document and the webhook
// routes behind CORS.
// Public: /health, /ready, /metrics, /openapi.json, /webhook/amqpbridge
func NewRouter(cfg *config.Config, broker Broker, doc []byte, logger *logging.Logger) http.Handler {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(requestMetrics(), breadcrumb.Middleware(), fault.Middleware(logger))

	// Liveness: confirms the process is running.
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Readiness: confirms the broker is reachable.
	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
		defer cancel()

		if err := broker.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not_ready",
				"broker": broker.Kind(),
				"error":  err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "broker": broker.Kind()})
	})

	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	handlers.RegisterOpenAPIRoutes(r, doc, logger)
	handlers.RegisterPingRoutes(r, logger)
	handlers.RegisterEventRoutes(r, broker, handlers.EventOptions{
		MaxBodyBytes:        cfg.Server.MaxBodyBytes,
		ExtractEventHeaders: cfg.Diagnostics.ExtractEventHeaders,
	}, logger)

	return withCORS(cfg.CORS, r)
}

func withCORS(cfg config.CORSConfig, h http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: cfg.AllowedHeaders,
		ExposedHeaders: []string{breadcrumb.Header},
	}).Handler(h)
}

// requestMetrics must run first so it observes the status written by the
// fault middleware.
func requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.WebhookRequests.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Inc()
	}
}

// NewServer builds the HTTP server for handler using the configured timeouts.
func NewServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}
