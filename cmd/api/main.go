package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PratikDhanave/webhook-events-bridge/internal/config"
	"github.com/PratikDhanave/webhook-events-bridge/internal/httpserver"
	"github.com/PratikDhanave/webhook-events-bridge/internal/logging"
	"github.com/PratikDhanave/webhook-events-bridge/internal/openapi"
	"github.com/PratikDhanave/webhook-events-bridge/internal/publisher"
)

const serviceName = "webhook-events-bridge"

// main boots the bridge: config → logger → broker → HTTP server → shutdown.
func main() {
	started := time.Now()

	configPath := flag.String("config", "", "path to a YAML config file (optional)")
	flag.Parse()

	// Defaults, then the optional file, then BRIDGE_* environment overrides.
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(logging.ParseLevel(cfg.Logging.Level), cfg.Logging.Format).
		With(logging.Service(serviceName))
	logging.SetDefault(logger)

	doc, err := openapi.Load(cfg.API.OpenAPIPath)
	if err != nil {
		logger.Error("load openapi document", logging.Error(err))
		os.Exit(1)
	}

	pub, err := publisher.New(cfg.Broker, logger)
	if err != nil {
		logger.Error("create publisher", logging.Error(err))
		os.Exit(1)
	}

	// The broker may come up after us; /ready reports it until then.
	pingCtx, cancel := context.WithTimeout(context.Background(), cfg.Broker.DialTimeout)
	if err := pub.Ping(pingCtx); err != nil {
		logger.Warn("broker not reachable at startup", logging.Broker(pub.Kind()), logging.Error(err))
	}
	cancel()

	srv := httpserver.NewServer(cfg.Server, httpserver.NewRouter(cfg, pub, doc, logger))

	go func() {
		logger.Info("server started",
			slog.String("addr", srv.Addr),
			logging.Broker(pub.Kind()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", logging.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, stop := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer stop()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", logging.Error(err))
	}
	if err := pub.Close(); err != nil {
		logger.Error("close publisher", logging.Error(err))
	}

	logger.Info("stopped", slog.Duration("uptime", time.Since(started)))
}
