package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reactivemesh/adapters/memory"
	"reactivemesh/adapters/myredis"
	"reactivemesh/api"
	"reactivemesh/handlers"
	"reactivemesh/interfaces"
	"reactivemesh/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Initialize logger
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.WithPrefix(logger, "ts", log.DefaultTimestampUTC)
	logger = log.WithPrefix(logger, "caller", log.DefaultCaller)

	level.Info(logger).Log("msg", "Starting discoverer service")

	// Load configuration
	config, err := LoadConfig()
	if err != nil {
		level.Error(logger).Log("msg", "Failed to load configuration", "err", err)
		os.Exit(1)
	}
	level.Info(logger).Log(
		"msg", "Configuration loaded",
		"service_port_http", config.HTTPPort,
		"store", config.Store,
		"redis_addr", config.RedisAddr,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	timeProvider := service.NewUTCTimeProvider()
	registry := prometheus.NewRegistry()
	metrics := service.NewMetrics(registry)

	// Registration store
	var store interfaces.RegistrationStore
	var purge func(ctx context.Context) error
	switch config.Store {
	case storeRedis:
		redisClient, err := myredis.NewRedisUniversalClient(config.RedisAddr,
			myredis.WithPoolSize(config.RedisPoolSize), myredis.WithTimeouts(redisDialTimeout, 0))
		if err != nil {
			level.Error(logger).Log("msg", "Failed to create Redis client", "err", err)
			os.Exit(1)
		}
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(ctx, redisDialTimeout)
		err = redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			level.Error(logger).Log("msg", "Failed to connect to Redis", "err", err)
			os.Exit(1)
		}
		level.Info(logger).Log("msg", "Connected to Redis")
		store = myredis.NewRegistrationStore(redisClient)
	case storeMemory:
		memoryStore := memory.NewRegistrationStore(timeProvider)
		store = memoryStore
		purge = func(ctx context.Context) error {
			return runPurge(ctx, memoryStore, config.PurgeInterval, logger)
		}
	}

	// Create HTTP server (Echo)
	var e *echo.Echo
	{
		doc, err := api.LoadSwagger()
		if err != nil {
			level.Error(logger).Log("msg", "Failed to load OpenAPI document", "err", err)
			os.Exit(1)
		}
		validator, err := handlers.NewOpenAPIValidator(doc)
		if err != nil {
			level.Error(logger).Log("msg", "Failed to create request validator", "err", err)
			os.Exit(1)
		}

		e = echo.New()
		e.HideBanner = true
		service.RegisterErrorHandler(e, logger)
		handlers.RegisterOpsRoutes(e, registry)
		e.Use(validator)
		handlers.RegisterHandlers(e, handlers.NewRegistryServer(store, timeProvider, metrics, logger))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := fmt.Sprintf(":%d", config.HTTPPort)
		level.Info(logger).Log("msg", "Starting HTTP server", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	if purge != nil {
		g.Go(func() error { return purge(gctx) })
	}
	g.Go(func() error {
		<-gctx.Done()
		level.Info(logger).Log("msg", "Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			level.Error(logger).Log("msg", "Error during server shutdown", "err", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		level.Error(logger).Log("msg", "Server failed", "err", err)
		os.Exit(1)
	}
	level.Info(logger).Log("msg", "Server stopped")
}

// purger is the part of the memory registration store used by runPurge.
type purger interface {
	Purge() int
}

// runPurge removes expired registrations from store every interval until ctx is done. Lookups already skip expired
// entries; the sweep only bounds memory held by instances that never come back.
func runPurge(ctx context.Context, store purger, interval time.Duration, logger log.Logger) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := store.Purge(); n > 0 {
				level.Debug(logger).Log("msg", "expired registrations purged", "count", n)
			}
		}
	}
}
