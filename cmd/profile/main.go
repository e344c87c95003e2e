package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reactivemesh/adapters"
	"reactivemesh/domain"
	"reactivemesh/handlers"
	"reactivemesh/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

func main() {
	// Initialize logger
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.WithPrefix(logger, "ts", log.DefaultTimestampUTC)
	logger = log.WithPrefix(logger, "caller", log.DefaultCaller)

	level.Info(logger).Log("msg", "Starting profile service")

	// Load configuration
	config, err := LoadConfig()
	if err != nil {
		level.Error(logger).Log("msg", "Failed to load configuration", "err", err)
		os.Exit(1)
	}
	level.Info(logger).Log(
		"msg", "Configuration loaded",
		"service_port_http", config.HTTPPort,
		"registry_url", config.RegistryURL,
		"instance_id", config.InstanceID,
		"target_service", config.TargetService,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	timeProvider := service.NewUTCTimeProvider()
	registry := prometheus.NewRegistry()
	metrics := service.NewMetrics(registry)
	registryClient := adapters.RegistryHTTP(config.RegistryURL, &http.Client{}, config.RegistryTimeout, metrics)

	// Streaming bridge: registry lookup -> cached gRPC connection -> remote account stream
	cache := service.NewConnectionCache(
		service.NewGRPCConnFactory(grpc.WithTransportCredentials(insecure.NewCredentials())),
		config.ConnectTimeout,
		timeProvider,
		metrics,
		logger,
	)
	defer cache.Close()
	resolver := service.NewServiceResolver(registryClient, cache, config.PortMetadataKey, config.ResolveTimeout, logger)
	producer := service.NewRemoteProducer(resolver, cache, config.TargetService, timeProvider, logger)

	// Create HTTP server (Echo)
	var e *echo.Echo
	{
		e = echo.New()
		e.HideBanner = true
		// Open SSE subscriptions end with the signal context instead of holding Shutdown.
		e.Server.BaseContext = func(net.Listener) context.Context { return gctx }
		service.RegisterErrorHandler(e, logger)
		handlers.RegisterOpsRoutes(e, registry)
		handlers.RegisterProfileRoutes(e, handlers.NewStreamHandler(producer, "profile", config.SSEKeepAlive, metrics, logger))
	}

	heartbeater := service.NewHeartbeater(
		registryClient,
		domain.Registration{
			ServiceName: domain.ProfileServiceName,
			InstanceID:  config.InstanceID,
			Host:        config.InstanceHost,
			Port:        config.HTTPPort,
			Metadata:    map[string]string{},
			TTL:         config.RegistrationTTL,
		},
		logger,
	)

	g.Go(func() error {
		addr := fmt.Sprintf(":%d", config.HTTPPort)
		level.Info(logger).Log("msg", "Starting HTTP server", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error { return heartbeater.Run(gctx) })
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
