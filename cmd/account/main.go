package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"reactivemesh/adapters"
	"reactivemesh/adapters/memory"
	"reactivemesh/adapters/myredis"
	"reactivemesh/domain"
	"reactivemesh/handlers"
	"reactivemesh/interfaces"
	"reactivemesh/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

func main() {
	// Initialize logger
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.WithPrefix(logger, "ts", log.DefaultTimestampUTC)
	logger = log.WithPrefix(logger, "caller", log.DefaultCaller)

	level.Info(logger).Log("msg", "Starting account service")

	// Load configuration
	config, err := LoadConfig()
	if err != nil {
		level.Error(logger).Log("msg", "Failed to load configuration", "err", err)
		os.Exit(1)
	}
	level.Info(logger).Log(
		"msg", "Configuration loaded",
		"service_port_http", config.HTTPPort,
		"service_port_grpc", config.GRPCPort,
		"registry_url", config.RegistryURL,
		"instance_id", config.InstanceID,
		"store", config.Store,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	timeProvider := service.NewUTCTimeProvider()
	registry := prometheus.NewRegistry()
	metrics := service.NewMetrics(registry)

	// Account store, seeded with the sample accounts
	var accounts interfaces.AccountStore
	switch config.Store {
	case storeRedis:
		redisClient, err := myredis.NewRedisUniversalClient(config.RedisAddr, myredis.WithTimeouts(redisDialTimeout, 0))
		if err != nil {
			level.Error(logger).Log("msg", "Failed to create Redis client", "err", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		accounts = myredis.NewAccountStore(redisClient)
	case storeMemory:
		accounts = memory.NewAccountStore()
	}
	{
		seedCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := service.SeedAccounts(seedCtx, accounts, service.DefaultAccountNames, logger)
		cancel()
		if err != nil {
			level.Error(logger).Log("msg", "Failed to seed accounts", "err", err)
			os.Exit(1)
		}
	}

	producer := service.NewIntervalProducer(config.EventInterval, timeProvider, logger)

	// Create HTTP server (Echo)
	var e *echo.Echo
	{
		e = echo.New()
		e.HideBanner = true
		// Open SSE subscriptions end with the signal context instead of holding Shutdown.
		e.Server.BaseContext = func(net.Listener) context.Context { return gctx }
		service.RegisterErrorHandler(e, logger)
		handlers.RegisterOpsRoutes(e, registry)
		handlers.RegisterAccountRoutes(e,
			handlers.NewAccountsHandler(accounts),
			handlers.NewStreamHandler(producer, domain.AccountRoute, config.SSEKeepAlive, metrics, logger),
		)
	}

	// Create gRPC server serving the account stream route
	var grpcServer *grpc.Server
	{
		errorCodeOption := grpc.ChainStreamInterceptor(service.ErrorToGRPCStreamInterceptor(logger))
		grpcServer = grpc.NewServer(errorCodeOption)
		service.RegisterAccountStreamServer(grpcServer, handlers.NewAccountStreamServer(producer, logger))

		// Register health check service
		healthServer := health.NewServer()
		healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
		grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)

		reflection.Register(grpcServer)
	}

	grpcAddr := fmt.Sprintf(":%d", config.GRPCPort)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		level.Error(logger).Log("msg", "Failed to listen", "addr", grpcAddr, "err", err)
		os.Exit(1)
	}

	// Registration in the discovery registry; the streaming port is published as metadata
	heartbeater := service.NewHeartbeater(
		adapters.RegistryHTTP(config.RegistryURL, &http.Client{}, config.RegistryTimeout, metrics),
		domain.Registration{
			ServiceName: domain.AccountServiceName,
			InstanceID:  config.InstanceID,
			Host:        config.InstanceHost,
			Port:        config.HTTPPort,
			Metadata:    map[string]string{domain.StreamPortMetadataKey: strconv.Itoa(config.GRPCPort)},
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
	g.Go(func() error {
		level.Info(logger).Log("msg", "Starting gRPC server", "addr", grpcAddr)
		if err := grpcServer.Serve(lis); err != nil {
			return fmt.Errorf("grpc server: %w", err)
		}
		return nil
	})
	g.Go(func() error { return heartbeater.Run(gctx) })
	g.Go(func() error {
		<-gctx.Done()
		level.Info(logger).Log("msg", "Shutting down servers...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			level.Error(logger).Log("msg", "Error during HTTP server shutdown", "err", err)
		}
		stopGRPC(shutdownCtx, grpcServer)
		return nil
	})

	if err := g.Wait(); err != nil {
		level.Error(logger).Log("msg", "Server failed", "err", err)
		os.Exit(1)
	}
	level.Info(logger).Log("msg", "Server stopped")
}

// stopGRPC stops s gracefully, or forcibly once ctx is done: account streams are infinite and only end when the
// client goes away.
func stopGRPC(ctx context.Context, s *grpc.Server) {
	stopped := make(chan struct{})
	go func() {
		s.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-ctx.Done():
		s.Stop()
	}
}
