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
	"reactivemesh/handlers"
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

	level.Info(logger).Log("msg", "Starting gateway")

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
		"routes", len(config.Routes),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	registry := prometheus.NewRegistry()
	metrics := service.NewMetrics(registry)

	// Route table; the Gateway header carries the canonical name of this host
	hostname := adapters.NewOSHostname(net.DefaultResolver, config.HostnameTimeout, logger)
	matcher, err := service.NewRouteMatcher(RouteRules(config.Routes, hostname))
	if err != nil {
		level.Error(logger).Log("msg", "Invalid route table", "err", err)
		os.Exit(1)
	}
	if name, ok := hostname.Hostname(); ok {
		level.Info(logger).Log("msg", "Gateway header resolved", "hostname", name)
	}

	// Forwarding is plain HTTP: instances are located through the registry, no streaming connections are held.
	locator := service.NewInstanceLocator(
		adapters.RegistryHTTP(config.RegistryURL, &http.Client{}, config.RegistryTimeout, metrics),
		config.RegistryTimeout,
		logger,
	)

	// Create HTTP server (Echo)
	var e *echo.Echo
	{
		e = echo.New()
		e.HideBanner = true
		e.Server.BaseContext = func(net.Listener) context.Context { return gctx }
		service.RegisterErrorHandler(e, logger)
		e.Use(service.NewGateway(matcher, locator, logger).Middleware())
		handlers.RegisterOpsRoutes(e, registry)
	}

	g.Go(func() error {
		addr := fmt.Sprintf(":%d", config.HTTPPort)
		level.Info(logger).Log("msg", "Starting HTTP server", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
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
