package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterOpsRoutes adds GET /healthz (liveness, {"status":"ok"}) and GET /metrics (Prometheus exposition of
// gatherer) to e.
//
// Called from every cmd main.
func RegisterOpsRoutes(e *echo.Echo, gatherer prometheus.Gatherer) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}
