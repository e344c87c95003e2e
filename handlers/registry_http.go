// Package handlers contains the HTTP and gRPC handlers of the reactivemesh services: the discoverer API, the SSE
// endpoints, the account listing and the account stream gRPC server.
package handlers

import (
	"fmt"
	"net/http"

	"reactivemesh/api"
	"reactivemesh/helpers"
	"reactivemesh/interfaces"
	"reactivemesh/service"

	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface is the discoverer API described by api/discoverer.openapi.yaml.
type ServerInterface interface {
	// (POST /v1/register)
	RegisterInstance(ctx echo.Context) error
	// (POST /v1/unregister/{service_name}/{instance_id})
	UnregisterInstance(ctx echo.Context, serviceName string, instanceId string) error
	// (GET /v1/services/{service_name}/instances)
	GetInstances(ctx echo.Context, serviceName string) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// RegisterInstance converts echo context to params.
func (w *ServerInterfaceWrapper) RegisterInstance(ctx echo.Context) error {
	return w.Handler.RegisterInstance(ctx)
}

// UnregisterInstance converts echo context to params.
func (w *ServerInterfaceWrapper) UnregisterInstance(ctx echo.Context) error {
	serviceName, err := pathParam(ctx, "service_name")
	if err != nil {
		return err
	}
	instanceId, err := pathParam(ctx, "instance_id")
	if err != nil {
		return err
	}
	return w.Handler.UnregisterInstance(ctx, serviceName, instanceId)
}

// GetInstances converts echo context to params.
func (w *ServerInterfaceWrapper) GetInstances(ctx echo.Context) error {
	serviceName, err := pathParam(ctx, "service_name")
	if err != nil {
		return err
	}
	return w.Handler.GetInstances(ctx, serviceName)
}

// pathParam binds a required simple-style path parameter; the runtime unescapes it since echo matches on the raw
// path.
func pathParam(ctx echo.Context, name string) (string, error) {
	var v string
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &v,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return v, nil
}

// EchoRouter is the part of *echo.Echo and *echo.Group used by RegisterHandlers.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	wrapper := ServerInterfaceWrapper{Handler: si}
	router.POST("/v1/register", wrapper.RegisterInstance)
	router.POST("/v1/unregister/:service_name/:instance_id", wrapper.UnregisterInstance)
	router.GET("/v1/services/:service_name/instances", wrapper.GetInstances)
}

// RegistryServer implements ServerInterface over a RegistrationStore. Every register call is a heartbeat: the
// registration's LastHeartbeat is set to the current time and its TTL restarts.
type RegistryServer struct {
	store        interfaces.RegistrationStore
	timeProvider interfaces.TimeProvider
	metrics      *service.Metrics
	logger       log.Logger
}

var _ ServerInterface = (*RegistryServer)(nil)

// NewRegistryServer creates the discoverer API handler. Panics on nil dependencies.
//
// Called from cmd/discoverer main.
func NewRegistryServer(store interfaces.RegistrationStore, timeProvider interfaces.TimeProvider, metrics *service.Metrics, logger log.Logger) *RegistryServer {
	return &RegistryServer{
		store:        helpers.NilPanic(store, "handlers.registry_http.go: store is required"),
		timeProvider: helpers.NilPanic(timeProvider, "handlers.registry_http.go: timeProvider is required"),
		metrics:      helpers.NilPanic(metrics, "handlers.registry_http.go: metrics is required"),
		logger:       log.With(helpers.NilPanic(logger, "handlers.registry_http.go: logger is required"), "component", "RegistryServer"),
	}
}

// RegisterInstance (POST /v1/register) stores or refreshes the registration. Returns 200 on success, 400 on
// parse/validation error, 500 on store error.
func (h *RegistryServer) RegisterInstance(ectx echo.Context) error {
	var req api.RegisterRequest
	if err := ectx.Bind(&req); err != nil {
		h.observe("register", err)
		return service.NewBadParameterError("invalid request body", err)
	}

	reg, err := fromRegisterRequest(req, h.timeProvider.Now())
	if err != nil {
		h.observe("register", err)
		return fmt.Errorf("registerInstance failed to convert request, err: %w", err)
	}

	if err := h.store.Put(ectx.Request().Context(), reg); err != nil {
		h.observe("register", err)
		return fmt.Errorf("registerInstance failed to store %s/%s, err: %w", reg.ServiceName, reg.InstanceID, err)
	}
	h.observe("register", nil)
	return ectx.NoContent(http.StatusOK)
}

// UnregisterInstance (POST /v1/unregister/{service_name}/{instance_id}) removes the registration; unknown
// instances are not an error.
func (h *RegistryServer) UnregisterInstance(ectx echo.Context, serviceName string, instanceId string) error {
	if err := h.store.Delete(ectx.Request().Context(), serviceName, instanceId); err != nil {
		h.observe("unregister", err)
		return fmt.Errorf("unregisterInstance failed to delete %s/%s, err: %w", serviceName, instanceId, err)
	}
	h.observe("unregister", nil)
	return ectx.NoContent(http.StatusOK)
}

// GetInstances (GET /v1/services/{service_name}/instances) returns the live instances of the service, possibly
// none.
func (h *RegistryServer) GetInstances(ectx echo.Context, serviceName string) error {
	regs, err := h.store.List(ectx.Request().Context(), serviceName)
	if err != nil {
		h.observe("lookup", err)
		return fmt.Errorf("getInstances failed to list %s, err: %w", serviceName, err)
	}
	h.observe("lookup", nil)
	return ectx.JSON(http.StatusOK, toInstancesResponse(regs))
}

func (h *RegistryServer) observe(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	h.metrics.RegistryOperations.WithLabelValues(operation, result).Inc()
}
