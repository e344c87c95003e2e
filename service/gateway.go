package service

import (
	"net"
	"net/url"
	"strconv"

	"reactivemesh/domain"
	"reactivemesh/helpers"
	"reactivemesh/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Gateway forwards HTTP requests to registered services. It is the balancer of echo's proxy middleware: for every
// request it matches the path against the route table, locates an instance of the rule's service through the
// registry (first instance, no streaming connection involved), adds the rule's response headers and returns the
// instance as the proxy target. Paths without a matching rule are skipped and fall through to echo's 404.
//
// Fields: matcher, locator, logger.
type Gateway struct {
	matcher  interfaces.RouteMatcher
	locator  interfaces.InstanceLocator
	logger   log.Logger
}

// NewGateway creates the gateway. Panics on nil matcher, locator or logger.
//
// Called from cmd/gateway main.
func NewGateway(matcher interfaces.RouteMatcher, locator interfaces.InstanceLocator, logger log.Logger) *Gateway {
	return &Gateway{
		matcher:  helpers.NilPanic(matcher, "service.gateway.go: matcher is required"),
		locator:  helpers.NilPanic(locator, "service.gateway.go: locator is required"),
		logger:   log.With(helpers.NilPanic(logger, "service.gateway.go: logger is required"), "component", "gateway"),
	}
}

// Middleware returns echo's proxy middleware driven by this gateway.
//
// Called from cmd/gateway main (e.Use).
func (g *Gateway) Middleware() echo.MiddlewareFunc {
	return middleware.ProxyWithConfig(middleware.ProxyConfig{
		Skipper:  g.skip,
		Balancer: g,
	})
}

// skip reports whether no rule matches the request path.
func (g *Gateway) skip(c echo.Context) bool {
	_, ok := g.matcher.Match(c.Request().URL.Path)
	return !ok
}

// NextTarget implements middleware.TargetProvider.
//
// Returns: (target, nil) with the rule's headers already set on the response; (nil, MyError) when the path matches
// no rule (entity_not_found) or the service cannot be located (registry_unavailable, service_unavailable); echo's
// error handler turns the error into the response.
func (g *Gateway) NextTarget(c echo.Context) (*middleware.ProxyTarget, error) {
	path := c.Request().URL.Path
	rule, ok := g.matcher.Match(path)
	if !ok {
		return nil, NewEntityNotFoundError("no route for "+path, nil)
	}
	instance, err := g.locator.Locate(c.Request().Context(), rule.Service)
	if err != nil {
		level.Warn(g.logger).Log("msg", "locate failed", "path", path, "service", rule.Service, "err", err)
		return nil, err
	}
	applyHeaders(c, rule.Headers)

	target := &url.URL{Scheme: "http", Host: net.JoinHostPort(instance.Host, strconv.Itoa(instance.Port))}
	level.Debug(g.logger).Log("msg", "forward", "path", path, "service", rule.Service, "target", target.Host)
	return &middleware.ProxyTarget{
		Name: instance.InstanceID,
		URL:  target,
		Meta: echo.Map{"service": rule.Service},
	}, nil
}

// Next implements middleware.ProxyBalancer. The proxy middleware prefers NextTarget; Next exists for the interface
// and drops the error.
func (g *Gateway) Next(c echo.Context) *middleware.ProxyTarget {
	target, _ := g.NextTarget(c)
	return target
}

// AddTarget implements middleware.ProxyBalancer. Targets come from the registry, so static targets are refused.
func (g *Gateway) AddTarget(*middleware.ProxyTarget) bool {
	return false
}

// RemoveTarget implements middleware.ProxyBalancer; see AddTarget.
func (g *Gateway) RemoveTarget(string) bool {
	return false
}

// applyHeaders sets every rule header whose value is available; unavailable values are omitted.
func applyHeaders(c echo.Context, headers []domain.HeaderRule) {
	for _, h := range headers {
		if v, ok := h.Value(); ok {
			c.Response().Header().Set(h.Name, v)
		}
	}
}
