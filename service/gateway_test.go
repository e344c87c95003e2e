package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"reactivemesh/domain"
	"reactivemesh/interfaces/mock"

	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestBackend returns an HTTP server echoing the request path and its host:port.
func newTestBackend(t *testing.T) (string, int) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Backend", "yes")
		_, _ = io.WriteString(w, "path="+r.URL.Path)
	}))
	t.Cleanup(srv.Close)
	return splitAddr(t, srv.Listener.Addr().String())
}

func newTestGateway(t *testing.T, locator *mock.InstanceLocatorMock, hostname *mock.HostnameProviderMock) *echo.Echo {
	t.Helper()
	matcher, err := NewRouteMatcher([]domain.RouteRule{
		{
			Prefix:  "/account/",
			Service: domain.AccountServiceName,
			Headers: []domain.HeaderRule{
				domain.StaticHeader(domain.HeaderService, domain.AccountServiceName),
				{Name: domain.HeaderGateway, Value: hostname.Hostname},
			},
		},
		{
			Prefix:  "/profile/",
			Service: domain.ProfileServiceName,
			Headers: []domain.HeaderRule{domain.StaticHeader(domain.HeaderService, domain.ProfileServiceName)},
		},
	})
	require.NoError(t, err)

	e := echo.New()
	RegisterErrorHandler(e, log.NewNopLogger())
	e.Use(NewGateway(matcher, locator, log.NewNopLogger()).Middleware())
	return e
}

func TestNewGateway_Panics(t *testing.T) {
	matcher := &mock.RouteMatcherMock{}
	locator := &mock.InstanceLocatorMock{}
	logger := log.NewNopLogger()

	assert.PanicsWithValue(t, "service.gateway.go: matcher is required", func() {
		NewGateway(nil, locator, logger)
	})
	assert.PanicsWithValue(t, "service.gateway.go: locator is required", func() {
		NewGateway(matcher, nil, logger)
	})
	assert.PanicsWithValue(t, "service.gateway.go: logger is required", func() {
		NewGateway(matcher, locator, nil)
	})
}

func TestGateway_Forward(t *testing.T) {
	host, port := newTestBackend(t)
	locator := &mock.InstanceLocatorMock{
		LocateFunc: func(ctx context.Context, serviceName string) (domain.ServiceInstance, error) {
			return domain.ServiceInstance{ServiceName: serviceName, InstanceID: "i1", Host: host, Port: port}, nil
		},
	}

	t.Run("account_route_sets_service_and_gateway_headers", func(t *testing.T) {
		hostname := &mock.HostnameProviderMock{HostnameFunc: func() (string, bool) { return "gw.example.internal", true }}
		e := newTestGateway(t, locator, hostname)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/account/42", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "path=/account/42", rec.Body.String())
		assert.Equal(t, domain.AccountServiceName, rec.Header().Get(domain.HeaderService))
		assert.Equal(t, "gw.example.internal", rec.Header().Get(domain.HeaderGateway))
		assert.Equal(t, "yes", rec.Header().Get("X-Backend"))
	})

	t.Run("hostname_failure_omits_gateway_header_only", func(t *testing.T) {
		hostname := &mock.HostnameProviderMock{HostnameFunc: func() (string, bool) { return "", false }}
		e := newTestGateway(t, locator, hostname)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/account/42", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, domain.AccountServiceName, rec.Header().Get(domain.HeaderService))
		_, present := rec.Header()[domain.HeaderGateway]
		assert.False(t, present)
	})

	t.Run("profile_route_locates_profile_service", func(t *testing.T) {
		e := newTestGateway(t, locator, &mock.HostnameProviderMock{})
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/profile/sse/Josh", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, domain.ProfileServiceName, rec.Header().Get(domain.HeaderService))
		calls := locator.LocateCalls()
		assert.Equal(t, domain.ProfileServiceName, calls[len(calls)-1].ServiceName)
	})
}

func TestGateway_UnmatchedPathIsNotFound(t *testing.T) {
	locator := &mock.InstanceLocatorMock{}
	e := newTestGateway(t, locator, &mock.HostnameProviderMock{})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/unknown", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, locator.LocateCalls())
	assert.Empty(t, rec.Header().Get(domain.HeaderService))
}

func TestGateway_LocateFailure(t *testing.T) {
	locator := &mock.InstanceLocatorMock{
		LocateFunc: func(ctx context.Context, serviceName string) (domain.ServiceInstance, error) {
			return domain.ServiceInstance{}, NewServiceUnavailableError(serviceName)
		},
	}
	e := newTestGateway(t, locator, &mock.HostnameProviderMock{})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/account/42", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), ErrServiceUnavailable)
}

func TestGateway_BalancerStaticTargetsRefused(t *testing.T) {
	g := NewGateway(&mock.RouteMatcherMock{}, &mock.InstanceLocatorMock{}, log.NewNopLogger())
	assert.False(t, g.AddTarget(nil))
	assert.False(t, g.RemoveTarget("x"))
}
