package service

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"reactivemesh/domain"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewErrorCodeToStatusCodeMaps(t *testing.T) {
	m := NewErrorCodeToStatusCodeMaps()
	require.NotNil(t, m)
	assert.Equal(t, http.StatusBadRequest, m[ErrBadParameter])
	assert.Equal(t, http.StatusNotFound, m[ErrEntityNotFound])
	assert.Equal(t, http.StatusInternalServerError, m[ErrInternalServerError])
	assert.Equal(t, http.StatusServiceUnavailable, m[ErrRegistryUnavailable])
	assert.Equal(t, http.StatusServiceUnavailable, m[ErrServiceUnavailable])
	assert.Equal(t, http.StatusBadGateway, m[ErrInvalidInstanceMetadata])
	assert.Equal(t, http.StatusBadGateway, m[ErrConnectionFailed])
	assert.Equal(t, http.StatusBadGateway, m[ErrStreamTerminated])
}

func serveError(t *testing.T, method string, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/profile/sse/Josh", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	NewHTTPErrorHandler(NewErrorCodeToStatusCodeMaps(), log.NewNopLogger()).Handler(err, c)
	return rec
}

func decodeErr(t *testing.T, rec *httptest.ResponseRecorder) *MyError {
	t.Helper()
	var body ErrResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.NotNil(t, body.Error)
	return body.Error
}

func TestHTTPErrorHandler_Handler_MyError_ReturnsMappedStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "bad_parameter", err: NewBadParameterError("invalid body", nil), status: http.StatusBadRequest, code: ErrBadParameter},
		{name: "service_unavailable", err: NewServiceUnavailableError("ghost-service"), status: http.StatusServiceUnavailable, code: ErrServiceUnavailable},
		{name: "registry_unavailable_wrapped", err: errors.Join(errors.New("ctx"), NewRegistryUnavailableError(domain.AccountServiceName, nil)), status: http.StatusServiceUnavailable, code: ErrRegistryUnavailable},
		{name: "connection_failed", err: NewConnectionFailedError(domain.AccountServiceName, errors.New("refused")), status: http.StatusBadGateway, code: ErrConnectionFailed},
		{name: "plain_error", err: assert.AnError, status: http.StatusInternalServerError, code: ErrInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serveError(t, http.MethodGet, tt.err)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, decodeErr(t, rec).Code)
		})
	}
}

func TestHTTPErrorHandler_Handler_ServiceNameIsExposed(t *testing.T) {
	rec := serveError(t, http.MethodGet, NewServiceUnavailableError("ghost-service"))
	assert.Equal(t, "ghost-service", decodeErr(t, rec).Service)
}

func TestHTTPErrorHandler_Handler_EchoHTTPError_WithRequestError_ReturnsBadParameter(t *testing.T) {
	reqErr := &openapi3filter.RequestError{Err: assert.AnError}
	he := echo.NewHTTPError(http.StatusBadRequest, "request body has an error")
	he.Internal = reqErr

	rec := serveError(t, http.MethodPost, he)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, ErrBadParameter, decodeErr(t, rec).Code)
}

func TestHTTPErrorHandler_Handler_EchoNotFound(t *testing.T) {
	rec := serveError(t, http.MethodGet, echo.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, ErrEntityNotFound, decodeErr(t, rec).Code)
}

func TestHTTPErrorHandler_Handler_HeadGetsNoBody(t *testing.T) {
	rec := serveError(t, http.MethodHead, echo.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
}

func TestHTTPErrorHandler_Handler_CommittedResponseIsLeftAlone(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/account/sse/Josh", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Response().WriteHeader(http.StatusOK)

	NewHTTPErrorHandler(NewErrorCodeToStatusCodeMaps(), log.NewNopLogger()).Handler(NewStreamTerminatedError(domain.AccountServiceName, nil), c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
}

func TestRegisterErrorHandler(t *testing.T) {
	e := echo.New()
	RegisterErrorHandler(e, log.NewNopLogger())
	require.NotNil(t, e.HTTPErrorHandler)
}

func TestHTTPErrorHandler_Handler_MethodNotAllowedIsBadParameter(t *testing.T) {
	rec := serveError(t, http.MethodPut, echo.ErrMethodNotAllowed)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	body := decodeErr(t, rec)
	assert.Equal(t, ErrBadParameter, body.Code)
	assert.Equal(t, "Method Not Allowed", body.Message)
}

func TestHTTPErrorHandler_Handler_UnknownCodeIs500(t *testing.T) {
	rec := serveError(t, http.MethodGet, NewMyError("quota_exceeded", "too many", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "quota_exceeded", decodeErr(t, rec).Code)
}
