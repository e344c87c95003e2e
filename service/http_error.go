package service

import (
	"errors"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

// RegisterErrorHandler installs the coded error handler on e.
//
// Called from every cmd main and from handler tests.
func RegisterErrorHandler(e *echo.Echo, logger log.Logger) {
	e.HTTPErrorHandler = NewHTTPErrorHandler(NewErrorCodeToStatusCodeMaps(), logger).Handler
}

// NewErrorCodeToStatusCodeMaps creates the error code to HTTP status mapping. Resolution failures that are the
// registry's or the backend's fault map to 502/503 so that a failed resolution aborts the request with a gateway
// class status.
func NewErrorCodeToStatusCodeMaps() map[string]int {
	var errorCodeToStatusCodeMaps = make(map[string]int)
	errorCodeToStatusCodeMaps[ErrBadParameter] = http.StatusBadRequest
	errorCodeToStatusCodeMaps[ErrEntityNotFound] = http.StatusNotFound
	errorCodeToStatusCodeMaps[ErrInternalServerError] = http.StatusInternalServerError
	errorCodeToStatusCodeMaps[ErrRegistryUnavailable] = http.StatusServiceUnavailable
	errorCodeToStatusCodeMaps[ErrServiceUnavailable] = http.StatusServiceUnavailable
	errorCodeToStatusCodeMaps[ErrInvalidInstanceMetadata] = http.StatusBadGateway
	errorCodeToStatusCodeMaps[ErrConnectionFailed] = http.StatusBadGateway
	errorCodeToStatusCodeMaps[ErrStreamTerminated] = http.StatusBadGateway

	return errorCodeToStatusCodeMaps
}

// HTTPErrorHandler turns handler and middleware errors into the coded JSON body {"error":{...}}.
type HTTPErrorHandler struct {
	errorCodeToHTTPStatusCodeMap map[string]int
	logger                       log.Logger
}

// NewHTTPErrorHandler creates the handler over a code to status mapping (NewErrorCodeToStatusCodeMaps).
func NewHTTPErrorHandler(errorCodeToStatusCodeMaps map[string]int, logger log.Logger) *HTTPErrorHandler {
	return &HTTPErrorHandler{
		errorCodeToHTTPStatusCodeMap: errorCodeToStatusCodeMaps,
		logger:                       logger,
	}
}

// Handler writes the error response. Responses already committed (a running SSE stream) are left alone; the SSE
// writer reports those failures in-band. Client errors are logged at warn, everything else at error.
func (h *HTTPErrorHandler) Handler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	myErr, status := h.classify(err)

	logger := level.Error(h.logger)
	if status < http.StatusInternalServerError {
		logger = level.Warn(h.logger)
	}
	logger.Log("msg", "HTTP request error", "method", c.Request().Method, "path", c.Request().URL.Path,
		"status", status, "code", myErr.Code, "service", myErr.Service, "err", err)

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, ErrResponse{Error: myErr})
}

// classify returns the coded error and status for err.
//
// A MyError anywhere in the chain wins and takes its status from the mapping (500 for unknown codes). Echo's own
// errors (unknown route, validator rejections) keep their status; 404 becomes entity_not_found, 400 and kin-openapi
// request errors become bad_parameter. Anything else is an internal_server_error.
func (h *HTTPErrorHandler) classify(err error) (*MyError, int) {
	if myErr := ToMyError(err); myErr != nil {
		status, ok := h.errorCodeToHTTPStatusCodeMap[myErr.Code]
		if !ok {
			status = http.StatusInternalServerError
		}
		return myErr, status
	}

	var he *echo.HTTPError
	if !errors.As(err, &he) {
		return NewMyError(ErrInternalServerError, "an internal server error has occurred", err), http.StatusInternalServerError
	}
	if inner, ok := he.Internal.(*echo.HTTPError); ok {
		he = inner
	}
	code := ErrInternalServerError
	switch {
	case he.Code == http.StatusNotFound:
		code = ErrEntityNotFound
	case he.Code == http.StatusBadRequest, isRequestValidationError(he.Internal):
		code = ErrBadParameter
	case he.Code < http.StatusInternalServerError:
		code = ErrBadParameter
	}
	message, ok := he.Message.(string)
	if !ok {
		message = http.StatusText(he.Code)
	}
	return NewMyError(code, message, err), he.Code
}

func isRequestValidationError(err error) bool {
	var requestError *openapi3filter.RequestError
	return err != nil && errors.As(err, &requestError)
}

// ErrResponse from server.
type ErrResponse struct {
	Error *MyError `json:"error,omitempty"`
}
