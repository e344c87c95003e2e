package handlers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"reactivemesh/helpers"
	"reactivemesh/interfaces"
	"reactivemesh/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

// DefaultKeepAlive is the interval of SSE keep-alive comments.
const DefaultKeepAlive = 15 * time.Second

// StreamHandler serves GET .../sse/:name as text/event-stream from an EventProducer. Each request is an independent
// subscription; the client disconnecting cancels only that subscription.
type StreamHandler struct {
	producer  interfaces.EventProducer
	route     string
	keepAlive time.Duration
	metrics   *service.Metrics
	logger    log.Logger
}

// NewStreamHandler creates the SSE handler.
//
// Parameters: producer — IntervalProducer (account) or RemoteProducer (profile); route — metrics label, e.g.
// "account"; keepAlive — comment interval, non-positive disables keep-alives; metrics, logger — required.
//
// Called from cmd/account and cmd/profile mains.
func NewStreamHandler(producer interfaces.EventProducer, route string, keepAlive time.Duration, metrics *service.Metrics, logger log.Logger) *StreamHandler {
	return &StreamHandler{
		producer:  helpers.NilPanic(producer, "handlers.sse.go: producer is required"),
		route:     helpers.StrPanic(route, "handlers.sse.go: route is required"),
		keepAlive: keepAlive,
		metrics:   helpers.NilPanic(metrics, "handlers.sse.go: metrics is required"),
		logger:    log.With(helpers.NilPanic(logger, "handlers.sse.go: logger is required"), "component", "StreamHandler", "route", route),
	}
}

// Stream handles one subscription. Resolution failures are returned before any byte is written so the error
// handler answers with a 4xx/5xx status. After the headers are sent, a producer failure is reported in-band as an
// "error" event and the response is closed; it is never ended as if the stream had completed.
func (h *StreamHandler) Stream(c echo.Context) error {
	name, err := pathParam(c, "name")
	if err != nil {
		return err
	}
	if name = strings.TrimSpace(name); name == "" {
		return service.NewBadParameterError("name is required", nil)
	}
	requestID := helpers.RequestIDOrNew(c.Request().Header.Get(echo.HeaderXRequestID))
	ctx := helpers.ContextWithRequestID(c.Request().Context(), requestID)
	logger := log.With(h.logger, "request_id", requestID, "name", name)

	stream, err := h.producer.Produce(ctx, name)
	if err != nil {
		h.metrics.SSEConnectionsTotal.WithLabelValues(h.route, "rejected").Inc()
		level.Warn(logger).Log("msg", "subscription rejected", "err", err)
		return err
	}
	defer stream.Cancel()

	h.metrics.SSEConnectionsTotal.WithLabelValues(h.route, "established").Inc()
	h.metrics.SSEConnections.WithLabelValues(h.route).Inc()
	defer h.metrics.SSEConnections.WithLabelValues(h.route).Dec()
	level.Debug(logger).Log("msg", "subscription established")

	resp := c.Response()
	header := resp.Header()
	header.Set(echo.HeaderContentType, "text/event-stream")
	header.Set(echo.HeaderCacheControl, "no-cache")
	header.Set(echo.HeaderConnection, "keep-alive")
	header.Set("X-Accel-Buffering", "no")
	header.Set(echo.HeaderXRequestID, requestID)
	resp.WriteHeader(http.StatusOK)
	w := newSSEWriter(resp)
	if err := w.Flush(); err != nil {
		return nil
	}

	var keepAlive <-chan time.Time
	if h.keepAlive > 0 {
		ticker := time.NewTicker(h.keepAlive)
		defer ticker.Stop()
		keepAlive = ticker.C
	}

	for {
		select {
		case ev, ok := <-stream.Events():
			if !ok {
				return h.finish(logger, w, stream.Err())
			}
			if err := w.WriteEvent(strconv.FormatUint(ev.Sequence, 10), "", ev.Payload); err != nil {
				level.Debug(logger).Log("msg", "client gone", "err", err)
				h.metrics.SSEConnectionsTotal.WithLabelValues(h.route, "completed").Inc()
				return nil
			}
			h.metrics.SSEEventsSent.WithLabelValues(h.route).Inc()
		case <-keepAlive:
			if err := w.WriteComment("keepalive"); err != nil {
				h.metrics.SSEConnectionsTotal.WithLabelValues(h.route, "completed").Inc()
				return nil
			}
		case <-ctx.Done():
			level.Debug(logger).Log("msg", "client disconnected")
			h.metrics.SSEConnectionsTotal.WithLabelValues(h.route, "completed").Inc()
			return nil
		}
	}
}

func (h *StreamHandler) finish(logger log.Logger, w *sseWriter, streamErr error) error {
	if streamErr == nil {
		h.metrics.SSEConnectionsTotal.WithLabelValues(h.route, "completed").Inc()
		level.Debug(logger).Log("msg", "subscription completed")
		return nil
	}
	h.metrics.SSEConnectionsTotal.WithLabelValues(h.route, "failed").Inc()
	level.Error(logger).Log("msg", "subscription failed", "err", streamErr)

	myErr := service.ToMyError(streamErr)
	if myErr == nil {
		myErr = service.NewStreamTerminatedError(h.route, streamErr)
	}
	data, err := json.Marshal(myErr)
	if err != nil {
		data = []byte(myErr.Code)
	}
	_ = w.WriteEvent("", "error", string(data))
	return nil
}

// sseWriter formats server-sent events onto a buffered response and flushes after every event.
type sseWriter struct {
	buf     *bufio.Writer
	flusher http.Flusher
}

func newSSEWriter(w io.Writer) *sseWriter {
	flusher, _ := w.(http.Flusher)
	return &sseWriter{buf: bufio.NewWriter(w), flusher: flusher}
}

// WriteEvent writes one event. Empty id or event fields are omitted; multi-line data is split into data lines.
func (w *sseWriter) WriteEvent(id, event, data string) error {
	if id != "" {
		if _, err := fmt.Fprintf(w.buf, "id: %s\n", id); err != nil {
			return err
		}
	}
	if event != "" {
		if _, err := fmt.Fprintf(w.buf, "event: %s\n", event); err != nil {
			return err
		}
	}
	for _, line := range strings.Split(data, "\n") {
		if _, err := fmt.Fprintf(w.buf, "data: %s\n", line); err != nil {
			return err
		}
	}
	if _, err := w.buf.WriteString("\n"); err != nil {
		return err
	}
	return w.Flush()
}

// WriteComment writes a comment line, ignored by clients.
func (w *sseWriter) WriteComment(comment string) error {
	if _, err := fmt.Fprintf(w.buf, ": %s\n\n", comment); err != nil {
		return err
	}
	return w.Flush()
}

// Flush pushes buffered bytes to the client.
func (w *sseWriter) Flush() error {
	if err := w.buf.Flush(); err != nil {
		return err
	}
	if w.flusher != nil {
		w.flusher.Flush()
	}
	return nil
}
