package scenario

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
)

// SSEEvent is one server-sent event as read by ReadSSE.
type SSEEvent struct {
	ID    string
	Event string
	Data  string
}

// OpenSSE issues GET baseURL+path with Accept: text/event-stream and checks the response is an event stream.
// The caller closes the returned body (or cancels ctx) to unsubscribe.
func OpenSSE(ctx context.Context, client *http.Client, baseURL, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(baseURL, "/")+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: status %d, body %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if ct := resp.Header.Get(echo.HeaderContentType); !strings.HasPrefix(ct, "text/event-stream") {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: content type %q, want text/event-stream", path, ct)
	}
	return resp, nil
}

// SSEReader parses server-sent events from a stream. Comment lines (keep-alives) are skipped; multi-line data is
// joined with "\n".
type SSEReader struct {
	r *bufio.Reader
}

// NewSSEReader wraps r.
func NewSSEReader(r io.Reader) *SSEReader {
	return &SSEReader{r: bufio.NewReader(r)}
}

// Next returns the next complete event, or io.EOF when the stream ends first.
func (s *SSEReader) Next() (SSEEvent, error) {
	var (
		current SSEEvent
		data    []string
		pending bool
	)
	for {
		line, err := s.r.ReadString('\n')
		if err != nil {
			return SSEEvent{}, err
		}
		line = strings.TrimRight(line, "\r\n")
		switch {
		case line == "":
			if pending {
				current.Data = strings.Join(data, "\n")
				return current, nil
			}
		case strings.HasPrefix(line, ":"):
		default:
			field, value, _ := strings.Cut(line, ":")
			value = strings.TrimPrefix(value, " ")
			pending = true
			switch field {
			case "id":
				current.ID = value
			case "event":
				current.Event = value
			case "data":
				data = append(data, value)
			}
		}
	}
}

// ReadSSE reads up to n events from r. It stops early on EOF and returns the events read so far.
func ReadSSE(r io.Reader, n int) ([]SSEEvent, error) {
	reader := NewSSEReader(r)
	var events []SSEEvent
	for len(events) < n {
		ev, err := reader.Next()
		if err == io.EOF {
			return events, nil
		}
		if err != nil {
			return events, err
		}
		events = append(events, ev)
	}
	return events, nil
}

// VerifyGreetings checks that events are consecutive greetings for name: ids 0..n-1, no error event, payload
// "Hello {name} @ {timestamp}".
func VerifyGreetings(events []SSEEvent, name string, n int) error {
	if len(events) != n {
		return fmt.Errorf("received %d events, want %d", len(events), n)
	}
	prefix := "Hello " + name + " @ "
	for i, ev := range events {
		if ev.Event == "error" {
			return fmt.Errorf("event %d is an error event: %s", i, ev.Data)
		}
		if ev.ID != fmt.Sprint(i) {
			return fmt.Errorf("event %d: id=%q, want %d", i, ev.ID, i)
		}
		if !strings.HasPrefix(ev.Data, prefix) {
			return fmt.Errorf("event %d: data=%q, want prefix %q", i, ev.Data, prefix)
		}
	}
	return nil
}

// sseSubscription reads n greetings for cfg.Name from path on the gateway and unsubscribes.
func sseSubscription(ctx context.Context, cfg *Config, path string, n int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	resp, err := OpenSSE(ctx, http.DefaultClient, cfg.GatewayURL, path+url.PathEscape(cfg.Name))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	events, err := ReadSSE(resp.Body, n)
	if err != nil {
		return fmt.Errorf("read events: %w", err)
	}
	return VerifyGreetings(events, cfg.Name, n)
}
