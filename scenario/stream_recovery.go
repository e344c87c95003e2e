package scenario

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const scenarioStreamRecovery = "stream_recovery"

// accountComposeService is the compose service name of account-service.
const accountComposeService = "account"

func init() {
	Register(scenarioStreamRecovery, runStreamRecovery)
}

// runStreamRecovery checks the bridge across an account-service restart:
//  1. a profile subscription receives a greeting;
//  2. account-service is stopped: the open subscription ends with a stream_terminated error event and new
//     subscriptions are refused with 502/503 before any event;
//  3. account-service is started again: a new subscription eventually receives greetings, i.e. the failed
//     connection was evicted and a fresh one dialled.
func runStreamRecovery(ctx context.Context, cfg *Config) error {
	if cfg.Services == nil {
		return errors.New("stream_recovery needs a compose file (--compose-file)")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Minute)
	defer cancel()

	path := "/profile/sse/" + url.PathEscape(cfg.Name)
	subCtx, subCancel := context.WithCancel(ctx)
	defer subCancel()
	resp, err := OpenSSE(subCtx, http.DefaultClient, cfg.GatewayURL, path)
	if err != nil {
		return fmt.Errorf("initial subscription: %w", err)
	}
	defer resp.Body.Close()
	reader := NewSSEReader(resp.Body)
	first, err := reader.Next()
	if err != nil {
		return fmt.Errorf("initial subscription: %w", err)
	}
	if err := VerifyGreetings([]SSEEvent{first}, cfg.Name, 1); err != nil {
		return fmt.Errorf("initial subscription: %w", err)
	}

	if err := cfg.Services.StopService(ctx, accountComposeService); err != nil {
		return fmt.Errorf("stop %s: %w", accountComposeService, err)
	}
	// Restart even when the checks below fail so the deployment stays usable.
	restarted := false
	defer func() {
		if !restarted {
			_ = cfg.Services.StartService(context.Background(), accountComposeService)
		}
	}()

	if err := waitStreamEnd(reader); err != nil {
		return fmt.Errorf("open subscription after stop: %w", err)
	}
	if err := expectRefused(ctx, cfg, path); err != nil {
		return err
	}

	if err := cfg.Services.StartService(ctx, accountComposeService); err != nil {
		return fmt.Errorf("start %s: %w", accountComposeService, err)
	}
	restarted = true

	return retry(ctx, 2*time.Second, func() error {
		return sseSubscription(ctx, cfg, "/profile/sse/", 1)
	})
}

// waitStreamEnd reads until the stream closes. The bridge must report the lost remote with a stream_terminated
// error event; a close without one means the failure was swallowed.
func waitStreamEnd(reader *SSEReader) error {
	for {
		ev, err := reader.Next()
		if err != nil {
			return fmt.Errorf("stream closed without an error event: %w", err)
		}
		if ev.Event == "error" {
			if !strings.Contains(ev.Data, `"stream_terminated"`) {
				return fmt.Errorf("error event is not stream_terminated: %s", ev.Data)
			}
			return nil
		}
	}
}

// expectRefused opens a subscription while account-service is down and expects 502 or 503 before any event.
func expectRefused(ctx context.Context, cfg *Config, path string) error {
	reqCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, strings.TrimRight(cfg.GatewayURL, "/")+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("subscription while stopped: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable && resp.StatusCode != http.StatusBadGateway {
		return fmt.Errorf("subscription while stopped: status %d, want 502 or 503", resp.StatusCode)
	}
	return nil
}

// retry calls fn every interval until it succeeds or ctx is done; the last error is returned on timeout.
func retry(ctx context.Context, interval time.Duration, fn func() error) error {
	var last error
	for {
		if last = fn(); last == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("gave up: %w", last)
		case <-time.After(interval):
		}
	}
}
