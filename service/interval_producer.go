package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"reactivemesh/domain"
	"reactivemesh/helpers"
	"reactivemesh/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// IntervalProducer implements interfaces.EventProducer with a local generator: every subscription emits
// Greeting(name, now) once per interval, forever, until it is cancelled. The first event arrives one interval after
// the subscription starts. Subscriptions share nothing, so a new subscription after a cancelled one starts over at
// sequence 0.
type IntervalProducer struct {
	interval     time.Duration
	timeProvider interfaces.TimeProvider
	logger       log.Logger
}

// NewIntervalProducer creates the producer. Panics on nil timeProvider or logger and on a non-positive interval.
//
// Called from cmd/account main (SSE route and gRPC stream server).
func NewIntervalProducer(interval time.Duration, timeProvider interfaces.TimeProvider, logger log.Logger) *IntervalProducer {
	if interval <= 0 {
		panic("service.interval_producer.go: interval must be positive")
	}
	return &IntervalProducer{
		interval:     interval,
		timeProvider: helpers.NilPanic(timeProvider, "service.interval_producer.go: timeProvider is required"),
		logger:       log.With(helpers.NilPanic(logger, "service.interval_producer.go: logger is required"), "component", "interval_producer"),
	}
}

// Produce starts a subscription for name.
//
// Returns: (stream, nil); (nil, bad_parameter MyError) on blank name.
func (p *IntervalProducer) Produce(ctx context.Context, name string) (*domain.Stream, error) {
	if strings.TrimSpace(name) == "" {
		return nil, NewBadParameterError("name is required", nil)
	}
	level.Debug(p.logger).Log("msg", "subscription started", "name", name, "request_id", helpers.RequestIDFromContext(ctx))
	return domain.StartStream(ctx, func(ctx context.Context, emit domain.EmitFunc) error {
		timer := time.NewTimer(p.interval)
		defer timer.Stop()
		for {
			select {
			case <-ctx.Done():
				level.Debug(p.logger).Log("msg", "subscription cancelled", "name", name)
				return nil
			case <-timer.C:
			}
			now := p.timeProvider.Now()
			if !emit(Greeting(name, now), now) {
				return nil
			}
			timer.Reset(p.interval)
		}
	}), nil
}

// Greeting formats one account stream payload: "Hello {name} @ {RFC3339Nano UTC}".
func Greeting(name string, at time.Time) string {
	return fmt.Sprintf("Hello %s @ %s", name, at.UTC().Format(time.RFC3339Nano))
}
