package service

import (
	"time"

	"reactivemesh/helpers"
	"reactivemesh/interfaces"
)

// timeProvider implements interfaces.TimeProvider over an injected clock function. Greeting timestamps, handle
// creation times, heartbeats and registration expiry all read it.
type timeProvider struct {
	now func() time.Time
}

// NewTimeProvider wraps now. Panics on nil now.
//
// Called from NewUTCTimeProvider and from tests that need a controllable clock.
func NewTimeProvider(now func() time.Time) interfaces.TimeProvider {
	return &timeProvider{now: helpers.NilPanic(now, "service.time_provider.go: now is required")}
}

// NewUTCTimeProvider returns the wall clock in UTC, so every payload and registry timestamp carries the Z offset.
//
// Called from cmd mains.
func NewUTCTimeProvider() interfaces.TimeProvider {
	return NewTimeProvider(func() time.Time { return time.Now().UTC() })
}

func (t *timeProvider) Now() time.Time {
	return t.now()
}
