package service

import (
	"context"
	"testing"
	"time"

	"reactivemesh/domain"
	"reactivemesh/helpers"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, s *domain.Stream) domain.StreamEvent {
	t.Helper()
	select {
	case ev, ok := <-s.Events():
		require.True(t, ok, "stream closed")
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("no event")
		return domain.StreamEvent{}
	}
}

func waitClosed(t *testing.T, s *domain.Stream) {
	t.Helper()
	select {
	case <-s.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not end")
	}
	for range s.Events() {
	}
}

func TestNewIntervalProducer_Panics(t *testing.T) {
	tp := fixedTimeProvider()
	logger := log.NewNopLogger()

	assert.PanicsWithValue(t, "service.interval_producer.go: interval must be positive", func() {
		NewIntervalProducer(0, tp, logger)
	})
	assert.PanicsWithValue(t, "service.interval_producer.go: timeProvider is required", func() {
		NewIntervalProducer(time.Second, nil, logger)
	})
	assert.PanicsWithValue(t, "service.interval_producer.go: logger is required", func() {
		NewIntervalProducer(time.Second, tp, nil)
	})
}

func TestGreeting(t *testing.T) {
	at := time.Date(2026, 2, 11, 13, 0, 0, 500, time.FixedZone("CET", 3600))
	assert.Equal(t, "Hello Josh @ 2026-02-11T12:00:00.0000005Z", Greeting("Josh", at))
}

func TestIntervalProducer_Produce(t *testing.T) {
	const interval = 30 * time.Millisecond
	p := NewIntervalProducer(interval, fixedTimeProvider(), log.NewNopLogger())

	t.Run("ordered_events_after_one_interval", func(t *testing.T) {
		start := time.Now()
		s, err := p.Produce(context.Background(), "Josh")
		require.NoError(t, err)
		defer s.Cancel()

		first := receive(t, s)
		assert.GreaterOrEqual(t, time.Since(start), interval)
		assert.Equal(t, uint64(0), first.Sequence)
		assert.Equal(t, "Hello Josh @ 2026-02-11T12:00:00Z", first.Payload)
		assert.Equal(t, helpers.TestNow(), first.GeneratedAt)

		for want := uint64(1); want < 3; want++ {
			ev := receive(t, s)
			assert.Equal(t, want, ev.Sequence)
		}
	})

	t.Run("cancel_ends_stream_without_error", func(t *testing.T) {
		s, err := p.Produce(context.Background(), "Paul")
		require.NoError(t, err)
		receive(t, s)
		s.Cancel()
		waitClosed(t, s)
		assert.NoError(t, s.Err())
	})

	t.Run("parent_context_cancel_ends_stream", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		s, err := p.Produce(ctx, "Rando")
		require.NoError(t, err)
		cancel()
		waitClosed(t, s)
		assert.NoError(t, s.Err())
	})

	t.Run("cancel_stops_only_that_subscription", func(t *testing.T) {
		a, err := p.Produce(context.Background(), "Stephan")
		require.NoError(t, err)
		b, err := p.Produce(context.Background(), "Meghan")
		require.NoError(t, err)
		defer b.Cancel()

		a.Cancel()
		waitClosed(t, a)

		ev := receive(t, b)
		assert.Equal(t, uint64(0), ev.Sequence)
		assert.Contains(t, ev.Payload, "Hello Meghan @ ")
	})

	t.Run("resubscribe_starts_over", func(t *testing.T) {
		s1, err := p.Produce(context.Background(), "Josh")
		require.NoError(t, err)
		receive(t, s1)
		receive(t, s1)
		s1.Cancel()
		waitClosed(t, s1)

		s2, err := p.Produce(context.Background(), "Josh")
		require.NoError(t, err)
		defer s2.Cancel()
		assert.Equal(t, uint64(0), receive(t, s2).Sequence)
	})

	t.Run("blank_name", func(t *testing.T) {
		s, err := p.Produce(context.Background(), "  ")
		require.Error(t, err)
		assert.Nil(t, s)
		assert.True(t, IsBadParameterError(err))
	})
}
