package domain

import (
	"context"
	"sync"
	"time"
)

// StreamEvent is one event of a subscription. Sequence starts at 0 and strictly increases within a subscription.
type StreamEvent struct {
	Payload     string
	Sequence    uint64
	GeneratedAt time.Time
}

// EmitFunc hands one payload to the subscriber. It blocks until the subscriber takes the event and returns false
// once the subscription is cancelled, after which the producer must stop.
type EmitFunc func(payload string, generatedAt time.Time) bool

// StreamFunc is the body of a producer. It runs on its own goroutine until it returns or ctx is done. A non-nil
// error returned while the subscription is still active terminates the stream with that error.
type StreamFunc func(ctx context.Context, emit EmitFunc) error

// Stream is a lazy, cancelable subscription. Events is unbuffered so at most one event is in flight between the
// producer and the subscriber. Events is closed when the producer finishes or the subscription is cancelled; Err is
// valid after that.
type Stream struct {
	events chan StreamEvent
	done   chan struct{}
	cancel context.CancelFunc

	mu  sync.Mutex
	err error
}

// StartStream runs fn for a new subscription derived from parent. Cancelling parent or calling Cancel stops fn and
// ends the stream with a nil error.
func StartStream(parent context.Context, fn StreamFunc) *Stream {
	ctx, cancel := context.WithCancel(parent)
	s := &Stream{
		events: make(chan StreamEvent),
		done:   make(chan struct{}),
		cancel: cancel,
	}
	go func() {
		defer close(s.done)
		defer close(s.events)
		defer cancel()

		var seq uint64
		emit := func(payload string, generatedAt time.Time) bool {
			select {
			case <-ctx.Done():
				return false
			default:
			}
			select {
			case s.events <- StreamEvent{Payload: payload, Sequence: seq, GeneratedAt: generatedAt}:
				seq++
				return true
			case <-ctx.Done():
				return false
			}
		}
		if err := fn(ctx, emit); err != nil && ctx.Err() == nil {
			s.mu.Lock()
			s.err = err
			s.mu.Unlock()
		}
	}()
	return s
}

// Events returns the event channel.
func (s *Stream) Events() <-chan StreamEvent {
	return s.events
}

// Done is closed after the producer goroutine has exited.
func (s *Stream) Done() <-chan struct{} {
	return s.done
}

// Err returns the error that terminated the stream, or nil when it completed or was cancelled.
func (s *Stream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Cancel stops the subscription. Safe to call more than once and from any goroutine.
func (s *Stream) Cancel() {
	s.cancel()
}
