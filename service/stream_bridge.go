package service

import (
	"context"
	"errors"
	"io"
	"strings"

	"reactivemesh/domain"
	"reactivemesh/helpers"
	"reactivemesh/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// RemoteProducer implements interfaces.EventProducer by bridging the account route of a remote service: every
// received payload is forwarded 1:1, in order, onto the subscription (unbuffered, so at most one item is in flight
// and a slow subscriber slows the remote read). Sequence numbers are assigned locally.
//
// Consumer cancel cancels only the per-call context; the cached connection stays Open for other subscriptions.
// A remote failure ends the subscription with stream_terminated; when the gRPC status is Unavailable the connection
// is evicted from the cache so the next subscription reconnects.
type RemoteProducer struct {
	resolver     interfaces.ServiceResolver
	cache        interfaces.ConnectionCache
	serviceName  string
	timeProvider interfaces.TimeProvider
	logger       log.Logger
}

// NewRemoteProducer creates the bridge for serviceName. Panics on nil dependencies and empty serviceName.
//
// Parameters: resolver — resolves serviceName to a cached connection; cache — the cache behind resolver (Evict on
// Unavailable); serviceName — registered name of the remote service (domain.AccountServiceName); timeProvider —
// GeneratedAt of forwarded events; logger — logger.
//
// Called from cmd/profile main.
func NewRemoteProducer(
	resolver interfaces.ServiceResolver,
	cache interfaces.ConnectionCache,
	serviceName string,
	timeProvider interfaces.TimeProvider,
	logger log.Logger,
) *RemoteProducer {
	return &RemoteProducer{
		resolver:     helpers.NilPanic(resolver, "service.stream_bridge.go: resolver is required"),
		cache:        helpers.NilPanic(cache, "service.stream_bridge.go: cache is required"),
		serviceName:  helpers.StrPanic(serviceName, "service.stream_bridge.go: serviceName is required"),
		timeProvider: helpers.NilPanic(timeProvider, "service.stream_bridge.go: timeProvider is required"),
		logger:       log.With(helpers.NilPanic(logger, "service.stream_bridge.go: logger is required"), "component", "stream_bridge"),
	}
}

// Produce resolves the remote service and opens the account route for name before returning, so resolution and
// open failures reach the caller before any event (and before an SSE response is committed).
//
// Returns: (stream, nil); bad_parameter on blank name; the resolver's MyError (registry_unavailable,
// service_unavailable, invalid_instance_metadata, connection_failed); connection_failed or stream_terminated when
// the call cannot be opened.
//
// Called from handlers.StreamHandler (GET /profile/sse/{name}).
func (p *RemoteProducer) Produce(ctx context.Context, name string) (*domain.Stream, error) {
	if strings.TrimSpace(name) == "" {
		return nil, NewBadParameterError("name is required", nil)
	}
	handle, err := p.resolver.Resolve(ctx, p.serviceName)
	if err != nil {
		return nil, err
	}

	requestID := helpers.RequestIDFromContext(ctx)
	callCtx, cancel := context.WithCancel(helpers.WithOutgoingRequestID(ctx, requestID))
	remote, err := OpenAccountStream(callCtx, handle.Conn, name)
	if err != nil {
		cancel()
		if status.Code(err) == codes.Unavailable {
			p.cache.Evict(handle)
			return nil, NewConnectionFailedError(p.serviceName, err)
		}
		return nil, NewStreamTerminatedError(p.serviceName, err)
	}

	logger := log.With(p.logger, "service", p.serviceName, "name", name, "request_id", requestID)
	level.Debug(logger).Log("msg", "remote stream opened", "target", handle.Target)

	stream := domain.StartStream(callCtx, func(ctx context.Context, emit domain.EmitFunc) error {
		// Cancel of the subscription must unblock RecvMsg, which waits on callCtx.
		stop := context.AfterFunc(ctx, cancel)
		defer stop()
		for {
			msg := new(wrapperspb.StringValue)
			if err := remote.RecvMsg(msg); err != nil {
				if ctx.Err() != nil {
					level.Debug(logger).Log("msg", "remote stream cancelled")
					return nil
				}
				if errors.Is(err, io.EOF) {
					// The account route never completes on its own; an OK end means the remote handler gave up.
					level.Warn(logger).Log("msg", "remote stream ended unexpectedly")
					return NewStreamTerminatedError(p.serviceName, io.ErrUnexpectedEOF)
				}
				if status.Code(err) == codes.Unavailable {
					p.cache.Evict(handle)
				}
				level.Warn(logger).Log("msg", "remote stream failed", "err", err)
				return NewStreamTerminatedError(p.serviceName, err)
			}
			if !emit(msg.GetValue(), p.timeProvider.Now()) {
				return nil
			}
		}
	})
	// callCtx is the parent of the subscription; it is released only after the stream recorded its outcome.
	go func() {
		<-stream.Done()
		cancel()
	}()
	return stream, nil
}
