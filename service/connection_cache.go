package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"sync"
	"time"

	"reactivemesh/domain"
	"reactivemesh/helpers"
	"reactivemesh/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/sync/singleflight"
	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
)

// ErrConnectionCacheClosed is the cause of connection_failed errors returned after Close.
var ErrConnectionCacheClosed = errors.New("connection cache is closed")

// ConnFactory dials target and returns a connection that is Ready, or an error. ctx bounds the dial.
type ConnFactory func(ctx context.Context, target string) (*grpc.ClientConn, error)

// NewGRPCConnFactory returns a ConnFactory that creates the client with grpc.NewClient, forces it out of idle with
// Connect and waits until it is Ready. TransientFailure or Shutdown before Ready fails the dial immediately (no
// internal retry); ctx expiry fails it with ctx.Err().
//
// Parameter opts — dial options (cmd mains pass insecure transport credentials).
//
// Called from cmd/profile main and connection cache tests.
func NewGRPCConnFactory(opts ...grpc.DialOption) ConnFactory {
	return func(ctx context.Context, target string) (*grpc.ClientConn, error) {
		conn, err := grpc.NewClient(target, opts...)
		if err != nil {
			return nil, fmt.Errorf("dial %s: %w", target, err)
		}
		conn.Connect()
		for {
			state := conn.GetState()
			switch state {
			case connectivity.Ready:
				return conn, nil
			case connectivity.TransientFailure, connectivity.Shutdown:
				_ = conn.Close()
				return nil, fmt.Errorf("dial %s: connection state %s", target, state)
			}
			if !conn.WaitForStateChange(ctx, state) {
				_ = conn.Close()
				return nil, fmt.Errorf("dial %s: %w", target, ctx.Err())
			}
		}
	}
}

// connectionCache implements interfaces.ConnectionCache. It maps a service name to the one Open handle for that
// service. Creation attempts are coalesced per service name with singleflight, so N concurrent GetOrCreate calls
// for a name with no Open handle produce one dial and all observe the same handle or the same failure. The dial runs
// outside the map lock on a context detached from the callers (bounded by connectTimeout), so one caller giving up
// does not cancel the shared attempt and a slow dial for one name never blocks another name.
//
// Every Open handle has a watcher goroutine: when the connection drops out of Ready the handle is marked Failed and
// evicted, so a Failed handle is never returned and the next GetOrCreate dials afresh.
//
// Fields: factory, connectTimeout, timeProvider, metrics, logger; group — singleflight keyed by service name; under
// mu: handles (service name → Open handle), closed.
type connectionCache struct {
	factory        ConnFactory
	connectTimeout time.Duration
	timeProvider   interfaces.TimeProvider
	metrics        *Metrics
	logger         log.Logger

	group singleflight.Group

	mu      sync.RWMutex
	handles map[string]*domain.ConnectionHandle
	closed  bool
}

// NewConnectionCache creates an empty cache. Panics on nil factory, timeProvider, metrics or logger.
//
// Parameters: factory — dials a target (NewGRPCConnFactory in prod); connectTimeout — upper bound of one dial
// attempt (e.g. 5s); timeProvider — CreatedAt of new handles; metrics — connection transition counters; logger —
// subscribe/complete/error hooks of every attempt are logged.
//
// Returns: interfaces.ConnectionCache (*connectionCache).
//
// Called from cmd/profile main.
func NewConnectionCache(
	factory ConnFactory,
	connectTimeout time.Duration,
	timeProvider interfaces.TimeProvider,
	metrics *Metrics,
	logger log.Logger,
) interfaces.ConnectionCache {
	return &connectionCache{
		factory:        helpers.NilPanic(factory, "service.connection_cache.go: factory is required"),
		connectTimeout: connectTimeout,
		timeProvider:   helpers.NilPanic(timeProvider, "service.connection_cache.go: timeProvider is required"),
		metrics:        helpers.NilPanic(metrics, "service.connection_cache.go: metrics is required"),
		logger:         log.With(helpers.NilPanic(logger, "service.connection_cache.go: logger is required"), "component", "connection_cache"),
		handles:        make(map[string]*domain.ConnectionHandle),
	}
}

// GetOrCreate returns the Open handle for serviceName, or joins/starts the creation attempt for it.
//
// Parameters: ctx — bounds only how long this caller waits; cancelling it does not cancel the shared dial;
// serviceName — cache key; host, port — dial target of a new attempt (ignored when an attempt for serviceName is
// already in flight or an Open handle exists).
//
// Returns: (handle, nil) with handle.State() == Open; (nil, connection_failed MyError) when the dial fails (the same
// error for every coalesced caller), when ctx is done first, or after Close.
//
// Called from serviceResolver.Resolve.
func (c *connectionCache) GetOrCreate(ctx context.Context, serviceName, host string, port int) (*domain.ConnectionHandle, error) {
	if h, err := c.lookup(serviceName); h != nil || err != nil {
		return h, err
	}
	target := net.JoinHostPort(host, strconv.Itoa(port))
	ch := c.group.DoChan(serviceName, func() (any, error) {
		return c.connect(serviceName, target)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*domain.ConnectionHandle), nil
	case <-ctx.Done():
		return nil, NewConnectionFailedError(serviceName, ctx.Err())
	}
}

// lookup returns the cached Open handle under the read lock, or a connection_failed error when the cache is closed.
func (c *connectionCache) lookup(serviceName string) (*domain.ConnectionHandle, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil, NewConnectionFailedError(serviceName, ErrConnectionCacheClosed)
	}
	if h := c.handles[serviceName]; h != nil && h.State() == domain.ConnectionOpen {
		return h, nil
	}
	return nil, nil
}

// connect runs one creation attempt: Connecting → dial → Open (published in handles, watcher started) or Failed
// (nothing published). Runs inside the singleflight call for serviceName.
func (c *connectionCache) connect(serviceName, target string) (*domain.ConnectionHandle, error) {
	// A flight that finished just before this one started may already have published a handle.
	if h, err := c.lookup(serviceName); h != nil || err != nil {
		return h, err
	}

	h := domain.NewConnectionHandle(serviceName, target, c.timeProvider.Now())
	logger := log.With(c.logger, "service", serviceName, "target", target)
	level.Debug(logger).Log("msg", "connection subscribe")
	c.metrics.ConnectionTransitions.WithLabelValues(serviceName, domain.ConnectionConnecting.String()).Inc()

	ctx, cancel := context.WithTimeout(context.Background(), c.connectTimeout)
	defer cancel()
	conn, err := c.factory(ctx, target)
	if err != nil {
		h.SetState(domain.ConnectionFailed)
		c.metrics.ConnectionTransitions.WithLabelValues(serviceName, domain.ConnectionFailed.String()).Inc()
		level.Error(logger).Log("msg", "connection error", "err", err)
		return nil, NewConnectionFailedError(serviceName, err)
	}
	h.Conn = conn

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		h.SetState(domain.ConnectionFailed)
		_ = conn.Close()
		return nil, NewConnectionFailedError(serviceName, ErrConnectionCacheClosed)
	}
	h.SetState(domain.ConnectionOpen)
	c.handles[serviceName] = h
	c.mu.Unlock()

	c.metrics.ConnectionTransitions.WithLabelValues(serviceName, domain.ConnectionOpen.String()).Inc()
	c.metrics.OpenConnections.WithLabelValues(serviceName).Inc()
	level.Info(logger).Log("msg", "connection established")

	go c.watch(h, conn)
	return h, nil
}

// watch follows the connectivity state of an Open handle and evicts it once it leaves Ready for Idle (the transport
// was lost or idled out), TransientFailure or Shutdown. Exits after the eviction.
func (c *connectionCache) watch(h *domain.ConnectionHandle, conn *grpc.ClientConn) {
	state := conn.GetState()
	for {
		if lostState(state) {
			if h.State() != domain.ConnectionFailed {
				level.Warn(c.logger).Log("msg", "connection lost", "service", h.ServiceName, "target", h.Target, "state", state.String())
			}
			c.Evict(h)
			return
		}
		conn.WaitForStateChange(context.Background(), state)
		state = conn.GetState()
	}
}

func lostState(s connectivity.State) bool {
	return s == connectivity.Idle || s == connectivity.TransientFailure || s == connectivity.Shutdown
}

// Evict marks handle Failed, removes it from the cache when it is still the cached handle for its service (a newer
// handle for the same service is left alone) and closes its connection. Repeated calls for the same handle are
// no-ops. nil handle is ignored.
//
// Called from the watcher goroutine and from RemoteProducer when a remote stream fails with Unavailable.
func (c *connectionCache) Evict(handle *domain.ConnectionHandle) {
	if handle == nil {
		return
	}
	c.mu.Lock()
	if cur := c.handles[handle.ServiceName]; cur == handle {
		delete(c.handles, handle.ServiceName)
	}
	c.mu.Unlock()

	wasOpen := handle.State() == domain.ConnectionOpen
	if !handle.SetState(domain.ConnectionFailed) {
		return
	}
	if wasOpen {
		c.metrics.OpenConnections.WithLabelValues(handle.ServiceName).Dec()
	}
	c.metrics.ConnectionTransitions.WithLabelValues(handle.ServiceName, domain.ConnectionFailed.String()).Inc()
	level.Info(c.logger).Log("msg", "connection evicted", "service", handle.ServiceName, "target", handle.Target)
	closeConn(handle)
}

// Close marks the cache closed, fails and closes every cached handle and clears the map. Idempotent: repeated call
// returns nil with no side effects.
//
// Returns: nil (connection close errors are not returned).
//
// Called on shutdown (defer in cmd/profile main).
func (c *connectionCache) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	handles := c.handles
	c.handles = map[string]*domain.ConnectionHandle{}
	c.mu.Unlock()

	for _, h := range handles {
		if h.SetState(domain.ConnectionFailed) {
			c.metrics.OpenConnections.WithLabelValues(h.ServiceName).Dec()
			closeConn(h)
		}
	}
	return nil
}

func closeConn(h *domain.ConnectionHandle) {
	if closer, ok := h.Conn.(io.Closer); ok {
		_ = closer.Close()
	}
}
