package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"reactivemesh/domain"
	"reactivemesh/helpers"
	"reactivemesh/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// instanceLocator implements interfaces.InstanceLocator. It queries the registry on every call (no lookup cache)
// and applies the first-instance selection policy.
type instanceLocator struct {
	registry interfaces.Registry
	timeout  time.Duration
	logger   log.Logger
}

// NewInstanceLocator creates a locator without any connection cache. Panics on nil registry or logger.
//
// Parameters: registry — registry client (adapters.RegistryHTTP); timeout — bound of one lookup; logger — logger.
//
// Called from cmd/gateway main, which forwards plain HTTP and never dials streams.
func NewInstanceLocator(registry interfaces.Registry, timeout time.Duration, logger log.Logger) interfaces.InstanceLocator {
	return newInstanceLocator(registry, timeout, logger)
}

func newInstanceLocator(registry interfaces.Registry, timeout time.Duration, logger log.Logger) *instanceLocator {
	return &instanceLocator{
		registry: helpers.NilPanic(registry, "service.service_resolver.go: registry is required"),
		timeout:  timeout,
		logger:   log.With(helpers.NilPanic(logger, "service.service_resolver.go: logger is required"), "component", "instance_locator"),
	}
}

// Locate returns the selected instance of serviceName; used for plain HTTP forwarding.
//
// Returns: (instance, nil); registry_unavailable or service_unavailable MyError otherwise.
//
// Called from Gateway.NextTarget and serviceResolver.Locate.
func (l *instanceLocator) Locate(ctx context.Context, serviceName string) (domain.ServiceInstance, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()
	return l.locate(ctx, serviceName)
}

func (l *instanceLocator) locate(ctx context.Context, serviceName string) (domain.ServiceInstance, error) {
	instances, err := l.registry.Lookup(ctx, serviceName)
	if err != nil {
		if ToMyError(err) == nil {
			err = NewRegistryUnavailableError(serviceName, err)
		}
		return domain.ServiceInstance{}, err
	}
	if len(instances) == 0 {
		level.Debug(l.logger).Log("msg", "no live instance", "service", serviceName)
		return domain.ServiceInstance{}, NewServiceUnavailableError(serviceName)
	}
	// First instance in registry order; no balancing.
	return instances[0], nil
}

// serviceResolver implements interfaces.ServiceResolver on top of instanceLocator: for Resolve it reads the
// streaming port from the selected instance's metadata and hands host:port to the connection cache. Fields:
// locator, cache, portKey (metadata key of the streaming port), logger.
type serviceResolver struct {
	*instanceLocator
	cache   interfaces.ConnectionCache
	portKey string
	logger  log.Logger
}

// NewServiceResolver creates the resolver. Panics on nil registry, cache or logger and on empty portKey.
//
// Parameters: registry — registry client (adapters.RegistryHTTP); cache — streaming connection cache; portKey —
// metadata key holding the streaming port (domain.StreamPortMetadataKey by default); timeout — bound of a whole
// resolution including the wait on the cache; logger — logger.
//
// Returns: interfaces.ServiceResolver (*serviceResolver).
//
// Called from cmd/profile main.
func NewServiceResolver(
	registry interfaces.Registry,
	cache interfaces.ConnectionCache,
	portKey string,
	timeout time.Duration,
	logger log.Logger,
) interfaces.ServiceResolver {
	locator := newInstanceLocator(registry, timeout, logger)
	return &serviceResolver{
		instanceLocator: locator,
		cache:           helpers.NilPanic(cache, "service.service_resolver.go: cache is required"),
		portKey:         helpers.StrPanic(portKey, "service.service_resolver.go: portKey is required"),
		logger:          log.With(logger, "component", "service_resolver"),
	}
}

// Resolve returns the Open cached connection for serviceName.
//
// Steps: locate (lookup + first instance); parse Metadata[portKey] as a port; ConnectionCache.GetOrCreate with the
// instance host and that port. An invalid port never touches the cache.
//
// Returns: (handle, nil) on success; registry_unavailable, service_unavailable, invalid_instance_metadata or
// connection_failed MyError otherwise.
//
// Called from RemoteProducer.Produce.
func (r *serviceResolver) Resolve(ctx context.Context, serviceName string) (*domain.ConnectionHandle, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	instance, err := r.locate(ctx, serviceName)
	if err != nil {
		return nil, err
	}
	port, err := streamPort(instance, r.portKey)
	if err != nil {
		level.Warn(r.logger).Log("msg", "invalid instance metadata", "service", serviceName, "instance", instance.InstanceID, "err", err)
		return nil, NewInvalidInstanceMetadataError(serviceName, r.portKey, err)
	}
	return r.cache.GetOrCreate(ctx, serviceName, instance.Host, port)
}

// streamPort parses instance.Metadata[key] as a TCP port in 1..65535.
func streamPort(instance domain.ServiceInstance, key string) (int, error) {
	raw, ok := instance.Metadata[key]
	if !ok {
		return 0, fmt.Errorf("metadata %q is missing", key)
	}
	port, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("metadata %q: %w", key, err)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("metadata %q: port %d out of range", key, port)
	}
	return port, nil
}
