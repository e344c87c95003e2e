package interfaces

import (
	"context"

	"reactivemesh/domain"
)

// Registry answers "which live instances serve name X". It is a pure read against the external discovery registry
// and holds no cache.
//
// Implemented by adapters.RegistryHTTP. Called from service.serviceResolver for every resolution.
//
//go:generate moq -stub -out mock/registry.go -pkg mock . Registry
type Registry interface {
	// Lookup returns the live instances of serviceName in registry order.
	// Returns: (instances, nil) where instances may be empty but is never nil; (nil, registry_unavailable MyError) when
	// the registry cannot be reached or answers with a malformed body.
	Lookup(ctx context.Context, serviceName string) ([]domain.ServiceInstance, error)
}

// Registrar registers and unregisters the calling process in the discovery registry.
//
// Implemented by adapters.RegistryHTTP. Called from service.Heartbeater.
//
//go:generate moq -stub -out mock/registrar.go -pkg mock . Registrar
type Registrar interface {
	// Register creates or refreshes the registration; every call is a heartbeat.
	Register(ctx context.Context, reg domain.Registration) error

	// Unregister removes the registration; unknown instances are not an error.
	Unregister(ctx context.Context, serviceName, instanceID string) error
}
