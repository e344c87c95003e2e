package interfaces

import (
	"context"

	"reactivemesh/domain"
)

// ServiceResolver turns a service name into something usable: a live streaming connection (Resolve) or the
// address of an instance for HTTP forwarding (Locate). Both apply the first-instance selection policy.
//
// Implemented by service.serviceResolver. Called from service.RemoteProducer.
//
//go:generate moq -stub -out mock/service_resolver.go -pkg mock . ServiceResolver
type ServiceResolver interface {
	InstanceLocator

	// Resolve returns the Open cached connection for serviceName, creating it when needed.
	// Errors: registry_unavailable, service_unavailable, invalid_instance_metadata, connection_failed.
	Resolve(ctx context.Context, serviceName string) (*domain.ConnectionHandle, error)
}
