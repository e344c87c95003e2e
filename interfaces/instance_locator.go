package interfaces

import (
	"context"

	"reactivemesh/domain"
)

// InstanceLocator picks the instance of a service to talk to, using the first-instance selection policy.
//
// Implemented by service.instanceLocator (and by every ServiceResolver). Called from service.Gateway.
//
//go:generate moq -stub -out mock/instance_locator.go -pkg mock . InstanceLocator
type InstanceLocator interface {
	// Locate returns the selected instance of serviceName without touching any connection cache.
	// Errors: registry_unavailable, service_unavailable.
	Locate(ctx context.Context, serviceName string) (domain.ServiceInstance, error)
}
