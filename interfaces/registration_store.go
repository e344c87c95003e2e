package interfaces

import (
	"context"

	"reactivemesh/domain"
)

// RegistrationStore is the registry server's registration table.
//
// Implemented by adapters/myredis (key expiry) and adapters/memory (explicit expiry check). Called from
// handlers.RegistryServer.
//
//go:generate moq -stub -out mock/registration_store.go -pkg mock . RegistrationStore
type RegistrationStore interface {
	// Put creates or refreshes reg; LastHeartbeat is the refresh time and TTL bounds its lifetime.
	// Returns internal_server_error on storage failure.
	Put(ctx context.Context, reg domain.Registration) error

	// List returns the non-expired registrations of serviceName, possibly empty, ordered by instance id.
	// Returns internal_server_error on storage failure.
	List(ctx context.Context, serviceName string) ([]domain.Registration, error)

	// Delete removes the registration; missing entries are not an error.
	Delete(ctx context.Context, serviceName, instanceID string) error
}
