package interfaces

import (
	"context"

	"reactivemesh/domain"
)

// ConnectionCache holds at most one live streaming connection per service name and coalesces concurrent creation
// attempts for the same name into one dial.
//
// Implemented by service.connectionCache. Called from service.serviceResolver.Resolve (GetOrCreate) and
// service.RemoteProducer on transport failure (Evict).
//
//go:generate moq -stub -out mock/connection_cache.go -pkg mock . ConnectionCache
type ConnectionCache interface {
	// GetOrCreate returns the Open handle for serviceName, joins an in-flight attempt, or dials host:port.
	// Returns: (handle, nil) with handle.State() == Open; (nil, connection_failed MyError) shared by every coalesced
	// caller when the dial fails; ctx only bounds how long this caller waits.
	GetOrCreate(ctx context.Context, serviceName, host string, port int) (*domain.ConnectionHandle, error)

	// Evict marks handle Failed, removes it if it is still the cached handle for its service and closes it.
	Evict(handle *domain.ConnectionHandle)

	// Close closes every cached connection; idempotent.
	Close() error
}
