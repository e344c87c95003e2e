package interfaces

import (
	"context"

	"reactivemesh/domain"
)

// EventProducer starts an independent event subscription for a parameter (a person's name for the account stream).
//
// Implemented by service.IntervalProducer (local generator) and service.RemoteProducer (bridge over the streaming
// transport). Called from handlers.StreamHandler and the account gRPC stream server.
//
//go:generate moq -stub -out mock/event_producer.go -pkg mock . EventProducer
type EventProducer interface {
	// Produce starts a new subscription. Errors returned here happen before any event (resolution failures); later
	// failures are reported by Stream.Err.
	Produce(ctx context.Context, parameter string) (*domain.Stream, error)
}
