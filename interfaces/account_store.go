package interfaces

import (
	"context"

	"reactivemesh/domain"
)

// AccountStore is the document store behind GET /account/all.
//
//go:generate moq -stub -out mock/account_store.go -pkg mock . AccountStore
type AccountStore interface {
	// DeleteAll removes every account.
	DeleteAll(ctx context.Context) error

	// Save stores account, assigning an ID when it has none, and returns the stored value.
	Save(ctx context.Context, account domain.Account) (domain.Account, error)

	// FindAll returns every account ordered by name; empty is not an error.
	FindAll(ctx context.Context) ([]domain.Account, error)
}
