package service

import (
	"context"
	"fmt"

	"reactivemesh/domain"
	"reactivemesh/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// DefaultAccountNames are the sample accounts stored at account-service startup.
var DefaultAccountNames = []string{"Josh", "Paul", "Rando", "Stephan", "Meghan"}

// SeedAccounts replaces the content of store with one account per name, in order, logging every stored account.
//
// Returns: nil; internal_server_error MyError when the store fails (the first failure stops seeding).
//
// Called from cmd/account main at startup.
func SeedAccounts(ctx context.Context, store interfaces.AccountStore, names []string, logger log.Logger) error {
	if err := store.DeleteAll(ctx); err != nil {
		return NewInternalServerError("delete accounts", err)
	}
	for _, name := range names {
		account, err := store.Save(ctx, domain.Account{Name: name})
		if err != nil {
			return NewInternalServerError(fmt.Sprintf("save account %s", name), err)
		}
		level.Info(logger).Log("msg", "account stored", "id", account.ID, "name", account.Name)
	}
	return nil
}
