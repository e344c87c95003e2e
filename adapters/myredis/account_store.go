package myredis

import (
	"context"
	"encoding/json"
	"fmt"

	"reactivemesh/domain"
	"reactivemesh/helpers"
	"reactivemesh/interfaces"
	"reactivemesh/service"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const accountsKey = "accounts"

type accountStore struct {
	client redis.UniversalClient
}

var _ interfaces.AccountStore = (*accountStore)(nil)

// NewAccountStore creates an AccountStore over one Redis hash (key: accounts, field: id, value: JSON account).
// Panics on nil client.
//
// Called from cmd/account main when STORE=redis.
func NewAccountStore(client redis.UniversalClient) *accountStore {
	return &accountStore{client: helpers.NilPanic(client, "myredis.account_store.go: client is required")}
}

func (s *accountStore) DeleteAll(ctx context.Context) error {
	if err := s.client.Del(ctx, accountsKey).Err(); err != nil {
		return service.NewInternalServerError("Redis delete key error", fmt.Errorf("can't delete accounts: %w", err))
	}
	return nil
}

func (s *accountStore) Save(ctx context.Context, account domain.Account) (domain.Account, error) {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	data, err := json.Marshal(account)
	if err != nil {
		return domain.Account{}, service.NewInternalServerError("Redis marshal account error", err)
	}
	if err := s.client.HSet(ctx, accountsKey, account.ID, data).Err(); err != nil {
		return domain.Account{}, service.NewInternalServerError("Redis write account error", fmt.Errorf("can't write account %s: %w", account.ID, err))
	}
	return account, nil
}

func (s *accountStore) FindAll(ctx context.Context) ([]domain.Account, error) {
	values, err := s.client.HGetAll(ctx, accountsKey).Result()
	if err != nil {
		return nil, service.NewInternalServerError("Redis read accounts error", fmt.Errorf("can't read accounts: %w", err))
	}
	out := make([]domain.Account, 0, len(values))
	for id, raw := range values {
		var a domain.Account
		if err := json.Unmarshal([]byte(raw), &a); err != nil {
			return nil, service.NewInternalServerError("Redis unmarshal account error", fmt.Errorf("account %s: %w", id, err))
		}
		out = append(out, a)
	}
	domain.SortAccounts(out)
	return out, nil
}
