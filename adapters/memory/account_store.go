package memory

import (
	"context"
	"sync"

	"reactivemesh/domain"
	"reactivemesh/interfaces"

	"github.com/google/uuid"
)

type accountStore struct {
	mu       sync.RWMutex
	accounts map[string]domain.Account
}

var _ interfaces.AccountStore = (*accountStore)(nil)

// NewAccountStore creates the in-process account store (STORE=memory).
func NewAccountStore() *accountStore {
	return &accountStore{accounts: make(map[string]domain.Account)}
}

func (s *accountStore) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	s.accounts = make(map[string]domain.Account)
	s.mu.Unlock()
	return nil
}

func (s *accountStore) Save(_ context.Context, account domain.Account) (domain.Account, error) {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	s.mu.Lock()
	s.accounts[account.ID] = account
	s.mu.Unlock()
	return account, nil
}

func (s *accountStore) FindAll(_ context.Context) ([]domain.Account, error) {
	s.mu.RLock()
	out := make([]domain.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	s.mu.RUnlock()
	domain.SortAccounts(out)
	return out, nil
}
