package service

import (
	"context"
	"errors"
	"testing"

	"reactivemesh/domain"
	"reactivemesh/interfaces/mock"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedAccounts(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes_then_saves_in_order", func(t *testing.T) {
		store := &mock.AccountStoreMock{
			SaveFunc: func(ctx context.Context, account domain.Account) (domain.Account, error) {
				account.ID = "id-" + account.Name
				return account, nil
			},
		}
		require.NoError(t, SeedAccounts(ctx, store, DefaultAccountNames, log.NewNopLogger()))

		assert.Len(t, store.DeleteAllCalls(), 1)
		require.Len(t, store.SaveCalls(), 5)
		for i, name := range []string{"Josh", "Paul", "Rando", "Stephan", "Meghan"} {
			assert.Equal(t, name, store.SaveCalls()[i].Account.Name)
			assert.Empty(t, store.SaveCalls()[i].Account.ID)
		}
	})

	t.Run("delete_failure", func(t *testing.T) {
		store := &mock.AccountStoreMock{
			DeleteAllFunc: func(ctx context.Context) error { return errors.New("down") },
		}
		err := SeedAccounts(ctx, store, DefaultAccountNames, log.NewNopLogger())
		require.Error(t, err)
		assert.True(t, IsInternalServerError(err))
		assert.Empty(t, store.SaveCalls())
	})

	t.Run("save_failure_stops_seeding", func(t *testing.T) {
		store := &mock.AccountStoreMock{
			SaveFunc: func(ctx context.Context, account domain.Account) (domain.Account, error) {
				return domain.Account{}, errors.New("down")
			},
		}
		err := SeedAccounts(ctx, store, DefaultAccountNames, log.NewNopLogger())
		require.Error(t, err)
		assert.True(t, IsInternalServerError(err))
		assert.Len(t, store.SaveCalls(), 1)
	})
}
