package memory

import (
	"context"
	"testing"

	"reactivemesh/domain"
	"reactivemesh/service"

	"github.com/go-kit/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountStore(t *testing.T) {
	ctx := context.Background()
	store := NewAccountStore()

	got, err := store.FindAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	saved, err := store.Save(ctx, domain.Account{Name: "Paul"})
	require.NoError(t, err)
	_, err = uuid.Parse(saved.ID)
	require.NoError(t, err)

	_, err = store.Save(ctx, domain.Account{ID: "fixed", Name: "Josh"})
	require.NoError(t, err)
	_, err = store.Save(ctx, domain.Account{ID: "fixed", Name: "Joshua"})
	require.NoError(t, err)

	got, err = store.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Account{{ID: "fixed", Name: "Joshua"}, saved}, got)

	require.NoError(t, store.DeleteAll(ctx))
	got, err = store.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAccountStore_Seed(t *testing.T) {
	ctx := context.Background()
	store := NewAccountStore()
	_, _ = store.Save(ctx, domain.Account{Name: "Stale"})

	require.NoError(t, service.SeedAccounts(ctx, store, service.DefaultAccountNames, log.NewNopLogger()))

	got, err := store.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.Equal(t, "Josh", got[0].Name)
	assert.Equal(t, "Stephan", got[4].Name)
}
