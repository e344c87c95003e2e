package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"reactivemesh/domain"
	"reactivemesh/helpers"
	"reactivemesh/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualClock is a TimeProvider the test advances by hand.
type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func registration(serviceName, id string, beat time.Time, ttl time.Duration) domain.Registration {
	return domain.Registration{
		ServiceName:   serviceName,
		InstanceID:    id,
		Host:          "10.0.0.5",
		Port:          8081,
		Metadata:      map[string]string{domain.StreamPortMetadataKey: "7001"},
		LastHeartbeat: beat,
		TTL:           ttl,
	}
}

func TestNewRegistrationStore_Panics(t *testing.T) {
	assert.PanicsWithValue(t, "memory.registration_store.go: timeProvider is required", func() {
		NewRegistrationStore(nil)
	})
}

func TestRegistrationStore_PutList(t *testing.T) {
	ctx := context.Background()
	clock := &manualClock{now: helpers.TestNow()}
	store := NewRegistrationStore(clock)

	require.NoError(t, store.Put(ctx, registration(domain.AccountServiceName, "b", clock.Now(), 30*time.Second)))
	require.NoError(t, store.Put(ctx, registration(domain.AccountServiceName, "a", clock.Now(), 30*time.Second)))
	require.NoError(t, store.Put(ctx, registration(domain.ProfileServiceName, "p", clock.Now(), 30*time.Second)))

	got, err := store.List(ctx, domain.AccountServiceName)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].InstanceID)
	assert.Equal(t, "b", got[1].InstanceID)

	empty, err := store.List(ctx, "unknown-service")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestRegistrationStore_Expiry(t *testing.T) {
	ctx := context.Background()
	clock := &manualClock{now: helpers.TestNow()}
	store := NewRegistrationStore(clock)

	require.NoError(t, store.Put(ctx, registration(domain.AccountServiceName, "a", clock.Now(), 30*time.Second)))

	clock.Advance(30 * time.Second)
	got, err := store.List(ctx, domain.AccountServiceName)
	require.NoError(t, err)
	assert.Len(t, got, 1, "exactly ttl is still live")

	clock.Advance(time.Millisecond)
	got, err = store.List(ctx, domain.AccountServiceName)
	require.NoError(t, err)
	assert.Empty(t, got)

	// A heartbeat after expiry registers the instance again.
	require.NoError(t, store.Put(ctx, registration(domain.AccountServiceName, "a", clock.Now(), 30*time.Second)))
	got, err = store.List(ctx, domain.AccountServiceName)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestRegistrationStore_HeartbeatRefreshes(t *testing.T) {
	ctx := context.Background()
	clock := &manualClock{now: helpers.TestNow()}
	store := NewRegistrationStore(clock)

	require.NoError(t, store.Put(ctx, registration(domain.AccountServiceName, "a", clock.Now(), 30*time.Second)))
	clock.Advance(20 * time.Second)
	require.NoError(t, store.Put(ctx, registration(domain.AccountServiceName, "a", clock.Now(), 30*time.Second)))
	clock.Advance(20 * time.Second)

	got, err := store.List(ctx, domain.AccountServiceName)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestRegistrationStore_DeleteAndPurge(t *testing.T) {
	ctx := context.Background()
	clock := &manualClock{now: helpers.TestNow()}
	store := NewRegistrationStore(clock)

	require.NoError(t, store.Put(ctx, registration(domain.AccountServiceName, "a", clock.Now(), 10*time.Second)))
	require.NoError(t, store.Put(ctx, registration(domain.AccountServiceName, "b", clock.Now(), time.Minute)))
	require.NoError(t, store.Put(ctx, registration(domain.ProfileServiceName, "p", clock.Now(), 10*time.Second)))

	require.NoError(t, store.Delete(ctx, domain.AccountServiceName, "b"))
	require.NoError(t, store.Delete(ctx, domain.AccountServiceName, "missing"))

	clock.Advance(11 * time.Second)
	assert.Equal(t, 2, store.Purge())
	assert.Equal(t, 0, store.Purge())
}

func TestRegistrationStore_MetadataIsCopied(t *testing.T) {
	ctx := context.Background()
	clock := &manualClock{now: helpers.TestNow()}
	store := NewRegistrationStore(clock)

	reg := registration(domain.AccountServiceName, "a", clock.Now(), time.Minute)
	require.NoError(t, store.Put(ctx, reg))
	reg.Metadata[domain.StreamPortMetadataKey] = "9999"

	got, err := store.List(ctx, domain.AccountServiceName)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "7001", got[0].Metadata[domain.StreamPortMetadataKey])
}

func TestRegistrationStore_NonPositiveTTL(t *testing.T) {
	store := NewRegistrationStore(&manualClock{now: helpers.TestNow()})
	err := store.Put(context.Background(), registration(domain.AccountServiceName, "a", helpers.TestNow(), 0))
	require.Error(t, err)
	assert.True(t, service.IsBadParameterError(err))
}
