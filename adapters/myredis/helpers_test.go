package myredis

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
)

const testRedisAddr = "redis://localhost:6379/15"

// setupTestRedis returns a client on a scratch database with the given key patterns removed before and after the
// test. The test is skipped when no Redis answers on testRedisAddr.
func setupTestRedis(t *testing.T, patterns ...string) redis.UniversalClient {
	t.Helper()
	client, err := NewRedisUniversalClient(testRedisAddr, func(o *redis.Options) {
		o.DialTimeout = 500 * time.Millisecond
		o.MaxRetries = 0
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		t.Skipf("redis not reachable on %s: %v", testRedisAddr, err)
	}

	clean := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		for _, p := range patterns {
			keys, _ := client.Keys(ctx, p).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
	}
	clean()
	t.Cleanup(func() {
		clean()
		_ = client.Close()
	})
	return client
}

// closedClient returns a client whose every command fails.
func closedClient(t *testing.T) redis.UniversalClient {
	t.Helper()
	client, err := NewRedisUniversalClient(testRedisAddr)
	require.NoError(t, err)
	require.NoError(t, client.Close())
	return client
}
