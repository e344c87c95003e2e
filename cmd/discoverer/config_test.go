package main

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setDiscovererEnv(t *testing.T, store, redisAddr string) {
	t.Helper()
	t.Setenv(envHTTPPort, "")
	t.Setenv(envStore, store)
	t.Setenv(envRedisAddr, redisAddr)
	t.Setenv(envRedisPoolSize, "")
	t.Setenv(envPurgeInterval, "")
}

func TestLoadConfig_RedisAddrRequired(t *testing.T) {
	setDiscovererEnv(t, "", "")

	cfg, err := LoadConfig()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "REDIS_ADDR is required")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setDiscovererEnv(t, "", "redis://localhost:6379")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, &Config{
		HTTPPort:      defaultHTTPPort,
		Store:         storeRedis,
		RedisAddr:     "redis://localhost:6379",
		PurgeInterval: defaultPurgeInterval,
	}, cfg)
}

func TestLoadConfig_MemoryStore(t *testing.T) {
	setDiscovererEnv(t, "memory", "")
	t.Setenv(envHTTPPort, "9000")
	t.Setenv(envPurgeInterval, "5s")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, storeMemory, cfg.Store)
	assert.Equal(t, 9000, cfg.HTTPPort)
	assert.Equal(t, 5*time.Second, cfg.PurgeInterval)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{name: "unknown store", env: map[string]string{envStore: "etcd"}, wantErr: "STORE must be redis|memory"},
		{name: "bad port", env: map[string]string{envHTTPPort: "http"}, wantErr: "SERVICE_PORT_HTTP"},
		{name: "bad pool size", env: map[string]string{envRedisPoolSize: "-2"}, wantErr: "REDIS_POOL_SIZE"},
		{name: "bad purge interval", env: map[string]string{envPurgeInterval: "often"}, wantErr: "PURGE_INTERVAL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setDiscovererEnv(t, "", "redis://localhost:6379")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := LoadConfig()
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

type countingPurger struct{ calls atomic.Int32 }

func (p *countingPurger) Purge() int {
	p.calls.Add(1)
	return 1
}

func TestRunPurge(t *testing.T) {
	p := &countingPurger{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runPurge(ctx, p, 5*time.Millisecond, log.NewNopLogger()) }()

	require.Eventually(t, func() bool { return p.calls.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("runPurge did not stop")
	}
}
