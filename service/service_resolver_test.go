package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"reactivemesh/domain"
	"reactivemesh/interfaces/mock"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func instance(id, host string, port int, streamPort string) domain.ServiceInstance {
	md := map[string]string{}
	if streamPort != "" {
		md[domain.StreamPortMetadataKey] = streamPort
	}
	return domain.ServiceInstance{ServiceName: "account-service", InstanceID: id, Host: host, Port: port, Metadata: md}
}

func TestNewServiceResolver_Panics(t *testing.T) {
	registry := &mock.RegistryMock{}
	cache := &mock.ConnectionCacheMock{}
	logger := log.NewNopLogger()

	t.Run("registry_nil", func(t *testing.T) {
		assert.PanicsWithValue(t, "service.service_resolver.go: registry is required", func() {
			NewServiceResolver(nil, cache, domain.StreamPortMetadataKey, time.Second, logger)
		})
	})
	t.Run("cache_nil", func(t *testing.T) {
		assert.PanicsWithValue(t, "service.service_resolver.go: cache is required", func() {
			NewServiceResolver(registry, nil, domain.StreamPortMetadataKey, time.Second, logger)
		})
	})
	t.Run("port_key_empty", func(t *testing.T) {
		assert.PanicsWithValue(t, "service.service_resolver.go: portKey is required", func() {
			NewServiceResolver(registry, cache, "", time.Second, logger)
		})
	})
	t.Run("logger_nil", func(t *testing.T) {
		assert.PanicsWithValue(t, "service.service_resolver.go: logger is required", func() {
			NewServiceResolver(registry, cache, domain.StreamPortMetadataKey, time.Second, nil)
		})
	})
}

func TestServiceResolver_Resolve(t *testing.T) {
	ctx := context.Background()
	open := domain.NewConnectionHandle("account-service", "10.0.0.5:7000", time.Now())
	open.SetState(domain.ConnectionOpen)

	tests := []struct {
		name       string
		instances  []domain.ServiceInstance
		lookupErr  error
		cacheErr   error
		wantHost   string
		wantPort   int
		wantCached bool
		check      func(t *testing.T, err error)
	}{
		{
			name:       "uses_first_instance",
			instances:  []domain.ServiceInstance{instance("a", "10.0.0.5", 8080, "7000"), instance("b", "10.0.0.6", 8080, "7001")},
			wantHost:   "10.0.0.5",
			wantPort:   7000,
			wantCached: true,
		},
		{
			name:      "no_instances_is_service_unavailable_without_dial",
			instances: []domain.ServiceInstance{},
			check: func(t *testing.T, err error) {
				assert.True(t, IsServiceUnavailableError(err))
				assert.Equal(t, "account-service", ToMyError(err).Service)
			},
		},
		{
			name:      "registry_error_is_passed_through",
			lookupErr: NewRegistryUnavailableError("account-service", errors.New("refused")),
			check: func(t *testing.T, err error) {
				assert.True(t, IsRegistryUnavailableError(err))
			},
		},
		{
			name:      "plain_registry_error_is_wrapped",
			lookupErr: errors.New("boom"),
			check: func(t *testing.T, err error) {
				assert.True(t, IsRegistryUnavailableError(err))
			},
		},
		{
			name:      "missing_port_metadata",
			instances: []domain.ServiceInstance{instance("a", "10.0.0.5", 8080, "")},
			check: func(t *testing.T, err error) {
				assert.True(t, IsInvalidInstanceMetadataError(err))
				assert.Equal(t, domain.StreamPortMetadataKey, ToMyError(err).Key)
			},
		},
		{
			name:      "non_numeric_port_metadata",
			instances: []domain.ServiceInstance{instance("a", "10.0.0.5", 8080, "abc")},
			check: func(t *testing.T, err error) {
				assert.True(t, IsInvalidInstanceMetadataError(err))
			},
		},
		{
			name:      "out_of_range_port_metadata",
			instances: []domain.ServiceInstance{instance("a", "10.0.0.5", 8080, "70000")},
			check: func(t *testing.T, err error) {
				assert.True(t, IsInvalidInstanceMetadataError(err))
			},
		},
		{
			name:       "connection_failure_is_passed_through",
			instances:  []domain.ServiceInstance{instance("a", "10.0.0.5", 8080, " 7000 ")},
			cacheErr:   NewConnectionFailedError("account-service", errors.New("refused")),
			wantHost:   "10.0.0.5",
			wantPort:   7000,
			wantCached: true,
			check: func(t *testing.T, err error) {
				assert.True(t, IsConnectionFailedError(err))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := &mock.RegistryMock{
				LookupFunc: func(ctx context.Context, serviceName string) ([]domain.ServiceInstance, error) {
					return tt.instances, tt.lookupErr
				},
			}
			cache := &mock.ConnectionCacheMock{
				GetOrCreateFunc: func(ctx context.Context, serviceName, host string, port int) (*domain.ConnectionHandle, error) {
					if tt.cacheErr != nil {
						return nil, tt.cacheErr
					}
					return open, nil
				},
			}
			r := NewServiceResolver(registry, cache, domain.StreamPortMetadataKey, time.Second, log.NewNopLogger())

			h, err := r.Resolve(ctx, "account-service")

			require.Len(t, registry.LookupCalls(), 1)
			assert.Equal(t, "account-service", registry.LookupCalls()[0].ServiceName)
			if tt.wantCached {
				require.Len(t, cache.GetOrCreateCalls(), 1)
				call := cache.GetOrCreateCalls()[0]
				assert.Equal(t, "account-service", call.ServiceName)
				assert.Equal(t, tt.wantHost, call.Host)
				assert.Equal(t, tt.wantPort, call.Port)
			} else {
				assert.Empty(t, cache.GetOrCreateCalls())
			}
			if tt.check != nil {
				require.Error(t, err)
				assert.Nil(t, h)
				tt.check(t, err)
				return
			}
			require.NoError(t, err)
			assert.Same(t, open, h)
		})
	}
}

func TestServiceResolver_Locate(t *testing.T) {
	ctx := context.Background()
	cache := &mock.ConnectionCacheMock{}

	t.Run("first_instance_without_cache", func(t *testing.T) {
		registry := &mock.RegistryMock{
			LookupFunc: func(ctx context.Context, serviceName string) ([]domain.ServiceInstance, error) {
				return []domain.ServiceInstance{instance("a", "10.0.0.5", 8081, ""), instance("b", "10.0.0.6", 8082, "")}, nil
			},
		}
		r := NewServiceResolver(registry, cache, domain.StreamPortMetadataKey, time.Second, log.NewNopLogger())
		inst, err := r.Locate(ctx, "account-service")
		require.NoError(t, err)
		assert.Equal(t, "a", inst.InstanceID)
		assert.Equal(t, 8081, inst.Port)
		assert.Empty(t, cache.GetOrCreateCalls())
	})

	t.Run("no_instances", func(t *testing.T) {
		registry := &mock.RegistryMock{
			LookupFunc: func(ctx context.Context, serviceName string) ([]domain.ServiceInstance, error) {
				return []domain.ServiceInstance{}, nil
			},
		}
		r := NewServiceResolver(registry, cache, domain.StreamPortMetadataKey, time.Second, log.NewNopLogger())
		_, err := r.Locate(ctx, "profile-service")
		require.Error(t, err)
		assert.True(t, IsServiceUnavailableError(err))
	})

	t.Run("lookup_is_bounded_by_timeout", func(t *testing.T) {
		registry := &mock.RegistryMock{
			LookupFunc: func(ctx context.Context, serviceName string) ([]domain.ServiceInstance, error) {
				<-ctx.Done()
				return nil, NewRegistryUnavailableError(serviceName, ctx.Err())
			},
		}
		r := NewServiceResolver(registry, cache, domain.StreamPortMetadataKey, 20*time.Millisecond, log.NewNopLogger())
		_, err := r.Locate(ctx, "account-service")
		require.Error(t, err)
		assert.True(t, IsRegistryUnavailableError(err))
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestNewInstanceLocator_Panics(t *testing.T) {
	assert.PanicsWithValue(t, "service.service_resolver.go: registry is required", func() {
		NewInstanceLocator(nil, time.Second, log.NewNopLogger())
	})
	assert.PanicsWithValue(t, "service.service_resolver.go: logger is required", func() {
		NewInstanceLocator(&mock.RegistryMock{}, time.Second, nil)
	})
}

func TestInstanceLocator_Locate(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name      string
		instances []domain.ServiceInstance
		lookupErr error
		wantID    string
		check     func(error) bool
	}{
		{
			name:      "first_instance",
			instances: []domain.ServiceInstance{instance("a", "10.0.0.5", 8081, ""), instance("b", "10.0.0.6", 8082, "")},
			wantID:    "a",
		},
		{name: "no_instances", instances: []domain.ServiceInstance{}, check: IsServiceUnavailableError},
		{name: "plain_lookup_error_is_registry_unavailable", lookupErr: errors.New("refused"), check: IsRegistryUnavailableError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := &mock.RegistryMock{
				LookupFunc: func(ctx context.Context, serviceName string) ([]domain.ServiceInstance, error) {
					return tt.instances, tt.lookupErr
				},
			}
			inst, err := NewInstanceLocator(registry, time.Second, log.NewNopLogger()).Locate(ctx, "account-service")
			if tt.check != nil {
				require.Error(t, err)
				assert.True(t, tt.check(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, inst.InstanceID)
			require.Len(t, registry.LookupCalls(), 1)
			assert.Equal(t, "account-service", registry.LookupCalls()[0].ServiceName)
		})
	}
}
