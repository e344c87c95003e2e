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

func testRegistration(ttl time.Duration) domain.Registration {
	return domain.Registration{
		ServiceName: domain.AccountServiceName,
		InstanceID:  "account-1",
		Host:        "127.0.0.1",
		Port:        8081,
		Metadata:    map[string]string{domain.StreamPortMetadataKey: "7000"},
		TTL:         ttl,
	}
}

func TestNewHeartbeater_Panics(t *testing.T) {
	registrar := &mock.RegistrarMock{}
	logger := log.NewNopLogger()

	assert.PanicsWithValue(t, "service.heartbeater.go: registrar is required", func() {
		NewHeartbeater(nil, testRegistration(time.Second), logger)
	})
	assert.PanicsWithValue(t, "service.heartbeater.go: logger is required", func() {
		NewHeartbeater(registrar, testRegistration(time.Second), nil)
	})
	assert.PanicsWithValue(t, "service.heartbeater.go: registration ttl must be positive", func() {
		NewHeartbeater(registrar, testRegistration(0), logger)
	})
	assert.PanicsWithValue(t, "service.heartbeater.go: registration instance id is required", func() {
		reg := testRegistration(time.Second)
		reg.InstanceID = ""
		NewHeartbeater(registrar, reg, logger)
	})
}

func TestHeartbeater_Run(t *testing.T) {
	t.Run("heartbeats_then_unregisters", func(t *testing.T) {
		registrar := &mock.RegistrarMock{}
		hb := NewHeartbeater(registrar, testRegistration(30*time.Millisecond), log.NewNopLogger())
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- hb.Run(ctx) }()

		require.Eventually(t, func() bool { return len(registrar.RegisterCalls()) >= 3 }, 2*time.Second, 5*time.Millisecond)
		cancel()
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("Run did not return")
		}

		assert.Equal(t, "account-1", registrar.RegisterCalls()[0].Reg.InstanceID)
		require.Len(t, registrar.UnregisterCalls(), 1)
		assert.Equal(t, domain.AccountServiceName, registrar.UnregisterCalls()[0].ServiceName)
		assert.Equal(t, "account-1", registrar.UnregisterCalls()[0].InstanceID)
	})

	t.Run("register_errors_do_not_stop_the_loop", func(t *testing.T) {
		registrar := &mock.RegistrarMock{
			RegisterFunc: func(ctx context.Context, reg domain.Registration) error {
				return errors.New("registry down")
			},
			UnregisterFunc: func(ctx context.Context, serviceName, instanceID string) error {
				return errors.New("registry down")
			},
		}
		hb := NewHeartbeater(registrar, testRegistration(30*time.Millisecond), log.NewNopLogger())
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- hb.Run(ctx) }()

		require.Eventually(t, func() bool { return len(registrar.RegisterCalls()) >= 2 }, 2*time.Second, 5*time.Millisecond)
		cancel()
		require.NoError(t, <-done)
		assert.Len(t, registrar.UnregisterCalls(), 1)
	})
}
