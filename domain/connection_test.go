package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConnectionHandle_States(t *testing.T) {
	h := NewConnectionHandle(AccountServiceName, "10.0.0.1:7001", time.Now())
	assert.Equal(t, ConnectionConnecting, h.State())

	assert.True(t, h.SetState(ConnectionOpen))
	assert.Equal(t, ConnectionOpen, h.State())

	assert.True(t, h.SetState(ConnectionFailed))
	assert.Equal(t, ConnectionFailed, h.State())

	assert.False(t, h.SetState(ConnectionOpen), "failed is terminal")
	assert.Equal(t, ConnectionFailed, h.State())
}

func TestConnectionState_String(t *testing.T) {
	assert.Equal(t, "connecting", ConnectionConnecting.String())
	assert.Equal(t, "open", ConnectionOpen.String())
	assert.Equal(t, "failed", ConnectionFailed.String())
	assert.Equal(t, "unknown", ConnectionState(42).String())
}

func TestRegistration_Expired(t *testing.T) {
	beat := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	r := Registration{LastHeartbeat: beat, TTL: 30 * time.Second}

	assert.False(t, r.Expired(beat))
	assert.False(t, r.Expired(beat.Add(30*time.Second)), "exactly ttl is still live")
	assert.True(t, r.Expired(beat.Add(30*time.Second+time.Millisecond)))
}

func TestRegistration_Instance_CopiesMetadata(t *testing.T) {
	r := Registration{
		ServiceName: AccountServiceName,
		InstanceID:  "i1",
		Host:        "h1",
		Port:        8081,
		Metadata:    map[string]string{StreamPortMetadataKey: "7001"},
	}
	inst := r.Instance()
	assert.Equal(t, ServiceInstance{
		ServiceName: AccountServiceName,
		InstanceID:  "i1",
		Host:        "h1",
		Port:        8081,
		Metadata:    map[string]string{StreamPortMetadataKey: "7001"},
	}, inst)

	inst.Metadata[StreamPortMetadataKey] = "9999"
	assert.Equal(t, "7001", r.Metadata[StreamPortMetadataKey])
}
