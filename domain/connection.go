package domain

import (
	"sync/atomic"
	"time"

	"google.golang.org/grpc"
)

// ConnectionState is the lifecycle state of a cached transport connection.
type ConnectionState int32

const (
	ConnectionConnecting ConnectionState = iota
	ConnectionOpen
	ConnectionFailed
)

func (s ConnectionState) String() string {
	switch s {
	case ConnectionConnecting:
		return "connecting"
	case ConnectionOpen:
		return "open"
	case ConnectionFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ConnectionHandle is a transport connection to one service, owned by the connection cache and shared read-only by
// every caller resolving the same service while it is Open. Conn is set before the handle is published as Open.
type ConnectionHandle struct {
	ServiceName string
	Target      string
	CreatedAt   time.Time
	Conn        grpc.ClientConnInterface

	state atomic.Int32
}

// NewConnectionHandle returns a handle in the Connecting state.
func NewConnectionHandle(serviceName, target string, createdAt time.Time) *ConnectionHandle {
	h := &ConnectionHandle{ServiceName: serviceName, Target: target, CreatedAt: createdAt}
	h.state.Store(int32(ConnectionConnecting))
	return h
}

// State returns the current state.
func (h *ConnectionHandle) State() ConnectionState {
	return ConnectionState(h.state.Load())
}

// SetState moves the handle to s. Failed is terminal: once failed, later transitions are ignored and false is
// returned.
func (h *ConnectionHandle) SetState(s ConnectionState) bool {
	for {
		cur := h.state.Load()
		if ConnectionState(cur) == ConnectionFailed {
			return false
		}
		if h.state.CompareAndSwap(cur, int32(s)) {
			return true
		}
	}
}
