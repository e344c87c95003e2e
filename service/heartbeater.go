package service

import (
	"context"
	"time"

	"reactivemesh/domain"
	"reactivemesh/helpers"
	"reactivemesh/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// unregisterTimeout bounds the final Unregister call made after the run context is cancelled.
const unregisterTimeout = 5 * time.Second

// Heartbeater keeps one registration alive: it registers immediately, re-registers every TTL/3 and unregisters
// when its context ends. Failed heartbeats are logged and retried on the next tick; the registry drops the entry by
// itself when no heartbeat arrives within TTL.
type Heartbeater struct {
	registrar    interfaces.Registrar
	registration domain.Registration
	interval     time.Duration
	logger       log.Logger
}

// NewHeartbeater creates the heartbeater for reg. Panics on nil registrar or logger, on empty service name or
// instance id, and on a non-positive TTL.
//
// Called from cmd/account and cmd/profile mains.
func NewHeartbeater(registrar interfaces.Registrar, reg domain.Registration, logger log.Logger) *Heartbeater {
	helpers.StrPanic(reg.ServiceName, "service.heartbeater.go: registration service name is required")
	helpers.StrPanic(reg.InstanceID, "service.heartbeater.go: registration instance id is required")
	if reg.TTL <= 0 {
		panic("service.heartbeater.go: registration ttl must be positive")
	}
	return &Heartbeater{
		registrar:    helpers.NilPanic(registrar, "service.heartbeater.go: registrar is required"),
		registration: reg,
		interval:     reg.TTL / 3,
		logger: log.With(helpers.NilPanic(logger, "service.heartbeater.go: logger is required"),
			"component", "heartbeater", "service", reg.ServiceName, "instance", reg.InstanceID),
	}
}

// Run heartbeats until ctx is done, then unregisters with a fresh bounded context.
//
// Returns: nil; registration errors never stop the loop.
//
// Called from cmd mains inside an errgroup.
func (h *Heartbeater) Run(ctx context.Context) error {
	h.beat(ctx)
	level.Info(h.logger).Log("msg", "registered", "host", h.registration.Host, "port", h.registration.Port)

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			unregisterCtx, cancel := context.WithTimeout(context.Background(), unregisterTimeout)
			defer cancel()
			if err := h.registrar.Unregister(unregisterCtx, h.registration.ServiceName, h.registration.InstanceID); err != nil {
				level.Warn(h.logger).Log("msg", "unregister failed", "err", err)
				return nil
			}
			level.Info(h.logger).Log("msg", "unregistered")
			return nil
		case <-ticker.C:
			h.beat(ctx)
		}
	}
}

func (h *Heartbeater) beat(ctx context.Context) {
	if err := h.registrar.Register(ctx, h.registration); err != nil {
		level.Warn(h.logger).Log("msg", "heartbeat failed", "err", err)
	}
}
