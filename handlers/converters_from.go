package handlers

import (
	"strings"
	"time"

	"reactivemesh/api"
	"reactivemesh/domain"
	"reactivemesh/service"
)

// fromRegisterRequest converts RegisterRequest to domain.Registration heartbeating at now.
// Returns service.BadParameterError on validation failure.
func fromRegisterRequest(req api.RegisterRequest, now time.Time) (domain.Registration, error) {
	if strings.TrimSpace(req.ServiceName) == "" {
		return domain.Registration{}, service.NewBadParameterError("service_name is required", nil)
	}
	if strings.TrimSpace(req.InstanceId) == "" {
		return domain.Registration{}, service.NewBadParameterError("instance_id is required", nil)
	}
	if strings.TrimSpace(req.Host) == "" {
		return domain.Registration{}, service.NewBadParameterError("host is required", nil)
	}
	if req.Port < 1 || req.Port > 65535 {
		return domain.Registration{}, service.NewBadParameterError("port must be in 1..65535", nil)
	}
	if req.TtlMs <= 0 {
		return domain.Registration{}, service.NewBadParameterError("ttl_ms is required", nil)
	}

	md := make(map[string]string, len(req.Metadata))
	for k, v := range req.Metadata {
		md[k] = v
	}
	return domain.Registration{
		ServiceName:   req.ServiceName,
		InstanceID:    req.InstanceId,
		Host:          req.Host,
		Port:          req.Port,
		Metadata:      md,
		LastHeartbeat: now,
		TTL:           time.Duration(req.TtlMs) * time.Millisecond,
	}, nil
}
