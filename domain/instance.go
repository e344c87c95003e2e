package domain

import "time"

// ServiceInstance is one live instance of a named service as returned by a registry lookup. Rebuilt on every lookup
// and never mutated afterwards. Port is the instance's HTTP port; the streaming port is published in Metadata under
// StreamPortMetadataKey.
type ServiceInstance struct {
	ServiceName string
	InstanceID  string
	Host        string
	Port        int
	Metadata    map[string]string
}

// Registration is the registry server's record of an instance. LastHeartbeat is refreshed by every register call;
// the entry must not be served once it is older than TTL.
type Registration struct {
	ServiceName   string            `json:"service_name"`
	InstanceID    string            `json:"instance_id"`
	Host          string            `json:"host"`
	Port          int               `json:"port"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	LastHeartbeat time.Time         `json:"last_heartbeat"`
	TTL           time.Duration     `json:"ttl"`
}

// Expired reports whether now - LastHeartbeat > TTL.
func (r Registration) Expired(now time.Time) bool {
	return now.Sub(r.LastHeartbeat) > r.TTL
}

// Instance converts the registration into the lookup view. The metadata map is copied.
func (r Registration) Instance() ServiceInstance {
	md := make(map[string]string, len(r.Metadata))
	for k, v := range r.Metadata {
		md[k] = v
	}
	return ServiceInstance{
		ServiceName: r.ServiceName,
		InstanceID:  r.InstanceID,
		Host:        r.Host,
		Port:        r.Port,
		Metadata:    md,
	}
}
