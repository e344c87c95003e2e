package api

// RegisterRequest is the body of POST /v1/register.
type RegisterRequest struct {
	ServiceName string            `json:"service_name"`
	InstanceId  string            `json:"instance_id"`
	Host        string            `json:"host"`
	Port        int               `json:"port"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	TtlMs       int               `json:"ttl_ms"`
}

// InstanceInfo is one live instance in InstancesResponse.
type InstanceInfo struct {
	ServiceName string            `json:"service_name"`
	InstanceId  string            `json:"instance_id"`
	Host        string            `json:"host"`
	Port        int               `json:"port"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// InstancesResponse is the body of GET /v1/services/{service_name}/instances.
type InstancesResponse struct {
	Instances []InstanceInfo `json:"instances"`
}
