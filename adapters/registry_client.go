package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"reactivemesh/api"
	"reactivemesh/domain"
	"reactivemesh/helpers"
	"reactivemesh/interfaces"
	"reactivemesh/service"
)

// RegistryHTTP creates the client of the discoverer: GET baseURL/v1/services/{name}/instances (Lookup),
// POST baseURL/v1/register (Register) and POST baseURL/v1/unregister/{name}/{id} (Unregister). Panics on empty
// baseURL or nil client/metrics.
//
// Parameters: baseURL — discoverer base URL (e.g. http://discoverer:8761), no trailing slash; client — HTTP client;
// timeout — per-call bound (default 5s in cmd configs); metrics — registry lookup counters.
//
// Returns: *registryHTTP implementing interfaces.Registry and interfaces.Registrar.
//
// Called from cmd mains (profile, gateway: Lookup; account, profile: heartbeats).
func RegistryHTTP(baseURL string, client *http.Client, timeout time.Duration, metrics *service.Metrics) *registryHTTP {
	return &registryHTTP{
		baseURL: helpers.StrPanic(baseURL, "adapters.registry_client.go: baseURL is required"),
		client:  helpers.NilPanic(client, "adapters.registry_client.go: http client is required"),
		timeout: timeout,
		metrics: helpers.NilPanic(metrics, "adapters.registry_client.go: metrics is required"),
	}
}

// registryHTTP implements interfaces.Registry and interfaces.Registrar over the discoverer HTTP API. It holds no
// cache: every Lookup is a fresh query.
type registryHTTP struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
	metrics *service.Metrics
}

var (
	_ interfaces.Registry  = (*registryHTTP)(nil)
	_ interfaces.Registrar = (*registryHTTP)(nil)
)

// Lookup performs GET baseURL/v1/services/{serviceName}/instances.
//
// Returns: (instances in registry order, nil) on 200 (possibly empty, never nil) or 404 (empty); (nil,
// registry_unavailable MyError) on network error, timeout, any other status or a malformed body (invalid JSON or
// missing "instances").
//
// Called from service.serviceResolver on every resolution.
func (r *registryHTTP) Lookup(ctx context.Context, serviceName string) ([]domain.ServiceInstance, error) {
	instances, err := r.lookup(ctx, serviceName)
	switch {
	case err != nil:
		r.metrics.RegistryLookups.WithLabelValues(serviceName, "error").Inc()
		return nil, service.NewRegistryUnavailableError(serviceName, err)
	case len(instances) == 0:
		r.metrics.RegistryLookups.WithLabelValues(serviceName, "empty").Inc()
	default:
		r.metrics.RegistryLookups.WithLabelValues(serviceName, "ok").Inc()
	}
	return instances, nil
}

func (r *registryHTTP) lookup(ctx context.Context, serviceName string) ([]domain.ServiceInstance, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	reqURL := r.baseURL + "/v1/services/" + url.PathEscape(serviceName) + "/instances"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return []domain.ServiceInstance{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("registry returned %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var raw api.InstancesResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	if raw.Instances == nil {
		return nil, fmt.Errorf("registry response missing instances field")
	}
	out := make([]domain.ServiceInstance, 0, len(raw.Instances))
	for _, i := range raw.Instances {
		name := i.ServiceName
		if name == "" {
			name = serviceName
		}
		md := i.Metadata
		if md == nil {
			md = map[string]string{}
		}
		out = append(out, domain.ServiceInstance{
			ServiceName: name,
			InstanceID:  i.InstanceId,
			Host:        i.Host,
			Port:        i.Port,
			Metadata:    md,
		})
	}
	return out, nil
}

// Register performs POST baseURL/v1/register with reg (TTL sent in milliseconds).
//
// Returns: nil on 200; registry_unavailable MyError on network error or non-200.
//
// Called from service.Heartbeater on every heartbeat.
func (r *registryHTTP) Register(ctx context.Context, reg domain.Registration) error {
	body, err := json.Marshal(api.RegisterRequest{
		ServiceName: reg.ServiceName,
		InstanceId:  reg.InstanceID,
		Host:        reg.Host,
		Port:        reg.Port,
		Metadata:    reg.Metadata,
		TtlMs:       int(reg.TTL / time.Millisecond),
	})
	if err != nil {
		return service.NewInternalServerError("marshal register request", err)
	}
	if err := r.post(ctx, "/v1/register", body); err != nil {
		return service.NewRegistryUnavailableError(reg.ServiceName, err)
	}
	return nil
}

// Unregister performs POST baseURL/v1/unregister/{serviceName}/{instanceID}; path segments are escaped.
//
// Returns: nil on 200; registry_unavailable MyError otherwise.
//
// Called from service.Heartbeater on shutdown.
func (r *registryHTTP) Unregister(ctx context.Context, serviceName, instanceID string) error {
	path := "/v1/unregister/" + url.PathEscape(serviceName) + "/" + url.PathEscape(instanceID)
	if err := r.post(ctx, path, nil); err != nil {
		return service.NewRegistryUnavailableError(serviceName, err)
	}
	return nil
}

func (r *registryHTTP) post(ctx context.Context, path string, body []byte) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("registry %s returned %d", path, resp.StatusCode)
	}
	return nil
}
