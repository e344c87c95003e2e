package scenario

import "context"

// ServiceControl stops and starts deployed services by compose service name. Implemented by
// compose.Environment.
type ServiceControl interface {
	StopService(ctx context.Context, service string) error
	StartService(ctx context.Context, service string) error
}

// Config holds settings for running a scenario against a deployed system.
type Config struct {
	// GatewayURL is the base URL of the gateway, e.g. http://localhost:8080.
	GatewayURL string
	// RegistryURL is the base URL of the discoverer, e.g. http://localhost:8761.
	RegistryURL string
	// Name is the account name used by the stream scenarios.
	Name string
	// Services controls the deployment; nil when the runner was started without a compose file, in which case
	// scenarios that stop services fail.
	Services ServiceControl
}
