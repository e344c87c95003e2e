package main

import (
	"os"
	"time"

	"reactivemesh/domain"
	"reactivemesh/handlers"
	"reactivemesh/helpers"

	"github.com/google/uuid"
)

// Env variable names.
const (
	envHTTPPort        = "SERVICE_PORT_HTTP"
	envRegistryURL     = "REGISTRY_URL"
	envRegistryTimeout = "REGISTRY_TIMEOUT"
	envInstanceHost    = "INSTANCE_HOST"
	envInstanceID      = "INSTANCE_ID"
	envRegistrationTTL = "REGISTRATION_TTL"
	envTargetService   = "TARGET_SERVICE"
	envPortMetadataKey = "PORT_METADATA_KEY"
	envConnectTimeout  = "CONNECT_TIMEOUT"
	envResolveTimeout  = "RESOLVE_TIMEOUT"
	envSSEKeepAlive    = "SSE_KEEPALIVE"
)

const (
	defaultHTTPPort        = 8082
	defaultRegistryURL     = "http://localhost:8761"
	defaultRegistryTimeout = 5 * time.Second
	defaultRegistrationTTL = 30 * time.Second
	defaultConnectTimeout  = 5 * time.Second
	defaultResolveTimeout  = 10 * time.Second
)

// Config holds the profile-service configuration. TargetService is the registered name of the remote account
// stream, PortMetadataKey the metadata key publishing its streaming port; ConnectTimeout bounds one dial of the
// connection cache and ResolveTimeout a whole resolution.
type Config struct {
	HTTPPort        int
	RegistryURL     string
	RegistryTimeout time.Duration
	InstanceHost    string
	InstanceID      string
	RegistrationTTL time.Duration
	TargetService   string
	PortMetadataKey string
	ConnectTimeout  time.Duration
	ResolveTimeout  time.Duration
	SSEKeepAlive    time.Duration
}

// LoadConfig loads configuration from environment variables; every variable has a default. INSTANCE_HOST defaults to
// the OS hostname and INSTANCE_ID to a random uuid.
//
// Called only from main at startup.
func LoadConfig() (*Config, error) {
	httpPort, err := helpers.EnvPort(envHTTPPort, defaultHTTPPort)
	if err != nil {
		return nil, err
	}
	registryTimeout, err := helpers.EnvDuration(envRegistryTimeout, defaultRegistryTimeout)
	if err != nil {
		return nil, err
	}
	ttl, err := helpers.EnvDuration(envRegistrationTTL, defaultRegistrationTTL)
	if err != nil {
		return nil, err
	}
	connectTimeout, err := helpers.EnvDuration(envConnectTimeout, defaultConnectTimeout)
	if err != nil {
		return nil, err
	}
	resolveTimeout, err := helpers.EnvDuration(envResolveTimeout, defaultResolveTimeout)
	if err != nil {
		return nil, err
	}
	keepAlive, err := helpers.EnvDuration(envSSEKeepAlive, handlers.DefaultKeepAlive)
	if err != nil {
		return nil, err
	}
	host := helpers.EnvString(envInstanceHost, "")
	if host == "" {
		if host, err = os.Hostname(); err != nil || host == "" {
			host = "localhost"
		}
	}
	return &Config{
		HTTPPort:        httpPort,
		RegistryURL:     helpers.EnvString(envRegistryURL, defaultRegistryURL),
		RegistryTimeout: registryTimeout,
		InstanceHost:    host,
		InstanceID:      helpers.EnvString(envInstanceID, uuid.NewString()),
		RegistrationTTL: ttl,
		TargetService:   helpers.EnvString(envTargetService, domain.AccountServiceName),
		PortMetadataKey: helpers.EnvString(envPortMetadataKey, domain.StreamPortMetadataKey),
		ConnectTimeout:  connectTimeout,
		ResolveTimeout:  resolveTimeout,
		SSEKeepAlive:    keepAlive,
	}, nil
}
