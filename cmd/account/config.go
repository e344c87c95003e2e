package main

import (
	"fmt"
	"os"
	"time"

	"reactivemesh/handlers"
	"reactivemesh/helpers"

	"github.com/google/uuid"
)

// Env variable names.
const (
	envHTTPPort        = "SERVICE_PORT_HTTP"
	envGRPCPort        = "SERVICE_PORT_GRPC"
	envRegistryURL     = "REGISTRY_URL"
	envRegistryTimeout = "REGISTRY_TIMEOUT"
	envInstanceHost    = "INSTANCE_HOST"
	envInstanceID      = "INSTANCE_ID"
	envRegistrationTTL = "REGISTRATION_TTL"
	envStore           = "STORE"
	envRedisAddr       = "REDIS_ADDR"
	envEventInterval   = "EVENT_INTERVAL"
	envSSEKeepAlive    = "SSE_KEEPALIVE"
)

// Account store kinds selected with STORE.
const (
	storeMemory = "memory"
	storeRedis  = "redis"
)

const (
	defaultHTTPPort        = 8081
	defaultGRPCPort        = 7000
	defaultRegistryURL     = "http://localhost:8761"
	defaultRegistryTimeout = 5 * time.Second
	defaultRegistrationTTL = 30 * time.Second
	defaultEventInterval   = time.Second

	// redisDialTimeout bounds connecting to Redis and the startup ping.
	redisDialTimeout = 5 * time.Second
)

// Config holds the account-service configuration: listening ports, its own registration (InstanceHost,
// InstanceID, RegistrationTTL) in the registry at RegistryURL, the account store and the stream settings.
type Config struct {
	HTTPPort        int
	GRPCPort        int
	RegistryURL     string
	RegistryTimeout time.Duration
	InstanceHost    string
	InstanceID      string
	RegistrationTTL time.Duration
	Store           string
	RedisAddr       string
	EventInterval   time.Duration
	SSEKeepAlive    time.Duration
}

// LoadConfig loads configuration from environment variables; every variable has a default except REDIS_ADDR, which
// is required when STORE=redis. INSTANCE_HOST defaults to the OS hostname and INSTANCE_ID to a random uuid.
//
// Called only from main at startup.
func LoadConfig() (*Config, error) {
	httpPort, err := helpers.EnvPort(envHTTPPort, defaultHTTPPort)
	if err != nil {
		return nil, err
	}
	grpcPort, err := helpers.EnvPort(envGRPCPort, defaultGRPCPort)
	if err != nil {
		return nil, err
	}
	if grpcPort == httpPort {
		return nil, fmt.Errorf("%s and %s must differ, both are %d", envHTTPPort, envGRPCPort, httpPort)
	}
	registryTimeout, err := helpers.EnvDuration(envRegistryTimeout, defaultRegistryTimeout)
	if err != nil {
		return nil, err
	}
	ttl, err := helpers.EnvDuration(envRegistrationTTL, defaultRegistrationTTL)
	if err != nil {
		return nil, err
	}
	store := helpers.EnvString(envStore, storeMemory)
	if store != storeMemory && store != storeRedis {
		return nil, fmt.Errorf("%s must be memory|redis, got %q", envStore, store)
	}
	redisAddr := helpers.EnvString(envRedisAddr, "")
	if store == storeRedis && redisAddr == "" {
		return nil, fmt.Errorf("%s is required", envRedisAddr)
	}
	interval, err := helpers.EnvDuration(envEventInterval, defaultEventInterval)
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
		GRPCPort:        grpcPort,
		RegistryURL:     helpers.EnvString(envRegistryURL, defaultRegistryURL),
		RegistryTimeout: registryTimeout,
		InstanceHost:    host,
		InstanceID:      helpers.EnvString(envInstanceID, uuid.NewString()),
		RegistrationTTL: ttl,
		Store:           store,
		RedisAddr:       redisAddr,
		EventInterval:   interval,
		SSEKeepAlive:    keepAlive,
	}, nil
}
