package main

import (
	"fmt"
	"strconv"
	"time"

	"reactivemesh/helpers"
)

// Env variable names.
const (
	envHTTPPort      = "SERVICE_PORT_HTTP"
	envStore         = "STORE"
	envRedisAddr     = "REDIS_ADDR"
	envRedisPoolSize = "REDIS_POOL_SIZE"
	envPurgeInterval = "PURGE_INTERVAL"
)

// Registration store kinds selected with STORE.
const (
	storeRedis  = "redis"
	storeMemory = "memory"
)

const (
	defaultHTTPPort      = 8761
	defaultPurgeInterval = 30 * time.Second

	// redisDialTimeout bounds connecting to Redis and the startup ping.
	redisDialTimeout = 5 * time.Second
)

// Config holds the discoverer configuration. Store is redis (REDIS_ADDR required) or memory; PurgeInterval is the
// period of the expired-entry sweep of the memory store.
type Config struct {
	HTTPPort      int
	Store         string
	RedisAddr     string
	RedisPoolSize int
	PurgeInterval time.Duration
}

// LoadConfig loads configuration from environment variables. SERVICE_PORT_HTTP defaults to 8761, STORE to redis,
// PURGE_INTERVAL to 30s. REDIS_ADDR is required when STORE=redis.
//
// Called only from main at startup.
func LoadConfig() (*Config, error) {
	httpPort, err := helpers.EnvPort(envHTTPPort, defaultHTTPPort)
	if err != nil {
		return nil, err
	}
	store := helpers.EnvString(envStore, storeRedis)
	if store != storeRedis && store != storeMemory {
		return nil, fmt.Errorf("%s must be redis|memory, got %q", envStore, store)
	}
	redisAddr := helpers.EnvString(envRedisAddr, "")
	if store == storeRedis && redisAddr == "" {
		return nil, fmt.Errorf("%s is required", envRedisAddr)
	}
	var poolSize int
	if v := helpers.EnvString(envRedisPoolSize, ""); v != "" {
		poolSize, err = strconv.Atoi(v)
		if err != nil || poolSize <= 0 {
			return nil, fmt.Errorf("%s must be a positive integer, got %q", envRedisPoolSize, v)
		}
	}
	purge, err := helpers.EnvDuration(envPurgeInterval, defaultPurgeInterval)
	if err != nil {
		return nil, err
	}
	return &Config{
		HTTPPort:      httpPort,
		Store:         store,
		RedisAddr:     redisAddr,
		RedisPoolSize: poolSize,
		PurgeInterval: purge,
	}, nil
}
