package myredis

import (
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Option adjusts the options parsed from the redis URL.
type Option func(*redis.Options)

// WithPoolSize sets the connection pool size; non-positive values keep the library default.
func WithPoolSize(size int) Option {
	return func(o *redis.Options) {
		if size > 0 {
			o.PoolSize = size
		}
	}
}

// WithTimeouts sets the dial and read/write timeouts; zero keeps the library default.
func WithTimeouts(dial, readWrite time.Duration) Option {
	return func(o *redis.Options) {
		if dial > 0 {
			o.DialTimeout = dial
		}
		if readWrite > 0 {
			o.ReadTimeout = readWrite
			o.WriteTimeout = readWrite
		}
	}
}

// NewRedisUniversalClient builds a single-node universal client from a redis URL.
//
// Parameters: redisAddr — redis://[user:pass@]host:port/db; opts — applied in order after parsing.
//
// Returns: the client, or an error when the URL does not parse. No connection is made here; mains Ping it.
//
// Called from cmd/discoverer and cmd/account mains when STORE=redis.
func NewRedisUniversalClient(redisAddr string, opts ...Option) (redis.UniversalClient, error) {
	parsed, err := redis.ParseURL(redisAddr)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	for _, opt := range opts {
		opt(parsed)
	}
	return redis.NewUniversalClient(toUniversal(parsed)), nil
}

// toUniversal keeps the single address so the universal client stays a plain *redis.Client.
func toUniversal(o *redis.Options) *redis.UniversalOptions {
	u := &redis.UniversalOptions{
		Addrs:        []string{o.Addr},
		DB:           o.DB,
		Username:     o.Username,
		Password:     o.Password,
		TLSConfig:    o.TLSConfig,
		MaxRetries:   o.MaxRetries,
		PoolSize:     o.PoolSize,
		MinIdleConns: o.MinIdleConns,
	}
	u.DialTimeout, u.ReadTimeout, u.WriteTimeout = o.DialTimeout, o.ReadTimeout, o.WriteTimeout
	u.PoolTimeout, u.IdleTimeout = o.PoolTimeout, o.IdleTimeout
	return u
}
