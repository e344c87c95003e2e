package myredis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"reactivemesh/domain"
	"reactivemesh/helpers"
	"reactivemesh/interfaces"
	"reactivemesh/service"

	"github.com/go-redis/redis/v8"
)

const instanceKeyPrefix = "instance"

// registrationStore keeps one key per instance: instance:{service}:{id} -> JSON registration, expiring after the
// registration TTL. Every Put refreshes the expiry, so an entry that missed its heartbeats disappears on its own.
type registrationStore struct {
	client redis.UniversalClient
}

var _ interfaces.RegistrationStore = (*registrationStore)(nil)

// NewRegistrationStore creates the Redis registration table of the discoverer. Panics on nil client.
//
// Called from cmd/discoverer main when STORE=redis.
func NewRegistrationStore(client redis.UniversalClient) *registrationStore {
	return &registrationStore{client: helpers.NilPanic(client, "myredis.registration_store.go: client is required")}
}

func (s *registrationStore) Put(ctx context.Context, reg domain.Registration) error {
	if reg.TTL <= 0 {
		return service.NewBadParameterError("registration ttl must be positive", nil)
	}
	bytes, err := json.Marshal(reg)
	if err != nil {
		return service.NewInternalServerError("Redis marshal registration error", fmt.Errorf("can't marshal registration %s/%s: %w", reg.ServiceName, reg.InstanceID, err))
	}
	key := instanceKey(reg.ServiceName, reg.InstanceID)
	if err := s.client.Set(ctx, key, bytes, reg.TTL).Err(); err != nil {
		return service.NewInternalServerError("Redis write key error", fmt.Errorf("can't write registration (key='%s'): %w", key, err))
	}
	return nil
}

// List fetches every key of the service with one KEYS and one MGET; keys that expire in between are skipped.
func (s *registrationStore) List(ctx context.Context, serviceName string) ([]domain.Registration, error) {
	keys, err := s.client.Keys(ctx, instanceKeyPrefix+":"+escapePattern(serviceName)+":*").Result()
	if err != nil {
		return nil, service.NewInternalServerError("Redis get keys error", fmt.Errorf("redis get keys error: %w", err))
	}
	out := make([]domain.Registration, 0, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, service.NewInternalServerError("Redis get values error", fmt.Errorf("redis mget error: %w", err))
	}
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var reg domain.Registration
		if err := json.Unmarshal([]byte(raw), &reg); err != nil {
			continue
		}
		if reg.ServiceName != serviceName {
			continue
		}
		out = append(out, reg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InstanceID < out[j].InstanceID })
	return out, nil
}

func (s *registrationStore) Delete(ctx context.Context, serviceName, instanceID string) error {
	key := instanceKey(serviceName, instanceID)
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return service.NewInternalServerError("Redis delete key error", fmt.Errorf("can't delete registration (key='%s'): %w", key, err))
	}
	return nil
}

func instanceKey(serviceName, instanceID string) string {
	return instanceKeyPrefix + ":" + serviceName + ":" + instanceID
}

var patternEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

// escapePattern quotes the glob metacharacters of KEYS.
func escapePattern(s string) string {
	return patternEscaper.Replace(s)
}
