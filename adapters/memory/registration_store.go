package memory

import (
	"context"
	"sort"
	"sync"

	"reactivemesh/domain"
	"reactivemesh/helpers"
	"reactivemesh/interfaces"
	"reactivemesh/service"
)

type registrationKey struct {
	service  string
	instance string
}

// registrationStore is the in-process registration table. There is no background expiry: expired entries are
// filtered out by List and purged lazily.
type registrationStore struct {
	timeProvider interfaces.TimeProvider

	mu      sync.Mutex
	entries map[registrationKey]domain.Registration
}

var _ interfaces.RegistrationStore = (*registrationStore)(nil)

// NewRegistrationStore creates the memory registration table of the discoverer (STORE=memory). Panics on nil
// timeProvider.
func NewRegistrationStore(timeProvider interfaces.TimeProvider) *registrationStore {
	return &registrationStore{
		timeProvider: helpers.NilPanic(timeProvider, "memory.registration_store.go: timeProvider is required"),
		entries:      make(map[registrationKey]domain.Registration),
	}
}

func (s *registrationStore) Put(_ context.Context, reg domain.Registration) error {
	if reg.TTL <= 0 {
		return service.NewBadParameterError("registration ttl must be positive", nil)
	}
	reg.Metadata = copyMetadata(reg.Metadata)
	s.mu.Lock()
	s.entries[registrationKey{reg.ServiceName, reg.InstanceID}] = reg
	s.mu.Unlock()
	return nil
}

func (s *registrationStore) List(_ context.Context, serviceName string) ([]domain.Registration, error) {
	now := s.timeProvider.Now()
	out := make([]domain.Registration, 0)

	s.mu.Lock()
	for k, reg := range s.entries {
		if reg.Expired(now) {
			delete(s.entries, k)
			continue
		}
		if k.service == serviceName {
			reg.Metadata = copyMetadata(reg.Metadata)
			out = append(out, reg)
		}
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].InstanceID < out[j].InstanceID })
	return out, nil
}

func (s *registrationStore) Delete(_ context.Context, serviceName, instanceID string) error {
	s.mu.Lock()
	delete(s.entries, registrationKey{serviceName, instanceID})
	s.mu.Unlock()
	return nil
}

// Purge removes every expired entry and returns how many were removed.
//
// Called periodically from cmd/discoverer main so that unqueried services do not accumulate dead entries.
func (s *registrationStore) Purge() int {
	now := s.timeProvider.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for k, reg := range s.entries {
		if reg.Expired(now) {
			delete(s.entries, k)
			removed++
		}
	}
	return removed
}

func copyMetadata(md map[string]string) map[string]string {
	if md == nil {
		return nil
	}
	out := make(map[string]string, len(md))
	for k, v := range md {
		out[k] = v
	}
	return out
}
