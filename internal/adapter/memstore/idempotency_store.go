package memstore

import (
	"context"
	"sync"
	"time"
)

type idemEntry struct {
	value   string // empty while locked
	expires time.Time
}

// IdempotencyStore mirrors the redis store for single-process runs.
type IdempotencyStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]idemEntry
}

func NewIdempotencyStore(ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{ttl: ttl, entries: map[string]idemEntry{}}
}

func key(scope, k string) string { return "idemp:" + scope + ":" + k }

func (s *IdempotencyStore) TryLock(_ context.Context, scope, k string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[key(scope, k)]; ok && time.Now().Before(e.expires) {
		return false, nil
	}
	s.entries[key(scope, k)] = idemEntry{expires: time.Now().Add(s.ttl)}
	return true, nil
}

func (s *IdempotencyStore) Remember(_ context.Context, scope, k, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key(scope, k)] = idemEntry{value: value, expires: time.Now().Add(s.ttl)}
	return nil
}

func (s *IdempotencyStore) Recall(_ context.Context, scope, k string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key(scope, k)]
	if !ok || e.value == "" || time.Now().After(e.expires) {
		return "", false, nil
	}
	return e.value, true, nil
}

func (s *IdempotencyStore) Release(_ context.Context, scope, k string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key(scope, k))
	return nil
}
