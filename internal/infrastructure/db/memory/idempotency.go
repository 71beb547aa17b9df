package memory

import (
	"context"
	"sync"
	"time"
)

type idemEntry struct {
	imageID string
	expires time.Time
}

// IdempotencyStore maps Idempotency-Key values to image ids with a TTL.
type IdempotencyStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]idemEntry
	now     func() time.Time
}

func NewIdempotencyStore(ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{ttl: ttl, entries: make(map[string]idemEntry), now: time.Now}
}

func (s *IdempotencyStore) Lookup(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return "", false, nil
	}
	if s.now().After(e.expires) {
		delete(s.entries, key)
		return "", false, nil
	}
	return e.imageID, true, nil
}

func (s *IdempotencyStore) Remember(_ context.Context, key, imageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	// Expired keys are swept on write.
	for k, e := range s.entries {
		if now.After(e.expires) {
			delete(s.entries, k)
		}
	}
	s.entries[key] = idemEntry{imageID: imageID, expires: now.Add(s.ttl)}
	return nil
}
