package dedup

import (
	"context"
	"sync"
)

// MemoryStore keeps the seen-state in process memory. Both sets are unbounded;
// the process is expected to be restarted before that matters.
type MemoryStore struct {
	mu           sync.Mutex
	urls         map[string]struct{}
	fingerprints map[string]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		urls:         make(map[string]struct{}),
		fingerprints: make(map[string]struct{}),
	}
}

func (s *MemoryStore) Admit(ctx context.Context, url, fingerprint string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, seen := s.urls[url]; seen {
		return false, nil
	}
	if _, seen := s.fingerprints[fingerprint]; seen {
		return false, nil
	}

	s.urls[url] = struct{}{}
	s.fingerprints[fingerprint] = struct{}{}
	return true, nil
}

func (s *MemoryStore) Counts(ctx context.Context) (int64, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.urls)), int64(len(s.fingerprints)), nil
}
