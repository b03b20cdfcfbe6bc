package kv

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/portraitstudio/internal/common"
)

// MemoryStore keeps all blobs in process memory. It enforces an optional
// total-bytes capacity so quota behavior can be exercised without a real
// disk. Zero capacity means unlimited.
type MemoryStore struct {
	mu       sync.RWMutex
	data     map[string][]byte
	capacity int
}

func NewMemoryStore(capacity int) *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte), capacity: capacity}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.capacity > 0 {
		total := len(value)
		for k, v := range s.data {
			if k == key {
				continue
			}
			total += len(v)
		}
		if total > s.capacity {
			return fmt.Errorf("set %q: %w", key, ErrQuotaExceeded)
		}
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	s.data[key] = stored
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
