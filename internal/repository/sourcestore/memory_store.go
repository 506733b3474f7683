// internal/repository/sourcestore/memory_store.go
package sourcestore

import (
	"context"
	"sync"
)

// MemoryStore is used when no Redis is configured; it lasts for the process lifetime.
type MemoryStore struct {
	mu  sync.Mutex
	url string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Remember(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.url = url
	return nil
}

func (s *MemoryStore) Recall(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.url, nil
}

func (s *MemoryStore) Forget(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.url = ""
	return nil
}
