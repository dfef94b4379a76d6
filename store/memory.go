package store

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store backed by a guarded map, the same
// sync.RWMutex-guarded map shape the api server used for its match
// registry. It is used by tests and can stand in for SQLiteStore in any
// environment that doesn't need the durability.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string][]byte{}}
}

func rowKey(actorKind, actorID, key string) string {
	return actorKind + "\x00" + actorID + "\x00" + key
}

func (s *MemoryStore) Get(_ context.Context, actorKind, actorID, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[rowKey(actorKind, actorID, key)]
	return v, ok, nil
}

func (s *MemoryStore) Put(_ context.Context, actorKind, actorID, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[rowKey(actorKind, actorID, key)] = value
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, actorKind, actorID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, rowKey(actorKind, actorID, key))
	return nil
}
