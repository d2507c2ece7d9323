package storage

import (
	"context"
	"sync"
)

// MemoryStore is a BinaryStore backed by a map.
type MemoryStore struct {
	mu       sync.RWMutex
	binaries map[int]map[string]Binary
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{binaries: make(map[int]map[string]Binary)}
}

// Put attaches b to itemIndex under field, replacing any previous value.
func (s *MemoryStore) Put(itemIndex int, field string, b Binary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fields, ok := s.binaries[itemIndex]
	if !ok {
		fields = make(map[string]Binary)
		s.binaries[itemIndex] = fields
	}
	fields[field] = b
}

// Binary implements BinaryStore. The returned value is a copy.
func (s *MemoryStore) Binary(_ context.Context, itemIndex int, field string) (*Binary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.binaries[itemIndex][field]
	if !ok {
		return nil, NotFound(itemIndex, field)
	}
	return &b, nil
}

var _ BinaryStore = (*MemoryStore)(nil)
