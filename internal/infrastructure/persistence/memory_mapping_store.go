package persistence

import (
	"context"
	"sync"

	"github.com/openmarket/econbridge/internal/domain/bridge"
)

// MemoryMappingStore implements bridge.MappingStore with an in-process map.
// Suitable for tests and deployments where the external graph tolerates
// replayed create calls after a restart.
type MemoryMappingStore struct {
	mu      sync.RWMutex
	entries map[mappingKey]string
}

type mappingKey struct {
	kind    bridge.EntityKind
	localID string
}

// NewMemoryMappingStore creates a new in-memory mapping store
func NewMemoryMappingStore() *MemoryMappingStore {
	return &MemoryMappingStore{entries: make(map[mappingKey]string)}
}

// Put records a mapping, refusing to overwrite an existing entry
func (s *MemoryMappingStore) Put(ctx context.Context, kind bridge.EntityKind, localID, externalID string) error {
	m, err := bridge.NewMapping(kind, localID, externalID)
	if err != nil {
		return err
	}

	key := mappingKey{kind: m.EntityKind, localID: m.LocalID}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entries[key]; exists {
		return bridge.ErrDuplicateMapping
	}
	s.entries[key] = m.ExternalID
	return nil
}

// Get returns the external ID mapped to (kind, localID)
func (s *MemoryMappingStore) Get(ctx context.Context, kind bridge.EntityKind, localID string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.entries[mappingKey{kind: kind, localID: localID}]
	return id, ok, nil
}

// Len returns the number of recorded mappings
func (s *MemoryMappingStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Ensure MemoryMappingStore implements MappingStore
var _ bridge.MappingStore = (*MemoryMappingStore)(nil)
