package persistence

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/openmarket/econbridge/internal/domain/bridge"
	"github.com/openmarket/econbridge/internal/domain/listing"
)

// MemoryPendingSet implements bridge.PendingSet with an in-process map per
// listing kind. Drain returns a snapshot copy so callers iterate a stable
// sequence while concurrent enqueues land in the next pass.
type MemoryPendingSet struct {
	mu      sync.RWMutex
	entries map[listing.Kind]map[string]bridge.PendingListing
}

// NewMemoryPendingSet creates a new in-memory pending set
func NewMemoryPendingSet() *MemoryPendingSet {
	return &MemoryPendingSet{
		entries: map[listing.Kind]map[string]bridge.PendingListing{
			listing.KindRequest: {},
			listing.KindOffer:   {},
		},
	}
}

// Enqueue records the listing as pending, replacing any previous snapshot
func (s *MemoryPendingSet) Enqueue(ctx context.Context, kind listing.Kind, localID string, snapshot listing.Listing) error {
	if !kind.IsValid() {
		return bridge.ErrInvalidEntityKind
	}
	if localID == "" {
		return bridge.ErrInvalidLocalID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	enqueuedAt := time.Now()
	if prev, ok := s.entries[kind][localID]; ok {
		enqueuedAt = prev.EnqueuedAt
	}
	s.entries[kind][localID] = bridge.PendingListing{
		Kind:       kind,
		LocalID:    localID,
		Snapshot:   snapshot,
		EnqueuedAt: enqueuedAt,
	}
	return nil
}

// Dequeue removes the listing if present
func (s *MemoryPendingSet) Dequeue(ctx context.Context, kind listing.Kind, localID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries[kind], localID)
	return nil
}

// Drain returns a stable copy of the entries present at call time, oldest
// first
func (s *MemoryPendingSet) Drain(ctx context.Context, kind listing.Kind) ([]bridge.PendingListing, error) {
	s.mu.RLock()
	pending := make([]bridge.PendingListing, 0, len(s.entries[kind]))
	for _, p := range s.entries[kind] {
		pending = append(pending, p)
	}
	s.mu.RUnlock()

	sort.Slice(pending, func(i, j int) bool {
		if pending[i].EnqueuedAt.Equal(pending[j].EnqueuedAt) {
			return pending[i].LocalID < pending[j].LocalID
		}
		return pending[i].EnqueuedAt.Before(pending[j].EnqueuedAt)
	})
	return pending, nil
}

// Contains reports whether the listing is currently pending
func (s *MemoryPendingSet) Contains(ctx context.Context, kind listing.Kind, localID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entries[kind][localID]
	return ok, nil
}

// Len returns the number of pending listings for the kind
func (s *MemoryPendingSet) Len(kind listing.Kind) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries[kind])
}

// Ensure MemoryPendingSet implements PendingSet
var _ bridge.PendingSet = (*MemoryPendingSet)(nil)
