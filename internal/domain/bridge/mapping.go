package bridge

import (
	"context"
	"time"
)

// Mapping associates a local entity with its mirror in the external graph.
// A (EntityKind, LocalID) pair is written exactly once and never overwritten:
// an approved entity is immutable once mirrored.
type Mapping struct {
	EntityKind EntityKind
	LocalID    string
	ExternalID string
	CreatedAt  time.Time
}

// NewMapping creates a validated mapping entry
func NewMapping(kind EntityKind, localID, externalID string) (*Mapping, error) {
	if !kind.IsValid() {
		return nil, ErrInvalidEntityKind
	}
	if localID == "" {
		return nil, ErrInvalidLocalID
	}
	if externalID == "" {
		return nil, ErrInvalidExternalID
	}
	return &Mapping{
		EntityKind: kind,
		LocalID:    localID,
		ExternalID: externalID,
		CreatedAt:  time.Now(),
	}, nil
}

// MappingStore is the mapping table port. Implementations must be safe for
// concurrent use and must not block on network I/O: lookups sit on the
// resolver's hot path.
type MappingStore interface {
	// Put records a mapping. Returns ErrDuplicateMapping if an entry already
	// exists for (kind, localID); existing entries are never overwritten.
	Put(ctx context.Context, kind EntityKind, localID, externalID string) error

	// Get returns the external ID mapped to (kind, localID), or ok=false if
	// no mapping exists
	Get(ctx context.Context, kind EntityKind, localID string) (externalID string, ok bool, err error)
}
