package bridge

import (
	"context"
	"time"

	"github.com/openmarket/econbridge/internal/domain/listing"
)

// PendingListing is a deferred mapping: a listing whose prerequisites were
// unsatisfied the last time mapping was attempted, together with its
// last-known snapshot.
type PendingListing struct {
	Kind       listing.Kind
	LocalID    string
	Snapshot   listing.Listing
	EnqueuedAt time.Time
}

// PendingSet is the deferred-listing queue port, keyed by listing kind and
// local ID. Implementations must be safe for concurrent use and must not
// block on network I/O.
type PendingSet interface {
	// Enqueue records the listing as pending. Upsert semantics: a second
	// enqueue for the same key replaces the snapshot (last write wins).
	Enqueue(ctx context.Context, kind listing.Kind, localID string, snapshot listing.Listing) error

	// Dequeue removes the listing if present; no-op otherwise
	Dequeue(ctx context.Context, kind listing.Kind, localID string) error

	// Drain returns the snapshots present at call time. The returned slice
	// is a copy: entries enqueued during iteration are picked up by the next
	// drain pass, not this one.
	Drain(ctx context.Context, kind listing.Kind) ([]PendingListing, error)

	// Contains reports whether the listing is currently pending
	Contains(ctx context.Context, kind listing.Kind, localID string) (bool, error)
}
