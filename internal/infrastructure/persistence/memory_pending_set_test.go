package persistence

import (
	"context"
	"testing"

	"github.com/openmarket/econbridge/internal/domain/listing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingSnapshot(t *testing.T, localID string) listing.Listing {
	t.Helper()
	l, err := listing.NewRequest(localID, "Fix my roof", "Two broken tiles", "user-1", []string{"st-1"}, "moe-1")
	require.NoError(t, err)
	return *l
}

func TestMemoryPendingSet(t *testing.T) {
	ctx := context.Background()

	t.Run("enqueue then contains", func(t *testing.T) {
		set := NewMemoryPendingSet()
		require.NoError(t, set.Enqueue(ctx, listing.KindRequest, "req-1", pendingSnapshot(t, "req-1")))

		ok, err := set.Contains(ctx, listing.KindRequest, "req-1")
		require.NoError(t, err)
		assert.True(t, ok)

		// The same local ID under the other kind is a different entry.
		ok, err = set.Contains(ctx, listing.KindOffer, "req-1")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("enqueue is an upsert keeping one entry per listing", func(t *testing.T) {
		set := NewMemoryPendingSet()
		require.NoError(t, set.Enqueue(ctx, listing.KindRequest, "req-1", pendingSnapshot(t, "req-1")))

		updated := pendingSnapshot(t, "req-1")
		updated.Title = "Fix my roof urgently"
		require.NoError(t, set.Enqueue(ctx, listing.KindRequest, "req-1", updated))

		assert.Equal(t, 1, set.Len(listing.KindRequest))

		pending, err := set.Drain(ctx, listing.KindRequest)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, "Fix my roof urgently", pending[0].Snapshot.Title)
	})

	t.Run("dequeue removes and tolerates absent entries", func(t *testing.T) {
		set := NewMemoryPendingSet()
		require.NoError(t, set.Enqueue(ctx, listing.KindRequest, "req-1", pendingSnapshot(t, "req-1")))

		require.NoError(t, set.Dequeue(ctx, listing.KindRequest, "req-1"))
		ok, err := set.Contains(ctx, listing.KindRequest, "req-1")
		require.NoError(t, err)
		assert.False(t, ok)

		// Second dequeue is a no-op.
		require.NoError(t, set.Dequeue(ctx, listing.KindRequest, "req-1"))
	})

	t.Run("drain returns a stable copy", func(t *testing.T) {
		set := NewMemoryPendingSet()
		require.NoError(t, set.Enqueue(ctx, listing.KindRequest, "req-1", pendingSnapshot(t, "req-1")))
		require.NoError(t, set.Enqueue(ctx, listing.KindRequest, "req-2", pendingSnapshot(t, "req-2")))

		pending, err := set.Drain(ctx, listing.KindRequest)
		require.NoError(t, err)
		require.Len(t, pending, 2)

		// Mutations after the drain do not affect the returned slice.
		require.NoError(t, set.Dequeue(ctx, listing.KindRequest, "req-1"))
		assert.Len(t, pending, 2)
	})

	t.Run("drain orders oldest first with local ID tie-break", func(t *testing.T) {
		set := NewMemoryPendingSet()
		require.NoError(t, set.Enqueue(ctx, listing.KindRequest, "req-b", pendingSnapshot(t, "req-b")))
		require.NoError(t, set.Enqueue(ctx, listing.KindRequest, "req-a", pendingSnapshot(t, "req-a")))

		// Re-enqueueing keeps the original position.
		require.NoError(t, set.Enqueue(ctx, listing.KindRequest, "req-b", pendingSnapshot(t, "req-b")))

		pending, err := set.Drain(ctx, listing.KindRequest)
		require.NoError(t, err)
		require.Len(t, pending, 2)
		assert.Equal(t, "req-b", pending[0].LocalID)
		assert.Equal(t, "req-a", pending[1].LocalID)
	})

	t.Run("kinds are drained independently", func(t *testing.T) {
		set := NewMemoryPendingSet()
		require.NoError(t, set.Enqueue(ctx, listing.KindRequest, "req-1", pendingSnapshot(t, "req-1")))
		require.NoError(t, set.Enqueue(ctx, listing.KindOffer, "off-1", pendingSnapshot(t, "off-1")))

		requests, err := set.Drain(ctx, listing.KindRequest)
		require.NoError(t, err)
		require.Len(t, requests, 1)
		assert.Equal(t, "req-1", requests[0].LocalID)

		offers, err := set.Drain(ctx, listing.KindOffer)
		require.NoError(t, err)
		require.Len(t, offers, 1)
		assert.Equal(t, "off-1", offers[0].LocalID)
	})
}
