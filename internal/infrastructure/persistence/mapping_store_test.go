package persistence

import (
	"context"
	"testing"

	"github.com/openmarket/econbridge/internal/domain/bridge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mappingStoreContract runs the behavior shared by every MappingStore
// implementation
func mappingStoreContract(t *testing.T, newStore func(t *testing.T) bridge.MappingStore) {
	ctx := context.Background()

	t.Run("stores and retrieves a mapping", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Put(ctx, bridge.EntityKindUser, "user-1", "agent-1"))

		externalID, ok, err := store.Get(ctx, bridge.EntityKindUser, "user-1")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "agent-1", externalID)
	})

	t.Run("returns not found for an absent mapping", func(t *testing.T) {
		store := newStore(t)
		_, ok, err := store.Get(ctx, bridge.EntityKindUser, "nobody")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("refuses to overwrite an existing mapping", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Put(ctx, bridge.EntityKindUser, "user-1", "agent-1"))

		err := store.Put(ctx, bridge.EntityKindUser, "user-1", "agent-other")
		assert.ErrorIs(t, err, bridge.ErrDuplicateMapping)

		externalID, _, err := store.Get(ctx, bridge.EntityKindUser, "user-1")
		require.NoError(t, err)
		assert.Equal(t, "agent-1", externalID, "original mapping must win")
	})

	t.Run("keys mappings by kind and local ID together", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Put(ctx, bridge.EntityKindUser, "x", "agent-1"))
		require.NoError(t, store.Put(ctx, bridge.EntityKindOrganization, "x", "agent-2"))

		userID, _, err := store.Get(ctx, bridge.EntityKindUser, "x")
		require.NoError(t, err)
		orgID, _, err := store.Get(ctx, bridge.EntityKindOrganization, "x")
		require.NoError(t, err)
		assert.Equal(t, "agent-1", userID)
		assert.Equal(t, "agent-2", orgID)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		store := newStore(t)
		assert.ErrorIs(t, store.Put(ctx, bridge.EntityKind("widget"), "x", "y"), bridge.ErrInvalidEntityKind)
		assert.ErrorIs(t, store.Put(ctx, bridge.EntityKindUser, "", "y"), bridge.ErrInvalidLocalID)
		assert.ErrorIs(t, store.Put(ctx, bridge.EntityKindUser, "x", ""), bridge.ErrInvalidExternalID)
	})
}

func TestMemoryMappingStore(t *testing.T) {
	mappingStoreContract(t, func(t *testing.T) bridge.MappingStore {
		return NewMemoryMappingStore()
	})

	t.Run("tracks entry count", func(t *testing.T) {
		ctx := context.Background()
		store := NewMemoryMappingStore()
		assert.Zero(t, store.Len())
		require.NoError(t, store.Put(ctx, bridge.EntityKindUser, "user-1", "agent-1"))
		assert.Equal(t, 1, store.Len())
	})
}

func TestGormMappingStore(t *testing.T) {
	mappingStoreContract(t, func(t *testing.T) bridge.MappingStore {
		db, err := NewDatabase(":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })
		return NewGormMappingStore(db.DB)
	})

	t.Run("mappings survive reopening the database", func(t *testing.T) {
		ctx := context.Background()
		path := t.TempDir() + "/mappings.db"

		db, err := NewDatabase(path)
		require.NoError(t, err)
		store := NewGormMappingStore(db.DB)
		require.NoError(t, store.Put(ctx, bridge.EntityKindProposal, "req-1", "proposal-1"))
		require.NoError(t, db.Close())

		reopened, err := NewDatabase(path)
		require.NoError(t, err)
		defer func() { _ = reopened.Close() }()

		externalID, ok, err := NewGormMappingStore(reopened.DB).Get(ctx, bridge.EntityKindProposal, "req-1")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "proposal-1", externalID)
	})
}
