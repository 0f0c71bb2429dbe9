package bridge

import (
	"context"
	"testing"

	"github.com/openmarket/econbridge/internal/domain/bridge"
	"github.com/openmarket/econbridge/internal/domain/catalog"
	"github.com/openmarket/econbridge/internal/domain/directory"
	"github.com/openmarket/econbridge/internal/domain/listing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestListingCreatedHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("handles request and offer creation events", func(t *testing.T) {
		f := newFixture(t)
		f.mapPrerequisites(t, ctx)
		handler := NewListingCreatedHandler(f.reconciler, zap.NewNop())

		req, err := listing.NewRequest("req-1", "Fix my roof", "Two broken tiles", "user-1", []string{"st-1"}, "moe-1")
		require.NoError(t, err)
		off, err := listing.NewOffer("off-1", "Roof repairs", "Tiles and gutters", "user-1", []string{"st-1"}, "moe-1")
		require.NoError(t, err)

		require.NoError(t, handler.Handle(ctx, listing.NewRequestCreatedEvent(req)))
		require.NoError(t, handler.Handle(ctx, listing.NewOfferCreatedEvent(off)))

		for _, localID := range []string{"req-1", "off-1"} {
			_, ok, err := f.mappings.Get(ctx, bridge.EntityKindProposal, localID)
			require.NoError(t, err)
			assert.True(t, ok)
		}
	})

	t.Run("declares its event types", func(t *testing.T) {
		handler := NewListingCreatedHandler(newFixture(t).reconciler, zap.NewNop())
		assert.ElementsMatch(t,
			[]string{listing.EventTypeRequestCreated, listing.EventTypeOfferCreated},
			handler.EventTypes(),
		)
	})

	t.Run("rejects unrelated events", func(t *testing.T) {
		f := newFixture(t)
		handler := NewListingCreatedHandler(f.reconciler, zap.NewNop())

		user, err := directory.NewUser("user-1", "Alice")
		require.NoError(t, err)
		event, err := user.Approve()
		require.NoError(t, err)

		assert.Error(t, handler.Handle(ctx, event))
	})
}

func TestPrerequisiteApprovedHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("maps each approval event to its entity kind", func(t *testing.T) {
		f := newFixture(t)
		handler := NewPrerequisiteApprovedHandler(f.reconciler, zap.NewNop())

		user, err := directory.NewUser("user-1", "Alice")
		require.NoError(t, err)
		userEvent, err := user.Approve()
		require.NoError(t, err)

		org, err := directory.NewOrganization("org-1", "Roofers Guild")
		require.NoError(t, err)
		orgEvent, err := org.Approve()
		require.NoError(t, err)

		st, err := catalog.NewServiceType("st-1", "Roofing")
		require.NoError(t, err)
		stEvent, err := st.Approve()
		require.NoError(t, err)

		moe, err := catalog.NewMediumOfExchange("moe-1", "EUR", "Euro")
		require.NoError(t, err)
		moeEvent, err := moe.Approve()
		require.NoError(t, err)

		require.NoError(t, handler.Handle(ctx, userEvent))
		require.NoError(t, handler.Handle(ctx, orgEvent))
		require.NoError(t, handler.Handle(ctx, stEvent))
		require.NoError(t, handler.Handle(ctx, moeEvent))

		for _, probe := range []struct {
			kind    bridge.EntityKind
			localID string
		}{
			{bridge.EntityKindUser, "user-1"},
			{bridge.EntityKindOrganization, "org-1"},
			{bridge.EntityKindServiceType, "st-1"},
			{bridge.EntityKindMediumOfExchange, "moe-1"},
		} {
			_, ok, err := f.mappings.Get(ctx, probe.kind, probe.localID)
			require.NoError(t, err)
			assert.True(t, ok, "expected mapping for %s/%s", probe.kind, probe.localID)
		}
	})

	t.Run("uses the nickname as the agent display name", func(t *testing.T) {
		f := newFixture(t)
		handler := NewPrerequisiteApprovedHandler(f.reconciler, zap.NewNop())

		user, err := directory.NewUser("user-1", "Alice Smith")
		require.NoError(t, err)
		user.Nickname = "alice"
		event, err := user.Approve()
		require.NoError(t, err)

		require.NoError(t, handler.Handle(ctx, event))
		assert.Equal(t, "alice", event.Name)
	})

	t.Run("rejects unrelated events", func(t *testing.T) {
		f := newFixture(t)
		handler := NewPrerequisiteApprovedHandler(f.reconciler, zap.NewNop())

		req, err := listing.NewRequest("req-1", "Fix my roof", "Two broken tiles", "user-1", []string{"st-1"}, "moe-1")
		require.NoError(t, err)

		assert.Error(t, handler.Handle(ctx, listing.NewRequestCreatedEvent(req)))
	})
}
