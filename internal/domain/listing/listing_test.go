package listing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequest(t *testing.T) {
	t.Run("creates a valid request owned by its creator", func(t *testing.T) {
		l, err := NewRequest("req-1", "Fix my roof", "Two loose tiles after the storm", "user-1", []string{"st-1"}, "moe-1")
		require.NoError(t, err)

		assert.Equal(t, KindRequest, l.Kind)
		assert.Equal(t, "req-1", l.LocalID)
		assert.Equal(t, "req-1", l.RevisionID)
		assert.Equal(t, OwnerKindUser, l.OwnerKind)
		assert.Equal(t, "user-1", l.OwnerID())
		assert.Nil(t, l.Quantity)
		assert.False(t, l.CreatedAt.IsZero())
	})

	t.Run("rejects invalid snapshots", func(t *testing.T) {
		tests := []struct {
			name    string
			localID string
			title   string
			desc    string
			types   []string
			medium  string
			wantErr error
		}{
			{"empty local ID", "  ", "Fix my roof", "desc", []string{"st-1"}, "moe-1", ErrInvalidLocalID},
			{"empty title", "req-1", " ", "desc", []string{"st-1"}, "moe-1", ErrEmptyTitle},
			{"empty description", "req-1", "Fix my roof", "", []string{"st-1"}, "moe-1", ErrEmptyDescription},
			{"no service types", "req-1", "Fix my roof", "desc", nil, "moe-1", ErrNoServiceTypes},
			{"no medium of exchange", "req-1", "Fix my roof", "desc", []string{"st-1"}, "", ErrNoMediumOfExchange},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := NewRequest(tt.localID, tt.title, tt.desc, "user-1", tt.types, tt.medium)
				assert.ErrorIs(t, err, tt.wantErr)
			})
		}
	})
}

func TestNewOffer(t *testing.T) {
	l, err := NewOffer("off-1", "Roof repairs", "Twenty years of experience", "user-2", []string{"st-1", "st-2"}, "moe-1")
	require.NoError(t, err)

	assert.Equal(t, KindOffer, l.Kind)
	assert.Len(t, l.ServiceTypeIDs, 2)
}

func TestListingAssignToOrganization(t *testing.T) {
	t.Run("switches ownership to the organization", func(t *testing.T) {
		l, err := NewRequest("req-1", "Fix my roof", "desc", "user-1", []string{"st-1"}, "moe-1")
		require.NoError(t, err)

		require.NoError(t, l.AssignToOrganization("org-1"))

		assert.Equal(t, OwnerKindOrganization, l.OwnerKind)
		assert.Equal(t, "org-1", l.OwnerID())
		assert.Equal(t, "user-1", l.CreatorID)
		assert.NoError(t, l.Validate())
	})

	t.Run("rejects a blank organization ID", func(t *testing.T) {
		l, err := NewRequest("req-1", "Fix my roof", "desc", "user-1", []string{"st-1"}, "moe-1")
		require.NoError(t, err)

		assert.ErrorIs(t, l.AssignToOrganization("  "), ErrMissingOrganization)
		assert.Equal(t, OwnerKindUser, l.OwnerKind)
	})
}

func TestListingWithQuantity(t *testing.T) {
	l, err := NewRequest("req-1", "Fix my roof", "desc", "user-1", []string{"st-1"}, "moe-1")
	require.NoError(t, err)

	l.WithQuantity(decimal.NewFromInt(5), "hours")

	require.NotNil(t, l.Quantity)
	assert.True(t, l.Quantity.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, "hours", l.Unit)
}

func TestKindIsValid(t *testing.T) {
	assert.True(t, KindRequest.IsValid())
	assert.True(t, KindOffer.IsValid())
	assert.False(t, Kind("auction").IsValid())
}
