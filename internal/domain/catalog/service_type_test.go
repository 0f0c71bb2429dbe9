package catalog

import (
	"testing"

	"github.com/openmarket/econbridge/internal/domain/shared"
	"github.com/openmarket/econbridge/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServiceType(t *testing.T) {
	t.Run("creates a pending service type", func(t *testing.T) {
		st, err := NewServiceType("st-1", "Roofing")
		require.NoError(t, err)

		assert.Equal(t, "st-1", st.LocalID)
		assert.Equal(t, "Roofing", st.Name)
		assert.Equal(t, valueobject.ApprovalStatusPending, st.Status)
	})

	t.Run("rejects empty identifiers", func(t *testing.T) {
		_, err := NewServiceType("", "Roofing")
		assert.ErrorIs(t, err, ErrInvalidLocalID)

		_, err = NewServiceType("st-1", "  ")
		assert.ErrorIs(t, err, ErrInvalidName)
	})
}

func TestServiceTypeApprove(t *testing.T) {
	t.Run("transitions to approved and emits an event", func(t *testing.T) {
		st, err := NewServiceType("st-1", "Roofing")
		require.NoError(t, err)

		event, err := st.Approve()
		require.NoError(t, err)

		assert.True(t, st.Status.IsApproved())
		assert.Equal(t, EventTypeServiceTypeApproved, event.EventType())
		assert.Equal(t, "st-1", event.ServiceTypeID)
		assert.Equal(t, "Roofing", event.Name)
	})

	t.Run("cannot be approved twice", func(t *testing.T) {
		st, err := NewServiceType("st-1", "Roofing")
		require.NoError(t, err)

		_, err = st.Approve()
		require.NoError(t, err)

		_, err = st.Approve()
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})

	t.Run("cannot be approved after rejection", func(t *testing.T) {
		st, err := NewServiceType("st-1", "Roofing")
		require.NoError(t, err)

		require.NoError(t, st.Reject())

		_, err = st.Approve()
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})
}
