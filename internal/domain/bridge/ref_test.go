package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeRef(t *testing.T) {
	t.Run("encodes kind and local ID", func(t *testing.T) {
		ref, err := EncodeRef(EntityKindUser, "alice")
		require.NoError(t, err)
		assert.Equal(t, "ref:user:YWxpY2U", ref)
	})

	t.Run("fails with invalid kind", func(t *testing.T) {
		_, err := EncodeRef(EntityKind("widget"), "alice")
		assert.ErrorIs(t, err, ErrInvalidEntityKind)
	})

	t.Run("fails with empty local ID", func(t *testing.T) {
		_, err := EncodeRef(EntityKindUser, "")
		assert.ErrorIs(t, err, ErrInvalidLocalID)
	})
}

func TestDecodeRef(t *testing.T) {
	t.Run("decodes a valid annotation", func(t *testing.T) {
		kind, localID, err := DecodeRef("ref:user:YWxpY2U")
		require.NoError(t, err)
		assert.Equal(t, EntityKindUser, kind)
		assert.Equal(t, "alice", localID)
	})

	t.Run("is the inverse of EncodeRef for every kind", func(t *testing.T) {
		kinds := []EntityKind{
			EntityKindUser,
			EntityKindOrganization,
			EntityKindServiceType,
			EntityKindMediumOfExchange,
			EntityKindProposal,
		}
		for _, kind := range kinds {
			ref, err := EncodeRef(kind, "some-local-id")
			require.NoError(t, err)

			gotKind, gotID, err := DecodeRef(ref)
			require.NoError(t, err)
			assert.Equal(t, kind, gotKind)
			assert.Equal(t, "some-local-id", gotID)
		}
	})

	t.Run("survives local IDs containing separators", func(t *testing.T) {
		ref, err := EncodeRef(EntityKindProposal, "hash:with:colons/and+slashes")
		require.NoError(t, err)

		kind, localID, err := DecodeRef(ref)
		require.NoError(t, err)
		assert.Equal(t, EntityKindProposal, kind)
		assert.Equal(t, "hash:with:colons/and+slashes", localID)
	})

	t.Run("survives non-ascii local IDs", func(t *testing.T) {
		ref, err := EncodeRef(EntityKindUser, "мир-123")
		require.NoError(t, err)

		_, localID, err := DecodeRef(ref)
		require.NoError(t, err)
		assert.Equal(t, "мир-123", localID)
	})

	t.Run("rejects malformed inputs", func(t *testing.T) {
		cases := []struct {
			name  string
			input string
		}{
			{"empty string", ""},
			{"wrong prefix", "xref:user:YWxpY2U"},
			{"missing segments", "ref:user"},
			{"unknown kind", "ref:widget:YWxpY2U"},
			{"invalid base64", "ref:user:!!not-base64!!"},
			{"standard base64 padding", "ref:user:YWxpY2U="},
			{"empty payload", "ref:user:"},
			{"plain text", "hello world"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, _, err := DecodeRef(tc.input)
				assert.ErrorIs(t, err, ErrInvalidRef)
			})
		}
	})
}
