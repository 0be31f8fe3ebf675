package test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grouplabel/grouplabel/store"
)

func TestSignBoard(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	sign, err := ts.CreateSign(ctx, &store.Sign{World: "world", PosX: 10, PosY: 64, PosZ: -3})
	require.NoError(t, err)
	require.NotZero(t, sign.ID)

	t.Run("ListIsCached", func(t *testing.T) {
		list, err := ts.ListSigns(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)

		// Second read comes from cache and must see the same data.
		again, err := ts.ListSigns(ctx)
		require.NoError(t, err)
		assert.Equal(t, list, again)
	})

	t.Run("CreateInvalidatesListing", func(t *testing.T) {
		_, err := ts.CreateSign(ctx, &store.Sign{World: "nether", PosX: 0, PosY: 70, PosZ: 0})
		require.NoError(t, err)

		list, err := ts.ListSigns(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("DeleteInvalidatesListing", func(t *testing.T) {
		require.NoError(t, ts.DeleteSign(ctx, &store.DeleteSign{World: "world", PosX: 10, PosY: 64, PosZ: -3}))

		list, err := ts.ListSigns(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "nether", list[0].World)
	})
}
