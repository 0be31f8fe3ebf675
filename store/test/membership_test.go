package test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grouplabel/grouplabel/store"
)

func TestMembershipLedger(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	group, err := ts.CreateGroup(ctx, &store.Group{Name: "vip", Prefix: "&6VIP", Weight: 1})
	require.NoError(t, err)

	t.Run("JoinAndList", func(t *testing.T) {
		until := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
		_, err := ts.CreateMembership(ctx, &store.Membership{SubjectID: "u1", GroupID: group.ID, JoinUntil: &until})
		require.NoError(t, err)

		list, err := ts.ListMemberships(ctx, &store.FindMembership{SubjectID: ptr("u1")})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, group.ID, list[0].GroupID)
		require.NotNil(t, list[0].JoinUntil)
		assert.True(t, list[0].JoinUntil.Equal(until))
	})

	t.Run("DuplicatesAllowed", func(t *testing.T) {
		_, err := ts.CreateMembership(ctx, &store.Membership{SubjectID: "u1", GroupID: group.ID})
		require.NoError(t, err)
		_, err = ts.CreateMembership(ctx, &store.Membership{SubjectID: "u1", GroupID: group.ID})
		require.NoError(t, err)

		list, err := ts.ListMemberships(ctx, &store.FindMembership{SubjectID: ptr("u1")})
		require.NoError(t, err)
		assert.Len(t, list, 3)
	})

	t.Run("LeaveDeletesAllPairRows", func(t *testing.T) {
		require.NoError(t, ts.DeleteMemberships(ctx, &store.DeleteMembership{SubjectID: "u1", GroupID: group.ID}))

		list, err := ts.ListMemberships(ctx, &store.FindMembership{SubjectID: ptr("u1")})
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("LeaveWithoutRowsIsNoop", func(t *testing.T) {
		assert.NoError(t, ts.DeleteMemberships(ctx, &store.DeleteMembership{SubjectID: "u1", GroupID: group.ID}))
	})
}

func TestOrphanMemberships(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	kept, err := ts.CreateGroup(ctx, &store.Group{Name: "kept", Weight: 1})
	require.NoError(t, err)
	doomed, err := ts.CreateGroup(ctx, &store.Group{Name: "doomed", Weight: 2})
	require.NoError(t, err)

	_, err = ts.CreateMembership(ctx, &store.Membership{SubjectID: "u1", GroupID: kept.ID})
	require.NoError(t, err)
	_, err = ts.CreateMembership(ctx, &store.Membership{SubjectID: "u1", GroupID: doomed.ID})
	require.NoError(t, err)
	_, err = ts.CreateMembership(ctx, &store.Membership{SubjectID: "u2", GroupID: doomed.ID})
	require.NoError(t, err)

	orphans, err := ts.ListOrphanMemberships(ctx)
	require.NoError(t, err)
	assert.Empty(t, orphans)

	require.NoError(t, ts.DeleteGroup(ctx, &store.DeleteGroup{ID: doomed.ID}))

	orphans, err = ts.ListOrphanMemberships(ctx)
	require.NoError(t, err)
	require.Len(t, orphans, 2)
	for _, orphan := range orphans {
		assert.Equal(t, doomed.ID, orphan.GroupID)
	}
}

func ptr[T any](v T) *T {
	return &v
}
