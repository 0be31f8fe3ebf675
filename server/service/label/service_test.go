package label

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grouplabel/grouplabel/store"
	"github.com/grouplabel/grouplabel/store/test"
)

func newTestingService(ctx context.Context, t *testing.T) (*Service, *store.Store, *clock.Mock) {
	ts := test.NewTestingStore(ctx, t)
	mock := clock.NewMock()
	return NewService(ts, mock), ts, mock
}

func TestServiceJoinLeave(t *testing.T) {
	ctx := context.Background()
	svc, ts, _ := newTestingService(ctx, t)

	group, err := svc.CreateGroup(ctx, &store.Group{Name: "vip", Prefix: "&6VIP", Weight: 1})
	require.NoError(t, err)

	prefix, err := svc.ResolveLabel(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, NoneLabel, prefix)

	// The mutation path must never leave a stale read behind.
	prefix, err = svc.OnJoin(ctx, "u1", group.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "&6VIP", prefix)

	prefix, err = svc.ResolveLabel(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "&6VIP", prefix)

	prefix, err = svc.OnLeave(ctx, "u1", group.ID)
	require.NoError(t, err)
	assert.Equal(t, NoneLabel, prefix)

	memberships, err := ts.ListMemberships(ctx, &store.FindMembership{SubjectID: strPtr("u1")})
	require.NoError(t, err)
	assert.Empty(t, memberships)
}

func TestServiceLeaveWithoutMembershipIsNoop(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestingService(ctx, t)

	prefix, err := svc.OnLeave(ctx, "u1", 42)
	require.NoError(t, err)
	assert.Equal(t, NoneLabel, prefix)
}

func TestServiceLeaveRemovesDuplicates(t *testing.T) {
	ctx := context.Background()
	svc, ts, _ := newTestingService(ctx, t)

	group, err := svc.CreateGroup(ctx, &store.Group{Name: "vip", Prefix: "&6VIP", Weight: 1})
	require.NoError(t, err)

	// Duplicate memberships are legal; leave clears the whole pair.
	for i := 0; i < 3; i++ {
		_, err := svc.OnJoin(ctx, "u1", group.ID, nil)
		require.NoError(t, err)
	}
	memberships, err := ts.ListMemberships(ctx, &store.FindMembership{SubjectID: strPtr("u1")})
	require.NoError(t, err)
	assert.Len(t, memberships, 3)

	_, err = svc.OnLeave(ctx, "u1", group.ID)
	require.NoError(t, err)
	memberships, err = ts.ListMemberships(ctx, &store.FindMembership{SubjectID: strPtr("u1")})
	require.NoError(t, err)
	assert.Empty(t, memberships)
}

func TestServiceJoinByName(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestingService(ctx, t)

	_, err := svc.CreateGroup(ctx, &store.Group{Name: "vip", Prefix: "&6VIP", Weight: 1})
	require.NoError(t, err)

	prefix, err := svc.OnJoinGroupName(ctx, "u1", "vip", nil)
	require.NoError(t, err)
	assert.Equal(t, "&6VIP", prefix)

	_, err = svc.OnJoinGroupName(ctx, "u1", "missing", nil)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestServiceGroupUpdatePurgesCache(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestingService(ctx, t)

	group, err := svc.CreateGroup(ctx, &store.Group{Name: "vip", Prefix: "&6VIP", Weight: 1})
	require.NoError(t, err)
	_, err = svc.OnJoin(ctx, "u1", group.ID, nil)
	require.NoError(t, err)

	// Editing the group must be visible on the very next lookup, without
	// any per-subject invalidation by the caller.
	_, err = svc.UpdateGroupField(ctx, group.ID, "prefix", "&6VIP+")
	require.NoError(t, err)

	prefix, err := svc.ResolveLabel(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "&6VIP+", prefix)
}

func TestServiceGroupWeightUpdateReordersLabels(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestingService(ctx, t)

	vip, err := svc.CreateGroup(ctx, &store.Group{Name: "vip", Prefix: "&6VIP", Weight: 2})
	require.NoError(t, err)
	member, err := svc.CreateGroup(ctx, &store.Group{Name: "member", Prefix: "&7Member", Weight: 10})
	require.NoError(t, err)
	_, err = svc.OnJoin(ctx, "u1", vip.ID, nil)
	require.NoError(t, err)
	_, err = svc.OnJoin(ctx, "u1", member.ID, nil)
	require.NoError(t, err)

	prefix, err := svc.ResolveLabel(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "&6VIP", prefix)

	_, err = svc.UpdateGroupField(ctx, vip.ID, "weight", "100")
	require.NoError(t, err)

	prefix, err = svc.ResolveLabel(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "&7Member", prefix)
}

func TestServiceDeleteGroupLeavesDanglingRows(t *testing.T) {
	ctx := context.Background()
	svc, ts, _ := newTestingService(ctx, t)

	vip, err := svc.CreateGroup(ctx, &store.Group{Name: "vip", Prefix: "&6VIP", Weight: 1})
	require.NoError(t, err)
	member, err := svc.CreateGroup(ctx, &store.Group{Name: "member", Prefix: "&7Member", Weight: 10})
	require.NoError(t, err)
	_, err = svc.OnJoin(ctx, "u1", vip.ID, nil)
	require.NoError(t, err)
	_, err = svc.OnJoin(ctx, "u1", member.ID, nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteGroup(ctx, vip.ID))

	prefix, err := svc.ResolveLabel(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "&7Member", prefix)

	orphans, err := ts.ListOrphanMemberships(ctx)
	require.NoError(t, err)
	require.Len(t, orphans, 1)
	assert.Equal(t, vip.ID, orphans[0].GroupID)
}

func TestServiceExpiryThroughCache(t *testing.T) {
	ctx := context.Background()
	svc, _, mock := newTestingService(ctx, t)

	member, err := svc.CreateGroup(ctx, &store.Group{Name: "member", Prefix: "&7Member", Weight: 10})
	require.NoError(t, err)
	vip, err := svc.CreateGroup(ctx, &store.Group{Name: "vip", Prefix: "&6VIP", Weight: 2})
	require.NoError(t, err)

	_, err = svc.OnJoin(ctx, "u1", member.ID, nil)
	require.NoError(t, err)
	until := mock.Now().Add(time.Second)
	prefix, err := svc.OnJoin(ctx, "u1", vip.ID, &until)
	require.NoError(t, err)
	assert.Equal(t, "&6VIP", prefix)

	mock.Add(2 * time.Second)

	// The cached value stays until someone asks again; lazy expiry means
	// the next recomputation, not the tick itself, observes the change.
	prefix, err = svc.ResolveLabel(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "&6VIP", prefix)

	prefix, err = svc.ForceRefresh(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "&7Member", prefix)
}

func TestServiceInvalidateHook(t *testing.T) {
	ctx := context.Background()
	svc, ts, _ := newTestingService(ctx, t)

	group, err := svc.CreateGroup(ctx, &store.Group{Name: "vip", Prefix: "&6VIP", Weight: 1})
	require.NoError(t, err)

	prefix, err := svc.ResolveLabel(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, NoneLabel, prefix)

	_, err = ts.CreateMembership(ctx, &store.Membership{SubjectID: "u1", GroupID: group.ID})
	require.NoError(t, err)

	svc.InvalidateLabel("u1")
	prefix, err = svc.ResolveLabel(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "&6VIP", prefix)
}
