package test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grouplabel/grouplabel/store"
)

func TestSubjectUpsert(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	subject, err := ts.UpsertSubject(ctx, &store.Subject{UUID: "u1", Name: "Steve"})
	require.NoError(t, err)
	assert.Equal(t, "Steve", subject.Name)

	t.Run("NameKeptCurrent", func(t *testing.T) {
		subject, err := ts.UpsertSubject(ctx, &store.Subject{UUID: "u1", Name: "Alex"})
		require.NoError(t, err)
		assert.Equal(t, "Alex", subject.Name)

		got, err := ts.GetSubject(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "Alex", got.Name)
	})

	t.Run("LookupByName", func(t *testing.T) {
		got, err := ts.GetSubjectByName(ctx, "Alex")
		require.NoError(t, err)
		assert.Equal(t, "u1", got.UUID)

		_, err = ts.GetSubjectByName(ctx, "Herobrine")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestSubjectDefaultGroup(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)
	ts.Profile().DefaultGroup = "member"

	group, err := ts.CreateGroup(ctx, &store.Group{Name: "member", Prefix: "&7Member", Weight: 10})
	require.NoError(t, err)

	_, err = ts.UpsertSubject(ctx, &store.Subject{UUID: "u1", Name: "Steve"})
	require.NoError(t, err)

	list, err := ts.ListMemberships(ctx, &store.FindMembership{SubjectID: ptr("u1")})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, group.ID, list[0].GroupID)
	assert.Nil(t, list[0].JoinUntil)

	t.Run("OnlyOnFirstSight", func(t *testing.T) {
		_, err := ts.UpsertSubject(ctx, &store.Subject{UUID: "u1", Name: "Steve"})
		require.NoError(t, err)

		list, err := ts.ListMemberships(ctx, &store.FindMembership{SubjectID: ptr("u1")})
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("MissingDefaultGroupIsNotFatal", func(t *testing.T) {
		ts.Profile().DefaultGroup = "nonexistent"
		_, err := ts.UpsertSubject(ctx, &store.Subject{UUID: "u2", Name: "Alex"})
		assert.NoError(t, err)
	})
}

func TestSubjectLanguage(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	_, err := ts.UpsertSubject(ctx, &store.Subject{UUID: "u1", Name: "Steve"})
	require.NoError(t, err)

	language, err := ts.CreateLanguage(ctx, &store.Language{Name: "Deutsch", Code: "de"})
	require.NoError(t, err)
	require.NotZero(t, language.ID)

	t.Run("DuplicateCode", func(t *testing.T) {
		_, err := ts.CreateLanguage(ctx, &store.Language{Name: "German", Code: "de"})
		assert.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("UnsetByDefault", func(t *testing.T) {
		got, err := ts.GetSubjectLanguage(ctx, "u1")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("SetAndGet", func(t *testing.T) {
		require.NoError(t, ts.SetSubjectLanguage(ctx, "u1", "de"))

		got, err := ts.GetSubjectLanguage(ctx, "u1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "de", got.Code)
	})

	t.Run("UnknownCode", func(t *testing.T) {
		assert.ErrorIs(t, ts.SetSubjectLanguage(ctx, "u1", "xx"), store.ErrNotFound)
	})
}
