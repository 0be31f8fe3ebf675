package label

import (
	"context"
	"log/slog"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/grouplabel/grouplabel/store"
)

// Service is the engine facade callers go through: cached prefix lookups
// plus the mutation entry points that keep the cache consistent.
type Service struct {
	store    *store.Store
	resolver *Resolver
	cache    *Cache
}

// NewService wires the resolver and cache over the store.
func NewService(st *store.Store, cl clock.Clock) *Service {
	resolver := NewResolver(st, cl)
	return &Service{
		store:    st,
		resolver: resolver,
		cache:    NewCache(resolver),
	}
}

// ResolveLabel returns the subject's current prefix, from cache when possible.
func (s *Service) ResolveLabel(ctx context.Context, subjectID string) (string, error) {
	return s.cache.Get(ctx, subjectID)
}

// ForceRefresh recomputes the subject's prefix, bypassing the cached value.
func (s *Service) ForceRefresh(ctx context.Context, subjectID string) (string, error) {
	return s.cache.ForceRefresh(ctx, subjectID)
}

// OnJoin adds the subject to a group, optionally until expiry, and returns
// the freshly resolved prefix. The cache entry is never left stale: on
// storage failure it is invalidated because the mutation's fate is unknown.
func (s *Service) OnJoin(ctx context.Context, subjectID string, groupID int32, expiry *time.Time) (string, error) {
	if _, err := s.store.CreateMembership(ctx, &store.Membership{
		SubjectID: subjectID,
		GroupID:   groupID,
		JoinUntil: expiry,
	}); err != nil {
		s.cache.Invalidate(subjectID)
		return "", err
	}
	return s.cache.ForceRefresh(ctx, subjectID)
}

// OnJoinGroupName is OnJoin addressed by group name.
func (s *Service) OnJoinGroupName(ctx context.Context, subjectID, groupName string, expiry *time.Time) (string, error) {
	group, err := s.store.GetGroupByName(ctx, groupName)
	if err != nil {
		return "", err
	}
	return s.OnJoin(ctx, subjectID, group.ID, expiry)
}

// OnLeave removes every membership of the subject in the group (duplicates
// included) and returns the freshly resolved prefix. Leaving a group the
// subject is not in is a no-op.
func (s *Service) OnLeave(ctx context.Context, subjectID string, groupID int32) (string, error) {
	if err := s.store.DeleteMemberships(ctx, &store.DeleteMembership{
		SubjectID: subjectID,
		GroupID:   groupID,
	}); err != nil {
		s.cache.Invalidate(subjectID)
		return "", err
	}
	return s.cache.ForceRefresh(ctx, subjectID)
}

// LiveGroups lists the subject's groups after expiry reconciliation,
// ordered by ascending weight.
func (s *Service) LiveGroups(ctx context.Context, subjectID string) ([]*store.Group, error) {
	return s.resolver.LiveGroups(ctx, subjectID)
}

// ListGroupNames lists group names for completion and validation.
func (s *Service) ListGroupNames(ctx context.Context) ([]string, error) {
	return s.store.ListGroupNames(ctx)
}

// CreateGroup creates a group. Creation cannot change any resolved prefix
// (no memberships reference a brand-new group), so the cache stays.
func (s *Service) CreateGroup(ctx context.Context, create *store.Group) (*store.Group, error) {
	return s.store.CreateGroup(ctx, create)
}

// UpdateGroupField updates one group field and purges the whole prefix
// cache: any subject might hold the edited group, and the engine keeps no
// reverse index.
func (s *Service) UpdateGroupField(ctx context.Context, id int32, field, value string) (*store.Group, error) {
	group, err := s.store.UpdateGroupField(ctx, id, field, value)
	if err != nil {
		return nil, err
	}
	s.cache.Purge()
	slog.Info("prefix cache purged after group update", "group", id, "field", field)
	return group, nil
}

// DeleteGroup deletes a group and purges the prefix cache. Memberships
// referencing the group stay behind as dangling rows.
func (s *Service) DeleteGroup(ctx context.Context, id int32) error {
	if err := s.store.DeleteGroup(ctx, &store.DeleteGroup{ID: id}); err != nil {
		return err
	}
	s.cache.Purge()
	slog.Info("prefix cache purged after group deletion", "group", id)
	return nil
}

// InvalidateLabel exposes the invalidation hook for external refresh
// schedulers; the next lookup recomputes.
func (s *Service) InvalidateLabel(subjectID string) {
	s.cache.Invalidate(subjectID)
}

// Cache returns the underlying cache, mainly for introspection.
func (s *Service) Cache() *Cache {
	return s.cache
}
