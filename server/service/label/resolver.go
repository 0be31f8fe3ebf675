// Package label implements membership-based prefix resolution: a subject's
// effective prefix is the prefix of its lowest-weight live group.
package label

import (
	"context"
	"sort"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"

	"github.com/grouplabel/grouplabel/store"
)

// NoneLabel is returned for a subject without live memberships.
const NoneLabel = "&4none"

// Resolver computes a subject's effective prefix from the ledger.
type Resolver struct {
	store      *store.Store
	clock      clock.Clock
	reconciler *Reconciler
}

// NewResolver creates a resolver. The clock is injected so expiry can be
// tested without sleeping.
func NewResolver(st *store.Store, cl clock.Clock) *Resolver {
	return &Resolver{
		store:      st,
		clock:      cl,
		reconciler: NewReconciler(st),
	}
}

// Resolve reconciles expiry, then picks the prefix of the subject's
// lowest-weight group. Ties on weight go to the smaller group id, which
// deliberately pins down an ordering the storage backend would otherwise
// choose. Memberships pointing at deleted groups are skipped.
func (r *Resolver) Resolve(ctx context.Context, subjectID string) (string, error) {
	now := r.clock.Now()
	if err := r.reconciler.Reconcile(ctx, subjectID, now); err != nil {
		return "", err
	}

	memberships, err := r.store.ListMemberships(ctx, &store.FindMembership{SubjectID: &subjectID})
	if err != nil {
		return "", errors.Wrap(err, "failed to list memberships")
	}

	var winner *store.Group
	for _, membership := range memberships {
		group, err := r.store.GetGroup(ctx, membership.GroupID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				// Dangling reference; the group was deleted out from under
				// the membership.
				continue
			}
			return "", err
		}
		if winner == nil ||
			group.Weight < winner.Weight ||
			(group.Weight == winner.Weight && group.ID < winner.ID) {
			winner = group
		}
	}

	if winner == nil {
		return NoneLabel, nil
	}
	return winner.Prefix, nil
}

// LiveGroups returns the subject's groups after reconciliation, ordered by
// ascending weight. Dangling memberships are skipped.
func (r *Resolver) LiveGroups(ctx context.Context, subjectID string) ([]*store.Group, error) {
	now := r.clock.Now()
	if err := r.reconciler.Reconcile(ctx, subjectID, now); err != nil {
		return nil, err
	}

	memberships, err := r.store.ListMemberships(ctx, &store.FindMembership{SubjectID: &subjectID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list memberships")
	}

	groups := make([]*store.Group, 0, len(memberships))
	for _, membership := range memberships {
		group, err := r.store.GetGroup(ctx, membership.GroupID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, err
		}
		groups = append(groups, group)
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Weight != groups[j].Weight {
			return groups[i].Weight < groups[j].Weight
		}
		return groups[i].ID < groups[j].ID
	})
	return groups, nil
}
