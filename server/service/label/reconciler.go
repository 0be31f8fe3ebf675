package label

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/grouplabel/grouplabel/store"
)

// Reconciler deletes a subject's expired memberships. Expiry is handled
// lazily: nothing sweeps the ledger in the background, the next resolution
// touching a subject cleans it up.
type Reconciler struct {
	store *store.Store
}

// NewReconciler creates a reconciler over the given store.
func NewReconciler(st *store.Store) *Reconciler {
	return &Reconciler{store: st}
}

// Reconcile removes every membership of the subject whose expiry is not
// after now. This is a side-effecting read; it must run before resolution
// so expired memberships never contribute to a label. Calling it again with
// an advancing now is safe.
func (r *Reconciler) Reconcile(ctx context.Context, subjectID string, now time.Time) error {
	memberships, err := r.store.ListMemberships(ctx, &store.FindMembership{SubjectID: &subjectID})
	if err != nil {
		return errors.Wrap(err, "failed to list memberships for reconciliation")
	}

	for _, membership := range memberships {
		if membership.JoinUntil == nil || membership.JoinUntil.After(now) {
			continue
		}
		if err := r.store.DeleteMemberships(ctx, &store.DeleteMembership{
			SubjectID: membership.SubjectID,
			GroupID:   membership.GroupID,
		}); err != nil {
			return errors.Wrapf(err, "failed to delete expired membership in group %d", membership.GroupID)
		}
		slog.Debug("expired membership removed", "subject", subjectID, "group", membership.GroupID)
	}
	return nil
}
