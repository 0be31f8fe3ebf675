package store

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// Membership grants a subject a group's prefix as a candidate, optionally
// until JoinUntil. A subject may hold any number of memberships, including
// duplicates of the same pair; duplicates are only deletable in bulk by pair.
type Membership struct {
	SubjectID string
	GroupID   int32
	// JoinUntil is the expiry timestamp. Nil means permanent.
	JoinUntil *time.Time
}

// FindMembership is the find condition for membership.
type FindMembership struct {
	SubjectID *string
	GroupID   *int32
}

// DeleteMembership deletes all rows matching the subject/group pair.
type DeleteMembership struct {
	SubjectID string
	GroupID   int32
}

// CreateMembership inserts a membership row. Duplicate pairs are legal.
func (s *Store) CreateMembership(ctx context.Context, create *Membership) (*Membership, error) {
	membership, err := s.driver.CreateMembership(ctx, create)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create membership")
	}
	return membership, nil
}

// ListMemberships lists membership rows without reconciling expiry.
func (s *Store) ListMemberships(ctx context.Context, find *FindMembership) ([]*Membership, error) {
	list, err := s.driver.ListMemberships(ctx, find)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list memberships")
	}
	return list, nil
}

// DeleteMemberships removes every row for the subject/group pair.
// Succeeds as a no-op when no rows match.
func (s *Store) DeleteMemberships(ctx context.Context, delete *DeleteMembership) error {
	if err := s.driver.DeleteMemberships(ctx, delete); err != nil {
		return errors.Wrap(err, "failed to delete memberships")
	}
	return nil
}

// ListOrphanMemberships lists membership rows whose group no longer exists.
// Such rows are skipped during resolution; this is the operator's view of them.
func (s *Store) ListOrphanMemberships(ctx context.Context) ([]*Membership, error) {
	list, err := s.driver.ListOrphanMemberships(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orphan memberships")
	}
	return list, nil
}
