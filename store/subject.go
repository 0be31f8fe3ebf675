package store

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
)

// Subject is the entity whose prefix is being resolved. The UUID is opaque
// to the engine; name and language are kept for the presentation layer.
type Subject struct {
	UUID       string
	Name       string
	LanguageID *int32
}

// FindSubject is the find condition for subject.
type FindSubject struct {
	UUID *string
	Name *string
}

// UpdateSubject is the update request for subject.
type UpdateSubject struct {
	UUID       string
	Name       *string
	LanguageID *int32
}

// UpsertSubject creates the subject on first sight and keeps its display
// name current afterwards. A newly created subject is joined to the
// configured default group; a missing default group is logged, not an error.
func (s *Store) UpsertSubject(ctx context.Context, upsert *Subject) (*Subject, error) {
	list, err := s.driver.ListSubjects(ctx, &FindSubject{UUID: &upsert.UUID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list subjects")
	}

	if len(list) == 0 {
		subject, err := s.driver.CreateSubject(ctx, upsert)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create subject")
		}
		s.joinDefaultGroup(ctx, subject.UUID)
		return subject, nil
	}

	existing := list[0]
	if existing.Name == upsert.Name {
		return existing, nil
	}
	subject, err := s.driver.UpdateSubject(ctx, &UpdateSubject{UUID: upsert.UUID, Name: &upsert.Name})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update subject")
	}
	return subject, nil
}

// GetSubject gets a subject by uuid.
func (s *Store) GetSubject(ctx context.Context, uuid string) (*Subject, error) {
	list, err := s.driver.ListSubjects(ctx, &FindSubject{UUID: &uuid})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list subjects")
	}
	if len(list) == 0 {
		return nil, errors.Wrapf(ErrNotFound, "subject %s", uuid)
	}
	return list[0], nil
}

// ListSubjects lists all known subjects.
func (s *Store) ListSubjects(ctx context.Context) ([]*Subject, error) {
	list, err := s.driver.ListSubjects(ctx, &FindSubject{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list subjects")
	}
	return list, nil
}

// GetSubjectByName gets a subject by display name.
func (s *Store) GetSubjectByName(ctx context.Context, name string) (*Subject, error) {
	list, err := s.driver.ListSubjects(ctx, &FindSubject{Name: &name})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list subjects")
	}
	if len(list) == 0 {
		return nil, errors.Wrapf(ErrNotFound, "subject named %q", name)
	}
	return list[0], nil
}

func (s *Store) joinDefaultGroup(ctx context.Context, uuid string) {
	if s.profile.DefaultGroup == "" {
		return
	}
	group, err := s.GetGroupByName(ctx, s.profile.DefaultGroup)
	if err != nil {
		slog.Warn("default group not assigned", "group", s.profile.DefaultGroup, "subject", uuid, "error", err)
		return
	}
	if _, err := s.CreateMembership(ctx, &Membership{SubjectID: uuid, GroupID: group.ID}); err != nil {
		slog.Warn("failed to join default group", "group", s.profile.DefaultGroup, "subject", uuid, "error", err)
	}
}
