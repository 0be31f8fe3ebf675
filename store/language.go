package store

import (
	"context"

	"github.com/pkg/errors"
)

// Language is a display language available to subjects. The engine only
// stores the preference; message localization happens elsewhere.
type Language struct {
	ID   int32
	Name string
	Code string
}

// FindLanguage is the find condition for language.
type FindLanguage struct {
	ID   *int32
	Code *string
}

// CreateLanguage registers a language. The code must be unique.
func (s *Store) CreateLanguage(ctx context.Context, create *Language) (*Language, error) {
	existing, err := s.driver.ListLanguages(ctx, &FindLanguage{Code: &create.Code})
	if err != nil {
		return nil, errors.Wrap(err, "failed to check language code")
	}
	if len(existing) > 0 {
		return nil, errors.Wrapf(ErrAlreadyExists, "language %q", create.Code)
	}

	language, err := s.driver.CreateLanguage(ctx, create)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create language")
	}
	return language, nil
}

// ListLanguages lists languages with filter.
func (s *Store) ListLanguages(ctx context.Context, find *FindLanguage) ([]*Language, error) {
	return s.driver.ListLanguages(ctx, find)
}

// SetSubjectLanguage sets a subject's language preference by code.
func (s *Store) SetSubjectLanguage(ctx context.Context, uuid, code string) error {
	list, err := s.driver.ListLanguages(ctx, &FindLanguage{Code: &code})
	if err != nil {
		return errors.Wrap(err, "failed to list languages")
	}
	if len(list) == 0 {
		return errors.Wrapf(ErrNotFound, "language %q", code)
	}
	if _, err := s.driver.UpdateSubject(ctx, &UpdateSubject{UUID: uuid, LanguageID: &list[0].ID}); err != nil {
		return errors.Wrap(err, "failed to update subject language")
	}
	return nil
}

// GetSubjectLanguage returns the subject's language, or nil when unset.
func (s *Store) GetSubjectLanguage(ctx context.Context, uuid string) (*Language, error) {
	subject, err := s.GetSubject(ctx, uuid)
	if err != nil {
		return nil, err
	}
	if subject.LanguageID == nil {
		return nil, nil
	}
	list, err := s.driver.ListLanguages(ctx, &FindLanguage{ID: subject.LanguageID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list languages")
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}
