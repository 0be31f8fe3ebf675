package store

import (
	"context"

	"github.com/pkg/errors"
)

// Sign is a placed display sign. The sign board renderer reads the listing
// on every refresh tick, so the listing is cached.
type Sign struct {
	ID    int32
	World string
	PosX  int32
	PosY  int32
	PosZ  int32
}

// FindSign is the find condition for sign.
type FindSign struct {
	World *string
}

// DeleteSign identifies a sign by its placement.
type DeleteSign struct {
	World string
	PosX  int32
	PosY  int32
	PosZ  int32
}

const signListCacheKey = "sign:all"

// CreateSign registers a sign placement.
func (s *Store) CreateSign(ctx context.Context, create *Sign) (*Sign, error) {
	sign, err := s.driver.CreateSign(ctx, create)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create sign")
	}
	s.signCache.Delete(ctx, signListCacheKey)
	return sign, nil
}

// ListSigns lists all sign placements, serving repeated calls from cache.
func (s *Store) ListSigns(ctx context.Context) ([]*Sign, error) {
	if v, ok := s.signCache.Get(ctx, signListCacheKey); ok {
		return v.([]*Sign), nil
	}
	list, err := s.driver.ListSigns(ctx, &FindSign{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list signs")
	}
	s.signCache.Set(ctx, signListCacheKey, list)
	return list, nil
}

// DeleteSign removes a sign placement.
func (s *Store) DeleteSign(ctx context.Context, delete *DeleteSign) error {
	if err := s.driver.DeleteSign(ctx, delete); err != nil {
		return errors.Wrap(err, "failed to delete sign")
	}
	s.signCache.Delete(ctx, signListCacheKey)
	return nil
}
