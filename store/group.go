package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

// Group is a named, weighted record owning a display prefix.
// Lower weight means higher priority during label resolution.
type Group struct {
	ID          int32
	Name        string
	Prefix      string
	Description string
	Weight      int32
}

// FindGroup is the find condition for group.
type FindGroup struct {
	ID   *int32
	Name *string
}

// UpdateGroup is the update request for group.
type UpdateGroup struct {
	ID          int32
	Name        *string
	Prefix      *string
	Description *string
	Weight      *int32
}

// DeleteGroup is the delete request for group.
type DeleteGroup struct {
	ID int32
}

// GroupUpdateFields are the field names accepted by UpdateGroupField.
var GroupUpdateFields = []string{"name", "prefix", "description", "weight"}

// CreateGroup creates a new group. The name must be unique.
func (s *Store) CreateGroup(ctx context.Context, create *Group) (*Group, error) {
	existing, err := s.driver.ListGroups(ctx, &FindGroup{Name: &create.Name})
	if err != nil {
		return nil, errors.Wrap(err, "failed to check group name")
	}
	if len(existing) > 0 {
		return nil, errors.Wrapf(ErrAlreadyExists, "group %q", create.Name)
	}

	group, err := s.driver.CreateGroup(ctx, create)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create group")
	}
	s.groupCache.Clear(ctx)
	return group, nil
}

// GetGroup gets a group by id.
func (s *Store) GetGroup(ctx context.Context, id int32) (*Group, error) {
	key := groupCacheKey("id", fmt.Sprint(id))
	if v, ok := s.groupCache.Get(ctx, key); ok {
		return v.(*Group), nil
	}

	list, err := s.driver.ListGroups(ctx, &FindGroup{ID: &id})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list groups")
	}
	if len(list) == 0 {
		return nil, errors.Wrapf(ErrNotFound, "group %d", id)
	}
	s.groupCache.Set(ctx, key, list[0])
	return list[0], nil
}

// GetGroupByName gets a group by name.
func (s *Store) GetGroupByName(ctx context.Context, name string) (*Group, error) {
	key := groupCacheKey("name", name)
	if v, ok := s.groupCache.Get(ctx, key); ok {
		return v.(*Group), nil
	}

	list, err := s.driver.ListGroups(ctx, &FindGroup{Name: &name})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list groups")
	}
	if len(list) == 0 {
		return nil, errors.Wrapf(ErrNotFound, "group %q", name)
	}
	s.groupCache.Set(ctx, key, list[0])
	return list[0], nil
}

// ListGroups lists groups with filter.
func (s *Store) ListGroups(ctx context.Context, find *FindGroup) ([]*Group, error) {
	return s.driver.ListGroups(ctx, find)
}

// ListGroupNames lists all group names, used for completion and validation.
func (s *Store) ListGroupNames(ctx context.Context) ([]string, error) {
	groups, err := s.driver.ListGroups(ctx, &FindGroup{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list groups")
	}
	names := make([]string, 0, len(groups))
	for _, group := range groups {
		names = append(names, group.Name)
	}
	return names, nil
}

// UpdateGroup updates a group.
func (s *Store) UpdateGroup(ctx context.Context, update *UpdateGroup) (*Group, error) {
	group, err := s.driver.UpdateGroup(ctx, update)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update group")
	}
	s.groupCache.Clear(ctx)
	return group, nil
}

// UpdateGroupField updates a single group field from its string representation.
// The field must be one of GroupUpdateFields; weight must parse as an integer.
func (s *Store) UpdateGroupField(ctx context.Context, id int32, field, value string) (*Group, error) {
	update := &UpdateGroup{ID: id}
	switch field {
	case "name":
		update.Name = &value
	case "prefix":
		update.Prefix = &value
	case "description":
		update.Description = &value
	case "weight":
		weight, err := strconv.ParseInt(value, 10, 32)
		if err != nil {
			return nil, NewValidationError("weight %q is not an integer", value)
		}
		w := int32(weight)
		update.Weight = &w
	default:
		return nil, NewValidationError("unknown group field %q", field)
	}
	return s.UpdateGroup(ctx, update)
}

// DeleteGroup deletes a group by id. Memberships referencing the group are
// left in place and become dangling; resolution skips them and
// ListOrphanMemberships surfaces them.
func (s *Store) DeleteGroup(ctx context.Context, delete *DeleteGroup) error {
	if _, err := s.GetGroup(ctx, delete.ID); err != nil {
		return err
	}
	if err := s.driver.DeleteGroup(ctx, delete); err != nil {
		return errors.Wrap(err, "failed to delete group")
	}
	s.groupCache.Clear(ctx)
	return nil
}

func groupCacheKey(kind, value string) string {
	return "group:" + kind + ":" + value
}
