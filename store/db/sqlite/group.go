package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pkg/errors"

	"github.com/grouplabel/grouplabel/store"
)

func (d *DB) CreateGroup(ctx context.Context, create *store.Group) (*store.Group, error) {
	fields := []string{"name", "prefix", "description", "weight"}
	args := []any{create.Name, create.Prefix, create.Description, create.Weight}

	stmt := `INSERT INTO "group" (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)
		RETURNING group_id`
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(&create.ID); err != nil {
		return nil, errors.Wrap(err, "failed to create group")
	}
	return create, nil
}

func (d *DB) ListGroups(ctx context.Context, find *store.FindGroup) ([]*store.Group, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, `"group".group_id = `+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Name; v != nil {
		where, args = append(where, `"group".name = `+placeholder(len(args)+1)), append(args, *v)
	}

	query := `SELECT group_id, name, prefix, description, weight FROM "group"
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY weight ASC, group_id ASC`
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query groups")
	}
	defer rows.Close()

	list := make([]*store.Group, 0)
	for rows.Next() {
		var group store.Group
		if err := rows.Scan(&group.ID, &group.Name, &group.Prefix, &group.Description, &group.Weight); err != nil {
			return nil, errors.Wrap(err, "failed to scan group")
		}
		list = append(list, &group)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate groups")
	}
	return list, nil
}

func (d *DB) UpdateGroup(ctx context.Context, update *store.UpdateGroup) (*store.Group, error) {
	set, args := []string{}, []any{}
	if v := update.Name; v != nil {
		set, args = append(set, "name = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Prefix; v != nil {
		set, args = append(set, "prefix = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Description; v != nil {
		set, args = append(set, "description = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Weight; v != nil {
		set, args = append(set, "weight = "+placeholder(len(args)+1)), append(args, *v)
	}
	if len(set) == 0 {
		return nil, errors.New("no fields to update")
	}
	args = append(args, update.ID)

	stmt := `UPDATE "group" SET ` + strings.Join(set, ", ") + ` WHERE group_id = ` + placeholder(len(args)) + `
		RETURNING group_id, name, prefix, description, weight`
	var group store.Group
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(
		&group.ID, &group.Name, &group.Prefix, &group.Description, &group.Weight,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to update group")
	}
	return &group, nil
}

func (d *DB) DeleteGroup(ctx context.Context, delete *store.DeleteGroup) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM "group" WHERE group_id = ?`, delete.ID); err != nil {
		return errors.Wrap(err, "failed to delete group")
	}
	return nil
}
