package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pkg/errors"

	"github.com/grouplabel/grouplabel/store"
)

func (d *DB) CreateMembership(ctx context.Context, create *store.Membership) (*store.Membership, error) {
	fields := []string{"subject_uuid", "group_id"}
	args := []any{create.SubjectID, create.GroupID}
	if create.JoinUntil != nil {
		fields = append(fields, "join_until")
		args = append(args, create.JoinUntil.UTC())
	}

	stmt := `INSERT INTO membership (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)`
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return nil, errors.Wrap(err, "failed to create membership")
	}
	return create, nil
}

func (d *DB) ListMemberships(ctx context.Context, find *store.FindMembership) ([]*store.Membership, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.SubjectID; v != nil {
		where, args = append(where, "membership.subject_uuid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.GroupID; v != nil {
		where, args = append(where, "membership.group_id = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `SELECT subject_uuid, group_id, join_until FROM membership
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY group_id ASC`
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query memberships")
	}
	defer rows.Close()

	return scanMemberships(rows)
}

func (d *DB) DeleteMemberships(ctx context.Context, delete *store.DeleteMembership) error {
	// Bulk by pair: duplicates of the same membership all go at once.
	stmt := `DELETE FROM membership WHERE subject_uuid = $1 AND group_id = $2`
	if _, err := d.db.ExecContext(ctx, stmt, delete.SubjectID, delete.GroupID); err != nil {
		return errors.Wrap(err, "failed to delete memberships")
	}
	return nil
}

func (d *DB) ListOrphanMemberships(ctx context.Context) ([]*store.Membership, error) {
	query := `SELECT m.subject_uuid, m.group_id, m.join_until FROM membership m
		LEFT JOIN "group" g ON m.group_id = g.group_id
		WHERE g.group_id IS NULL
		ORDER BY m.subject_uuid ASC, m.group_id ASC`
	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query orphan memberships")
	}
	defer rows.Close()

	return scanMemberships(rows)
}

func scanMemberships(rows *sql.Rows) ([]*store.Membership, error) {
	list := make([]*store.Membership, 0)
	for rows.Next() {
		var membership store.Membership
		var joinUntil sql.NullTime
		if err := rows.Scan(&membership.SubjectID, &membership.GroupID, &joinUntil); err != nil {
			return nil, errors.Wrap(err, "failed to scan membership")
		}
		if joinUntil.Valid {
			t := joinUntil.Time
			membership.JoinUntil = &t
		}
		list = append(list, &membership)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate memberships")
	}
	return list, nil
}
