package sqlite

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/grouplabel/grouplabel/store"
)

func (d *DB) CreateSign(ctx context.Context, create *store.Sign) (*store.Sign, error) {
	stmt := `INSERT INTO sign (world, pos_x, pos_y, pos_z)
		VALUES (` + placeholders(4) + `) RETURNING sign_id`
	if err := d.db.QueryRowContext(ctx, stmt,
		create.World, create.PosX, create.PosY, create.PosZ,
	).Scan(&create.ID); err != nil {
		return nil, errors.Wrap(err, "failed to create sign")
	}
	return create, nil
}

func (d *DB) ListSigns(ctx context.Context, find *store.FindSign) ([]*store.Sign, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.World; v != nil {
		where, args = append(where, "sign.world = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `SELECT sign_id, world, pos_x, pos_y, pos_z FROM sign
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY sign_id ASC`
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query signs")
	}
	defer rows.Close()

	list := make([]*store.Sign, 0)
	for rows.Next() {
		var sign store.Sign
		if err := rows.Scan(&sign.ID, &sign.World, &sign.PosX, &sign.PosY, &sign.PosZ); err != nil {
			return nil, errors.Wrap(err, "failed to scan sign")
		}
		list = append(list, &sign)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate signs")
	}
	return list, nil
}

func (d *DB) DeleteSign(ctx context.Context, delete *store.DeleteSign) error {
	stmt := `DELETE FROM sign WHERE world = ? AND pos_x = ? AND pos_y = ? AND pos_z = ?`
	if _, err := d.db.ExecContext(ctx, stmt, delete.World, delete.PosX, delete.PosY, delete.PosZ); err != nil {
		return errors.Wrap(err, "failed to delete sign")
	}
	return nil
}
