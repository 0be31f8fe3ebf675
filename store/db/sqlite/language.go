package sqlite

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/grouplabel/grouplabel/store"
)

func (d *DB) CreateLanguage(ctx context.Context, create *store.Language) (*store.Language, error) {
	stmt := `INSERT INTO language (name, code) VALUES (` + placeholders(2) + `) RETURNING language_id`
	if err := d.db.QueryRowContext(ctx, stmt, create.Name, create.Code).Scan(&create.ID); err != nil {
		return nil, errors.Wrap(err, "failed to create language")
	}
	return create, nil
}

func (d *DB) ListLanguages(ctx context.Context, find *store.FindLanguage) ([]*store.Language, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "language.language_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Code; v != nil {
		where, args = append(where, "language.code = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `SELECT language_id, name, code FROM language
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY language_id ASC`
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query languages")
	}
	defer rows.Close()

	list := make([]*store.Language, 0)
	for rows.Next() {
		var language store.Language
		if err := rows.Scan(&language.ID, &language.Name, &language.Code); err != nil {
			return nil, errors.Wrap(err, "failed to scan language")
		}
		list = append(list, &language)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate languages")
	}
	return list, nil
}
