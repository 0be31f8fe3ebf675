package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pkg/errors"

	"github.com/grouplabel/grouplabel/store"
)

func (d *DB) CreateSubject(ctx context.Context, create *store.Subject) (*store.Subject, error) {
	stmt := `INSERT INTO subject (uuid, name) VALUES (` + placeholders(2) + `)`
	if _, err := d.db.ExecContext(ctx, stmt, create.UUID, create.Name); err != nil {
		return nil, errors.Wrap(err, "failed to create subject")
	}
	return create, nil
}

func (d *DB) ListSubjects(ctx context.Context, find *store.FindSubject) ([]*store.Subject, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.UUID; v != nil {
		where, args = append(where, "subject.uuid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Name; v != nil {
		where, args = append(where, "subject.name = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `SELECT uuid, name, language_id FROM subject
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY uuid ASC`
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query subjects")
	}
	defer rows.Close()

	list := make([]*store.Subject, 0)
	for rows.Next() {
		var subject store.Subject
		var languageID sql.NullInt32
		if err := rows.Scan(&subject.UUID, &subject.Name, &languageID); err != nil {
			return nil, errors.Wrap(err, "failed to scan subject")
		}
		if languageID.Valid {
			id := languageID.Int32
			subject.LanguageID = &id
		}
		list = append(list, &subject)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate subjects")
	}
	return list, nil
}

func (d *DB) UpdateSubject(ctx context.Context, update *store.UpdateSubject) (*store.Subject, error) {
	set, args := []string{}, []any{}
	if v := update.Name; v != nil {
		set, args = append(set, "name = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.LanguageID; v != nil {
		set, args = append(set, "language_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if len(set) == 0 {
		return nil, errors.New("no fields to update")
	}
	args = append(args, update.UUID)

	stmt := `UPDATE subject SET ` + strings.Join(set, ", ") + ` WHERE uuid = ` + placeholder(len(args)) + `
		RETURNING uuid, name, language_id`
	var subject store.Subject
	var languageID sql.NullInt32
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(&subject.UUID, &subject.Name, &languageID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to update subject")
	}
	if languageID.Valid {
		id := languageID.Int32
		subject.LanguageID = &id
	}
	return &subject, nil
}
