package store

import (
	"context"
	"embed"
	"strings"

	"github.com/pkg/errors"
)

// The schema is applied in one shot from LATEST.sql on an uninitialized
// database. Incremental migrations are intentionally out of scope until a
// second released schema version exists.

//go:embed migration
var migrationFS embed.FS

// LatestSchemaFileName is the full schema for new installations.
const LatestSchemaFileName = "LATEST.sql"

// Migrate initializes the database schema when needed.
func (s *Store) Migrate(ctx context.Context) error {
	initialized, err := s.driver.IsInitialized(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to check if database is initialized")
	}
	if initialized {
		return nil
	}

	filePath := "migration/" + s.profile.Driver + "/" + LatestSchemaFileName
	bytes, err := migrationFS.ReadFile(filePath)
	if err != nil {
		return errors.Wrapf(err, "failed to read latest schema file: %s", filePath)
	}

	tx, err := s.driver.GetDB().BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to start transaction")
	}
	defer tx.Rollback()

	// lib/pq rejects multiple statements in a single ExecContext call.
	for _, stmt := range strings.Split(string(bytes), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return errors.Wrapf(err, "failed to execute statement %q", stmt)
		}
	}
	return errors.Wrap(tx.Commit(), "failed to commit schema transaction")
}
