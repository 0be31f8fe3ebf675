// Package test provides a real store backed by a throwaway SQLite database.
package test

import (
	"context"
	"fmt"
	"testing"

	"github.com/grouplabel/grouplabel/internal/profile"
	"github.com/grouplabel/grouplabel/store"
	"github.com/grouplabel/grouplabel/store/db/sqlite"
)

// NewTestingStore creates a store on a fresh SQLite database under t.TempDir.
func NewTestingStore(ctx context.Context, t *testing.T) *store.Store {
	p := GetTestingProfile(t)
	driver, err := sqlite.NewDB(p)
	if err != nil {
		t.Fatalf("failed to create db driver: %v", err)
	}

	st := store.New(driver, p)
	if err := st.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Logf("failed to close store: %v", err)
		}
	})
	return st
}

// GetTestingProfile returns a validated sqlite profile rooted in t.TempDir.
func GetTestingProfile(t *testing.T) *profile.Profile {
	dir := t.TempDir()
	p := &profile.Profile{
		Mode:   "dev",
		Data:   dir,
		DSN:    fmt.Sprintf("%s/grouplabel_test.db", dir),
		Driver: "sqlite",
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("failed to validate profile: %v", err)
	}
	return p
}
