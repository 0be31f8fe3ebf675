package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	IsInitialized(ctx context.Context) (bool, error)

	// Group model related methods.
	CreateGroup(ctx context.Context, create *Group) (*Group, error)
	ListGroups(ctx context.Context, find *FindGroup) ([]*Group, error)
	UpdateGroup(ctx context.Context, update *UpdateGroup) (*Group, error)
	DeleteGroup(ctx context.Context, delete *DeleteGroup) error

	// Membership model related methods.
	CreateMembership(ctx context.Context, create *Membership) (*Membership, error)
	ListMemberships(ctx context.Context, find *FindMembership) ([]*Membership, error)
	DeleteMemberships(ctx context.Context, delete *DeleteMembership) error
	ListOrphanMemberships(ctx context.Context) ([]*Membership, error)

	// Subject model related methods.
	CreateSubject(ctx context.Context, create *Subject) (*Subject, error)
	ListSubjects(ctx context.Context, find *FindSubject) ([]*Subject, error)
	UpdateSubject(ctx context.Context, update *UpdateSubject) (*Subject, error)

	// Language model related methods.
	CreateLanguage(ctx context.Context, create *Language) (*Language, error)
	ListLanguages(ctx context.Context, find *FindLanguage) ([]*Language, error)

	// Sign model related methods.
	CreateSign(ctx context.Context, create *Sign) (*Sign, error)
	ListSigns(ctx context.Context, find *FindSign) ([]*Sign, error)
	DeleteSign(ctx context.Context, delete *DeleteSign) error
}
