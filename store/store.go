// Package store provides database access to all raw objects.
package store

import (
	"time"

	"github.com/grouplabel/grouplabel/internal/profile"
	"github.com/grouplabel/grouplabel/store/cache"
)

// Store provides database access to all raw objects.
type Store struct {
	profile *profile.Profile
	driver  Driver

	// Caches
	groupCache *cache.Cache // cache for groups, keyed by id and name
	signCache  *cache.Cache // cache for the sign board listing
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	cacheConfig := cache.Config{
		DefaultTTL:      10 * time.Minute,
		CleanupInterval: 5 * time.Minute,
		MaxItems:        profile.CacheMaxItems,
	}

	return &Store{
		driver:     driver,
		profile:    profile,
		groupCache: cache.New(cacheConfig),
		signCache:  cache.New(cacheConfig),
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Profile() *profile.Profile {
	return s.profile
}

func (s *Store) Close() error {
	s.groupCache.Close()
	s.signCache.Close()
	return s.driver.Close()
}
