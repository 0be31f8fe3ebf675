package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/grouplabel/grouplabel/internal/version"
)

// Profile is the configuration to start the main server.
type Profile struct {
	// Mode can be "prod" or "dev"
	Mode string
	// Addr is the binding address for the server
	Addr string
	// Port is the binding port for the server
	Port int
	// Data is the data directory
	Data string
	// DSN points to where grouplabel stores its own data
	DSN string
	// Driver is the database driver (sqlite or postgres)
	Driver string
	// Version is the current version of the server
	Version string

	// DefaultGroup is the group assigned to a subject the first time it is seen.
	// Empty disables the assignment.
	DefaultGroup string
	// CacheMaxItems bounds the label cache and the store-level caches.
	CacheMaxItems int
	// SignRefreshSpec is the cron spec for the sign board refresh runner.
	// Empty disables the runner.
	SignRefreshSpec string
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FromEnv loads configuration from GROUPLABEL_* environment variables.
// Values already set on the profile (e.g. from flags) take precedence.
func (p *Profile) FromEnv() {
	if p.Mode == "" {
		p.Mode = getEnvOrDefault("GROUPLABEL_MODE", "dev")
	}
	if p.Addr == "" {
		p.Addr = os.Getenv("GROUPLABEL_ADDR")
	}
	if p.Port == 0 {
		if port, err := strconv.Atoi(os.Getenv("GROUPLABEL_PORT")); err == nil {
			p.Port = port
		}
	}
	if p.Data == "" {
		p.Data = os.Getenv("GROUPLABEL_DATA")
	}
	if p.DSN == "" {
		p.DSN = os.Getenv("GROUPLABEL_DSN")
	}
	if p.Driver == "" {
		p.Driver = getEnvOrDefault("GROUPLABEL_DRIVER", "sqlite")
	}
	if p.DefaultGroup == "" {
		p.DefaultGroup = os.Getenv("GROUPLABEL_DEFAULT_GROUP")
	}
	if p.CacheMaxItems == 0 {
		if n, err := strconv.Atoi(os.Getenv("GROUPLABEL_CACHE_MAX_ITEMS")); err == nil {
			p.CacheMaxItems = n
		}
	}
	if p.SignRefreshSpec == "" {
		p.SignRefreshSpec = os.Getenv("GROUPLABEL_SIGN_REFRESH_SPEC")
	}
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

// Validate normalizes the profile and fills driver-dependent defaults.
func (p *Profile) Validate() error {
	if p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "dev"
	}
	if p.Port == 0 {
		p.Port = 8291
	}
	if p.CacheMaxItems <= 0 {
		p.CacheMaxItems = 1000
	}
	if p.Driver != "sqlite" && p.Driver != "postgres" {
		return errors.Errorf("unsupported driver %q", p.Driver)
	}
	if p.Driver == "postgres" && p.DSN == "" {
		return errors.New("dsn is required for the postgres driver")
	}

	if p.Data == "" {
		p.Data = "."
	}
	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		return err
	}
	p.Data = dataDir

	if p.Driver == "sqlite" && p.DSN == "" {
		dbFile := fmt.Sprintf("grouplabel_%s.db", p.Mode)
		p.DSN = filepath.Join(dataDir, dbFile)
	}

	p.Version = version.GetCurrentVersion(p.Mode)
	return nil
}
