// Package version provides the build version of the grouplabel server.
package version

import "fmt"

// Version is the semver release of the server binary.
var Version = "0.3.1"

// DevVersion is the version used when running from source.
var DevVersion = "0.3.1-dev"

func GetCurrentVersion(mode string) string {
	if mode == "dev" {
		return DevVersion
	}
	return Version
}

func GetVersionString() string {
	return fmt.Sprintf("grouplabel/%s", Version)
}
