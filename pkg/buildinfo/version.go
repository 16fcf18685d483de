// Package buildinfo provides build-time version information.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/tulip/cargo-bitbake/pkg/buildinfo.Version=v0.4.0 \
//	    -X github.com/tulip/cargo-bitbake/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/tulip/cargo-bitbake/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Version is also stamped into every generated recipe as cargo_bitbake_ver.
package buildinfo

import (
	"fmt"
	"strings"
)

var (
	// Version is the semantic version (e.g., "v1.2.3").
	// Set via ldflags: -X github.com/tulip/cargo-bitbake/pkg/buildinfo.Version=...
	Version = "dev"

	// Commit is the git commit SHA.
	// Set via ldflags: -X github.com/tulip/cargo-bitbake/pkg/buildinfo.Commit=...
	Commit = "none"

	// Date is the build timestamp.
	// Set via ldflags: -X github.com/tulip/cargo-bitbake/pkg/buildinfo.Date=...
	Date = "unknown"
)

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template string for cobra.
func Template() string {
	return "{{.Name}} " + String() + "\n"
}

// RecipeVersion returns Version without a leading "v", the form written
// into the recipe header.
func RecipeVersion() string {
	return strings.TrimPrefix(Version, "v")
}
