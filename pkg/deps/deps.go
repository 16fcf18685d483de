package deps

import (
	"cmp"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tulip/cargo-bitbake/pkg/errors"
)

// ResolvedDependency is one package of the resolved graph, excluding the
// root package. It is never modified after the loader returns it.
type ResolvedDependency struct {
	Name    string // Package name
	Version string // Exact resolved version
	Source  Source // Where the package is fetched from
}

// ID returns "name@version".
func (d ResolvedDependency) ID() string {
	return d.Name + "@" + d.Version
}

// Package holds the root package's identity and declared metadata.
type Package struct {
	Name        string // package.name
	Version     string // package.version
	Description string // package.description (may be empty)
	Homepage    string // package.homepage (may be empty)
	Repository  string // package.repository (may be empty)
	License     string // package.license expression (may be empty)
	LicenseFile string // package.license-file, relative to Dir (may be empty)
	Dir         string // Absolute directory containing the package manifest
}

// Project is everything the recipe generator needs from the resolver.
type Project struct {
	Package       Package              // Root package
	Dependencies  []ResolvedDependency // Resolved graph, root excluded by the classifier
	WorkspaceRoot string               // Absolute workspace root (lockfile directory)
}

// RelDir returns the package directory relative to the workspace root, in
// slash form. It is "" when the package is the workspace root.
func (p *Project) RelDir() (string, error) {
	if p.WorkspaceRoot == "" {
		return "", nil
	}
	rel, err := filepath.Rel(p.WorkspaceRoot, p.Package.Dir)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "unable to determine if %s is in a sub directory of %s", p.Package.Dir, p.WorkspaceRoot)
	}
	if rel == "." {
		return "", nil
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.New(errors.ErrCodeInvalidPath, "package %s is outside workspace %s", p.Package.Dir, p.WorkspaceRoot)
	}
	return filepath.ToSlash(rel), nil
}

// SortDependencies orders deps by name then version, in place.
func SortDependencies(deps []ResolvedDependency) {
	slices.SortFunc(deps, func(a, b ResolvedDependency) int {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.Version, b.Version)
	})
}
