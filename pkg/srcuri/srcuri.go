// Package srcuri turns resolved dependencies into BitBake SRC_URI entries.
//
// Registry crates become crate:// fetcher URLs, git dependencies become
// git:// URLs plus the SRCREV and EXTRA_OECARGO_PATHS lines that pin and
// locate them, and path dependencies need nothing because they already
// live inside the project's source tree.
package srcuri

import (
	"fmt"
	"slices"

	"github.com/tulip/cargo-bitbake/pkg/deps"
	"github.com/tulip/cargo-bitbake/pkg/errors"
	"github.com/tulip/cargo-bitbake/pkg/git"
)

// RegistryHost is the host part of crate:// URLs for the default registry.
const RegistryHost = "crates.io"

// Result holds the classifier output.
type Result struct {
	// URIs are SRC_URI entries, sorted and free of duplicates.
	URIs []string
	// Extras are the auxiliary directives for git dependencies, in
	// dependency order.
	Extras []string
}

// Classify produces SRC_URI entries for every dependency except the root
// package itself. The input slice is not modified.
func Classify(root string, dependencies []deps.ResolvedDependency) (*Result, error) {
	sorted := slices.Clone(dependencies)
	deps.SortDependencies(sorted)

	res := &Result{}
	for _, dep := range sorted {
		if dep.Name == root {
			continue
		}

		switch src := dep.Source.(type) {
		case deps.RegistrySource:
			res.URIs = append(res.URIs, CrateURI(dep.Name, dep.Version))
		case deps.PathSource:
			// vendored in the project tree
		case deps.GitSource:
			rev, err := Revision(src.Reference)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "dependency %s", dep.ID())
			}
			res.URIs = append(res.URIs, git.YoctoURL(src.URL, dep.Name, git.PrefixGit))
			res.Extras = append(res.Extras, GitExtras(dep.Name, rev)...)
		case deps.OtherSource:
			res.URIs = append(res.URIs, src.URL)
		default:
			return nil, errors.New(errors.ErrCodeInvalidSource, "dependency %s has unsupported source %T", dep.ID(), dep.Source)
		}
	}

	slices.Sort(res.URIs)
	res.URIs = slices.Compact(res.URIs)
	return res, nil
}

// CrateURI returns the crate fetcher URL for a registry crate.
func CrateURI(name, version string) string {
	return fmt.Sprintf("crate://%s/%s/%s", RegistryHost, name, version)
}

// Revision maps a git reference to the value of its SRCREV line. A branch
// literally named "master" and the repository default branch both follow
// the branch head via AUTOREV; other branch names are passed through.
func Revision(ref deps.GitReference) (string, error) {
	switch r := ref.(type) {
	case deps.GitTag:
		return string(r), nil
	case deps.GitRev:
		return string(r), nil
	case deps.GitBranch:
		if r == "master" {
			return git.AutoRev, nil
		}
		return string(r), nil
	case deps.DefaultBranch:
		return git.AutoRev, nil
	case nil:
		return "", errors.New(errors.ErrCodeInvalidSource, "git source has no reference")
	default:
		return "", errors.New(errors.ErrCodeInvalidSource, "unsupported git reference %T", ref)
	}
}

// GitExtras returns the directives that give a git dependency its own
// SRCREV and make its checkout visible to cargo.
func GitExtras(name, rev string) []string {
	return []string{
		fmt.Sprintf("SRCREV_FORMAT .= \"_%s\"", name),
		fmt.Sprintf("SRCREV_%s = \"%s\"", name, rev),
		fmt.Sprintf("EXTRA_OECARGO_PATHS += \"${WORKDIR}/%s\"", name),
	}
}
