package rust

import (
	"net/url"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/tulip/cargo-bitbake/pkg/deps"
	"github.com/tulip/cargo-bitbake/pkg/errors"
)

const lockName = "Cargo.lock"

type lockFile struct {
	Version  int           `toml:"version"`
	Packages []lockPackage `toml:"package"`
}

type lockPackage struct {
	Name         string   `toml:"name"`
	Version      string   `toml:"version"`
	Source       string   `toml:"source"`
	Checksum     string   `toml:"checksum"`
	Dependencies []string `toml:"dependencies"`
}

func readLockFile(path string) ([]deps.ResolvedDependency, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "no %s at %s (run `cargo generate-lockfile` first)", lockName, path)
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "unable to read %s", path)
	}

	var lock lockFile
	if err := toml.Unmarshal(data, &lock); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "unable to parse %s", path)
	}

	resolved := make([]deps.ResolvedDependency, 0, len(lock.Packages))
	for _, p := range lock.Packages {
		src, err := ParseSource(p.Source)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "package %s %s in %s", p.Name, p.Version, path)
		}
		resolved = append(resolved, deps.ResolvedDependency{
			Name:    p.Name,
			Version: p.Version,
			Source:  src,
		})
	}
	deps.SortDependencies(resolved)
	return resolved, nil
}

// ParseSource converts a Cargo.lock source string into a deps.Source.
//
//	""                                                  -> PathSource
//	registry+https://github.com/rust-lang/crates.io-index -> RegistrySource
//	sparse+https://index.crates.io/                     -> RegistrySource
//	git+https://host/repo?branch=dev#<commit>           -> GitSource{Reference: GitBranch("dev")}
//	anything else                                       -> OtherSource
func ParseSource(s string) (deps.Source, error) {
	if s == "" {
		return deps.PathSource{}, nil
	}

	kind, rest, ok := strings.Cut(s, "+")
	if !ok {
		return deps.OtherSource{URL: s}, nil
	}

	switch kind {
	case "registry", "sparse":
		return deps.RegistrySource{}, nil
	case "path":
		return deps.PathSource{}, nil
	case "git":
		return parseGitSource(rest)
	default:
		return deps.OtherSource{URL: s}, nil
	}
}

func parseGitSource(raw string) (deps.Source, error) {
	// The fragment is the commit Cargo locked; the reference comes from the query.
	withoutFragment, _, _ := strings.Cut(raw, "#")

	u, err := url.Parse(withoutFragment)
	if err != nil {
		return nil, err
	}

	q := u.Query()
	var ref deps.GitReference = deps.DefaultBranch{}
	switch {
	case q.Has("tag"):
		ref = deps.GitTag(q.Get("tag"))
	case q.Has("rev"):
		ref = deps.GitRev(q.Get("rev"))
	case q.Has("branch"):
		ref = deps.GitBranch(q.Get("branch"))
	}

	return deps.GitSource{URL: withoutFragment, Reference: ref}, nil
}
