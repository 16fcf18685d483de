package deps

import (
	"context"
	"path/filepath"

	"github.com/tulip/cargo-bitbake/pkg/errors"
)

// Loader reads a package and its already-resolved dependency graph.
type Loader interface {
	// Load reads the manifest at path (or discovers one when path is empty).
	Load(ctx context.Context, path string) (*Project, error)
	// Supports reports whether this loader handles the given filename.
	Supports(filename string) bool
	// Type returns the manifest type identifier (e.g., "cargo").
	Type() string
}

// DetectLoader finds a loader that supports the given manifest path.
// Returns an ErrCodeUnsupported error if no loader matches.
func DetectLoader(path string, loaders ...Loader) (Loader, error) {
	name := filepath.Base(path)
	for _, l := range loaders {
		if l.Supports(name) {
			return l, nil
		}
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported manifest: %s", name)
}
