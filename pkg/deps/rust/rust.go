package rust

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/tulip/cargo-bitbake/pkg/deps"
	"github.com/tulip/cargo-bitbake/pkg/errors"
)

// CargoLoader implements deps.Loader over a Cargo.toml and the Cargo.lock
// of its workspace. The lockfile must already exist; nothing is resolved here.
type CargoLoader struct {
	// WorkDir is where manifest discovery starts when no path is given.
	// Defaults to the process working directory.
	WorkDir string
	Logger  *log.Logger
}

var _ deps.Loader = (*CargoLoader)(nil)

// NewLoader returns a CargoLoader using the given logger (log.Default if nil).
func NewLoader(logger *log.Logger) *CargoLoader {
	if logger == nil {
		logger = log.Default()
	}
	return &CargoLoader{Logger: logger}
}

func (c *CargoLoader) Type() string { return "cargo" }

func (c *CargoLoader) Supports(name string) bool {
	return strings.EqualFold(name, manifestName) || strings.EqualFold(name, lockName)
}

// Load reads the package manifest at path, or the nearest Cargo.toml at or
// above WorkDir when path is empty. A path to Cargo.lock selects the
// Cargo.toml next to it.
func (c *CargoLoader) Load(ctx context.Context, path string) (*deps.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	manifest, err := c.manifestPath(path)
	if err != nil {
		return nil, err
	}

	cargo, err := readCargoFile(manifest)
	if err != nil {
		return nil, err
	}
	if cargo.Package == nil {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "%s is a virtual manifest; point --manifest-path at a workspace member", manifest)
	}

	pkgDir := filepath.Dir(manifest)
	wsRoot, ws, err := findWorkspaceRoot(pkgDir, cargo)
	if err != nil {
		return nil, err
	}

	pkg, err := rootPackage(cargo, pkgDir, ws)
	if err != nil {
		return nil, err
	}

	resolved, err := readLockFile(filepath.Join(wsRoot, lockName))
	if err != nil {
		return nil, err
	}

	c.logger().Debug("loaded cargo project",
		"package", describe(pkg),
		"workspace", wsRoot,
		"packages", len(resolved))

	return &deps.Project{
		Package:       pkg,
		Dependencies:  resolved,
		WorkspaceRoot: wsRoot,
	}, nil
}

func (c *CargoLoader) manifestPath(path string) (string, error) {
	if path == "" {
		dir := c.WorkDir
		if dir == "" {
			wd, err := os.Getwd()
			if err != nil {
				return "", errors.Wrap(errors.ErrCodeIO, err, "unable to determine working directory")
			}
			dir = wd
		}
		return findManifest(dir)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "invalid manifest path %s", path)
	}
	if info, err := os.Stat(abs); err == nil && info.IsDir() {
		return filepath.Join(abs, manifestName), nil
	}
	if strings.EqualFold(filepath.Base(abs), lockName) {
		return filepath.Join(filepath.Dir(abs), manifestName), nil
	}
	return abs, nil
}

func (c *CargoLoader) logger() *log.Logger {
	if c.Logger == nil {
		return log.Default()
	}
	return c.Logger
}
