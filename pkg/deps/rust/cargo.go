package rust

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/tulip/cargo-bitbake/pkg/deps"
	"github.com/tulip/cargo-bitbake/pkg/errors"
)

const manifestName = "Cargo.toml"

type cargoFile struct {
	Package   map[string]any  `toml:"package"`
	Workspace *cargoWorkspace `toml:"workspace"`
}

type cargoWorkspace struct {
	Members []string       `toml:"members"`
	Exclude []string       `toml:"exclude"`
	Package map[string]any `toml:"package"`
}

func readCargoFile(path string) (*cargoFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "no %s at %s", manifestName, path)
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "unable to read %s", path)
	}

	var cargo cargoFile
	if err := toml.Unmarshal(data, &cargo); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "unable to parse %s", path)
	}
	return &cargo, nil
}

// packageFields lists the manifest keys copied into deps.Package.
var packageFields = []string{"name", "version", "description", "homepage", "repository", "license", "license-file"}

// rootPackage builds deps.Package from the [package] table, pulling
// `key.workspace = true` values from the workspace's [workspace.package].
func rootPackage(cargo *cargoFile, dir string, ws *cargoWorkspace) (deps.Package, error) {
	var inherited map[string]any
	if ws != nil {
		inherited = ws.Package
	}

	values := make(map[string]string, len(packageFields))
	for _, key := range packageFields {
		v, err := fieldValue(cargo.Package, inherited, key)
		if err != nil {
			return deps.Package{}, err
		}
		values[key] = strings.TrimSpace(v)
	}

	pkg := deps.Package{
		Name:        values["name"],
		Version:     values["version"],
		Description: values["description"],
		Homepage:    values["homepage"],
		Repository:  values["repository"],
		License:     values["license"],
		LicenseFile: values["license-file"],
		Dir:         dir,
	}
	if err := errors.ValidateCratesPackageName(pkg.Name); err != nil {
		return deps.Package{}, err
	}
	if pkg.Version == "" {
		// Cargo defaults an omitted version to 0.0.0.
		pkg.Version = "0.0.0"
	}
	return pkg, nil
}

func fieldValue(pkg, inherited map[string]any, key string) (string, error) {
	raw, ok := pkg[key]
	if !ok {
		return "", nil
	}
	switch v := raw.(type) {
	case string:
		return v, nil
	case map[string]any:
		if ws, _ := v["workspace"].(bool); ws {
			s, ok := inherited[key].(string)
			if !ok {
				return "", errors.New(errors.ErrCodeInvalidManifest, "package.%s inherits from the workspace but [workspace.package] has no %s", key, key)
			}
			return s, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidManifest, "package.%s has unsupported value %v", key, raw)
}

// findManifest walks up from dir to the nearest Cargo.toml.
func findManifest(dir string) (string, error) {
	for d := dir; ; {
		path := filepath.Join(d, manifestName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
		parent := filepath.Dir(d)
		if parent == d {
			return "", errors.New(errors.ErrCodeFileNotFound, "could not find %s in %s or any parent directory", manifestName, dir)
		}
		d = parent
	}
}

// findWorkspaceRoot returns the directory of the workspace manifest that
// owns the package in pkgDir, and its [workspace] table. A package that is
// not part of a workspace is its own root.
func findWorkspaceRoot(pkgDir string, cargo *cargoFile) (string, *cargoWorkspace, error) {
	if cargo.Workspace != nil {
		return pkgDir, cargo.Workspace, nil
	}

	if explicit, ok := cargo.Package["workspace"].(string); ok && explicit != "" {
		root := filepath.Clean(filepath.Join(pkgDir, explicit))
		ws, err := readCargoFile(filepath.Join(root, manifestName))
		if err != nil {
			return "", nil, err
		}
		if ws.Workspace == nil {
			return "", nil, errors.New(errors.ErrCodeInvalidManifest, "package.workspace points at %s which has no [workspace]", root)
		}
		return root, ws.Workspace, nil
	}

	for d := filepath.Dir(pkgDir); ; d = filepath.Dir(d) {
		path := filepath.Join(d, manifestName)
		if _, err := os.Stat(path); err == nil {
			ws, err := readCargoFile(path)
			if err != nil {
				return "", nil, err
			}
			if ws.Workspace != nil && !excluded(d, pkgDir, ws.Workspace.Exclude) {
				return d, ws.Workspace, nil
			}
		}
		if filepath.Dir(d) == d {
			return pkgDir, nil, nil
		}
	}
}

func excluded(root, pkgDir string, exclude []string) bool {
	rel, err := filepath.Rel(root, pkgDir)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, ex := range exclude {
		ex = strings.TrimSuffix(filepath.ToSlash(ex), "/")
		if rel == ex || strings.HasPrefix(rel, ex+"/") {
			return true
		}
	}
	return false
}

func describe(pkg deps.Package) string {
	return fmt.Sprintf("%s v%s (%s)", pkg.Name, pkg.Version, pkg.Dir)
}
