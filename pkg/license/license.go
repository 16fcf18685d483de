package license

import (
	"crypto/md5"
	"encoding/hex"
	"io/fs"
	"path"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/tulip/cargo-bitbake/pkg/deps"
)

// Closed is the BitBake license for software with no declared license.
const Closed = "CLOSED"

// CommonLicenseDir is where BitBake keeps the stock license texts.
const CommonLicenseDir = "${COMMON_LICENSE_DIR}"

// GenericMD5 tells BitBake to skip checksumming a stock license text.
const GenericMD5 = "generic"

// Entry is one LIC_FILES_CHKSUM item.
type Entry struct {
	Identifier string
	// Path is relative to the workspace root, or under CommonLicenseDir
	// when Synthetic is set.
	Path string
	MD5  string
	// Synthetic marks entries for which no file was found in the package.
	Synthetic bool
}

// Directive renders the entry as a LIC_FILES_CHKSUM value. The CLOSED
// placeholder renders as "".
func (e Entry) Directive() string {
	if e.Path == "" {
		return ""
	}
	return "file://" + e.Path + ";md5=" + e.MD5
}

// Result is the outcome of [Resolve].
type Result struct {
	// License is the LICENSE field value, identifiers joined by " | ".
	License string
	// Files holds one entry per identifier.
	Files []Entry
	// Single is set when the expression names exactly one license.
	Single bool
	// Advisories describes fallbacks taken while resolving.
	Advisories deps.Advisories
}

var orSeparator = regexp.MustCompile(`\s+OR\s+`)

// Identifiers splits a Cargo license expression into license identifiers.
// Both the legacy "MIT/Apache-2.0" form and SPDX "MIT OR Apache-2.0" are
// accepted. Empty pieces are dropped and reported.
func Identifiers(expr string) ([]string, deps.Advisories) {
	if strings.TrimSpace(expr) == "" {
		return nil, nil
	}

	var (
		ids []string
		adv deps.Advisories
	)
	for _, part := range strings.Split(orSeparator.ReplaceAllString(expr, "/"), "/") {
		id := strings.TrimSpace(part)
		if id == "" {
			adv.Add("Ignoring empty identifier in license expression %q", expr)
			continue
		}
		ids = append(ids, id)
	}
	return ids, adv
}

// Resolve computes the LICENSE field and LIC_FILES_CHKSUM entries of a
// package. fsys is rooted at the package directory and relDir is that
// directory relative to the workspace root, the root of the recipe's
// source checkout. Missing files never fail resolution: they produce a
// synthetic entry and an advisory.
func Resolve(fsys fs.FS, relDir, expr, licenseFile string) *Result {
	res := &Result{}

	ids, adv := Identifiers(expr)
	res.Advisories.Extend(adv)

	if len(ids) == 0 {
		res.Advisories.Add("No package.license set in your Cargo.toml, trying package.license_file")
		licenseFile = strings.TrimSpace(licenseFile)
		if licenseFile == "" {
			res.Advisories.Add("No package.license_file set in your Cargo.toml")
			res.Advisories.Add("Assuming %s license", Closed)
			res.License = Closed
			res.Single = true
			res.Files = []Entry{{Identifier: Closed, Synthetic: true}}
			return res
		}
		ids = []string{licenseFile}
	}

	res.Single = len(ids) == 1
	files := newCandidates(fsys)
	for _, id := range ids {
		entry, ok := files.find(fsys, id, res.Single)
		if !ok {
			res.Advisories.Add("Unable to find license file for %s, using %s", id, path.Join(CommonLicenseDir, id))
			entry = Entry{
				Identifier: id,
				Path:       path.Join(CommonLicenseDir, id),
				MD5:        GenericMD5,
				Synthetic:  true,
			}
		} else {
			entry.Path = path.Join(relDir, entry.Path)
		}
		res.Files = append(res.Files, entry)
	}

	res.License = strings.Join(ids, " | ")
	return res
}

// candidates indexes the files that may hold license text by lowercase name.
type candidates map[string]string

func newCandidates(fsys fs.FS) candidates {
	c := make(candidates)
	matches, err := doublestar.Glob(fsys, "{*,LICENSES/*}", doublestar.WithFilesOnly())
	if err != nil {
		return c
	}
	for _, m := range matches {
		key := strings.ToLower(m)
		if _, dup := c[key]; !dup {
			c[key] = m
		}
	}
	return c
}

// find applies the lookup order for a single identifier.
func (c candidates) find(fsys fs.FS, id string, single bool) (Entry, bool) {
	names := []string{id}
	names = append(names, specificNames(id)...)
	if p, ok := c.lookup(fsys, names); ok {
		return hashed(fsys, id, p)
	}
	if single {
		if p, ok := c.lookup(fsys, genericNames); ok {
			return hashed(fsys, id, p)
		}
	}
	return Entry{}, false
}

// lookup tries every name exactly before trying any case-insensitively.
func (c candidates) lookup(fsys fs.FS, names []string) (string, bool) {
	for _, n := range names {
		if isFile(fsys, n) {
			return n, true
		}
	}
	for _, n := range names {
		if p, ok := c[strings.ToLower(n)]; ok {
			return p, true
		}
	}
	return "", false
}

var genericNames = []string{"LICENSE", "LICENSE.md", "LICENSE.txt", "LICENCE", "COPYING"}

func specificNames(id string) []string {
	return []string{
		"LICENSE-" + id,
		"LICENSE-" + id + ".md",
		"LICENSE-" + id + ".txt",
		"LICENSE_" + id,
		id + ".md",
		id + ".txt",
		"LICENSES/" + id + ".txt",
		"LICENSES/" + id,
	}
}

func isFile(fsys fs.FS, name string) bool {
	if !fs.ValidPath(name) {
		return false
	}
	info, err := fs.Stat(fsys, name)
	return err == nil && info.Mode().IsRegular()
}

func hashed(fsys fs.FS, id, name string) (Entry, bool) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Entry{}, false
	}
	sum := md5.Sum(data)
	return Entry{Identifier: id, Path: name, MD5: hex.EncodeToString(sum[:])}, true
}
