package pipeline

import (
	"strings"

	"github.com/tulip/cargo-bitbake/pkg/buildinfo"
	"github.com/tulip/cargo-bitbake/pkg/deps"
	"github.com/tulip/cargo-bitbake/pkg/git"
	"github.com/tulip/cargo-bitbake/pkg/license"
	"github.com/tulip/cargo-bitbake/pkg/render"
	"github.com/tulip/cargo-bitbake/pkg/srcuri"
)

// Inputs gathers everything the recipe fields are computed from.
type Inputs struct {
	Package deps.Package
	RelDir  string
	Sources *srcuri.Result
	License *license.Result
	Repo    git.ProjectRepo
	SrcPV   string
}

// Summary returns the recipe SUMMARY: the package description, or the
// package name when there is none.
func Summary(pkg deps.Package) (string, deps.Advisories) {
	var adv deps.Advisories
	if s := strings.TrimSpace(pkg.Description); s != "" {
		return s, adv
	}
	adv.Add("No package.description set in your Cargo.toml, using package.name")
	return pkg.Name, adv
}

// Homepage returns the recipe HOMEPAGE: the package homepage, else its
// repository. A package with neither gets an empty HOMEPAGE.
func Homepage(pkg deps.Package) (string, deps.Advisories) {
	var adv deps.Advisories
	if s := strings.TrimSpace(pkg.Homepage); s != "" {
		return s, adv
	}
	adv.Add("No package.homepage set in your Cargo.toml, trying package.repository")
	if s := strings.TrimSpace(pkg.Repository); s != "" {
		return s, adv
	}
	adv.Add("No package.repository set in your Cargo.toml, leaving HOMEPAGE empty")
	return "", adv
}

// BuildFields binds every template field. The returned advisories cover
// the metadata fallbacks taken.
func BuildFields(in Inputs) (render.Fields, deps.Advisories) {
	var adv deps.Advisories

	summary, a := Summary(in.Package)
	adv.Extend(a)
	homepage, a := Homepage(in.Package)
	adv.Extend(a)

	var srcURI, extras []string
	if in.Sources != nil {
		srcURI = in.Sources.URIs
		extras = in.Sources.Extras
	}

	var licField string
	var licFiles []string
	if in.License != nil {
		licField = in.License.License
		for _, f := range in.License.Files {
			if d := f.Directive(); d != "" {
				licFiles = append(licFiles, d)
			}
		}
	}

	return render.Fields{
		render.FieldName:            in.Package.Name,
		render.FieldVersion:         in.Package.Version,
		render.FieldSummary:         summary,
		render.FieldHomepage:        homepage,
		render.FieldLicense:         licField,
		render.FieldLicFiles:        continuationLines(licFiles),
		render.FieldSrcURI:          continuationLines(srcURI),
		render.FieldSrcURIExtras:    strings.Join(extras, "\n"),
		render.FieldProjectRelDir:   in.RelDir,
		render.FieldProjectSrcURI:   in.Repo.URI,
		render.FieldProjectSrcRev:   in.Repo.Rev,
		render.FieldGitSrcPV:        in.SrcPV,
		render.FieldCargoBitbakeVer: buildinfo.RecipeVersion(),
	}, adv
}

// continuationLines formats values as the body of a multi-line BitBake
// string: one indented value per line, each ending in a backslash.
func continuationLines(values []string) string {
	var b strings.Builder
	for _, v := range values {
		b.WriteString("    ")
		b.WriteString(v)
		b.WriteString(" \\\n")
	}
	return b.String()
}
