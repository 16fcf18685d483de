package render

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/tulip/cargo-bitbake/pkg/errors"
)

//go:embed templates/bitbake.template
var bitbakeTemplate string

// DefaultExt is the extension of recipes rendered from the built-in template.
const DefaultExt = "bb"

// Field names bound by the pipeline.
const (
	FieldName            = "name"
	FieldVersion         = "version"
	FieldSummary         = "summary"
	FieldHomepage        = "homepage"
	FieldLicense         = "license"
	FieldLicFiles        = "lic_files"
	FieldSrcURI          = "src_uri"
	FieldSrcURIExtras    = "src_uri_extras"
	FieldProjectRelDir   = "project_rel_dir"
	FieldProjectSrcURI   = "project_src_uri"
	FieldProjectSrcRev   = "project_src_rev"
	FieldGitSrcPV        = "git_srcpv"
	FieldCargoBitbakeVer = "cargo_bitbake_ver"
)

// FieldNames lists every field a complete [Fields] binds.
var FieldNames = []string{
	FieldName, FieldVersion, FieldSummary, FieldHomepage, FieldLicense,
	FieldLicFiles, FieldSrcURI, FieldSrcURIExtras, FieldProjectRelDir,
	FieldProjectSrcURI, FieldProjectSrcRev, FieldGitSrcPV, FieldCargoBitbakeVer,
}

// Fields maps placeholder names to their values.
type Fields map[string]string

// placeholder matches {ident}. A leading "$" is captured so BitBake
// variable references like ${PV} can be skipped.
var placeholder = regexp.MustCompile(`\$?\{([a-z_][a-z0-9_]*)\}`)

// Template is a recipe template with {field} placeholders.
type Template struct {
	// Name identifies the template in errors.
	Name string
	// Ext is the extension of the files rendered from it.
	Ext  string
	Body string
}

// Default returns the built-in BitBake recipe template.
func Default() *Template {
	return &Template{Name: "bitbake.template", Ext: DefaultExt, Body: bitbakeTemplate}
}

// LoadTemplate reads a template file. The output extension is taken from
// the file stem (recipe.bb.tmpl renders to .bb) or, when the stem has none,
// from the file itself (recipe.bb renders to .bb). A bare template suffix
// such as bitbake.template renders to [DefaultExt].
func LoadTemplate(path string) (*Template, error) {
	ext, err := templateExt(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "template %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "unable to read template %s", path)
	}
	return &Template{Name: path, Ext: ext, Body: string(data)}, nil
}

// templateSuffixes mark a file as a template without naming its output type.
var templateSuffixes = map[string]bool{"template": true, "tmpl": true, "tpl": true}

func templateExt(path string) (string, error) {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if ext := strings.TrimPrefix(filepath.Ext(stem), "."); ext != "" {
		return ext, nil
	}
	if ext := strings.TrimPrefix(filepath.Ext(base), "."); ext != "" {
		if templateSuffixes[strings.ToLower(ext)] {
			return DefaultExt, nil
		}
		return ext, nil
	}
	return "", errors.New(errors.ErrCodeInvalidTemplate,
		"template %s needs an extension to name its output, e.g. recipe.bb.tmpl", path)
}

// Placeholders returns the field names the template references, sorted
// and without duplicates.
func (t *Template) Placeholders() []string {
	var names []string
	for _, m := range placeholder.FindAllStringSubmatch(t.Body, -1) {
		if strings.HasPrefix(m[0], "$") {
			continue
		}
		names = append(names, m[1])
	}
	slices.Sort(names)
	return slices.Compact(names)
}

// Execute substitutes every placeholder with its field value. Values are
// inserted verbatim and never scanned for placeholders themselves. If any
// placeholder is unbound nothing is rendered and the error carries a
// [*MissingFieldError].
func (t *Template) Execute(fields Fields) (string, error) {
	var missing []string
	for _, name := range t.Placeholders() {
		if _, ok := fields[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return "", errors.Wrap(errors.ErrCodeMissingField,
			&MissingFieldError{Template: t.Name, Fields: missing}, "template %s cannot be rendered", t.Name)
	}

	return placeholder.ReplaceAllStringFunc(t.Body, func(m string) string {
		if strings.HasPrefix(m, "$") {
			return m
		}
		return fields[m[1:len(m)-1]]
	}), nil
}

// MissingFieldError lists placeholders a template uses that have no value.
type MissingFieldError struct {
	Template string
	Fields   []string
}

func (e *MissingFieldError) Error() string {
	quoted := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		quoted[i] = fmt.Sprintf("{%s}", f)
	}
	return "unbound placeholders " + strings.Join(quoted, ", ")
}
