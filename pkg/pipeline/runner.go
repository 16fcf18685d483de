package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tulip/cargo-bitbake/pkg/deps"
	"github.com/tulip/cargo-bitbake/pkg/errors"
	"github.com/tulip/cargo-bitbake/pkg/git"
	"github.com/tulip/cargo-bitbake/pkg/io"
	"github.com/tulip/cargo-bitbake/pkg/license"
	"github.com/tulip/cargo-bitbake/pkg/observability"
	"github.com/tulip/cargo-bitbake/pkg/render"
	"github.com/tulip/cargo-bitbake/pkg/srcuri"
)

// Runner encapsulates a recipe generation run.
//
// The Runner is stateless apart from its collaborators; it doesn't store
// results between runs.
type Runner struct {
	Loader deps.Loader
	// Inspector reads the project's git checkout. Nil uses a
	// [git.GoGitInspector] configured from Options.GitPrefix.
	Inspector git.Inspector
	Logger    *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(loader deps.Loader, inspector git.Inspector, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Loader:    loader,
		Inspector: inspector,
		Logger:    logger,
	}
}

// Generate runs the complete load → classify → inspect → render pipeline.
func (r *Runner) Generate(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if r.Loader == nil {
		return nil, errors.New(errors.ErrCodeInternal, "runner has no loader")
	}
	logger := r.logger()
	hooks := observability.Pipeline()
	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	hooks.OnLoadStart(ctx, opts.ManifestPath)
	project, err := r.Loader.Load(ctx, opts.ManifestPath)
	result.Stats.LoadTime = time.Since(loadStart)
	if err != nil {
		hooks.OnLoadComplete(ctx, "", 0, result.Stats.LoadTime, err)
		return nil, err
	}
	hooks.OnLoadComplete(ctx, project.Package.Name, len(project.Dependencies), result.Stats.LoadTime, nil)
	result.Project = project
	result.Stats.Dependencies = len(project.Dependencies)

	pkg := project.Package
	logger.Info("loaded package",
		"name", pkg.Name,
		"version", pkg.Version,
		"dependencies", len(project.Dependencies),
		"duration", result.Stats.LoadTime)

	if strings.Contains(pkg.Name, "_") {
		r.advise(ctx, result, "package", "Package name contains an underscore")
	}

	// Stage 2: Classify
	classifyStart := time.Now()
	hooks.OnClassifyStart(ctx, len(project.Dependencies))
	sources, err := srcuri.Classify(pkg.Name, project.Dependencies)
	if err != nil {
		hooks.OnClassifyComplete(ctx, 0, time.Since(classifyStart), err)
		return nil, err
	}
	hooks.OnClassifyComplete(ctx, len(sources.URIs), time.Since(classifyStart), nil)
	result.Stats.URIs = len(sources.URIs)

	// Stage 3: Inspect
	repo := r.inspect(ctx, result, pkg.Dir, opts.GitPrefix)
	srcpv, err := git.SrcPV(repo)
	if err != nil {
		return nil, err
	}

	relDir, err := project.RelDir()
	if err != nil {
		return nil, err
	}

	if pkg.LicenseFile != "" {
		if err := errors.ValidatePath(pkg.LicenseFile); err != nil {
			r.advise(ctx, result, "license", "package.license_file %q cannot be read from the package directory: %s",
				pkg.LicenseFile, errors.UserMessage(err))
		}
	}
	lic := license.Resolve(os.DirFS(pkg.Dir), relDir, pkg.License, pkg.LicenseFile)
	for _, a := range lic.Advisories {
		r.advise(ctx, result, "license", "%s", a)
	}

	fields, adv := BuildFields(Inputs{
		Package: pkg,
		RelDir:  relDir,
		Sources: sources,
		License: lic,
		Repo:    repo,
		SrcPV:   srcpv,
	})
	for _, a := range adv {
		r.advise(ctx, result, "metadata", "%s", a)
	}

	// Stage 4: Render. The fields file is exported once every template has
	// rendered and before the first recipe is written, so a failed export
	// leaves no recipe behind.
	var beforeWrite func(paths []string) error
	if opts.FieldsPath != "" && !opts.DryRun {
		beforeWrite = func(paths []string) error {
			rec := io.Record{Fields: fields, Files: paths, Advisories: result.Advisories}
			if err := io.ExportJSON(rec, opts.FieldsPath); err != nil {
				return err
			}
			logger.Debug("exported fields", "path", opts.FieldsPath)
			return nil
		}
	}

	rendered, err := renderRecipes(ctx, fields, opts, beforeWrite)
	if err != nil {
		return nil, err
	}
	result.Fields = rendered.Fields
	result.Outputs = rendered.Outputs
	result.Written = rendered.Written
	result.Stats.RenderTime = rendered.Stats.RenderTime

	logger.Info("rendered recipes",
		"templates", len(result.Outputs),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Render binds fields into the templates named by opts and writes the
// recipes. All templates are rendered before any file is written.
func Render(ctx context.Context, fields render.Fields, opts Options) (*Result, error) {
	return renderRecipes(ctx, fields, opts, nil)
}

// renderRecipes renders every template, then calls beforeWrite (if set)
// with the paths about to be written. An error from beforeWrite aborts the
// run before any recipe reaches the disk.
func renderRecipes(ctx context.Context, fields render.Fields, opts Options, beforeWrite func(paths []string) error) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()

	templates, err := LoadTemplates(opts.Templates)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(templates))
	for i, t := range templates {
		names[i] = t.Name
	}

	result := &Result{Fields: fields}
	renderStart := time.Now()
	hooks.OnRenderStart(ctx, names)

	outputs, err := render.RenderAll(fields, templates...)
	if err == nil && !opts.DryRun && beforeWrite != nil {
		paths := make([]string, len(outputs))
		for i, out := range outputs {
			paths[i] = filepath.Join(opts.OutputDir, out.FileName)
		}
		err = beforeWrite(paths)
	}
	if err == nil && !opts.DryRun {
		for _, out := range outputs {
			var path string
			path, err = render.WriteFile(opts.OutputDir, out.FileName, out.Content)
			if err != nil {
				break
			}
			result.Written = append(result.Written, path)
		}
	}

	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, result.Written, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.Outputs = outputs
	return result, nil
}

// LoadTemplates reads template files. No paths selects the built-in
// template.
func LoadTemplates(paths []string) ([]*render.Template, error) {
	if len(paths) == 0 {
		return []*render.Template{render.Default()}, nil
	}
	templates := make([]*render.Template, 0, len(paths))
	for _, p := range paths {
		t, err := render.LoadTemplate(p)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, nil
}

// inspect reads the project repository, falling back to
// [git.DefaultProjectRepo] when it cannot be determined.
func (r *Runner) inspect(ctx context.Context, result *Result, dir string, prefix git.Prefix) git.ProjectRepo {
	inspector := r.Inspector
	if inspector == nil {
		inspector = &git.GoGitInspector{Prefix: prefix}
	}

	repo, err := inspector.Inspect(ctx, dir)
	if err != nil {
		r.advise(ctx, result, "git", "Unable to determine the project repository, SRC_URI for the project will be empty: %s",
			errors.UserMessage(err))
		return git.DefaultProjectRepo()
	}
	r.logger().Debug("inspected repository", "uri", repo.URI, "rev", repo.Rev, "tag", repo.Tag)
	return repo
}

// advise records an advisory on the result and reports it to the
// registered [observability.AdvisoryHooks].
func (r *Runner) advise(ctx context.Context, result *Result, stage, format string, args ...any) {
	result.Advisories.Add(format, args...)
	msg := result.Advisories[len(result.Advisories)-1]
	r.logger().Debug("advisory", "stage", stage)
	observability.Advisory().OnAdvisory(ctx, stage, msg)
}

func (r *Runner) logger() *log.Logger {
	if r.Logger == nil {
		return log.Default()
	}
	return r.Logger
}
