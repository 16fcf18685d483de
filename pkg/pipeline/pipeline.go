// Package pipeline generates BitBake recipes for Cargo packages.
//
// This package wires the stages together so the CLI stays a thin shell
// around flag parsing and output.
//
// # Architecture
//
// A run consists of four stages:
//
//  1. Load: read Cargo.toml and Cargo.lock into a [deps.Project]
//  2. Classify: turn every resolved dependency into SRC_URI entries
//  3. Inspect: read the project's git checkout and license files
//  4. Render: bind the recipe fields into each template, then write
//
// Every template is rendered before the first file is written, so a
// failing template never leaves a partial set of recipes behind.
//
// # Usage
//
//	runner := pipeline.NewRunner(rust.NewLoader(logger), &git.GoGitInspector{}, logger)
//	result, err := runner.Generate(ctx, pipeline.Options{
//	    ManifestPath: "Cargo.toml",
//	    OutputDir:    ".",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, path := range result.Written {
//	    fmt.Println("Wrote:", path)
//	}
//
// [deps.Project]: github.com/tulip/cargo-bitbake/pkg/deps.Project
package pipeline

import (
	"time"

	"github.com/tulip/cargo-bitbake/pkg/deps"
	"github.com/tulip/cargo-bitbake/pkg/errors"
	"github.com/tulip/cargo-bitbake/pkg/git"
	"github.com/tulip/cargo-bitbake/pkg/render"
)

// DefaultOutputDir is where recipes are written when no directory is given.
const DefaultOutputDir = "."

// Options configures a single recipe generation run.
type Options struct {
	// ManifestPath points at Cargo.toml, Cargo.lock or the package
	// directory. Empty searches upwards from the working directory.
	ManifestPath string

	// OutputDir receives the rendered recipes.
	OutputDir string

	// Templates are template file paths. Empty uses the built-in template.
	Templates []string

	// GitPrefix selects the fetcher for the project's own SRC_URI.
	GitPrefix git.Prefix

	// FieldsPath, when set, also writes the bound recipe fields as JSON.
	FieldsPath string

	// DryRun renders everything but writes nothing.
	DryRun bool
}

// Result describes a completed run.
type Result struct {
	// Project is the loaded package and its dependency graph.
	Project *deps.Project

	// Fields are the values bound into the templates.
	Fields render.Fields

	// Outputs are the rendered recipes, in template order.
	Outputs []render.Output

	// Written lists the files created, in template order.
	Written []string

	// Advisories are the non-fatal fallbacks taken along the way.
	Advisories deps.Advisories

	// Stats contains timing information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Dependencies int
	URIs         int
	LoadTime     time.Duration
	RenderTime   time.Duration
}

// ValidateAndSetDefaults checks the options and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.OutputDir == "" {
		o.OutputDir = DefaultOutputDir
	}
	for _, t := range o.Templates {
		if t == "" {
			return errors.New(errors.ErrCodeInvalidInput, "template path must not be empty")
		}
	}
	if o.GitPrefix != git.PrefixGit && o.GitPrefix != git.PrefixGitSubmodule {
		return errors.New(errors.ErrCodeInvalidInput, "unknown git prefix %d", int(o.GitPrefix))
	}
	return nil
}
