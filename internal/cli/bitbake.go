package cli

import (
	"github.com/spf13/cobra"

	"github.com/tulip/cargo-bitbake/pkg/pipeline"
	"github.com/tulip/cargo-bitbake/pkg/render"
)

// bitbakeCommand creates the recipe generation command. It is the root
// command, so "cargo bitbake" with no subcommand generates recipes.
func (c *CLI) bitbakeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   appName,
		Short: "Generates a BitBake recipe for a given Cargo project",
		Long: `Generates a BitBake recipe for the Cargo package in the current directory.

Every crate in Cargo.lock becomes a SRC_URI entry: registry crates as
crate:// URIs, git dependencies as pinned git:// URIs. License files are
located and checksummed, and the project's own git checkout supplies the
recipe's source URI and revision.

Run it as a cargo subcommand ("cargo bitbake") or directly.`,
		Example: `  # Write <name>_<version>.bb next to Cargo.toml
  cargo bitbake

  # Use custom templates; each gets its own extension
  cargo bitbake -t recipe.bb.template -t recipe.inc.template -o meta-app/recipes-app/app

  # Preview without writing anything
  cargo bitbake --dry-run`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd)
		},
	}

	flags := cmd.Flags()
	flags.StringArrayP("template", "t", nil, "template file (repeatable; default built-in bitbake template)")
	flags.String("manifest-path", "", "path to Cargo.toml (default: nearest Cargo.toml at or above the working directory)")
	flags.StringP("output-dir", "o", pipeline.DefaultOutputDir, "directory to write recipes into")
	flags.String("git-prefix", "git", "BitBake fetcher for the project's own SRC_URI: git or gitsm")
	flags.String("dump-fields", "", "also write the bound recipe fields as JSON to this path")
	flags.Bool("dry-run", false, "render recipes to stdout without writing files")

	return cmd
}

func (c *CLI) runGenerate(cmd *cobra.Command) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	opts, err := c.config.options()
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.ManifestPath)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	result, err := runner.Generate(ctx, opts)
	if err != nil {
		return err
	}
	pkg := result.Project.Package
	prog.done("Generated recipe for " + pkg.Name + " " + pkg.Version)

	if c.config.Quiet {
		return nil
	}
	printOutputs(result.Outputs, result.Written, opts.DryRun)
	if opts.FieldsPath != "" && !opts.DryRun {
		printDetail("fields: %s", opts.FieldsPath)
	}
	if n := len(result.Advisories); n > 0 {
		printWarning("%d advisories, review the recipe before use", n)
	}
	return nil
}

// printOutputs reports written recipes, or prints their content on a
// dry run.
func printOutputs(outputs []render.Output, written []string, dryRun bool) {
	if dryRun {
		for _, out := range outputs {
			printInfo("%s (dry run, not written)", out.FileName)
			printContent(out.Content)
		}
		return
	}
	for _, path := range written {
		printSuccess("Wrote: %s", path)
	}
}
