package cli

import (
	"github.com/spf13/cobra"

	"github.com/tulip/cargo-bitbake/pkg/io"
	"github.com/tulip/cargo-bitbake/pkg/pipeline"
)

// renderCommand creates the render command, which binds fields saved by
// --dump-fields into templates without touching the Cargo project.
func (c *CLI) renderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [fields.json]",
		Short: "Render recipes from previously exported fields",
		Long: `Render recipes from a fields file written by --dump-fields.

This re-runs only the template step, which is useful when iterating on a
custom template: the Cargo project, its lockfile and its git checkout are
not read again.`,
		Example: `  cargo bitbake --dump-fields fields.json
  cargo bitbake render fields.json -t my.bb.template -o out`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringArrayP("template", "t", nil, "template file (repeatable; default built-in bitbake template)")
	flags.StringP("output-dir", "o", pipeline.DefaultOutputDir, "directory to write recipes into")
	flags.Bool("dry-run", false, "render recipes to stdout without writing files")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, fieldsPath string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	rec, err := io.ImportJSON(fieldsPath)
	if err != nil {
		return err
	}
	logger.Debug("imported fields", "path", fieldsPath, "fields", len(rec.Fields))

	opts := pipeline.Options{
		OutputDir: c.config.OutputDir,
		Templates: c.config.Templates,
		DryRun:    c.config.DryRun,
	}
	result, err := pipeline.Render(ctx, rec.Fields, opts)
	if err != nil {
		return err
	}

	if c.config.Quiet {
		return nil
	}
	printOutputs(result.Outputs, result.Written, opts.DryRun)
	return nil
}
