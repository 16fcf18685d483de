// Package cli implements the cargo-bitbake command-line interface.
//
// The root command generates a BitBake recipe for the Cargo package in
// the working directory (or the one named by --manifest-path). Cargo runs
// external subcommands as "cargo-bitbake bitbake ...", so a leading
// "bitbake" argument is dropped before flags are parsed.
//
// # Commands
//
//   - (root): generate recipes from Cargo.toml, Cargo.lock and the git checkout
//   - render: re-render recipes from fields saved with --dump-fields
//   - completion: shell completion scripts
//
// # Configuration
//
// Flags can also be set in a .cargo-bitbake.{toml,yaml} file in the working
// directory (or the file named by --config) and through CARGO_BITBAKE_*
// environment variables. Flags win over the environment, which wins over
// the config file.
//
// # Logging
//
// Logs go to stderr through charmbracelet/log. -v enables debug output,
// -vv adds caller information and -q silences everything but errors.
// Advisories about metadata fallbacks are logged as warnings.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tulip/cargo-bitbake/pkg/buildinfo"
	"github.com/tulip/cargo-bitbake/pkg/deps"
	"github.com/tulip/cargo-bitbake/pkg/deps/rust"
	"github.com/tulip/cargo-bitbake/pkg/git"
	"github.com/tulip/cargo-bitbake/pkg/pipeline"
)

// appName is the application name used for display and completions.
const appName = "cargo-bitbake"

// LogInfo is the starting log level; -q and -v adjust it per run.
const LogInfo = log.InfoLevel

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Inspector overrides how the project's git checkout is read.
	// Nil reads it with go-git.
	Inspector git.Inspector

	// WorkDir is where Cargo.toml discovery starts. Empty means the
	// process working directory.
	WorkDir string

	config *Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var configFile string

	root := c.bitbakeCommand()
	// main prints the error once, without the code prefix.
	root.SilenceErrors = true
	root.Version = buildinfo.Version
	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.BoolP("quiet", "q", false, "silence all output except errors")
	flags.CountP("verbose", "v", "verbose output (-v debug, -vv debug with caller)")
	flags.StringVar(&configFile, "config", "", "config file (default .cargo-bitbake.{toml,yaml} in the working directory)")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd.Flags(), configFile)
		if err != nil {
			return err
		}
		c.config = cfg

		level, caller := verbosity(cfg.Quiet, cfg.Verbose)
		c.SetLogLevel(level)
		c.Logger.SetReportCaller(caller)
		registerHooks(c.Logger)

		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		return nil
	}

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. A manifest naming a
// file must be one the Cargo loader understands.
func (c *CLI) newRunner(manifest string) (*pipeline.Runner, error) {
	loader := rust.NewLoader(c.Logger)
	loader.WorkDir = c.WorkDir

	if manifest != "" {
		if info, err := os.Stat(manifest); err == nil && !info.IsDir() {
			if _, err := deps.DetectLoader(manifest, loader); err != nil {
				return nil, err
			}
		}
	}
	return pipeline.NewRunner(loader, c.Inspector, c.Logger), nil
}

// options converts the merged configuration into pipeline options.
func (cfg *Config) options() (pipeline.Options, error) {
	prefix, err := git.ParsePrefix(cfg.GitPrefix)
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		ManifestPath: cfg.ManifestPath,
		OutputDir:    cfg.OutputDir,
		Templates:    cfg.Templates,
		GitPrefix:    prefix,
		FieldsPath:   cfg.FieldsPath,
		DryRun:       cfg.DryRun,
	}, nil
}
