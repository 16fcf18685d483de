package cli

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	bberrors "github.com/tulip/cargo-bitbake/pkg/errors"
	"github.com/tulip/cargo-bitbake/pkg/pipeline"
)

const (
	// configName is the base name of the optional per-project config file,
	// looked up in the working directory with any extension viper supports.
	configName = ".cargo-bitbake"

	// envPrefix prefixes environment overrides, e.g. CARGO_BITBAKE_OUTPUT_DIR.
	envPrefix = "CARGO_BITBAKE"
)

// Config holds the settings of a generator run. Keys match the long flag
// names, so a config file says "output-dir" and the environment says
// CARGO_BITBAKE_OUTPUT_DIR.
type Config struct {
	ManifestPath string   `mapstructure:"manifest-path"`
	OutputDir    string   `mapstructure:"output-dir"`
	Templates    []string `mapstructure:"template"`
	GitPrefix    string   `mapstructure:"git-prefix"`
	FieldsPath   string   `mapstructure:"dump-fields"`
	DryRun       bool     `mapstructure:"dry-run"`
	Quiet        bool     `mapstructure:"quiet"`
	Verbose      int      `mapstructure:"verbose"`
}

// loadConfig merges defaults, the config file, environment variables and
// flags, in increasing order of precedence. configFile overrides the
// config file lookup; a missing default config file is not an error.
func loadConfig(flags *pflag.FlagSet, configFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("output-dir", pipeline.DefaultOutputDir)
	v.SetDefault("git-prefix", "git")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, bberrors.Wrap(bberrors.ErrCodeInternal, err, "bind flags")
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && configFile == "":
			// optional
		case errors.Is(err, fs.ErrNotExist):
			return nil, bberrors.Wrap(bberrors.ErrCodeFileNotFound, err, "config file %s not found", configFile)
		default:
			return nil, bberrors.Wrap(bberrors.ErrCodeInvalidInput, err, "unable to read config")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, bberrors.Wrap(bberrors.ErrCodeInvalidInput, err, "invalid config")
	}
	return &cfg, nil
}
