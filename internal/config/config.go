// Package config assembles run options from flags, environment and an
// optional config file.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/emabo/imagecat/internal/hashing"
	"github.com/emabo/imagecat/internal/metadata"
)

// EnvPrefix prefixes environment overrides, e.g. IMAGECAT_DRY_RUN=true.
const EnvPrefix = "IMAGECAT"

// Options is the full set of run options.
// Keys match the command-line flag names.
type Options struct {
	From       string `mapstructure:"from"`
	To         string `mapstructure:"to"`
	Copy       bool   `mapstructure:"copy"`
	DryRun     bool   `mapstructure:"dry-run"`
	Recursive  bool   `mapstructure:"recursive"`
	MaxDepth   int    `mapstructure:"max-depth"`
	Verbose    bool   `mapstructure:"verbose"`
	Hash       string `mapstructure:"hash"`
	Metadata   string `mapstructure:"metadata"`
	MediaOnly  bool   `mapstructure:"media-only"`
	Manifest   bool   `mapstructure:"manifest"`
	PruneEmpty bool   `mapstructure:"prune-empty"`
	LogLevel   string `mapstructure:"log-level"`

	// MaxDepthSet records whether max-depth was given at all, by flag,
	// environment or config file.
	MaxDepthSet bool `mapstructure:"-"`
}

var (
	ErrMissingFrom = errors.New("--from is required")
	ErrMissingTo   = errors.New("--to is required")
)

// New returns a viper instance with defaults, environment overrides and the
// config file loaded. When configFile is empty imagecat.yaml (or any format
// viper knows) is looked up in $HOME/.imagecat and the working directory;
// not finding one is fine. An explicit configFile must exist.
func New(configFile string) (*viper.Viper, error) {
	v := viper.New()

	v.SetDefault("from", "")
	v.SetDefault("to", "")
	v.SetDefault("copy", false)
	v.SetDefault("dry-run", false)
	v.SetDefault("recursive", false)
	v.SetDefault("verbose", false)
	v.SetDefault("hash", hashing.AlgorithmMD5)
	v.SetDefault("metadata", metadata.BackendExif)
	v.SetDefault("media-only", false)
	v.SetDefault("manifest", false)
	v.SetDefault("prune-empty", false)
	v.SetDefault("log-level", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	// max-depth has no default so that IsSet reports whether it was given.
	// Binding it keeps the environment override visible to Unmarshal.
	_ = v.BindEnv("max-depth")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("imagecat")
		v.AddConfigPath("$HOME/.imagecat")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	return v, nil
}

// Load decodes the options held by v.
func Load(v *viper.Viper) (Options, error) {
	var opts Options
	if err := v.Unmarshal(&opts); err != nil {
		return Options{}, fmt.Errorf("decoding config: %w", err)
	}
	opts.MaxDepthSet = v.IsSet("max-depth")
	opts.Hash = strings.ToLower(strings.TrimSpace(opts.Hash))
	opts.Metadata = strings.ToLower(strings.TrimSpace(opts.Metadata))
	return opts, nil
}

// Validate reports the first invalid option.
func (o Options) Validate() error {
	if strings.TrimSpace(o.From) == "" {
		return ErrMissingFrom
	}
	if strings.TrimSpace(o.To) == "" {
		return ErrMissingTo
	}
	if o.MaxDepthSet && o.MaxDepth < 0 {
		return fmt.Errorf("--max-depth must not be negative, got %d", o.MaxDepth)
	}

	switch o.Hash {
	case "", hashing.AlgorithmMD5, hashing.AlgorithmXXHash:
	default:
		return fmt.Errorf("--hash must be %s or %s, got %q", hashing.AlgorithmMD5, hashing.AlgorithmXXHash, o.Hash)
	}

	switch o.Metadata {
	case "", metadata.BackendExif, metadata.BackendExifTool:
	default:
		return fmt.Errorf("--metadata must be %s or %s, got %q", metadata.BackendExif, metadata.BackendExifTool, o.Metadata)
	}

	return nil
}

// Depth returns the traversal depth below the source root, -1 meaning
// unlimited. An explicit --max-depth wins over --recursive; without either
// only the root's immediate children are considered.
func (o Options) Depth() int {
	switch {
	case o.MaxDepthSet:
		return o.MaxDepth
	case o.Recursive:
		return -1
	default:
		return 0
	}
}

// Level returns the log level to use. Verbose runs log every file at info;
// quiet runs only warnings so the progress bar stays readable.
func (o Options) Level() string {
	if o.LogLevel != "" {
		return o.LogLevel
	}
	if o.Verbose {
		return "info"
	}
	return "warn"
}
