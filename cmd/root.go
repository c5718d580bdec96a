// Package cmd implements the imagecat command line.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/emabo/imagecat/internal/config"
	"github.com/emabo/imagecat/internal/logger"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1 // the run failed on a filesystem or metadata error
	ExitUsage   = 2 // invalid invocation, nothing was touched
)

// UsageError marks an invalid invocation.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

// NewRootCommand builds the imagecat command writing to stdout and stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	var (
		configFile string
		showMan    bool
	)

	root := &cobra.Command{
		Use:   "imagecat --from <dir> --to <dir> [flags]",
		Short: "Catalog photos and videos into a date-organized tree",
		Long: `imagecat files photos and videos from a source directory into a catalog
organized by capture date:

  <to>/YYYY/YYYY_MM_DD/name.ext

The date comes from embedded metadata when present, otherwise from the file
name (IMG-YYYYMMDD, PANO_YYYYMMDD_HHMMSS, IMG_YYYYMMDD_HHMMSS,
YYYYMMDD_HHMMSS, VID-YYYYMMDD, YYYYMMDD). Files already in the catalog with
identical content are not stored twice; distinct files with the same name get
a numeric suffix (name_1.ext, name_2.ext, ...).

Run with --man for the full manual.`,
		Args: func(c *cobra.Command, args []string) error {
			if err := cobra.NoArgs(c, args); err != nil {
				return &UsageError{Err: err}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(c *cobra.Command, args []string) error {
			if showMan {
				_, err := fmt.Fprint(stdout, manual)
				return err
			}

			v, err := config.New(configFile)
			if err != nil {
				return &UsageError{Err: err}
			}
			if err := v.BindPFlags(c.Flags()); err != nil {
				return err
			}

			opts, err := config.Load(v)
			if err != nil {
				return &UsageError{Err: err}
			}
			if err := opts.Validate(); err != nil {
				return &UsageError{Err: err}
			}

			return run(opts, stdout, stderr)
		},
	}

	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	flags := root.Flags()
	registerRunFlags(flags)
	flags.StringVar(&configFile, "config", "", "config file (default $HOME/.imagecat/imagecat.yaml)")
	flags.BoolVar(&showMan, "man", false, "print the full manual")

	return root
}

// registerRunFlags declares the flags that map onto config.Options.
// Their names are also the config file keys.
func registerRunFlags(flags *pflag.FlagSet) {
	flags.String("from", "", "source directory to catalog (required)")
	flags.String("to", "", "catalog root directory (required)")
	flags.Bool("copy", false, "copy files instead of moving them")
	flags.BoolP("dry-run", "n", false, "show what would happen without touching any file")
	flags.BoolP("recursive", "r", false, "descend into all subdirectories of --from")
	flags.Int("max-depth", 0, "descend at most n directory levels below --from (implies --recursive)")
	flags.BoolP("verbose", "v", false, "log every file instead of drawing a progress bar")
	flags.String("hash", "md5", "content hash used to detect duplicates: md5 or xxhash")
	flags.String("metadata", "exif", "metadata reader: exif (built in) or exiftool (needs the exiftool binary)")
	flags.Bool("media-only", false, "only catalog files recognized as images or videos")
	flags.Bool("manifest", false, "record placed files in <to>/_Manifest/catalog_manifest.csv")
	flags.Bool("prune-empty", false, "remove source subdirectories left empty by a move")
	flags.String("log-level", "", "log level: debug, info, warn or error (default info with --verbose, warn otherwise)")
}

// Run executes imagecat with args and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand(stdout, stderr)
	root.SetArgs(args)

	err := root.Execute()
	if err == nil {
		return ExitOK
	}

	var usage *UsageError
	if errors.As(err, &usage) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", root.Name())
		return ExitUsage
	}

	logger.Error().Err(err).Msg("catalog run failed")
	return ExitFailure
}

// Execute runs imagecat with the process arguments.
// This is called by main.main().
func Execute() int {
	return Run(os.Args[1:], os.Stdout, os.Stderr)
}
