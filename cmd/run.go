package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/emabo/imagecat/internal/catalog"
	"github.com/emabo/imagecat/internal/config"
	"github.com/emabo/imagecat/internal/dates"
	"github.com/emabo/imagecat/internal/hashing"
	"github.com/emabo/imagecat/internal/logger"
	"github.com/emabo/imagecat/internal/metadata"
	"github.com/emabo/imagecat/internal/report"
)

// run wires the collaborators for one catalog run and prints the summary.
func run(opts config.Options, stdout, stderr io.Writer) error {
	logger.Init(opts.Level(), stderr)

	from, err := filepath.Abs(opts.From)
	if err != nil {
		return fmt.Errorf("resolving --from: %w", err)
	}
	to, err := filepath.Abs(opts.To)
	if err != nil {
		return fmt.Errorf("resolving --to: %w", err)
	}

	fs := afero.NewOsFs()

	extractor, err := metadata.New(opts.Metadata, fs)
	if err != nil {
		return err
	}
	if closer, ok := extractor.(io.Closer); ok {
		defer closer.Close()
	}

	hasher, err := hashing.New(opts.Hash, fs)
	if err != nil {
		return err
	}

	var observer catalog.Observer
	if !opts.Verbose {
		observer = report.NewProgress(stderr)
	}

	c := catalog.New(fs, catalog.Options{
		Source:      from,
		Destination: to,
		Copy:        opts.Copy,
		DryRun:      opts.DryRun,
		MaxDepth:    opts.Depth(),
		MediaOnly:   opts.MediaOnly,
		Manifest:    opts.Manifest,
		PruneEmpty:  opts.PruneEmpty,
	}, dates.NewResolver(extractor), hasher, observer)

	start := time.Now()
	stats, err := c.Run()
	if err != nil {
		return err
	}
	logger.Info().
		Dur("duration", time.Since(start).Round(time.Millisecond)).
		Int("examined", stats.Examined).
		Msg("catalog finished")

	return report.WriteSummary(stdout, stats, opts.DryRun)
}
