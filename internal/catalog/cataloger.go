// Package catalog drives a catalog run: it enumerates the source tree,
// resolves each file's date and destination, and copies, moves or deletes
// files accordingly.
//
// Processing is sequential. Each file goes through
//
//	Discovered -> DateResolved | Skipped -> Placed | AlreadyPresent
//
// Any filesystem failure while creating directories or copying, moving or
// deleting files stops the run.
package catalog

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/emabo/imagecat/internal/collision"
	"github.com/emabo/imagecat/internal/dates"
	"github.com/emabo/imagecat/internal/hashing"
	"github.com/emabo/imagecat/internal/layout"
	"github.com/emabo/imagecat/internal/logger"
	"github.com/emabo/imagecat/internal/manifest"
)

// =============================================================================
// Configuration
// =============================================================================

// Options controls a run.
type Options struct {
	Source      string // root of the files to catalog
	Destination string // catalog root
	Copy        bool   // copy instead of move
	DryRun      bool   // simulate every mutation
	MaxDepth    int    // directory levels below Source to descend; -1 unlimited
	MediaOnly   bool   // only consider files sniffed as images or videos
	Manifest    bool   // record placed files in the CSV manifest
	PruneEmpty  bool   // remove emptied source directories after a move run
}

// Observer is notified as files are processed.
type Observer interface {
	Start(total int)
	FileDone(path string)
	Finish()
}

type nopObserver struct{}

func (nopObserver) Start(int)       {}
func (nopObserver) FileDone(string) {}
func (nopObserver) Finish()         {}

// =============================================================================
// Cataloger
// =============================================================================

// Cataloger owns the state of one run.
type Cataloger struct {
	fs       afero.Fs
	opts     Options
	dates    *dates.Resolver
	hasher   hashing.ContentHasher
	resolver *collision.Resolver
	overlay  *collision.Overlay // non-nil under dry-run
	observer Observer
	now      func() time.Time

	destination string          // cleaned Destination
	dirs        map[string]bool // catalog directories known to exist (or considered created)
	placed      []manifest.Entry
	stats       Stats
}

// New prepares a Cataloger. A nil observer disables progress callbacks.
func New(fs afero.Fs, opts Options, resolver *dates.Resolver, hasher hashing.ContentHasher, observer Observer) *Cataloger {
	if observer == nil {
		observer = nopObserver{}
	}

	c := &Cataloger{
		fs:          fs,
		opts:        opts,
		dates:       resolver,
		hasher:      hasher,
		observer:    observer,
		now:         time.Now,
		destination: filepath.Clean(opts.Destination),
		dirs:        make(map[string]bool),
	}

	var occupancy collision.Occupancy = collision.NewFsOccupancy(fs)
	if opts.DryRun {
		c.overlay = collision.NewOverlay(occupancy)
		occupancy = c.overlay
	}
	c.resolver = collision.NewResolver(occupancy, hasher)

	return c
}

// Stats returns the counters accumulated so far.
func (c *Cataloger) Stats() Stats {
	return c.stats
}

// Run catalogs every eligible file. On error the returned Stats reflect the
// files fully handled before the failure.
func (c *Cataloger) Run() (Stats, error) {
	found, err := c.collect()
	if err != nil {
		return c.stats, err
	}

	logger.Info().
		Str("from", c.opts.Source).
		Str("to", c.opts.Destination).
		Int("files", len(found.files)).
		Bool("copy", c.opts.Copy).
		Bool("dry_run", c.opts.DryRun).
		Msg("found files to catalog")

	c.observer.Start(len(found.files))
	for _, path := range found.files {
		if err := c.process(path); err != nil {
			return c.stats, err
		}
		c.observer.FileDone(path)
	}
	c.observer.Finish()

	if c.opts.DryRun {
		return c.stats, nil
	}

	if c.opts.Manifest && len(c.placed) > 0 {
		added, err := manifest.Update(c.fs, c.opts.Destination, c.placed, c.now())
		if err != nil {
			return c.stats, err
		}
		logger.Info().Int("entries", added).Str("manifest", manifest.Path(c.opts.Destination)).Msg("manifest updated")
	}

	if c.opts.PruneEmpty && !c.opts.Copy {
		c.prune(found.dirs)
	}

	return c.stats, nil
}

// =============================================================================
// Per-file processing
// =============================================================================

// process takes one file through date resolution, planning, collision
// resolution and the resulting filesystem action.
func (c *Cataloger) process(path string) error {
	c.stats.Examined++

	name := filepath.Base(path)
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)

	date, ok := c.dates.Resolve(path, base)
	if !ok {
		c.stats.Skipped++
		logger.Warn().Str("file", path).Msg("no capture date found, skipping")
		return nil
	}

	dir := layout.Plan(c.opts.Destination, date)
	if err := c.ensureDir(dir); err != nil {
		return err
	}

	action, err := c.resolver.Resolve(path, dir, base, ext)
	if err != nil {
		return fmt.Errorf("resolving destination for %s: %w", path, err)
	}

	switch action.Kind {
	case collision.AlreadyPresent:
		return c.alreadyPresent(path, action)
	default:
		return c.place(path, date, action)
	}
}

// ensureDir makes sure a catalog directory exists. Under dry-run creation is
// only logged and the directory is remembered as created.
func (c *Cataloger) ensureDir(dir string) error {
	if c.dirs[dir] {
		return nil
	}

	if c.opts.DryRun {
		exists, err := afero.DirExists(c.fs, dir)
		if err != nil {
			return fmt.Errorf("checking %s: %w", dir, err)
		}
		if !exists {
			logger.Info().Str("dir", dir).Msg("would create directory")
			c.overlay.MarkDir(dir)
		}
		c.dirs[dir] = true
		return nil
	}

	if err := c.fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	c.dirs[dir] = true
	return nil
}

// alreadyPresent handles a file whose content is already in the catalog.
// In move mode the redundant source is deleted, unless it is the catalog
// entry itself.
func (c *Cataloger) alreadyPresent(path string, action collision.Action) error {
	event := logger.Info().Str("file", path).Str("dest", action.Path)

	switch {
	case action.Self:
		event.Msg("file is its own catalog entry")
	case c.opts.Copy:
		event.Msg("already present")
	case c.opts.DryRun:
		event.Msg("already present, would delete source")
	default:
		if err := c.fs.Remove(path); err != nil {
			return fmt.Errorf("deleting duplicate %s: %w", path, err)
		}
		event.Msg("already present, source deleted")
	}

	c.stats.AlreadyPresent++
	return nil
}

// place copies or moves a file to its resolved catalog path.
func (c *Cataloger) place(path string, date dates.Date, action collision.Action) error {
	verb := "moved"
	if c.opts.Copy {
		verb = "copied"
	}

	if c.opts.DryRun {
		c.overlay.Claim(action.Path, path)
	} else {
		var err error
		if c.opts.Copy {
			err = copyFile(c.fs, path, action.Path)
		} else {
			err = moveFile(c.fs, path, action.Path)
		}
		if err != nil {
			return fmt.Errorf("placing %s: %w", path, err)
		}

		if c.opts.Manifest {
			if err := c.record(path, date, action.Path, verb); err != nil {
				return err
			}
		}
	}

	if c.opts.Copy {
		c.stats.Copied++
	} else {
		c.stats.Moved++
	}
	if action.Renamed() {
		c.stats.Renamed++
	}

	msg := verb
	if c.opts.DryRun {
		msg = "would be " + verb
	}
	logger.Info().
		Str("file", path).
		Str("dest", action.Path).
		Str("date", date.String()).
		Str("source", date.Source).
		Int("counter", action.Counter).
		Msg(msg)
	return nil
}

// record remembers a placed file for the manifest.
func (c *Cataloger) record(source string, date dates.Date, dest, verb string) error {
	info, err := c.fs.Stat(dest)
	if err != nil {
		return fmt.Errorf("stat %s: %w", dest, err)
	}
	sum, err := c.hasher.Sum(dest)
	if err != nil {
		return fmt.Errorf("hashing %s: %w", dest, err)
	}

	c.placed = append(c.placed, manifest.Entry{
		SourcePath:  source,
		DestPath:    dest,
		Size:        info.Size(),
		CaptureDate: date.String(),
		DateSource:  date.Source,
		Hash:        sum,
		Action:      verb,
	})
	return nil
}
