package catalog

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/h2non/filetype"
	"github.com/spf13/afero"

	"github.com/emabo/imagecat/internal/logger"
)

// headerSize is the number of bytes filetype needs to recognise a format.
const headerSize = 261

// listing is the result of enumerating the source tree.
type listing struct {
	files []string // eligible regular files, in processing order
	dirs  []string // subdirectories visited, parents before children
}

// collect enumerates eligible files below the source root.
// Entries are listed per directory in name order and subdirectories are
// descended depth-first, up to maxDepth levels (-1 means unlimited).
// An unreadable root is fatal; unreadable subdirectories are logged and
// skipped.
func (c *Cataloger) collect() (listing, error) {
	var out listing
	if err := c.collectDir(c.opts.Source, 0, &out); err != nil {
		return listing{}, fmt.Errorf("reading source %s: %w", c.opts.Source, err)
	}
	return out, nil
}

func (c *Cataloger) collectDir(dir string, level int, out *listing) error {
	entries, err := afero.ReadDir(c.fs, dir)
	if err != nil {
		return err
	}

	for _, info := range entries {
		path := filepath.Join(dir, info.Name())

		if info.IsDir() {
			if !c.descend(level + 1) {
				continue
			}
			// Never re-catalog the catalog when it lives inside the source.
			if filepath.Clean(path) == c.destination {
				logger.Debug().Str("dir", path).Msg("skipping destination inside source")
				continue
			}
			out.dirs = append(out.dirs, path)
			if err := c.collectDir(path, level+1, out); err != nil {
				logger.Warn().Err(err).Str("dir", path).Msg("cannot read directory, skipping")
			}
			continue
		}

		// Symlinks, devices, sockets and pipes are not cataloged.
		if !info.Mode().IsRegular() {
			logger.Debug().Str("file", path).Str("mode", info.Mode().String()).Msg("skipping non-regular file")
			continue
		}

		if c.opts.MediaOnly {
			media, err := c.isMedia(path)
			if err != nil {
				logger.Warn().Err(err).Str("file", path).Msg("cannot read file header, skipping")
				continue
			}
			if !media {
				logger.Debug().Str("file", path).Msg("not an image or video, skipping")
				continue
			}
		}

		out.files = append(out.files, path)
	}
	return nil
}

// descend reports whether a directory at the given level below the root is
// traversed.
func (c *Cataloger) descend(level int) bool {
	return c.opts.MaxDepth < 0 || level <= c.opts.MaxDepth
}

// isMedia sniffs the file header and reports whether it is an image or video.
func (c *Cataloger) isMedia(path string) (bool, error) {
	f, err := c.fs.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	head := make([]byte, headerSize)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return false, err
	}
	head = head[:n]

	return filetype.IsImage(head) || filetype.IsVideo(head), nil
}
