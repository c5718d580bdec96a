package catalog

import (
	"github.com/spf13/afero"

	"github.com/emabo/imagecat/internal/logger"
)

// prune removes source subdirectories left empty by a move run.
// dirs lists parents before children, so walking it backwards removes
// children first and lets their parents become empty. The source root is
// never removed. Failures are logged, not fatal.
func (c *Cataloger) prune(dirs []string) {
	removed := 0

	for i := len(dirs) - 1; i >= 0; i-- {
		dir := dirs[i]

		empty, err := afero.IsEmpty(c.fs, dir)
		if err != nil {
			logger.Warn().Err(err).Str("dir", dir).Msg("cannot inspect directory")
			continue
		}
		if !empty {
			continue
		}

		if err := c.fs.Remove(dir); err != nil {
			logger.Warn().Err(err).Str("dir", dir).Msg("cannot remove empty directory")
			continue
		}
		removed++
	}

	if removed > 0 {
		logger.Info().Int("dirs", removed).Msg("cleaned up empty folders")
	}
}
