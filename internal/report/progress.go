// Package report renders run progress and the final catalog summary.
package report

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// Progress draws a progress bar over the files of a run.
// It satisfies catalog.Observer.
type Progress struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

// NewProgress returns a Progress that draws on w, usually os.Stderr.
func NewProgress(w io.Writer) *Progress {
	return &Progress{w: w}
}

// Start creates the bar once the number of eligible files is known.
func (p *Progress) Start(total int) {
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.w),
		progressbar.OptionSetDescription("Cataloging"),
		progressbar.OptionSetWidth(20),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionClearOnFinish(),
	)
}

// FileDone advances the bar by one file.
func (p *Progress) FileDone(string) {
	if p.bar != nil {
		_ = p.bar.Add(1)
	}
}

// Finish completes and clears the bar.
func (p *Progress) Finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}
