package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/emabo/imagecat/internal/catalog"
)

func TestWriteSummary(t *testing.T) {
	color.NoColor = true

	stats := catalog.Stats{Examined: 6, Skipped: 1, AlreadyPresent: 2, Copied: 0, Moved: 3, Renamed: 1}

	var buf bytes.Buffer
	if err := WriteSummary(&buf, stats, false); err != nil {
		t.Fatalf("WriteSummary() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Catalog summary",
		"Examined:         6",
		"Skipped:          1",
		"Already present:  2",
		"Copied:           0",
		"Moved:            3",
		"Renamed:          1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "[DRY RUN]") {
		t.Error("real run summary must not carry the dry-run marker")
	}
}

func TestWriteSummary_DryRun(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	if err := WriteSummary(&buf, catalog.Stats{}, true); err != nil {
		t.Fatalf("WriteSummary() error = %v", err)
	}
	if !strings.Contains(buf.String(), "[DRY RUN] Catalog summary") {
		t.Errorf("dry-run marker missing:\n%s", buf.String())
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf)

	// Callbacks before Start must not panic.
	p.FileDone("early")

	p.Start(3)
	for _, f := range []string{"a", "b", "c"} {
		p.FileDone(f)
	}
	p.Finish()

	if buf.Len() == 0 {
		t.Error("progress bar wrote nothing")
	}
}

var _ catalog.Observer = (*Progress)(nil)
