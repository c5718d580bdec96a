package metadata_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/emabo/imagecat/internal/dates"
	"github.com/emabo/imagecat/internal/metadata"
)

func TestExifThroughResolver(t *testing.T) {
	r := dates.NewResolver(metadata.NewExif(afero.NewOsFs()))

	// The name carries no date, so only the EXIF block can supply one.
	got, ok := r.Resolve(filepath.Join("testdata", "digitized.jpg"), "digitized")
	if !ok {
		t.Fatal("Resolve() found no date")
	}
	if got.Source != dates.SourceMetadata {
		t.Errorf("Source = %q, want %q", got.Source, dates.SourceMetadata)
	}
	want := time.Date(2021, time.May, 10, 14, 0, 0, 0, time.UTC)
	if !got.Time().Equal(want) {
		t.Errorf("Resolve() = %v, want %v", got.Time(), want)
	}
}
