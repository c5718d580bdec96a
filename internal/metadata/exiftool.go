package metadata

import (
	"fmt"

	"github.com/barasher/go-exiftool"
)

// exiftoolDateFields are tried in order. CreateDate covers both EXIF images
// and QuickTime/MP4 containers; the others catch files written by tools that
// only fill one of them.
var exiftoolDateFields = []string{
	"CreateDate",
	"MediaCreateDate",
	"DateTimeOriginal",
}

// ExifTool extracts dates by asking an exiftool process.
// It needs the exiftool binary on PATH and reads the real filesystem.
type ExifTool struct {
	et *exiftool.Exiftool
}

// NewExifTool starts the exiftool process used for the whole run.
func NewExifTool() (*ExifTool, error) {
	et, err := exiftool.NewExiftool()
	if err != nil {
		return nil, fmt.Errorf("starting exiftool: %w", err)
	}
	return &ExifTool{et: et}, nil
}

// CreationDate returns the first non-empty date field exiftool reports for path.
func (e *ExifTool) CreationDate(path string) (string, bool) {
	infos := e.et.ExtractMetadata(path)
	if len(infos) == 0 || infos[0].Err != nil {
		return "", false
	}

	for _, field := range exiftoolDateFields {
		val, err := infos[0].GetString(field)
		if err != nil {
			continue
		}
		if val = cleanValue(val); val != "" {
			return val, true
		}
	}
	return "", false
}

// Close stops the exiftool process.
func (e *ExifTool) Close() error {
	return e.et.Close()
}
