// Package metadata reads the embedded creation date of media files.
//
// Two backends are provided: Exif decodes EXIF blocks in-process with
// goexif, ExifTool delegates to a long-running exiftool process and also
// understands video containers. Both only report the raw date string; parsing
// is left to the caller.
package metadata

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
)

// Backend names accepted by New.
const (
	BackendExif     = "exif"
	BackendExifTool = "exiftool"
)

// DateExtractor returns the creation-date string stored in a file's metadata.
// ok is false when the file has no readable metadata or no date field.
type DateExtractor interface {
	CreationDate(path string) (value string, ok bool)
}

// New builds the extractor named by backend.
// The caller must Close the result when it implements io.Closer.
func New(backend string, fs afero.Fs) (DateExtractor, error) {
	switch strings.ToLower(backend) {
	case "", BackendExif:
		return NewExif(fs), nil
	case BackendExifTool:
		et, err := NewExifTool()
		if err != nil {
			return nil, err
		}
		return et, nil
	default:
		return nil, fmt.Errorf("unknown metadata backend %q", backend)
	}
}

// cleanValue strips the NUL padding and whitespace some writers leave
// around ASCII tag values.
func cleanValue(s string) string {
	return strings.TrimSpace(strings.Trim(s, "\x00"))
}
