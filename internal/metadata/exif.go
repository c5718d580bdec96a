package metadata

import (
	"io"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/spf13/afero"
)

const (
	// sniffSize is the number of bytes filetype needs to recognise a format.
	sniffSize = 261

	// jpegScanLimit bounds the search for the APP1 segment. EXIF must sit in
	// the first segments and each segment is at most 64 KiB.
	jpegScanLimit = 256 << 10
)

// exifDateFields are tried in order. DateTimeDigitized is what exiftool
// reports as CreateDate for still images.
var exifDateFields = []exif.FieldName{
	exif.DateTimeDigitized,
	exif.DateTimeOriginal,
	exif.DateTime,
}

// Exif extracts dates from EXIF blocks using goexif.
type Exif struct {
	fs afero.Fs
}

// NewExif returns an Exif extractor reading files through fs.
func NewExif(fs afero.Fs) *Exif {
	return &Exif{fs: fs}
}

// CreationDate returns the first non-empty EXIF date field of path.
// Only files whose header is an image are decoded; videos and other files
// report ok=false after reading the header.
func (e *Exif) CreationDate(path string) (string, bool) {
	f, err := e.fs.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	head := make([]byte, sniffSize)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", false
	}
	head = head[:n]
	if !filetype.IsImage(head) {
		return "", false
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", false
	}

	var r io.Reader = f
	if filetype.IsType(head, matchers.TypeJpeg) {
		r = io.LimitReader(f, jpegScanLimit)
	}

	x, err := exif.Decode(r)
	if x == nil || (err != nil && exif.IsCriticalError(err)) {
		return "", false
	}

	for _, field := range exifDateFields {
		tag, err := x.Get(field)
		if err != nil {
			continue
		}
		val, err := tag.StringVal()
		if err != nil {
			continue
		}
		if val = cleanValue(val); val != "" {
			return val, true
		}
	}
	return "", false
}
