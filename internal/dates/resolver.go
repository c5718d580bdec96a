// Package dates resolves the capture date of a media file.
package dates

import (
	"fmt"
	"regexp"
	"time"

	"github.com/emabo/imagecat/internal/metadata"
)

// =============================================================================
// Date Type
// =============================================================================

// SourceMetadata marks a date taken from embedded metadata.
const SourceMetadata = "metadata"

// Date is a calendar date with an optional time of day.
// It carries no time zone; values are used only to name directories.
type Date struct {
	Year   int
	Month  time.Month
	Day    int
	Hour   int
	Minute int
	Second int

	HasTime bool   // false for date-only filename patterns
	Source  string // SourceMetadata or the name of the filename pattern
}

// String formats the date as YYYY:MM:DD[ HH:MM:SS].
func (d Date) String() string {
	s := fmt.Sprintf("%04d:%02d:%02d", d.Year, int(d.Month), d.Day)
	if d.HasTime {
		s += fmt.Sprintf(" %02d:%02d:%02d", d.Hour, d.Minute, d.Second)
	}
	return s
}

// Time converts the date to a UTC time.Time.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, d.Hour, d.Minute, d.Second, 0, time.UTC)
}

// =============================================================================
// Date Patterns
// =============================================================================

// pattern is a strict date pattern: the regex must match at word boundaries
// and the captured text must parse with layout.
// The layout string uses Go's reference time: Mon Jan 2 15:04:05 MST 2006
type pattern struct {
	name    string
	regex   *regexp.Regexp
	layout  string
	hasTime bool
}

// metadataPattern parses the creation date reported by the metadata reader.
// Trailing zone offsets or sub-seconds are ignored.
var metadataPattern = pattern{
	name:    SourceMetadata,
	regex:   regexp.MustCompile(`\b(\d{4}:\d{2}:\d{2} \d{2}:\d{2}:\d{2})\b`),
	layout:  "2006:01:02 15:04:05",
	hasTime: true,
}

// filenamePatterns are tried in order; first match wins.
// More specific patterns come first so a bare date never swallows a
// timestamped name.
var filenamePatterns = []pattern{
	// Messenger export: IMG-20210510-WA0001
	{"IMG-YYYYMMDD", regexp.MustCompile(`\bIMG-(\d{8})\b`), "20060102", false},

	// Panorama: PANO_20210510_140000
	{"PANO_YYYYMMDD_HHMMSS", regexp.MustCompile(`\bPANO_(\d{8}_\d{6})\b`), "20060102_150405", true},

	// Camera: IMG_20210510_140000
	{"IMG_YYYYMMDD_HHMMSS", regexp.MustCompile(`\bIMG_(\d{8}_\d{6})\b`), "20060102_150405", true},

	// Generic timestamp: 20210510_140000
	{"YYYYMMDD_HHMMSS", regexp.MustCompile(`\b(\d{8}_\d{6})\b`), "20060102_150405", true},

	// Messenger video: VID-20210510-WA0001
	{"VID-YYYYMMDD", regexp.MustCompile(`\bVID-(\d{8})\b`), "20060102", false},

	// Compact date: 20210510 (last resort, less specific)
	{"YYYYMMDD", regexp.MustCompile(`\b(\d{8})\b`), "20060102", false},
}

// match returns the first occurrence in s that both matches the regex and
// forms a valid calendar value.
func (p pattern) match(s string) (Date, bool) {
	for _, m := range p.regex.FindAllStringSubmatch(s, -1) {
		t, err := time.Parse(p.layout, m[1])
		if err != nil {
			continue
		}
		d := Date{
			Year:    t.Year(),
			Month:   t.Month(),
			Day:     t.Day(),
			HasTime: p.hasTime,
			Source:  p.name,
		}
		if p.hasTime {
			d.Hour, d.Minute, d.Second = t.Clock()
		}
		return d, true
	}
	return Date{}, false
}

// =============================================================================
// Resolver
// =============================================================================

// Resolver determines the best available capture date for a file.
// Priority:
//  1. creation date from embedded metadata
//  2. date parsed from the file name
type Resolver struct {
	extractor metadata.DateExtractor
}

// NewResolver returns a Resolver backed by extractor.
// A nil extractor disables the metadata strategy.
func NewResolver(extractor metadata.DateExtractor) *Resolver {
	return &Resolver{extractor: extractor}
}

// Resolve returns the capture date of the file at path whose name without
// extension is baseName. ok is false when no strategy yields a date; that is
// not an error, the file is simply unclassifiable.
func (r *Resolver) Resolve(path, baseName string) (Date, bool) {
	if r.extractor != nil {
		if raw, ok := r.extractor.CreationDate(path); ok && raw != "" {
			if d, ok := metadataPattern.match(raw); ok {
				return d, true
			}
		}
	}

	return FromFilename(baseName)
}

// FromFilename tries each filename pattern against baseName in order.
func FromFilename(baseName string) (Date, bool) {
	for _, p := range filenamePatterns {
		if d, ok := p.match(baseName); ok {
			return d, true
		}
	}
	return Date{}, false
}
