package dates

import (
	"testing"
	"time"
)

type fakeExtractor map[string]string

func (f fakeExtractor) CreationDate(path string) (string, bool) {
	v, ok := f[path]
	return v, ok
}

func TestResolve_MetadataWins(t *testing.T) {
	r := NewResolver(fakeExtractor{"/src/IMG_20200101_101010.jpg": "2021:05:10 14:00:00"})

	d, ok := r.Resolve("/src/IMG_20200101_101010.jpg", "IMG_20200101_101010")
	if !ok {
		t.Fatal("Resolve() found no date")
	}
	if d.Year != 2021 || d.Month != time.May || d.Day != 10 {
		t.Errorf("Resolve() = %v, want metadata date 2021:05:10", d)
	}
	if d.Source != SourceMetadata {
		t.Errorf("Source = %q, want %q", d.Source, SourceMetadata)
	}
	if !d.HasTime || d.Hour != 14 {
		t.Errorf("time of day not kept: %v", d)
	}
}

func TestResolve_MalformedMetadataFallsBack(t *testing.T) {
	tests := []string{
		"",
		"2021-05-10 14:00:00",
		"2021:13:10 14:00:00",
		"0000:00:00 00:00:00",
		"garbage",
	}
	for _, raw := range tests {
		r := NewResolver(fakeExtractor{"/src/IMG_20200101_101010.jpg": raw})
		d, ok := r.Resolve("/src/IMG_20200101_101010.jpg", "IMG_20200101_101010")
		if !ok {
			t.Fatalf("metadata %q: Resolve() found no date", raw)
		}
		if d.Year != 2020 || d.Source != "IMG_YYYYMMDD_HHMMSS" {
			t.Errorf("metadata %q: Resolve() = %v from %s, want filename date", raw, d, d.Source)
		}
	}
}

func TestResolve_MetadataWithZone(t *testing.T) {
	r := NewResolver(fakeExtractor{"/v.mp4": "2019:12:31 23:59:59+01:00"})
	d, ok := r.Resolve("/v.mp4", "v")
	if !ok || d.String() != "2019:12:31 23:59:59" {
		t.Errorf("Resolve() = %v, %v", d, ok)
	}
}

func TestFromFilename(t *testing.T) {
	tests := []struct {
		name   string
		want   string
		source string
		ok     bool
	}{
		{"IMG-20210510-WA0001", "2021:05:10", "IMG-YYYYMMDD", true},
		{"PANO_20210510_140000", "2021:05:10 14:00:00", "PANO_YYYYMMDD_HHMMSS", true},
		{"IMG_20210510_140000", "2021:05:10 14:00:00", "IMG_YYYYMMDD_HHMMSS", true},
		{"IMG_20210510_140000_1", "", "", false},
		{"20210510_140000", "2021:05:10 14:00:00", "YYYYMMDD_HHMMSS", true},
		{"Screenshot 20210510_140000", "2021:05:10 14:00:00", "YYYYMMDD_HHMMSS", true},
		{"VID-20210510-WA0002", "2021:05:10", "VID-YYYYMMDD", true},
		{"20210510", "2021:05:10", "YYYYMMDD", true},
		{"holiday 20210510", "2021:05:10", "YYYYMMDD", true},

		// strict: fields must be valid, boundaries must hold
		{"IMG-20211310", "", "", false},
		{"20210230", "", "", false},
		{"202105101", "", "", false},
		{"IMG_20210510_996000", "", "", false},
		{"photo1", "", "", false},
		{"DSC01234", "", "", false},
		{"", "", "", false},
	}

	for _, tt := range tests {
		d, ok := FromFilename(tt.name)
		if ok != tt.ok {
			t.Errorf("FromFilename(%q) ok = %v, want %v", tt.name, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		if d.String() != tt.want {
			t.Errorf("FromFilename(%q) = %s, want %s", tt.name, d, tt.want)
		}
		if d.Source != tt.source {
			t.Errorf("FromFilename(%q) source = %s, want %s", tt.name, d.Source, tt.source)
		}
	}
}

func TestResolve_NoDate(t *testing.T) {
	r := NewResolver(fakeExtractor{})
	if d, ok := r.Resolve("/src/photo1.jpg", "photo1"); ok {
		t.Errorf("Resolve() = %v, want no date", d)
	}

	r = NewResolver(nil)
	if _, ok := r.Resolve("/src/20210510.jpg", "20210510"); !ok {
		t.Error("nil extractor should still use filename patterns")
	}
}
