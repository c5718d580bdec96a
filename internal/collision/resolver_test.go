package collision

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/emabo/imagecat/internal/hashing"
	"github.com/spf13/afero"
)

func writeFiles(t *testing.T, fs afero.Fs, files map[string]string) {
	t.Helper()
	for name, content := range files {
		if err := afero.WriteFile(fs, name, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
	}
}

func newTestResolver(fs afero.Fs) *Resolver {
	return NewResolver(NewFsOccupancy(fs), hashing.NewXXHash(fs))
}

func TestCandidateName(t *testing.T) {
	tests := []struct {
		base, ext string
		counter   int
		want      string
	}{
		{"a", ".jpg", 0, "a.jpg"},
		{"a", ".jpg", 1, "a_1.jpg"},
		{"a", ".jpg", 12, "a_12.jpg"},
		{"README", "", 2, "README_2"},
	}
	for _, tt := range tests {
		if got := CandidateName(tt.base, tt.ext, tt.counter); got != tt.want {
			t.Errorf("CandidateName(%q, %q, %d) = %q, want %q", tt.base, tt.ext, tt.counter, got, tt.want)
		}
	}
}

func TestResolve_FreeName(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{"/src/a.jpg": "one"})

	action, err := newTestResolver(fs).Resolve("/src/a.jpg", "/dst/2021/2021_05_10", "a", ".jpg")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if action.Kind != Place || action.Path != filepath.FromSlash("/dst/2021/2021_05_10/a.jpg") || action.Renamed() {
		t.Errorf("Resolve() = %+v, want place at a.jpg", action)
	}
}

func TestResolve_IdenticalContent(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"/src/a.jpg":   "same",
		"/dst/d/a.jpg": "same",
	})

	action, err := newTestResolver(fs).Resolve("/src/a.jpg", "/dst/d", "a", ".jpg")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if action.Kind != AlreadyPresent || action.Self {
		t.Errorf("Resolve() = %+v, want already present", action)
	}
}

func TestResolve_DistinctContentProbes(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"/src/a.jpg":     "new",
		"/dst/d/a.jpg":   "old-0",
		"/dst/d/a_1.jpg": "old-1",
	})

	action, err := newTestResolver(fs).Resolve("/src/a.jpg", "/dst/d", "a", ".jpg")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if action.Kind != Place || action.Counter != 2 || !action.Renamed() {
		t.Fatalf("Resolve() = %+v, want place with counter 2", action)
	}
	if action.Path != filepath.FromSlash("/dst/d/a_2.jpg") {
		t.Errorf("Path = %s, want a_2.jpg", action.Path)
	}
}

func TestResolve_MatchAtHigherCounter(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"/src/a.jpg":     "mine",
		"/dst/d/a.jpg":   "other",
		"/dst/d/a_1.jpg": "mine",
	})

	action, err := newTestResolver(fs).Resolve("/src/a.jpg", "/dst/d", "a", ".jpg")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if action.Kind != AlreadyPresent || action.Counter != 1 {
		t.Errorf("Resolve() = %+v, want already present at a_1.jpg", action)
	}
}

func TestResolve_SourceIsCatalogEntry(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{"/cat/2021/2021_05_10/a.jpg": "x"})

	action, err := newTestResolver(fs).Resolve("/cat/2021/2021_05_10/a.jpg", "/cat/2021/2021_05_10", "a", ".jpg")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if action.Kind != AlreadyPresent || !action.Self {
		t.Errorf("Resolve() = %+v, want self match", action)
	}
}

type countingHasher struct {
	calls map[string]int
	sums  map[string]string
}

func (h *countingHasher) Sum(path string) (string, error) {
	h.calls[path]++
	if s, ok := h.sums[path]; ok {
		return s, nil
	}
	return "", errors.New("unreadable")
}

func TestResolve_HashesSourceOnce(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"/src/a.jpg":     "s",
		"/dst/d/a.jpg":   "x",
		"/dst/d/a_1.jpg": "y",
	})
	h := &countingHasher{
		calls: map[string]int{},
		sums: map[string]string{
			filepath.FromSlash("/src/a.jpg"):     "s",
			filepath.FromSlash("/dst/d/a.jpg"):   "x",
			filepath.FromSlash("/dst/d/a_1.jpg"): "y",
		},
	}

	r := NewResolver(NewFsOccupancy(fs), h)
	if _, err := r.Resolve("/src/a.jpg", "/dst/d", "a", ".jpg"); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if n := h.calls[filepath.FromSlash("/src/a.jpg")]; n != 1 {
		t.Errorf("source hashed %d times, want 1", n)
	}
}

func TestResolve_HashFailure(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"/src/a.jpg":   "s",
		"/dst/d/a.jpg": "x",
	})
	h := &countingHasher{calls: map[string]int{}, sums: map[string]string{filepath.FromSlash("/src/a.jpg"): "s"}}

	if _, err := NewResolver(NewFsOccupancy(fs), h).Resolve("/src/a.jpg", "/dst/d", "a", ".jpg"); err == nil {
		t.Error("expected error when the existing file cannot be hashed")
	}
}

type alwaysOccupied struct{}

func (alwaysOccupied) Occupant(path string) (string, bool, error) { return path, true, nil }

type uniqueHasher struct{ n int }

func (h *uniqueHasher) Sum(string) (string, error) {
	h.n++
	return string(rune('a'+h.n%26)) + string(rune('A'+h.n/26%26)), nil
}

func TestResolve_ProbeCeiling(t *testing.T) {
	r := NewResolver(alwaysOccupied{}, &uniqueHasher{})
	r.maxCounter = 5

	_, err := r.Resolve("/src/a.jpg", "/dst/d", "a", ".jpg")
	if !errors.Is(err, ErrProbeExhausted) {
		t.Errorf("Resolve() error = %v, want ErrProbeExhausted", err)
	}
}

func TestOverlay(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"/src/one/a.jpg":   "first",
		"/src/two/a.jpg":   "second",
		"/src/three/a.jpg": "first",
		"/dst/old/b.jpg":   "existing",
	})

	overlay := NewOverlay(NewFsOccupancy(fs))
	r := NewResolver(overlay, hashing.NewXXHash(fs))

	// existing catalog entries are still honored
	if _, occupied, _ := overlay.Occupant("/dst/old/b.jpg"); !occupied {
		t.Error("real file not visible through overlay")
	}

	overlay.MarkDir("/dst/new")
	first, err := r.Resolve("/src/one/a.jpg", "/dst/new", "a", ".jpg")
	if err != nil || first.Kind != Place || first.Counter != 0 {
		t.Fatalf("first Resolve() = %+v, %v", first, err)
	}
	overlay.Claim(first.Path, "/src/one/a.jpg")

	second, err := r.Resolve("/src/two/a.jpg", "/dst/new", "a", ".jpg")
	if err != nil || second.Kind != Place || second.Counter != 1 {
		t.Fatalf("second Resolve() = %+v, %v", second, err)
	}
	overlay.Claim(second.Path, "/src/two/a.jpg")

	third, err := r.Resolve("/src/three/a.jpg", "/dst/new", "a", ".jpg")
	if err != nil || third.Kind != AlreadyPresent || third.Counter != 0 {
		t.Fatalf("third Resolve() = %+v, %v", third, err)
	}

	if exists, _ := afero.Exists(fs, "/dst/new"); exists {
		t.Error("overlay must not create directories")
	}
}
