package collision

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// Occupancy answers whether a candidate path is taken and, if so, which
// file holds the content that lives there.
type Occupancy interface {
	Occupant(path string) (contentPath string, occupied bool, err error)
}

// FsOccupancy reports what is really on the filesystem.
type FsOccupancy struct {
	fs afero.Fs
}

// NewFsOccupancy returns an Occupancy backed by fs.
func NewFsOccupancy(fs afero.Fs) *FsOccupancy {
	return &FsOccupancy{fs: fs}
}

// Occupant returns path itself when something exists there.
func (o *FsOccupancy) Occupant(path string) (string, bool, error) {
	exists, err := afero.Exists(o.fs, path)
	if err != nil {
		return "", false, fmt.Errorf("checking %s: %w", path, err)
	}
	return path, exists, nil
}

// Overlay simulates the catalog during a dry run. It layers the placements
// the run would have made on top of the real filesystem, so a simulated run
// sees the same collisions as a real one without touching the disk.
type Overlay struct {
	base    Occupancy
	planned map[string]string // catalog path -> source file that would be there
	virtual map[string]bool   // directories that would have been created
}

// NewOverlay returns an empty overlay over base.
func NewOverlay(base Occupancy) *Overlay {
	return &Overlay{
		base:    base,
		planned: make(map[string]string),
		virtual: make(map[string]bool),
	}
}

// MarkDir records dir as created by this run. Paths inside it are never
// looked up on disk.
func (o *Overlay) MarkDir(dir string) {
	o.virtual[filepath.Clean(dir)] = true
}

// Claim records that source would have been placed at path.
func (o *Overlay) Claim(path, source string) {
	o.planned[filepath.Clean(path)] = source
}

// Occupant checks planned placements first, then the real filesystem unless
// the parent directory only exists in the simulation.
func (o *Overlay) Occupant(path string) (string, bool, error) {
	path = filepath.Clean(path)
	if source, ok := o.planned[path]; ok {
		return source, true, nil
	}
	if o.virtual[filepath.Dir(path)] {
		return "", false, nil
	}
	return o.base.Occupant(path)
}
