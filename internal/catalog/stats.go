package catalog

// Stats counts what a run did (or would do, under dry-run).
// Every examined file ends up in exactly one of Skipped, AlreadyPresent,
// Copied or Moved; Renamed is a subset of Copied+Moved.
type Stats struct {
	Examined       int
	Skipped        int
	AlreadyPresent int
	Copied         int
	Moved          int
	Renamed        int
}

// Placed returns the number of files copied or moved into the catalog.
func (s Stats) Placed() int {
	return s.Copied + s.Moved
}
