// Package manifest keeps a CSV ledger of every file placed in the catalog.
package manifest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// Location of the manifest relative to the catalog root.
const (
	Dir      = "_Manifest"
	FileName = "catalog_manifest.csv"
)

// header defines the CSV columns. The relative path is the row key.
var header = []string{
	"filename",        // Base filename in the catalog
	"relative_path",   // Path relative to the catalog root
	"source_path",     // Where the file came from
	"file_size_bytes", // Size in bytes
	"capture_date",    // Resolved capture date
	"date_source",     // metadata or filename pattern
	"file_hash",       // Content digest
	"extension",       // Lower-cased extension
	"action",          // copied or moved
	"organized_date",  // When the file was cataloged
}

// Entry describes one placed file.
type Entry struct {
	SourcePath  string
	DestPath    string
	Size        int64
	CaptureDate string
	DateSource  string
	Hash        string
	Action      string
}

// Path returns the manifest file location for a catalog root.
func Path(root string) string {
	return filepath.Join(root, Dir, FileName)
}

// Update merges entries into the manifest under root, creating it if needed.
// Existing rows are kept; rows whose relative path is already present are not
// duplicated. Rows are written sorted by relative path. It returns the number
// of rows added.
func Update(fs afero.Fs, root string, entries []Entry, now time.Time) (int, error) {
	if err := fs.MkdirAll(filepath.Join(root, Dir), 0755); err != nil {
		return 0, fmt.Errorf("creating manifest directory: %w", err)
	}

	existing, err := Read(fs, root)
	if err != nil {
		return 0, err
	}

	added := 0
	for _, e := range entries {
		relPath, err := filepath.Rel(root, e.DestPath)
		if err != nil {
			relPath = e.DestPath
		}
		relPath = filepath.ToSlash(relPath)
		if _, ok := existing[relPath]; ok {
			continue
		}
		existing[relPath] = []string{
			filepath.Base(e.DestPath),
			relPath,
			e.SourcePath,
			strconv.FormatInt(e.Size, 10),
			e.CaptureDate,
			e.DateSource,
			e.Hash,
			strings.ToLower(filepath.Ext(e.DestPath)),
			e.Action,
			now.Format("2006-01-02 15:04:05"),
		}
		added++
	}

	f, err := fs.Create(Path(root))
	if err != nil {
		return 0, fmt.Errorf("writing manifest: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return 0, fmt.Errorf("writing manifest: %w", err)
	}

	paths := make([]string, 0, len(existing))
	for p := range existing {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		if err := writer.Write(existing[p]); err != nil {
			return 0, fmt.Errorf("writing manifest: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return 0, fmt.Errorf("writing manifest: %w", err)
	}

	return added, nil
}

// Read loads the manifest rows under root keyed by relative path.
// A missing manifest yields an empty map.
func Read(fs afero.Fs, root string) (map[string][]string, error) {
	rows := make(map[string][]string)

	f, err := fs.Open(Path(root))
	if err != nil {
		if os.IsNotExist(err) {
			return rows, nil
		}
		return nil, fmt.Errorf("opening manifest: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}

	if len(records) > 0 {
		for _, row := range records[1:] {
			if len(row) > 1 {
				rows[row[1]] = row // Key by relative_path
			}
		}
	}
	return rows, nil
}
