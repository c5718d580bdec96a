// Package layout computes where a dated file lives inside the catalog.
package layout

import (
	"fmt"
	"path/filepath"

	"github.com/emabo/imagecat/internal/dates"
)

// Plan returns the catalog directory for date under root:
// root/YYYY/YYYY_MM_DD. It performs no I/O.
func Plan(root string, date dates.Date) string {
	return filepath.Join(root, YearDir(date), DayDir(date))
}

// YearDir returns the first-level directory name, e.g. "2021".
func YearDir(date dates.Date) string {
	return fmt.Sprintf("%04d", date.Year)
}

// DayDir returns the second-level directory name, e.g. "2021_05_10".
func DayDir(date dates.Date) string {
	return fmt.Sprintf("%04d_%02d_%02d", date.Year, int(date.Month), date.Day)
}
