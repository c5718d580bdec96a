package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/emabo/imagecat/internal/catalog"
)

var (
	bannerColor = color.New(color.FgCyan, color.Bold)
	dryRunColor = color.New(color.FgYellow, color.Bold)
)

// WriteSummary prints the six run counters to w.
func WriteSummary(w io.Writer, s catalog.Stats, dryRun bool) error {
	rule := strings.Repeat("=", 50)

	title := "Catalog summary"
	if dryRun {
		title = dryRunColor.Sprint("[DRY RUN]") + " " + title
	}

	if _, err := bannerColor.Fprintln(w, rule); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	if _, err := bannerColor.Fprintln(w, rule); err != nil {
		return err
	}

	rows := []struct {
		label string
		value int
	}{
		{"Examined", s.Examined},
		{"Skipped", s.Skipped},
		{"Already present", s.AlreadyPresent},
		{"Copied", s.Copied},
		{"Moved", s.Moved},
		{"Renamed", s.Renamed},
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%-17s %d\n", r.label+":", r.value); err != nil {
			return err
		}
	}
	return nil
}
