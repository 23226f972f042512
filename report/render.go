// Package report renders reconciliation results as the human-readable change
// report and writes it to the configured destinations.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/aluiziolira/go-stock-tracker/reconcile"
)

const rule = "=============================="

// Render turns a reconciliation result into the ordered report lines. Output
// is deterministic for identical inputs; the timestamp appears only in the
// header.
func Render(result reconcile.Result, ts time.Time) []string {
	lines := []string{
		fmt.Sprintf("Analysis Report - %s", ts.Format("2006-01-02 15:04:05")),
		rule,
	}

	if len(result.Changes) == 0 {
		lines = append(lines, "No out-of-stock items found previously or currently.")
		return lines
	}

	for _, change := range result.Changes {
		lines = append(lines, renderChange(change))
	}

	lines = append(lines, rule)
	lines = append(lines, "Summary:")
	lines = append(lines, fmt.Sprintf("  Restocked:        %d", result.Summary.Restocked))
	lines = append(lines, fmt.Sprintf("  Still OutOfStock: %d", result.Summary.StillOOS))
	lines = append(lines, fmt.Sprintf("  Newly OutOfStock: %d", result.Summary.NewlyOOS))
	if result.Summary.Unknown > 0 {
		lines = append(lines, fmt.Sprintf("  Errors (Prev OOS):%d", result.Summary.Unknown))
	}
	lines = append(lines, fmt.Sprintf("  Total Currently OOS (incl errors): %d", result.Summary.TotalCurrentOOS))

	return lines
}

func renderChange(change reconcile.Change) string {
	label := fmt.Sprintf("%-15s", change.Status.String())
	switch change.Status {
	case reconcile.Restocked:
		return fmt.Sprintf("%s: %s (Was OOS: %s)", label, change.SKU, change.URL)
	case reconcile.StatusUnknown:
		return fmt.Sprintf("%s: %s (Was OOS: %s) - Current status unknown (check error?)", label, change.SKU, change.URL)
	default:
		return fmt.Sprintf("%s: %s (Link: %s)", label, change.SKU, change.URL)
	}
}

// Join renders the lines as a single newline-terminated block.
func Join(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
