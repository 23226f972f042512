// Package snapshot persists the out-of-stock state between runs as a plain
// text file, one tab-delimited "SKU<tab>URL" record per line.
package snapshot

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"sort"

	"github.com/aluiziolira/go-stock-tracker/models"
	"github.com/aluiziolira/go-stock-tracker/parser"
)

// Load reads a snapshot file into a SKU → URL map. A missing file is first-run
// state, not an error. Records whose SKU field carries a probe-error tag from
// a previous run are excluded so a transient failure never poisons future
// comparisons. Duplicate SKUs resolve last-write-wins.
func Load(path string) (models.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.Snapshot{}, nil
		}
		return nil, fmt.Errorf("open snapshot %s: %w", path, err)
	}
	defer f.Close()

	snap, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}
	return snap, nil
}

func parse(r io.Reader) (models.Snapshot, error) {
	snap := models.Snapshot{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		sku, url := parser.SplitSnapshotLine(scanner.Text())
		if sku == "" {
			continue
		}
		if parser.IsErrorTagged(sku) {
			slog.Debug("skipping error-tagged snapshot record", slog.String("sku", sku))
			continue
		}
		snap[sku] = url
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return snap, nil
}

// Save overwrites path with the given entries, one per line, sorted ascending
// by the persisted SKU field so successive runs produce reproducible diffs.
func Save(path string, entries []models.SkuEntry) error {
	sorted := make([]models.SkuEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].DisplaySKU() < sorted[j].DisplaySKU()
	})

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot %s: %w", path, err)
	}

	w := bufio.NewWriter(f)
	for _, entry := range sorted {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", entry.DisplaySKU(), entry.URL); err != nil {
			f.Close()
			return fmt.Errorf("write snapshot record: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("flush snapshot %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close snapshot %s: %w", path, err)
	}
	return nil
}

// Rotate moves the current snapshot to the previous-snapshot path. Rotation
// happens before the new current snapshot is written; a crash in between
// leaves the previous file intact and the current file absent, which the next
// run's Load treats as first-run state. A missing current file is a no-op.
func Rotate(currentPath, previousPath string) error {
	err := os.Rename(currentPath, previousPath)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("rotate snapshot %s -> %s: %w", currentPath, previousPath, err)
}
