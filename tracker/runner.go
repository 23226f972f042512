// Package tracker drives one complete stock-check run: read the SKU list,
// probe each SKU once, reconcile against the previous snapshot, render the
// change report, and rotate and rewrite the snapshot files.
package tracker

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/aluiziolira/go-stock-tracker/config"
	"github.com/aluiziolira/go-stock-tracker/models"
	"github.com/aluiziolira/go-stock-tracker/parser"
	"github.com/aluiziolira/go-stock-tracker/probe"
	"github.com/aluiziolira/go-stock-tracker/reconcile"
	"github.com/aluiziolira/go-stock-tracker/report"
	"github.com/aluiziolira/go-stock-tracker/snapshot"
	lru "github.com/hashicorp/golang-lru/v2"
)

// ErrMissingSKUInput means the SKU input file does not exist. This is the
// only fatal condition of a run.
var ErrMissingSKUInput = errors.New("tracker: SKU input file not found")

// Prober determines the stock status of one SKU.
type Prober interface {
	Probe(ctx context.Context, sku string) probe.Result
}

// Runner executes one sequential stock-check run. A Runner is reusable;
// every Run starts from fresh per-run state.
type Runner struct {
	cfg    *config.Config
	prober Prober
	writer report.Writer
	now    func() time.Time
}

// NewRunner builds a runner. writer receives the rendered change report;
// pass a MultiWriter to fan out to console and file.
func NewRunner(cfg *config.Config, prober Prober, writer report.Writer) (*Runner, error) {
	if cfg.DedupeCacheSize <= 0 {
		return nil, fmt.Errorf("dedupe cache size must be positive, got %d", cfg.DedupeCacheSize)
	}
	return &Runner{
		cfg:    cfg,
		prober: prober,
		writer: writer,
		now:    time.Now,
	}, nil
}

// ReadSKUs loads the SKU input file: one SKU per line, whitespace trimmed,
// blank lines skipped. A missing file is fatal to the run.
func ReadSKUs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingSKUInput, path)
		}
		return nil, fmt.Errorf("open SKU input %s: %w", path, err)
	}
	defer f.Close()

	var skus []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		sku := parser.NormalizeSKU(scanner.Text())
		if sku == "" {
			continue
		}
		skus = append(skus, sku)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read SKU input %s: %w", path, err)
	}
	return skus, nil
}

// Run performs one complete check. Per-SKU probe failures never abort the
// batch; file write failures are logged and skip the affected artifact only.
func (r *Runner) Run(ctx context.Context) (*models.RunResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	start := r.now()
	result := &models.RunResult{
		StartTime:    start,
		ErrorsByType: make(map[string]int),
	}

	prev, err := snapshot.Load(r.cfg.PreviousOOSPath())
	if err != nil {
		slog.Error("reading previous snapshot, assuming empty state", slog.Any("error", err))
		prev = models.Snapshot{}
	}
	slog.Info("loaded previous out-of-stock snapshot",
		slog.String("path", r.cfg.PreviousOOSPath()),
		slog.Int("skus", len(prev)),
	)

	skus, err := ReadSKUs(r.cfg.SKUPath())
	if err != nil {
		return nil, err
	}
	slog.Info("starting stock check", slog.Int("skus", len(skus)))

	// Per-run cache: duplicates within one input list are probed once, but a
	// later Run on the same Runner re-probes everything.
	seen, err := lru.New[string, probe.Outcome](r.cfg.DedupeCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create dedupe cache: %w", err)
	}

	obs := r.observe(ctx, skus, seen, result)

	reconciled := reconcile.Reconcile(prev, obs)
	lines := report.Render(reconciled, start)

	if r.writer != nil {
		if err := r.writer.Write(lines); err != nil {
			slog.Error("writing change report", slog.Any("error", err))
		}
	}

	r.persist(obs)

	result.EndTime = r.now()
	result.InStockCount = len(obs.InStock)
	result.OOSCount = len(obs.OutOfStock)
	result.ErrorCount = len(obs.Errored)
	return result, nil
}

// observe probes every SKU exactly once, in input order. Duplicate input
// SKUs are tracked in the bounded per-run cache instead of hitting the
// network again.
func (r *Runner) observe(ctx context.Context, skus []string, seen *lru.Cache[string, probe.Outcome], result *models.RunResult) *models.Observations {
	obs := models.NewObservations()

	for _, sku := range skus {
		if _, dup := seen.Get(sku); dup {
			slog.Debug("duplicate SKU in input, skipping", slog.String("sku", sku))
			continue
		}

		slog.Info("checking SKU", slog.String("sku", sku))
		res := r.prober.Probe(ctx, sku)
		seen.Add(sku, res.Outcome)
		result.CheckedCount++

		switch res.Outcome {
		case probe.InStock:
			obs.AddInStock(sku)
		case probe.OutOfStock:
			obs.AddOutOfStock(sku, res.URL)
		case probe.Errored:
			reason := probe.ReasonTag(res.Err)
			result.ErrorsByType[reason]++
			slog.Error("probe failed",
				slog.String("sku", sku),
				slog.String("reason", reason),
				slog.Any("error", res.Err),
			)
			obs.AddErrored(sku, res.URL, reason)
		}
	}

	return obs
}

// persist rotates the current snapshot to the previous path, then writes the
// new current snapshot. The two steps stay sequenced so a crash in between
// preserves the previous file; failures here never abort the run.
func (r *Runner) persist(obs *models.Observations) {
	currentPath := r.cfg.CurrentOOSPath()
	previousPath := r.cfg.PreviousOOSPath()

	if err := snapshot.Rotate(currentPath, previousPath); err != nil {
		slog.Error("rotating snapshot", slog.Any("error", err))
	} else {
		slog.Info("rotated snapshot",
			slog.String("from", currentPath),
			slog.String("to", previousPath),
		)
	}

	entries := obs.OOSEntries()
	if err := snapshot.Save(currentPath, entries); err != nil {
		slog.Error("writing current snapshot", slog.Any("error", err))
	} else {
		slog.Info("wrote current out-of-stock snapshot",
			slog.String("path", currentPath),
			slog.Int("entries", len(entries)),
		)
	}
}
