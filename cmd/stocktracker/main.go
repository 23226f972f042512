package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aluiziolira/go-stock-tracker/config"
	"github.com/aluiziolira/go-stock-tracker/models"
	"github.com/aluiziolira/go-stock-tracker/probe"
	"github.com/aluiziolira/go-stock-tracker/report"
	"github.com/aluiziolira/go-stock-tracker/tracker"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	defaultCfg := config.DefaultConfig()
	baseURLDefault := defaultCfg.BaseURL
	if value, ok := config.EnvString("TRACKER_BASE_URL"); ok {
		baseURLDefault = value
	}
	dirDefault := defaultCfg.BaseDir
	if value, ok := config.EnvString("TRACKER_DIR"); ok {
		dirDefault = value
	}
	timeoutDefault := defaultCfg.Timeout
	if value, ok, err := config.EnvDuration("TRACKER_TIMEOUT"); err != nil {
		fmt.Fprintf(os.Stderr, "invalid TRACKER_TIMEOUT: %v\n", err)
		os.Exit(1)
	} else if ok {
		timeoutDefault = value
	}
	writeReportDefault := defaultCfg.WriteReportFile
	if value, ok, err := config.EnvBool("TRACKER_WRITE_REPORT"); err != nil {
		fmt.Fprintf(os.Stderr, "invalid TRACKER_WRITE_REPORT: %v\n", err)
		os.Exit(1)
	} else if ok {
		writeReportDefault = value
	}
	metricsDefault := defaultCfg.MetricsAddr
	if value, ok := config.EnvString("TRACKER_METRICS_ADDR"); ok {
		metricsDefault = value
	}

	baseURL := flag.String("base-url", baseURLDefault, "Catalog base URL")
	baseDir := flag.String("dir", dirDefault, "Directory holding input and output files")
	skuFile := flag.String("skus", defaultCfg.SKUFile, "SKU input file name, one SKU per line")
	currentFile := flag.String("current", defaultCfg.CurrentOOSFile, "Current out-of-stock snapshot file name")
	previousFile := flag.String("previous", defaultCfg.PreviousOOSFile, "Previous out-of-stock snapshot file name")
	reportFile := flag.String("report", defaultCfg.ReportFile, "Change report file name")
	writeReport := flag.Bool("write-report", writeReportDefault, "Write the change report file")
	timeout := flag.Duration("timeout", timeoutDefault, "Per-request timeout")
	metricsAddr := flag.String("metrics-addr", metricsDefault, "Prometheus metrics listen address (e.g. :9090)")
	verbose := flag.Bool("v", false, "Enable verbose logging")

	flag.Parse()

	logger, level := newLogger(*verbose)
	slog.SetDefault(logger)
	slog.SetLogLoggerLevel(level.Level())

	cfg := defaultCfg
	cfg.BaseURL = *baseURL
	cfg.BaseDir = *baseDir
	cfg.SKUFile = *skuFile
	cfg.CurrentOOSFile = *currentFile
	cfg.PreviousOOSFile = *previousFile
	cfg.ReportFile = *reportFile
	cfg.WriteReportFile = *writeReport
	cfg.Timeout = *timeout
	cfg.MetricsAddr = *metricsAddr
	cfg.Verbose = *verbose
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	slog.Info("stock check run starting",
		slog.String("base_url", cfg.BaseURL),
		slog.String("dir", cfg.BaseDir),
		slog.Time("started_at", time.Now()),
	)

	prober, err := probe.New(cfg)
	if err != nil {
		slog.Error("initialising prober", slog.Any("error", err))
		os.Exit(1)
	}

	writer := buildReportWriter(cfg)
	defer func() {
		if err := writer.Close(); err != nil {
			slog.Error("close report writer", slog.Any("error", err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var metricsServer *http.Server
	if cfg.MetricsAddr != "" && prober.Metrics != nil {
		metricsServer = &http.Server{
			Addr:    cfg.MetricsAddr,
			Handler: promhttp.HandlerFor(prober.Metrics.Registry, promhttp.HandlerOpts{}),
		}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("metrics server failed", slog.Any("error", err))
			}
		}()
		slog.Info("metrics server enabled", slog.String("addr", cfg.MetricsAddr))
	}

	runner, err := tracker.NewRunner(cfg, prober, writer)
	if err != nil {
		slog.Error("initialising runner", slog.Any("error", err))
		os.Exit(1)
	}

	result, err := runner.Run(ctx)
	if err != nil {
		if errors.Is(err, tracker.ErrMissingSKUInput) {
			slog.Error("SKU input file missing, cannot proceed", slog.Any("error", err))
		} else {
			slog.Error("stock check failed", slog.Any("error", err))
		}
		os.Exit(1)
	}

	if err := writer.Validate(); err != nil {
		slog.Error("report output validation failed", slog.Any("error", err))
	}

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("metrics server shutdown failed", slog.Any("error", err))
		}
		cancel()
	}

	printSummary(result)
}

// buildReportWriter fans the report out to the console and, when enabled, the
// report file. The file writer defers creation until the report exists, so a
// run that aborts early never clobbers the previous report.
func buildReportWriter(cfg *config.Config) report.Writer {
	console := report.NewConsoleWriter(os.Stdout)
	if !cfg.WriteReportFile {
		return console
	}
	return report.NewMultiWriter(console, report.NewFileWriter(cfg.ReportPath()))
}

func printSummary(result *models.RunResult) {
	separator := "--------------------------------------------------"
	fmt.Println("\n" + separator)
	fmt.Println("Stock check complete")
	fmt.Printf("  SKUs checked:  %d\n", result.CheckedCount)
	fmt.Printf("  In stock:      %d\n", result.InStockCount)
	fmt.Printf("  Out of stock:  %d\n", result.OOSCount)
	fmt.Printf("  Probe errors:  %d\n", result.ErrorCount)
	if len(result.ErrorsByType) > 0 {
		fmt.Printf("  Error types:   %v\n", result.ErrorsByType)
	}
	fmt.Printf("  Duration:      %v\n", result.EndTime.Sub(result.StartTime))
	fmt.Println(separator)
}

func newLogger(verbose bool) (*slog.Logger, *slog.LevelVar) {
	level := &slog.LevelVar{}
	if verbose {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if isTerminal(os.Stdout) {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler), level
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
