package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"time"
)

// Config holds stock tracker configuration.
type Config struct {
	BaseURL          string
	BaseDir          string
	SKUFile          string
	CurrentOOSFile   string
	PreviousOOSFile  string
	ReportFile       string
	WriteReportFile  bool
	Timeout          time.Duration
	UserAgent        string
	DedupeCacheSize  int
	MetricsAddr      string
	Verbose          bool
	RespectRobotsTxt bool
}

// DefaultConfig returns conservative defaults for a local tracking directory.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:          "https://example-store.com",
		BaseDir:          ".",
		SKUFile:          "SKUs.txt",
		CurrentOOSFile:   "out_stock.txt",
		PreviousOOSFile:  "previous_out_stock.txt",
		ReportFile:       "stock_change_report.txt",
		WriteReportFile:  true,
		Timeout:          10 * time.Second,
		UserAgent:        "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/117.0.0.0 Safari/537.36",
		DedupeCacheSize:  1024,
		MetricsAddr:      "",
		Verbose:          false,
		RespectRobotsTxt: false,
	}
}

// Validate ensures all configuration values are coherent.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL cannot be empty")
	}

	parsedURL, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("base URL must include a host")
	}

	if c.BaseDir == "" {
		return fmt.Errorf("base directory cannot be empty")
	}
	if c.SKUFile == "" {
		return fmt.Errorf("SKU input file cannot be empty")
	}
	if c.CurrentOOSFile == "" {
		return fmt.Errorf("current snapshot file cannot be empty")
	}
	if c.PreviousOOSFile == "" {
		return fmt.Errorf("previous snapshot file cannot be empty")
	}
	if c.CurrentOOSFile == c.PreviousOOSFile {
		return fmt.Errorf("current and previous snapshot files must differ")
	}
	if c.WriteReportFile && c.ReportFile == "" {
		return fmt.Errorf("report file cannot be empty when report writing is enabled")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.UserAgent == "" {
		return fmt.Errorf("user agent cannot be empty")
	}
	if c.DedupeCacheSize <= 0 {
		return fmt.Errorf("dedupe cache size must be positive")
	}

	return nil
}

// SKUPath returns the absolute-ish path of the SKU input file.
func (c *Config) SKUPath() string {
	return filepath.Join(c.BaseDir, c.SKUFile)
}

// CurrentOOSPath returns the path of the current out-of-stock snapshot.
func (c *Config) CurrentOOSPath() string {
	return filepath.Join(c.BaseDir, c.CurrentOOSFile)
}

// PreviousOOSPath returns the path of the previous out-of-stock snapshot.
func (c *Config) PreviousOOSPath() string {
	return filepath.Join(c.BaseDir, c.PreviousOOSFile)
}

// ReportPath returns the path of the change report file.
func (c *Config) ReportPath() string {
	return filepath.Join(c.BaseDir, c.ReportFile)
}
