package config

import (
	"strings"
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name: "empty base url",
			mutate: func(cfg *Config) {
				cfg.BaseURL = ""
			},
			wantErr: "base URL",
		},
		{
			name: "invalid url format",
			mutate: func(cfg *Config) {
				cfg.BaseURL = "http://"
			},
			wantErr: "base URL",
		},
		{
			name: "empty sku file",
			mutate: func(cfg *Config) {
				cfg.SKUFile = ""
			},
			wantErr: "SKU input file",
		},
		{
			name: "same snapshot files",
			mutate: func(cfg *Config) {
				cfg.PreviousOOSFile = cfg.CurrentOOSFile
			},
			wantErr: "must differ",
		},
		{
			name: "report enabled without file",
			mutate: func(cfg *Config) {
				cfg.WriteReportFile = true
				cfg.ReportFile = ""
			},
			wantErr: "report file",
		},
		{
			name: "negative timeout",
			mutate: func(cfg *Config) {
				cfg.Timeout = -1 * time.Second
			},
			wantErr: "timeout",
		},
		{
			name: "zero dedupe cache",
			mutate: func(cfg *Config) {
				cfg.DedupeCacheSize = 0
			},
			wantErr: "dedupe cache",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestConfigPaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaseDir = "/data/stock"

	if got := cfg.SKUPath(); got != "/data/stock/SKUs.txt" {
		t.Fatalf("SKUPath() = %q", got)
	}
	if got := cfg.CurrentOOSPath(); got != "/data/stock/out_stock.txt" {
		t.Fatalf("CurrentOOSPath() = %q", got)
	}
	if got := cfg.PreviousOOSPath(); got != "/data/stock/previous_out_stock.txt" {
		t.Fatalf("PreviousOOSPath() = %q", got)
	}
	if got := cfg.ReportPath(); got != "/data/stock/stock_change_report.txt" {
		t.Fatalf("ReportPath() = %q", got)
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("TRACKER_TEST_STR", "hello")
	if value, ok := EnvString("TRACKER_TEST_STR"); !ok || value != "hello" {
		t.Fatalf("EnvString = (%q, %v)", value, ok)
	}
	if _, ok := EnvString("TRACKER_TEST_UNSET"); ok {
		t.Fatalf("EnvString should report unset variable")
	}

	t.Setenv("TRACKER_TEST_INT", "42")
	if value, ok, err := EnvInt("TRACKER_TEST_INT"); err != nil || !ok || value != 42 {
		t.Fatalf("EnvInt = (%d, %v, %v)", value, ok, err)
	}
	t.Setenv("TRACKER_TEST_INT", "nope")
	if _, _, err := EnvInt("TRACKER_TEST_INT"); err == nil {
		t.Fatalf("EnvInt should fail on non-numeric input")
	}

	t.Setenv("TRACKER_TEST_BOOL", "true")
	if value, ok, err := EnvBool("TRACKER_TEST_BOOL"); err != nil || !ok || !value {
		t.Fatalf("EnvBool = (%v, %v, %v)", value, ok, err)
	}

	t.Setenv("TRACKER_TEST_DUR", "15s")
	if value, ok, err := EnvDuration("TRACKER_TEST_DUR"); err != nil || !ok || value != 15*time.Second {
		t.Fatalf("EnvDuration = (%v, %v, %v)", value, ok, err)
	}
	t.Setenv("TRACKER_TEST_DUR", "soon")
	if _, _, err := EnvDuration("TRACKER_TEST_DUR"); err == nil {
		t.Fatalf("EnvDuration should fail on unparsable input")
	}
}
