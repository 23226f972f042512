package parser

import "testing"

func TestNormalizeSKU(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain", input: "SKU-123", expected: "SKU-123"},
		{name: "surrounding whitespace", input: "  SKU-123 \t", expected: "SKU-123"},
		{name: "blank line", input: "   ", expected: ""},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeSKU(tt.input); got != tt.expected {
				t.Errorf("NormalizeSKU(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestHasPurchasableQuantity(t *testing.T) {
	tests := []struct {
		name     string
		values   []string
		expected bool
	}{
		{name: "positive value", values: []string{"1", "2", "3"}, expected: true},
		{name: "only zero", values: []string{"0"}, expected: false},
		{name: "zero then positive", values: []string{"0", "5"}, expected: true},
		{name: "non numeric", values: []string{"", "abc"}, expected: false},
		{name: "negative", values: []string{"-1"}, expected: false},
		{name: "whitespace padded", values: []string{" 2 "}, expected: true},
		{name: "empty list", values: nil, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasPurchasableQuantity(tt.values); got != tt.expected {
				t.Errorf("HasPurchasableQuantity(%v) = %v, want %v", tt.values, got, tt.expected)
			}
		})
	}
}

func TestSplitSnapshotLine(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantSKU string
		wantURL string
	}{
		{
			name:    "tab delimited",
			input:   "SKU-1\thttps://example.com/p/1",
			wantSKU: "SKU-1",
			wantURL: "https://example.com/p/1",
		},
		{
			name:    "space delimited",
			input:   "SKU-1 https://example.com/p/1",
			wantSKU: "SKU-1",
			wantURL: "https://example.com/p/1",
		},
		{
			name:    "sku only defaults url",
			input:   "SKU-1",
			wantSKU: "SKU-1",
			wantURL: "N/A",
		},
		{
			name:    "error tagged sku keeps full field",
			input:   "SKU-9 (Error: Timeout)\thttps://example.com/s?q=SKU-9",
			wantSKU: "SKU-9 (Error: Timeout)",
			wantURL: "https://example.com/s?q=SKU-9",
		},
		{
			name:    "blank line",
			input:   "   ",
			wantSKU: "",
			wantURL: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sku, url := SplitSnapshotLine(tt.input)
			if sku != tt.wantSKU || url != tt.wantURL {
				t.Errorf("SplitSnapshotLine(%q) = (%q, %q), want (%q, %q)", tt.input, sku, url, tt.wantSKU, tt.wantURL)
			}
		})
	}
}

func TestIsErrorTagged(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{name: "tagged", input: "SKU-9 (Error: Timeout)", expected: true},
		{name: "plain", input: "SKU-9", expected: false},
		{name: "parenthetical but not error", input: "SKU-9 (blue)", expected: false},
		{name: "error marker without closing paren", input: "SKU-9 (Error: Timeout", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsErrorTagged(tt.input); got != tt.expected {
				t.Errorf("IsErrorTagged(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
