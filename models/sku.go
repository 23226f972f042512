// Package models defines data structures for the stock tracker.
package models

import (
	"fmt"
	"time"
)

// URLUnknown is the sentinel recorded when no reference URL is known for a SKU.
const URLUnknown = "N/A"

// SkuEntry is one tracked out-of-stock record. An entry is either confirmed
// (the probe positively determined the SKU to be out of stock) or errored
// (the probe failed and the SKU is carried forward unverified). Reason is
// empty for confirmed entries.
type SkuEntry struct {
	SKU    string
	URL    string
	Reason string
}

// Confirmed builds an entry for a SKU positively observed as out of stock.
func Confirmed(sku, url string) SkuEntry {
	if url == "" {
		url = URLUnknown
	}
	return SkuEntry{SKU: sku, URL: url}
}

// Errored builds an entry for a SKU whose probe failed this run.
func Errored(sku, url, reason string) SkuEntry {
	if url == "" {
		url = URLUnknown
	}
	return SkuEntry{SKU: sku, URL: url, Reason: reason}
}

// IsErrored reports whether the entry records a probe failure rather than a
// confirmed out-of-stock observation.
func (e SkuEntry) IsErrored() bool {
	return e.Reason != ""
}

// DisplaySKU renders the persisted form of the SKU field: the raw identifier
// for confirmed entries, or the identifier with an error tag appended for
// errored entries, e.g. "SKU-9 (Error: Timeout)".
func (e SkuEntry) DisplaySKU() string {
	if e.Reason == "" {
		return e.SKU
	}
	return fmt.Sprintf("%s (Error: %s)", e.SKU, e.Reason)
}

// Snapshot maps out-of-stock SKUs to their best-known URLs as of the end of
// one run. Built once at load time and treated as immutable thereafter.
type Snapshot map[string]string

// Has reports whether the SKU was out of stock in this snapshot.
func (s Snapshot) Has(sku string) bool {
	_, ok := s[sku]
	return ok
}

// URL returns the recorded URL for a SKU and whether the SKU is present.
func (s Snapshot) URL(sku string) (string, bool) {
	url, ok := s[sku]
	return url, ok
}

// Observations holds the outcome of probing every requested SKU exactly once.
// Each SKU lands in exactly one of the three buckets.
type Observations struct {
	InStock    map[string]struct{}
	OutOfStock map[string]string // confirmed only; errored SKUs are excluded
	Errored    []SkuEntry
}

// NewObservations returns an empty, ready-to-fill observation set.
func NewObservations() *Observations {
	return &Observations{
		InStock:    make(map[string]struct{}),
		OutOfStock: make(map[string]string),
	}
}

// AddInStock records a SKU found purchasable this run.
func (o *Observations) AddInStock(sku string) {
	o.InStock[sku] = struct{}{}
}

// AddOutOfStock records a SKU positively confirmed out of stock.
func (o *Observations) AddOutOfStock(sku, url string) {
	if url == "" {
		url = URLUnknown
	}
	o.OutOfStock[sku] = url
}

// AddErrored records a SKU whose probe failed.
func (o *Observations) AddErrored(sku, url, reason string) {
	o.Errored = append(o.Errored, Errored(sku, url, reason))
}

// OOSEntries returns every entry that belongs in the persisted current-OOS
// snapshot: confirmed out-of-stock records plus errored records.
func (o *Observations) OOSEntries() []SkuEntry {
	entries := make([]SkuEntry, 0, len(o.OutOfStock)+len(o.Errored))
	for sku, url := range o.OutOfStock {
		entries = append(entries, Confirmed(sku, url))
	}
	entries = append(entries, o.Errored...)
	return entries
}

// TotalOOS counts every currently out-of-stock entry, errored included.
func (o *Observations) TotalOOS() int {
	return len(o.OutOfStock) + len(o.Errored)
}

// RunResult summarises one complete tracker run.
type RunResult struct {
	StartTime    time.Time
	EndTime      time.Time
	CheckedCount int
	InStockCount int
	OOSCount     int
	ErrorCount   int
	ErrorsByType map[string]int
}
