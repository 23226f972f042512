// Package reconcile classifies stock-state transitions between the previous
// out-of-stock snapshot and the current run's observations. The engine is a
// pure function: no I/O, no clock, deterministic output for identical inputs.
package reconcile

import (
	"sort"

	"github.com/aluiziolira/go-stock-tracker/models"
)

// Status is the transition classification of one SKU.
type Status int

const (
	// Restocked: previously out of stock, now confirmed in stock.
	Restocked Status = iota
	// StillOOS: out of stock in both the previous and current run.
	StillOOS
	// NewlyOOS: not previously tracked as out of stock, now confirmed so.
	NewlyOOS
	// StatusUnknown: previously out of stock, but this run neither confirmed
	// the SKU out of stock nor in stock. Typically a probe failure, though a
	// SKU dropped from the input list lands here too.
	StatusUnknown
)

// String returns the report label for a status.
func (s Status) String() string {
	switch s {
	case Restocked:
		return "[+] RESTOCKED"
	case StillOOS:
		return "[-] STILL OOS"
	case NewlyOOS:
		return "[!] NEWLY OOS"
	case StatusUnknown:
		return "[E] ERROR"
	default:
		return "UNKNOWN"
	}
}

// Change is one classified transition. URL carries the current link for OOS
// classifications and the previous snapshot's link for Restocked and
// StatusUnknown, where the current URL is unknown or meaningless.
type Change struct {
	SKU    string
	URL    string
	Status Status
}

// Summary aggregates per-category counts for one reconciliation.
// TotalCurrentOOS includes errored entries, which produce no Change but still
// count as currently out of stock.
type Summary struct {
	Restocked       int
	StillOOS        int
	NewlyOOS        int
	Unknown         int
	TotalCurrentOOS int
}

// Result is the full outcome of one reconciliation: changes in ascending SKU
// order plus the aggregate summary.
type Result struct {
	Changes []Change
	Summary Summary
}

// Reconcile classifies every SKU that was out of stock previously or is
// confirmed out of stock now. Errored SKUs with no prior history are new,
// unverified failures rather than status changes and are deliberately left
// unclassified; they surface only in the persisted snapshot and the total.
func Reconcile(prev models.Snapshot, obs *models.Observations) Result {
	relevant := make(map[string]struct{}, len(prev)+len(obs.OutOfStock))
	for sku := range prev {
		relevant[sku] = struct{}{}
	}
	for sku := range obs.OutOfStock {
		relevant[sku] = struct{}{}
	}

	skus := make([]string, 0, len(relevant))
	for sku := range relevant {
		skus = append(skus, sku)
	}
	sort.Strings(skus)

	result := Result{
		Summary: Summary{TotalCurrentOOS: obs.TotalOOS()},
	}

	for _, sku := range skus {
		prevURL, inPrev := prev.URL(sku)
		currURL, inCurrOOS := obs.OutOfStock[sku]
		_, inCurrStock := obs.InStock[sku]

		switch {
		case inPrev && inCurrStock:
			result.Changes = append(result.Changes, Change{SKU: sku, URL: prevURL, Status: Restocked})
			result.Summary.Restocked++
		case inPrev && inCurrOOS:
			result.Changes = append(result.Changes, Change{SKU: sku, URL: currURL, Status: StillOOS})
			result.Summary.StillOOS++
		case !inPrev && inCurrOOS:
			result.Changes = append(result.Changes, Change{SKU: sku, URL: currURL, Status: NewlyOOS})
			result.Summary.NewlyOOS++
		case inPrev:
			result.Changes = append(result.Changes, Change{SKU: sku, URL: prevURL, Status: StatusUnknown})
			result.Summary.Unknown++
		}
	}

	return result
}
