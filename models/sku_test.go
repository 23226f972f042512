package models

import "testing"

func TestSkuEntryDisplay(t *testing.T) {
	tests := []struct {
		name     string
		entry    SkuEntry
		expected string
	}{
		{name: "confirmed", entry: Confirmed("SKU-1", "u1"), expected: "SKU-1"},
		{name: "errored", entry: Errored("SKU-9", "u9", "Timeout"), expected: "SKU-9 (Error: Timeout)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.DisplaySKU(); got != tt.expected {
				t.Errorf("DisplaySKU() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestSkuEntryURLDefaultsToSentinel(t *testing.T) {
	if got := Confirmed("SKU-1", "").URL; got != URLUnknown {
		t.Fatalf("confirmed url = %q, want %q", got, URLUnknown)
	}
	if got := Errored("SKU-2", "", "Timeout").URL; got != URLUnknown {
		t.Fatalf("errored url = %q, want %q", got, URLUnknown)
	}
}

func TestObservationsBuckets(t *testing.T) {
	obs := NewObservations()
	obs.AddInStock("A")
	obs.AddOutOfStock("B", "u2")
	obs.AddErrored("C", "u3", "Connection")

	if _, ok := obs.InStock["A"]; !ok {
		t.Fatalf("A should be in stock")
	}
	if url := obs.OutOfStock["B"]; url != "u2" {
		t.Fatalf("B url = %q", url)
	}
	if len(obs.Errored) != 1 || !obs.Errored[0].IsErrored() {
		t.Fatalf("errored bucket = %+v", obs.Errored)
	}
	if got := obs.TotalOOS(); got != 2 {
		t.Fatalf("TotalOOS() = %d, want 2", got)
	}
}

func TestOOSEntriesIncludeErrored(t *testing.T) {
	obs := NewObservations()
	obs.AddOutOfStock("B", "u2")
	obs.AddErrored("C", "u3", "Timeout")

	entries := obs.OOSEntries()
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}

	var sawConfirmed, sawErrored bool
	for _, e := range entries {
		if e.SKU == "B" && !e.IsErrored() {
			sawConfirmed = true
		}
		if e.SKU == "C" && e.IsErrored() {
			sawErrored = true
		}
	}
	if !sawConfirmed || !sawErrored {
		t.Fatalf("entries missing expected records: %+v", entries)
	}
}

func TestSnapshotLookups(t *testing.T) {
	snap := Snapshot{"A": "u1"}

	if !snap.Has("A") || snap.Has("B") {
		t.Fatalf("Has results wrong")
	}
	if url, ok := snap.URL("A"); !ok || url != "u1" {
		t.Fatalf("URL(A) = (%q, %v)", url, ok)
	}
	if _, ok := snap.URL("B"); ok {
		t.Fatalf("URL(B) should report absence")
	}
}
