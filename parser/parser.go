package parser

import (
	"strconv"
	"strings"
)

// NormalizeSKU trims surrounding whitespace from one SKU input line. An empty
// result means the line carried no SKU and should be skipped.
func NormalizeSKU(line string) string {
	return strings.TrimSpace(line)
}

// HasPurchasableQuantity reports whether any quantity option value parses as a
// positive integer. The catalog renders a quantity selector only for items
// that can actually be added to the cart.
func HasPurchasableQuantity(values []string) bool {
	for _, v := range values {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			continue
		}
		if n > 0 {
			return true
		}
	}
	return false
}

// SplitSnapshotLine splits one persisted snapshot line into its SKU field and
// URL. The writer emits tab-delimited fields; hand-edited files with a plain
// space separator are accepted too. The URL defaults to "N/A" when absent.
// An empty SKU field means the line is unusable.
func SplitSnapshotLine(line string) (sku, url string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", ""
	}

	if before, after, ok := strings.Cut(line, "\t"); ok {
		sku = strings.TrimSpace(before)
		url = strings.TrimSpace(after)
	} else if before, after, ok := strings.Cut(line, " "); ok {
		sku = strings.TrimSpace(before)
		url = strings.TrimSpace(after)
	} else {
		sku = line
	}

	if sku == "" {
		return "", ""
	}
	if url == "" {
		url = "N/A"
	}
	return sku, url
}

// IsErrorTagged reports whether a persisted SKU field carries the probe-error
// tag appended by a previous run, e.g. "SKU-9 (Error: Timeout)". Tagged
// records must not be loaded as confirmed out-of-stock state.
func IsErrorTagged(skuField string) bool {
	return strings.Contains(skuField, "(Error:") && strings.HasSuffix(skuField, ")")
}
