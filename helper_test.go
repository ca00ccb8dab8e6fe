package fmstats

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

// D is a helper for test to create decimals from const.
func D(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// decimalComparer compares decimals by value.
var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

// P is a helper for test to create optional decimals from const.
func P(s string) *decimal.Decimal {
	d := D(s)
	return &d
}

// ledgerCSV encodes rows into a ledger, with its header.
func ledgerCSV(t *testing.T, rows ...[]string) string {
	t.Helper()
	var b bytes.Buffer
	w := csv.NewWriter(&b)
	rows = append([][]string{{"id", "url", "created_at", "updated_at", "status", "manifest_json"}}, rows...)
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("failed to write csv: %v", err)
	}
	return b.String()
}

// active returns an active raw record for 'manifest'.
func active(id, manifest string) RawRecord {
	return RawRecord{
		ID:           id,
		URL:          "https://example.org/" + id + "/funding.json",
		CreatedAt:    "2024-11-20 10:00:00",
		UpdatedAt:    "2024-11-20 10:00:00",
		Status:       StatusActive,
		ManifestJSON: manifest,
	}
}
