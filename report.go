package fmstats

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Ranking is the presentation order of the manifests.
type Ranking struct {
	Manifests []*Manifest // by decreasing requested funding
	Boundary  int         // number of manifests in the funding range
}

// Assemble sorts manifests by decreasing requested funding, keeping the input
// order among equal requests. 'thresholdCount' is the number of manifests meeting
// the threshold, as counted by Stats, and becomes the ranking boundary.
//
// The input slice is not modified.
func Assemble(manifests []*Manifest, thresholdCount int) Ranking {
	sorted := slices.Clone(manifests)
	slices.SortStableFunc(sorted, func(a, b *Manifest) int {
		return b.MaxRequested.Cmp(a.MaxRequested)
	})
	return Ranking{Manifests: sorted, Boundary: thresholdCount}
}

func (r Ranking) boundary() int { return max(0, min(r.Boundary, len(r.Manifests))) }

// Above returns the manifests in the funding range.
func (r Ranking) Above() []*Manifest { return r.Manifests[:r.boundary()] }

// Below returns the manifests below the funding range.
func (r Ranking) Below() []*Manifest { return r.Manifests[r.boundary():] }

// Report is the outcome of processing a ledger.
type Report struct {
	Reference string          // reference currency
	Threshold decimal.Decimal // funding threshold, in the reference currency
	Rates     Rates

	Stats   *Stats
	Ranking Ranking
}

// CurrencyInfo describes a currency found in financial histories.
type CurrencyInfo struct {
	Code  string
	Known bool            // present in the weight table
	Ratio decimal.Decimal // to the reference currency, zero when unknown
}

// Currencies returns the currencies seen in financial histories, sorted by code.
func (r *Report) Currencies() []CurrencyInfo {
	codes := r.Stats.Currencies()
	slices.Sort(codes)
	infos := make([]CurrencyInfo, 0, len(codes))
	for _, code := range codes {
		info := CurrencyInfo{Code: code}
		if ratio, err := r.Rates.Ratio(code); err == nil {
			info.Known, info.Ratio = true, ratio
		}
		infos = append(infos, info)
	}
	return infos
}
