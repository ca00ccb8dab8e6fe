package fmstats

import (
	"errors"
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// YearlyTotals holds financial totals per year.
type YearlyTotals map[int]*Totals

// Years returns the years in ascending order.
func (y YearlyTotals) Years() []int { return slices.Sorted(maps.Keys(y)) }

// bucket returns the totals for 'year', creating them on first use.
func (y YearlyTotals) bucket(year int) *Totals {
	t, ok := y[year]
	if !ok {
		t = &Totals{}
		y[year] = t
	}
	return t
}

// HistoryAggregator normalizes the financial history of manifests into the
// reference currency, folding every entry into global per-year totals.
//
// Per-year totals are kept in full precision; they are only floored by Stats once
// every manifest has been folded.
type HistoryAggregator struct {
	Rates  Rates
	ByYear YearlyTotals

	// Lenient skips entries in an unknown currency instead of failing. Skipped
	// entries are reported to OnSkip, when set.
	Lenient bool
	OnSkip  func(entry HistoryEntry, err error)

	currencies []string // in order of appearance
}

// Currencies returns the distinct currency codes seen in history entries, in order
// of appearance, whether they could be normalized or not.
func (a *HistoryAggregator) Currencies() []string { return slices.Clone(a.currencies) }

// Aggregate reduces 'history' into the manifest Financials.
//
// An empty history yields zero totals and leaves the per-year totals untouched.
// An entry in an unknown currency fails the whole aggregation, leaving the
// per-year totals untouched, unless the aggregator is lenient.
func (a *HistoryAggregator) Aggregate(history []HistoryEntry) (Financials, error) {
	if a.ByYear == nil {
		a.ByYear = make(YearlyTotals)
	}
	entries := make([]HistoryEntry, 0, len(history))
	for _, h := range history {
		if !slices.Contains(a.currencies, h.Currency) {
			a.currencies = append(a.currencies, h.Currency)
		}
		if _, err := a.Rates.Ratio(h.Currency); err != nil {
			if a.Lenient && errors.Is(err, ErrUnknownCurrency) {
				if a.OnSkip != nil {
					a.OnSkip(h, err)
				}
				continue
			}
			return Financials{}, err
		}
		entries = append(entries, h)
	}

	var totals Totals
	for _, h := range entries {
		year := a.ByYear.bucket(h.Year)
		for _, f := range Fields {
			v, ok := h.Value(f)
			if !ok {
				continue
			}
			v, err := a.Rates.Normalize(v, h.Currency)
			if err != nil {
				return Financials{}, err
			}
			year.Add(f, v)
			totals.Add(f, v)
		}
	}

	var fin Financials
	for _, f := range Fields {
		if totals.Get(f).GreaterThan(decimal.Zero) {
			fin.Reported = append(fin.Reported, f)
		}
	}
	fin.Totals = totals.Floor()
	return fin, nil
}
