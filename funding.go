package fmstats

import "github.com/shopspring/decimal"

// annualizers converts the max amount of a frequency into a yearly amount.
var annualizers = map[Frequency]decimal.Decimal{
	OneTime: decimal.NewFromInt(1),
	Monthly: decimal.NewFromInt(12),
	Yearly:  decimal.NewFromInt(1),
}

// MaxRequested reduces funding plans into the single requested funding figure
// of a manifest.
//
// Plans are bucketed by frequency keeping the max amount of each, buckets are
// annualized (monthly x12) and the max of the annualized amounts is returned.
// Unknown frequencies are ignored, and no plans at all yields zero.
func MaxRequested(plans []Plan) decimal.Decimal {
	maxByFreq := make(map[Frequency]decimal.Decimal)
	for _, p := range plans {
		if m, ok := maxByFreq[p.Frequency]; !ok || p.Amount.GreaterThan(m) {
			maxByFreq[p.Frequency] = p.Amount
		}
	}

	maxFR := decimal.Zero
	for freq, amount := range maxByFreq {
		factor, ok := annualizers[freq]
		if !ok {
			continue
		}
		maxFR = decimal.Max(maxFR, amount.Mul(factor))
	}
	return maxFR
}
