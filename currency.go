package fmstats

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// ErrUnknownCurrency is returned when an amount is expressed in a currency absent
// from the weight table.
var ErrUnknownCurrency = errors.New("unknown currency")

// Rates is a static currency weight table. Each weight is the value of one unit
// of the currency expressed in a common (arbitrary) unit, so that the ratio of two
// weights is the conversion rate between the two currencies.
type Rates struct {
	Reference string                     // currency all amounts are normalized into
	Weights   map[string]decimal.Decimal // weight per currency code
}

// DefaultRates returns the weight table as of 26 Nov 2024, expressed in INR.
//
// It is neither correct for the past nor for the future, but it is a good enough
// approximation to compare manifests.
func DefaultRates() Rates {
	return Rates{
		Reference: "USD",
		Weights: map[string]decimal.Decimal{
			"USD": decimal.RequireFromString("84.31"),
			"EUR": decimal.RequireFromString("88.59"),
			"CAD": decimal.RequireFromString("59.76"),
			"INR": decimal.NewFromInt(1),
		},
	}
}

// Validate checks that the table can convert into its reference currency.
func (r Rates) Validate() error {
	if r.Reference == "" {
		return errors.New("rates have no reference currency")
	}
	if _, ok := r.Weights[r.Reference]; !ok {
		return fmt.Errorf("reference currency %q has no weight: %w", r.Reference, ErrUnknownCurrency)
	}
	var errs error
	for _, code := range r.Currencies() {
		if !r.Weights[code].IsPositive() {
			errs = errors.Join(errs, fmt.Errorf("weight for %q must be positive, got %s", code, r.Weights[code]))
		}
	}
	return errs
}

// Known reports whether 'currency' is in the table.
func (r Rates) Known(currency string) bool {
	_, ok := r.Weights[currency]
	return ok
}

// Currencies returns the sorted list of currency codes in the table.
func (r Rates) Currencies() []string {
	return slices.Sorted(maps.Keys(r.Weights))
}

// weights returns the weights of 'currency' and of the reference currency.
func (r Rates) weights(currency string) (w, ref decimal.Decimal, err error) {
	w, ok := r.Weights[currency]
	if !ok {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w %q", ErrUnknownCurrency, currency)
	}
	ref, ok = r.Weights[r.Reference]
	if !ok {
		return decimal.Zero, decimal.Zero, fmt.Errorf("reference %w %q", ErrUnknownCurrency, r.Reference)
	}
	return w, ref, nil
}

// Ratio returns the conversion rate from 'currency' to the reference currency,
// rounded to decimal.DivisionPrecision. Use Normalize to convert amounts.
func (r Rates) Ratio(currency string) (decimal.Decimal, error) {
	w, ref, err := r.weights(currency)
	if err != nil {
		return decimal.Zero, err
	}
	return w.Div(ref), nil
}

// Normalize converts 'amount' expressed in 'currency' into the reference currency.
//
// The amount is multiplied by the weight before the division, so that a conversion
// whose exact result is whole yields that whole value.
func (r Rates) Normalize(amount decimal.Decimal, currency string) (decimal.Decimal, error) {
	w, ref, err := r.weights(currency)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(w).Div(ref), nil
}
