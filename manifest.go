package fmstats

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// StatusActive is the only ledger status whose manifests are processed.
const StatusActive = "active"

// RawRecord is one row of the funding manifest ledger.
type RawRecord struct {
	ID           string
	URL          string
	CreatedAt    string
	UpdatedAt    string
	Status       string
	ManifestJSON string
}

// Manifest is a decoded funding manifest, with its derived figures.
type Manifest struct {
	ID        string
	URL       string
	CreatedAt time.Time
	UpdatedAt time.Time

	Entity   Entity
	Projects []Project
	Funding  Funding

	// Derived once, by Stats.Fold.
	MaxRequested decimal.Decimal // annualized max requested funding, in the reference currency
	Financials   Financials      // normalized financial history
}

// Updated reports whether the manifest has been updated after its creation.
func (m *Manifest) Updated() bool { return !m.UpdatedAt.Equal(m.CreatedAt) }

// Entity describes the organisation behind a manifest. Both fields are open sets.
type Entity struct {
	Type string
	Role string
}

// Project is a project maintained by the entity.
type Project struct {
	Licenses []string // normalized license identifiers
}

// Funding holds the requested plans and the past financial history.
type Funding struct {
	Plans   []Plan
	History []HistoryEntry
}

// Frequency of a funding plan.
type Frequency string

const (
	OneTime Frequency = "one-time"
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
)

// Plan is a requested amount at a given frequency.
type Plan struct {
	Frequency Frequency
	Amount    decimal.Decimal
}

// HistoryEntry is one year of reported finances. Absent fields are nil.
type HistoryEntry struct {
	Year     int
	Currency string
	Income   *decimal.Decimal
	Expenses *decimal.Decimal
	Taxes    *decimal.Decimal
}

// Value returns the value of field 'f', and whether it was reported at all.
func (h HistoryEntry) Value(f Field) (decimal.Decimal, bool) {
	var v *decimal.Decimal
	switch f {
	case Income:
		v = h.Income
	case Expenses:
		v = h.Expenses
	case Taxes:
		v = h.Taxes
	}
	if v == nil {
		return decimal.Zero, false
	}
	return *v, true
}

// Field identifies one of the financial figures of the history.
type Field int

const (
	Income Field = iota
	Expenses
	Taxes
)

// Fields lists all financial fields in display order.
var Fields = []Field{Income, Expenses, Taxes}

func (f Field) String() string {
	switch f {
	case Income:
		return "income"
	case Expenses:
		return "expenses"
	case Taxes:
		return "taxes"
	}
	return "unknown"
}

// Totals holds one amount per financial field.
type Totals struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Taxes    decimal.Decimal `json:"taxes"`
}

// Get returns the amount for field 'f'.
func (t Totals) Get(f Field) decimal.Decimal { return *t.field(f) }

// Add adds 'v' to field 'f'.
func (t *Totals) Add(f Field, v decimal.Decimal) {
	p := t.field(f)
	*p = p.Add(v)
}

// Floor returns a copy with every field rounded down to an integer.
func (t Totals) Floor() Totals {
	return Totals{
		Income:   t.Income.Floor(),
		Expenses: t.Expenses.Floor(),
		Taxes:    t.Taxes.Floor(),
	}
}

func (t *Totals) field(f Field) *decimal.Decimal {
	switch f {
	case Income:
		return &t.Income
	case Expenses:
		return &t.Expenses
	case Taxes:
		return &t.Taxes
	}
	panic("unknown financial field")
}

// Financials is the per-manifest reduction of the financial history.
type Financials struct {
	Totals   Totals  // floored totals, in the reference currency
	Reported []Field // fields with a strictly positive total
}

// HasReported reports whether the manifest reported a positive total for 'f'.
func (f Financials) HasReported(field Field) bool {
	return slices.Contains(f.Reported, field)
}
