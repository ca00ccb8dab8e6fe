package fmstats

import (
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// DefaultThreshold is the minimum requested funding, in the reference currency,
// for a manifest to be in the funding range.
var DefaultThreshold = decimal.NewFromInt(10000)

// TypeStats are the statistics of one entity type.
type TypeStats struct {
	Manifests      int             `json:"manifests"`
	Projects       int             `json:"projects"`
	MaxRequested   decimal.Decimal `json:"max_requested"`
	MeetsThreshold int             `json:"meets_threshold"`
}

// Diagnostic is a recoverable fault found on a row.
type Diagnostic struct {
	RowID string
	Err   error
}

func (d Diagnostic) String() string { return "At row=" + d.RowID + ", error:" + d.Err.Error() }

// Stats accumulates the global statistics of a ledger, one manifest at a time.
//
// Stats is not safe for concurrent use: it is the single serialization point of
// a pass.
type Stats struct {
	Threshold decimal.Decimal

	Rows           int // ledger rows, header excluded
	Processed      int // manifests folded
	Disabled       int
	Errors         int
	MeetsThreshold int // manifests requesting at least Threshold
	ZeroRequested  int // manifests requesting no specific funding

	Types    map[string]*TypeStats
	Roles    map[string]int
	Licenses map[string]int

	// Years holds the normalized financial totals per year. They are floored by Freeze.
	Years YearlyTotals
	// Cumulative is the sum over all years of the floored yearly totals. Set by Freeze.
	Cumulative Totals
	// Reported counts, per field, the manifests reporting a positive total.
	Reported map[Field]int

	Diagnostics []Diagnostic

	history *HistoryAggregator
	frozen  bool
}

// NewStats returns empty statistics, normalizing history with 'rates'.
func NewStats(threshold decimal.Decimal, rates Rates) *Stats {
	years := make(YearlyTotals)
	return &Stats{
		Threshold: threshold,
		Types:     make(map[string]*TypeStats),
		Roles:     make(map[string]int),
		Licenses:  make(map[string]int),
		Years:     years,
		Reported:  make(map[Field]int),
		history:   &HistoryAggregator{Rates: rates, ByYear: years},
	}
}

// History returns the aggregator used to normalize financial histories.
func (s *Stats) History() *HistoryAggregator { return s.history }

// Currencies returns the currencies seen in financial histories, in order of appearance.
func (s *Stats) Currencies() []string { return s.history.Currencies() }

// Row counts a ledger row.
func (s *Stats) Row() { s.Rows++ }

// Disable counts a row skipped for not being active.
func (s *Stats) Disable() { s.Disabled++ }

// Fail counts a row skipped because of a recoverable fault.
func (s *Stats) Fail(rowID string, err error) {
	s.Errors++
	s.Diagnostics = append(s.Diagnostics, Diagnostic{RowID: rowID, Err: err})
}

// Meets reports whether 'amount' is in the funding range.
func (s *Stats) Meets(amount decimal.Decimal) bool {
	return amount.GreaterThanOrEqual(s.Threshold)
}

// derive computes the derived fields of 'm': its max requested funding, and its
// normalized financials, folding its history into the yearly totals.
func (s *Stats) derive(m *Manifest) error {
	m.MaxRequested = MaxRequested(m.Funding.Plans)
	fin, err := s.history.Aggregate(m.Funding.History)
	if err != nil {
		return err
	}
	m.Financials = fin
	return nil
}

// Fold computes the derived fields of 'm' (MaxRequested and Financials) and
// accumulates it.
//
// On error, typically ErrUnknownCurrency, 'm' is not accumulated: only its
// currencies are recorded.
func (s *Stats) Fold(m *Manifest) error {
	if s.frozen {
		panic("fold on frozen stats")
	}
	if err := s.derive(m); err != nil {
		return err
	}
	s.Processed++
	meets := s.Meets(m.MaxRequested)
	if meets {
		s.MeetsThreshold++
	}
	if m.MaxRequested.IsZero() {
		s.ZeroRequested++
	}

	for _, prj := range m.Projects {
		for _, lic := range prj.Licenses {
			s.Licenses[lic]++
		}
	}

	t, ok := s.Types[m.Entity.Type]
	if !ok {
		t = &TypeStats{MaxRequested: m.MaxRequested}
		s.Types[m.Entity.Type] = t
	}
	t.Manifests++
	t.Projects += len(m.Projects)
	t.MaxRequested = decimal.Max(t.MaxRequested, m.MaxRequested)
	if meets {
		t.MeetsThreshold++
	}

	s.Roles[m.Entity.Role]++

	for _, f := range m.Financials.Reported {
		s.Reported[f]++
	}
	return nil
}

// Freeze ends the pass: yearly totals are floored and summed into Cumulative.
// Stats must not be folded into afterwards. Freeze is idempotent.
func (s *Stats) Freeze() {
	if s.frozen {
		return
	}
	s.frozen = true
	var cumulative Totals
	for _, year := range s.Years.Years() {
		floored := s.Years[year].Floor()
		*s.Years[year] = floored
		for _, f := range Fields {
			cumulative.Add(f, floored.Get(f))
		}
	}
	s.Cumulative = cumulative
}

// Frozen reports whether Freeze has been called.
func (s *Stats) Frozen() bool { return s.frozen }

// EntityTypes returns the entity types in alphabetical order.
func (s *Stats) EntityTypes() []string { return slices.Sorted(maps.Keys(s.Types)) }

// EntityRoles returns the entity roles in alphabetical order.
func (s *Stats) EntityRoles() []string { return slices.Sorted(maps.Keys(s.Roles)) }

// LicenseIDs returns the licenses by decreasing frequency, then alphabetically.
func (s *Stats) LicenseIDs() []string {
	ids := slices.Sorted(maps.Keys(s.Licenses))
	slices.SortStableFunc(ids, func(a, b string) int { return s.Licenses[b] - s.Licenses[a] })
	return ids
}
