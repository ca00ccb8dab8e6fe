package fmstats

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// fold folds 'm' into 's' and returns it, with its derived fields computed.
func fold(t *testing.T, s *Stats, m *Manifest) *Manifest {
	t.Helper()
	if err := s.Fold(m); err != nil {
		t.Fatalf("Fold() unexpected error: %v", err)
	}
	return m
}

func TestStats_Fold(t *testing.T) {
	s := NewStats(DefaultThreshold, DefaultRates())

	fold(t, s, &Manifest{
		Entity:   Entity{Type: "organisation", Role: "owner"},
		Projects: []Project{{Licenses: []string{"MIT", "GPL-3.0"}}, {Licenses: []string{"MIT"}}},
		Funding:  Funding{Plans: []Plan{{Yearly, D("10000")}}},
	})
	fold(t, s, &Manifest{
		Entity:   Entity{Type: "organisation", Role: "steward"},
		Projects: []Project{{Licenses: []string{"MIT"}}},
		Funding:  Funding{Plans: []Plan{{OneTime, D("9999.99")}}},
	})
	fold(t, s, &Manifest{
		Entity:   Entity{Type: "individual", Role: "owner"},
		Projects: []Project{{Licenses: nil}},
		Funding: Funding{History: []HistoryEntry{
			{Year: 2023, Currency: "USD", Income: P("10"), Expenses: P("0")},
		}},
	})
	s.Freeze()

	if s.Processed != 3 {
		t.Errorf("Processed = %d, want 3", s.Processed)
	}
	if s.MeetsThreshold != 1 {
		t.Errorf("MeetsThreshold = %d, want 1 (threshold is inclusive)", s.MeetsThreshold)
	}
	if s.ZeroRequested != 1 {
		t.Errorf("ZeroRequested = %d, want 1", s.ZeroRequested)
	}

	wantTypes := map[string]*TypeStats{
		"organisation": {Manifests: 2, Projects: 3, MaxRequested: D("10000"), MeetsThreshold: 1},
		"individual":   {Manifests: 1, Projects: 1, MaxRequested: D("0"), MeetsThreshold: 0},
	}
	if diff := cmp.Diff(wantTypes, s.Types, decimalComparer); diff != "" {
		t.Errorf("Types mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]int{"owner": 2, "steward": 1}, s.Roles); diff != "" {
		t.Errorf("Roles mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]int{"MIT": 3, "GPL-3.0": 1}, s.Licenses); diff != "" {
		t.Errorf("Licenses mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[Field]int{Income: 1}, s.Reported); diff != "" {
		t.Errorf("Reported mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"MIT", "GPL-3.0"}, s.LicenseIDs()); diff != "" {
		t.Errorf("LicenseIDs() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"individual", "organisation"}, s.EntityTypes()); diff != "" {
		t.Errorf("EntityTypes() mismatch (-want +got):\n%s", diff)
	}
}

// TestStats_FloorAfterAccumulation asserts that yearly totals are floored once,
// after all manifests have been folded, and not per manifest.
func TestStats_FloorAfterAccumulation(t *testing.T) {
	s := NewStats(DefaultThreshold, DefaultRates())
	for range 2 {
		m := fold(t, s, &Manifest{
			Entity: Entity{Type: "individual", Role: "owner"},
			Funding: Funding{History: []HistoryEntry{
				{Year: 2023, Currency: "USD", Income: P("0.6")},
			}},
		})
		if !m.Financials.Totals.Income.IsZero() {
			t.Errorf("manifest Income = %s, want 0", m.Financials.Totals.Income)
		}
	}
	s.Freeze()

	// floor(0.6 + 0.6) = 1, whereas floor(0.6) + floor(0.6) = 0
	if got := s.Years[2023].Income; !got.Equal(D("1")) {
		t.Errorf("Years[2023].Income = %s, want 1", got)
	}
	if got := s.Cumulative.Income; !got.Equal(D("1")) {
		t.Errorf("Cumulative.Income = %s, want 1", got)
	}
	if got := s.Reported[Income]; got != 2 {
		t.Errorf("Reported[Income] = %d, want 2", got)
	}
}

func TestStats_Cumulative(t *testing.T) {
	s := NewStats(DefaultThreshold, DefaultRates())
	fold(t, s, &Manifest{
		Entity: Entity{Type: "individual", Role: "owner"},
		Funding: Funding{History: []HistoryEntry{
			{Year: 2022, Currency: "USD", Income: P("10.9"), Taxes: P("1.5")},
			{Year: 2023, Currency: "USD", Income: P("20.9"), Taxes: P("1.5")},
		}},
	})
	s.Freeze()
	s.Freeze() // idempotent

	want := Totals{Income: D("30"), Expenses: D("0"), Taxes: D("2")}
	if diff := cmp.Diff(want, s.Cumulative, decimalComparer); diff != "" {
		t.Errorf("Cumulative mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{2022, 2023}, s.Years.Years()); diff != "" {
		t.Errorf("Years() mismatch (-want +got):\n%s", diff)
	}
}

func TestStats_FoldFrozen(t *testing.T) {
	s := NewStats(DefaultThreshold, DefaultRates())
	s.Freeze()
	defer func() {
		if recover() == nil {
			t.Error("Fold() on frozen stats did not panic")
		}
	}()
	s.Fold(&Manifest{})
}

func TestStats_FoldUnknownCurrency(t *testing.T) {
	s := NewStats(DefaultThreshold, DefaultRates())
	err := s.Fold(&Manifest{
		Entity: Entity{Type: "individual", Role: "owner"},
		Funding: Funding{History: []HistoryEntry{
			{Year: 2022, Currency: "USD", Income: P("10")},
			{Year: 2023, Currency: "GBP", Income: P("10")},
		}},
	})
	if !errors.Is(err, ErrUnknownCurrency) {
		t.Fatalf("Fold() error = %v, want ErrUnknownCurrency", err)
	}
	if s.Processed != 0 || len(s.Types) != 0 {
		t.Errorf("Processed = %d, Types = %v, want nothing accumulated", s.Processed, s.Types)
	}
	if len(s.Years) != 0 {
		t.Errorf("Years = %v, want no year", s.Years)
	}
	if diff := cmp.Diff([]string{"USD", "GBP"}, s.Currencies()); diff != "" {
		t.Errorf("Currencies() mismatch (-want +got):\n%s", diff)
	}
}
