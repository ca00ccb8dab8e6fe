package fmstats

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestNormalizeLicense(t *testing.T) {
	testCases := []struct {
		license string
		want    string
	}{
		{"spdx:MIT", "MIT"},
		{"sdpx:GPL-3.0", "GPL-3.0"}, // common misspelling
		{"spdx:", ""},
		{"MIT", "MIT"},
		{"SPDX:MIT", "SPDX:MIT"},
		{"spdx-MIT", "spdx-MIT"},
		{"", ""},
	}
	for _, tc := range testCases {
		if got := NormalizeLicense(tc.license); got != tc.want {
			t.Errorf("NormalizeLicense(%q) = %q, want %q", tc.license, got, tc.want)
		}
	}
}

const validManifest = `{
	"entity": {"type": "organisation", "role": "owner"},
	"projects": [
		{"licenses": ["spdx:MIT", "sdpx:Apache-2.0"]},
		{"licenses": ["BSD-3-Clause"]}
	],
	"funding": {
		"plans": [
			{"frequency": "monthly", "amount": 900},
			{"frequency": "one-time", "amount": 5000.5}
		],
		"history": [
			{"year": 2023, "currency": "EUR", "income": 100, "taxes": 0}
		]
	}
}`

func TestParser_Parse(t *testing.T) {
	p := &Parser{}
	raw := active("42", validManifest)
	raw.UpdatedAt = "2024-12-01T08:30:00Z"

	got, err := p.Parse(raw)
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	want := &Manifest{
		ID:        "42",
		URL:       raw.URL,
		CreatedAt: time.Date(2024, time.November, 20, 10, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, time.December, 1, 8, 30, 0, 0, time.UTC),
		Entity:    Entity{Type: "organisation", Role: "owner"},
		Projects: []Project{
			{Licenses: []string{"MIT", "Apache-2.0"}},
			{Licenses: []string{"BSD-3-Clause"}},
		},
		Funding: Funding{
			Plans: []Plan{
				{Frequency: Monthly, Amount: D("900")},
				{Frequency: OneTime, Amount: D("5000.5")},
			},
			History: []HistoryEntry{
				{Year: 2023, Currency: "EUR", Income: P("100"), Taxes: P("0")},
			},
		},
	}
	if diff := cmp.Diff(want, got, decimalComparer); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
	if !got.Updated() {
		t.Error("Updated() = false, want true")
	}
}

func TestParser_Disabled(t *testing.T) {
	raw := active("1", "not even json")
	raw.Status = "disabled"
	_, err := (&Parser{}).Parse(raw)
	if !errors.Is(err, ErrDisabled) {
		t.Errorf("Parse() error = %v, want ErrDisabled", err)
	}
}

func TestParser_MalformedJSON(t *testing.T) {
	_, err := (&Parser{}).Parse(active("7", `{"entity": {`))
	var malformed *MalformedJSONError
	if !errors.As(err, &malformed) {
		t.Fatalf("Parse() error = %v, want a *MalformedJSONError", err)
	}
	if malformed.RowID != "7" {
		t.Errorf("RowID = %q, want %q", malformed.RowID, "7")
	}
	if malformed.Err == nil {
		t.Error("Err = nil, want the decoding error")
	}
}

func TestParser_MalformedShape(t *testing.T) {
	testCases := []struct {
		name     string
		manifest string
	}{
		{"no entity", `{"projects": [], "funding": {"plans": []}}`},
		{"no entity type", `{"entity": {"role": "owner"}, "projects": [], "funding": {"plans": []}}`},
		{"no projects", `{"entity": {"type": "individual", "role": "owner"}, "funding": {"plans": []}}`},
		{"no funding", `{"entity": {"type": "individual", "role": "owner"}, "projects": []}`},
		{"no plans", `{"entity": {"type": "individual", "role": "owner"}, "projects": [], "funding": {}}`},
		{"no licenses", `{"entity": {"type": "individual", "role": "owner"}, "projects": [{}], "funding": {"plans": []}}`},
		{"no plan amount", `{"entity": {"type": "individual", "role": "owner"}, "projects": [], "funding": {"plans": [{"frequency": "monthly"}]}}`},
		{"no history year", `{"entity": {"type": "individual", "role": "owner"}, "projects": [], "funding": {"plans": [], "history": [{"currency": "USD"}]}}`},
		{"fractional year", `{"entity": {"type": "individual", "role": "owner"}, "projects": [], "funding": {"plans": [], "history": [{"year": 2023.5, "currency": "USD"}]}}`},
		{"wrong type", `{"entity": {"type": 12, "role": "owner"}, "projects": [], "funding": {"plans": []}}`},
		{"not an object", `[1, 2, 3]`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := (&Parser{}).Parse(active("3", tc.manifest))
			var rowErr *RowError
			if !errors.As(err, &rowErr) {
				t.Fatalf("Parse() error = %v, want a *RowError", err)
			}
			if !errors.Is(err, ErrMalformedManifest) {
				t.Errorf("Parse() error = %v, want ErrMalformedManifest", err)
			}
			if rowErr.RowID != "3" {
				t.Errorf("RowID = %q, want %q", rowErr.RowID, "3")
			}
		})
	}
}

func TestParser_BadDate(t *testing.T) {
	failing := DateParserFunc(func(s string) (time.Time, error) { return time.Time{}, errors.New("no date here") })
	raw := active("5", `{"entity": {"type": "individual", "role": "owner"}, "projects": [], "funding": {"plans": []}}`)

	_, err := (&Parser{Dates: failing}).Parse(raw)
	var rowErr *RowError
	if !errors.As(err, &rowErr) {
		t.Fatalf("Parse() error = %v, want a *RowError", err)
	}
	if rowErr.Field != "created_at" {
		t.Errorf("Field = %q, want %q", rowErr.Field, "created_at")
	}
}

func TestParser_EmptyHistory(t *testing.T) {
	raw := active("9", `{"entity": {"type": "individual", "role": "owner"}, "projects": [], "funding": {"plans": [], "history": null}}`)
	m, err := (&Parser{}).Parse(raw)
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	if len(m.Funding.History) != 0 {
		t.Errorf("History = %v, want empty", m.Funding.History)
	}
}

func TestParser_IntegralYear(t *testing.T) {
	raw := active("10", `{"entity": {"type": "individual", "role": "owner"}, "projects": [], "funding": {"plans": [], "history": [{"year": 2023.0, "currency": "USD", "income": 1}, {"year": 2023, "currency": "USD", "income": 2}]}}`)
	m, err := (&Parser{}).Parse(raw)
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	var years []int
	for _, h := range m.Funding.History {
		years = append(years, h.Year)
	}
	if diff := cmp.Diff([]int{2023, 2023}, years); diff != "" {
		t.Errorf("years mismatch (-want +got):\n%s", diff)
	}
}
