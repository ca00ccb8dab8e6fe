package fmstats

import (
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// reportJSON is the exported shape of a Report.
type reportJSON struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`

	Reference string          `json:"reference_currency"`
	Threshold decimal.Decimal `json:"threshold"`

	Rows           int `json:"rows"`
	Processed      int `json:"processed"`
	Disabled       int `json:"disabled"`
	Errors         int `json:"errors"`
	MeetsThreshold int `json:"meets_threshold"`
	ZeroRequested  int `json:"zero_requested"`

	Cumulative Totals                `json:"cumulative"`
	Types      map[string]*TypeStats `json:"entity_types"`
	Roles      map[string]int        `json:"entity_roles"`
	Licenses   map[string]int        `json:"licenses"`
	Years      map[int]*Totals       `json:"years"`
	Reported   map[string]int        `json:"reported"`
	Currencies []string              `json:"currencies"`

	Diagnostics []string `json:"diagnostics,omitempty"`

	Above []manifestJSON `json:"above_threshold"`
	Below []manifestJSON `json:"below_threshold"`
}

type manifestJSON struct {
	ID           string          `json:"id"`
	URL          string          `json:"url"`
	EntityType   string          `json:"entity_type"`
	EntityRole   string          `json:"entity_role"`
	MaxRequested decimal.Decimal `json:"max_requested"`
	Totals       Totals          `json:"totals"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func newManifestsJSON(manifests []*Manifest) []manifestJSON {
	out := make([]manifestJSON, 0, len(manifests))
	for _, m := range manifests {
		out = append(out, manifestJSON{
			ID:           m.ID,
			URL:          m.URL,
			EntityType:   m.Entity.Type,
			EntityRole:   m.Entity.Role,
			MaxRequested: m.MaxRequested,
			Totals:       m.Financials.Totals,
			CreatedAt:    m.CreatedAt,
			UpdatedAt:    m.UpdatedAt,
		})
	}
	return out
}

// EncodeReport writes 'r' as an indented JSON document, identified by a fresh run id.
func EncodeReport(w io.Writer, r *Report) error {
	s := r.Stats
	out := reportJSON{
		RunID:          uuid.NewString(),
		GeneratedAt:    time.Now().UTC(),
		Reference:      r.Reference,
		Threshold:      r.Threshold,
		Rows:           s.Rows,
		Processed:      s.Processed,
		Disabled:       s.Disabled,
		Errors:         s.Errors,
		MeetsThreshold: s.MeetsThreshold,
		ZeroRequested:  s.ZeroRequested,
		Cumulative:     s.Cumulative,
		Types:          s.Types,
		Roles:          s.Roles,
		Licenses:       s.Licenses,
		Years:          s.Years,
		Reported:       make(map[string]int),
		Currencies:     s.Currencies(),
		Above:          newManifestsJSON(r.Ranking.Above()),
		Below:          newManifestsJSON(r.Ranking.Below()),
	}
	for _, f := range Fields {
		out.Reported[f.String()] = s.Reported[f]
	}
	for _, d := range s.Diagnostics {
		out.Diagnostics = append(out.Diagnostics, d.String())
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
