package fmstats

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrDisabled is returned for rows whose status is not active.
	ErrDisabled = errors.New("manifest is not active")
	// ErrMalformedManifest is returned for valid JSON documents that do not have
	// the manifest shape.
	ErrMalformedManifest = errors.New("malformed manifest")
)

// MalformedJSONError is returned when the manifest column is not valid JSON.
// It does not abort a run: the row is counted as an error and skipped.
type MalformedJSONError struct {
	RowID string
	Err   error
}

func (e *MalformedJSONError) Error() string { return fmt.Sprintf("At row=%s, error:%v", e.RowID, e.Err) }
func (e *MalformedJSONError) Unwrap() error { return e.Err }

// RowError locates a fatal fault in the ledger.
type RowError struct {
	RowID string
	Field string
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %s: field %q: %v", e.RowID, e.Field, e.Err)
}
func (e *RowError) Unwrap() error { return e.Err }

// license prefixes stripped from license identifiers. "sdpx:" is a misspelling
// found in the wild.
var licensePrefixes = []string{"spdx:", "sdpx:"}

// NormalizeLicense strips the SPDX prefix of a license identifier.
func NormalizeLicense(license string) string {
	for _, prefix := range licensePrefixes {
		if strings.HasPrefix(license, prefix) {
			return license[len(prefix):]
		}
	}
	return license
}

// Parser decodes ledger rows into manifests.
type Parser struct {
	Dates DateParser
}

// Parse decodes 'raw' into a Manifest.
//
// It returns ErrDisabled for inactive rows and a *MalformedJSONError when the
// manifest is not valid JSON; both are recoverable. Any other error is a
// structural fault (*RowError).
func (p *Parser) Parse(raw RawRecord) (*Manifest, error) {
	if raw.Status != StatusActive {
		return nil, ErrDisabled
	}
	data := []byte(raw.ManifestJSON)
	if !json.Valid(data) {
		var v any
		err := json.Unmarshal(data, &v)
		if err == nil {
			err = errors.New("invalid JSON")
		}
		return nil, &MalformedJSONError{RowID: raw.ID, Err: err}
	}

	var doc manifestDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &RowError{RowID: raw.ID, Field: "manifest_json", Err: fmt.Errorf("%w: %w", ErrMalformedManifest, err)}
	}
	m, err := doc.manifest()
	if err != nil {
		return nil, &RowError{RowID: raw.ID, Field: "manifest_json", Err: err}
	}
	m.ID, m.URL = raw.ID, raw.URL

	dates := p.Dates
	if dates == nil {
		dates = FuzzyDates
	}
	if m.CreatedAt, err = dates.Parse(raw.CreatedAt); err != nil {
		return nil, &RowError{RowID: raw.ID, Field: "created_at", Err: err}
	}
	if m.UpdatedAt, err = dates.Parse(raw.UpdatedAt); err != nil {
		return nil, &RowError{RowID: raw.ID, Field: "updated_at", Err: err}
	}
	return m, nil
}

// manifestDoc is the JSON shape of a manifest. Pointers mark required keys.
type manifestDoc struct {
	Entity *struct {
		Type *string `json:"type"`
		Role *string `json:"role"`
	} `json:"entity"`
	Projects *[]struct {
		Licenses *[]string `json:"licenses"`
	} `json:"projects"`
	Funding *struct {
		Plans *[]struct {
			Frequency *Frequency      `json:"frequency"`
			Amount    *decimal.Decimal `json:"amount"`
		} `json:"plans"`
		History []struct {
			Year     *decimal.Decimal `json:"year"`
			Currency *string          `json:"currency"`
			Income   *decimal.Decimal `json:"income"`
			Expenses *decimal.Decimal `json:"expenses"`
			Taxes    *decimal.Decimal `json:"taxes"`
		} `json:"history"`
	} `json:"funding"`
}

func missing(key string) error { return fmt.Errorf("%w: missing %q", ErrMalformedManifest, key) }

// manifest converts the document into a Manifest, checking required keys.
func (d manifestDoc) manifest() (*Manifest, error) {
	switch {
	case d.Entity == nil:
		return nil, missing("entity")
	case d.Entity.Type == nil:
		return nil, missing("entity.type")
	case d.Entity.Role == nil:
		return nil, missing("entity.role")
	case d.Projects == nil:
		return nil, missing("projects")
	case d.Funding == nil:
		return nil, missing("funding")
	case d.Funding.Plans == nil:
		return nil, missing("funding.plans")
	}

	m := &Manifest{
		Entity: Entity{Type: *d.Entity.Type, Role: *d.Entity.Role},
	}

	for i, prj := range *d.Projects {
		if prj.Licenses == nil {
			return nil, missing(fmt.Sprintf("projects[%d].licenses", i))
		}
		licenses := make([]string, 0, len(*prj.Licenses))
		for _, lic := range *prj.Licenses {
			licenses = append(licenses, NormalizeLicense(lic))
		}
		m.Projects = append(m.Projects, Project{Licenses: licenses})
	}

	for i, plan := range *d.Funding.Plans {
		if plan.Frequency == nil {
			return nil, missing(fmt.Sprintf("funding.plans[%d].frequency", i))
		}
		if plan.Amount == nil {
			return nil, missing(fmt.Sprintf("funding.plans[%d].amount", i))
		}
		m.Funding.Plans = append(m.Funding.Plans, Plan{Frequency: *plan.Frequency, Amount: *plan.Amount})
	}

	for i, h := range d.Funding.History {
		if h.Year == nil {
			return nil, missing(fmt.Sprintf("funding.history[%d].year", i))
		}
		if !h.Year.Equal(h.Year.Truncate(0)) {
			return nil, fmt.Errorf("%w: funding.history[%d].year %s is not an integer", ErrMalformedManifest, i, h.Year)
		}
		if h.Currency == nil {
			return nil, missing(fmt.Sprintf("funding.history[%d].currency", i))
		}
		m.Funding.History = append(m.Funding.History, HistoryEntry{
			Year:     int(h.Year.IntPart()),
			Currency: *h.Currency,
			Income:   h.Income,
			Expenses: h.Expenses,
			Taxes:    h.Taxes,
		})
	}
	return m, nil
}
