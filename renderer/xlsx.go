package renderer

import (
	"fmt"
	"io"

	"github.com/etnz/fmstats"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the workbook written by XLSX.
const (
	SheetStatistics = "Statistics"
	SheetYears      = "Years"
	SheetManifests  = "Manifests"
)

// XLSX writes the report as a spreadsheet, with one sheet for the counters, one for
// the annual financial totals and one for the ranked manifests. Amounts are in the
// reference currency.
func XLSX(w io.Writer, r *fmstats.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetStatistics); err != nil {
		return err
	}
	for _, name := range []string{SheetYears, SheetManifests} {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}

	s := r.Stats
	statistics := [][]any{
		{"Reference currency", r.Reference},
		{"Funding threshold", r.Threshold.InexactFloat64()},
		{"Rows", s.Rows},
		{"Processed", s.Processed},
		{"Disabled", s.Disabled},
		{"Errors", s.Errors},
		{"Meeting threshold", s.MeetsThreshold},
		{"Requesting no funding", s.ZeroRequested},
	}
	for _, field := range fmstats.Fields {
		statistics = append(statistics, []any{"Cumulative " + field.String(), s.Cumulative.Get(field).InexactFloat64()})
	}
	if err := setRows(f, SheetStatistics, statistics); err != nil {
		return err
	}

	years := [][]any{{"Year", "Income", "Expenses", "Taxes"}}
	for _, year := range s.Years.Years() {
		years = append(years, append([]any{year}, amounts(*s.Years[year])...))
	}
	if err := setRows(f, SheetYears, years); err != nil {
		return err
	}

	manifests := [][]any{{"#", "Manifest", "Entity Type", "Entity Role", "Max Requested", "Income", "Expenses", "Taxes", "Created", "Updated", "Above Threshold"}}
	for i, m := range r.Ranking.Manifests {
		row := []any{i + 1, m.URL, m.Entity.Type, m.Entity.Role, m.MaxRequested.InexactFloat64()}
		row = append(row, amounts(m.Financials.Totals)...)
		row = append(row, m.CreatedAt.Format(fmstats.TimestampFormat), m.UpdatedAt.Format(fmstats.TimestampFormat), i < len(r.Ranking.Above()))
		manifests = append(manifests, row)
	}
	if err := setRows(f, SheetManifests, manifests); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func amounts(t fmstats.Totals) []any {
	values := make([]any, 0, len(fmstats.Fields))
	for _, field := range fmstats.Fields {
		values = append(values, t.Get(field).InexactFloat64())
	}
	return values
}

// setRows writes 'rows' from the top left cell of 'sheet'.
func setRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to fill sheet %q: %w", sheet, err)
		}
	}
	return nil
}
