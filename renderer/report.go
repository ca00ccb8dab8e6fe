package renderer

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/etnz/fmstats"
	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"
)

// ReportMarkdown renders the statistics followed by the ranked listing.
func ReportMarkdown(r *fmstats.Report) string {
	return StatsMarkdown(r) + "\n" + ListingMarkdown(r)
}

// StatsMarkdown renders the aggregate sections of a report.
func StatsMarkdown(r *fmstats.Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	s := r.Stats
	money := func(d decimal.Decimal) string { return fmstats.M(d, r.Reference).String() }

	doc.H1("Funding Manifests")
	doc.Table(md.TableSet{
		Header: []string{"Manifests", "Count"},
		Rows: [][]string{
			{"Total", strconv.Itoa(s.Rows)},
			{"Disabled", strconv.Itoa(s.Disabled)},
			{"Errors", strconv.Itoa(s.Errors)},
			{"Processed", strconv.Itoa(s.Processed)},
			{"Above funding threshold", strconv.Itoa(s.MeetsThreshold)},
			{"Requesting no specific (0) funding", strconv.Itoa(s.ZeroRequested)},
		},
	})

	if len(s.Diagnostics) > 0 {
		doc.H2("Errors")
		items := make([]string, 0, len(s.Diagnostics))
		for _, d := range s.Diagnostics {
			items = append(items, d.String())
		}
		doc.BulletList(items...)
	}

	doc.H2("Cumulative Financials")
	doc.PlainText("For all years reported in manifests.")
	doc.Table(totalsTable("Field", r.Reference, []string{"All years"}, []fmstats.Totals{s.Cumulative}))

	doc.H2("Entity Types")
	types := md.TableSet{Header: []string{"Type", "Manifests", "Projects", "Max Requested", "Above Threshold"}}
	for _, name := range s.EntityTypes() {
		t := s.Types[name]
		types.Rows = append(types.Rows, []string{
			label(name),
			strconv.Itoa(t.Manifests),
			strconv.Itoa(t.Projects),
			money(t.MaxRequested),
			strconv.Itoa(t.MeetsThreshold),
		})
	}
	doc.Table(types)

	doc.H2("Entity Roles")
	roles := md.TableSet{Header: []string{"Role", "Manifests"}}
	for _, name := range s.EntityRoles() {
		roles.Rows = append(roles.Rows, []string{label(name), strconv.Itoa(s.Roles[name])})
	}
	doc.Table(roles)

	doc.H2("Licenses")
	licenses := md.TableSet{Header: []string{"License", "Projects"}}
	for _, id := range s.LicenseIDs() {
		licenses.Rows = append(licenses.Rows, []string{label(id), strconv.Itoa(s.Licenses[id])})
	}
	doc.Table(licenses)

	doc.H2("Annual Financial Totals")
	var years []string
	var totals []fmstats.Totals
	for _, y := range s.Years.Years() {
		years = append(years, strconv.Itoa(y))
		totals = append(totals, *s.Years[y])
	}
	doc.Table(totalsTable("Year", r.Reference, years, totals))

	doc.H2("Finances Reported by Entities")
	reported := md.TableSet{Header: []string{"Field", "Manifests"}}
	for _, f := range fmstats.Fields {
		reported.Rows = append(reported.Rows, []string{f.String(), strconv.Itoa(s.Reported[f])})
	}
	doc.Table(reported)

	doc.H2("Currencies")
	doc.PlainText(strings.Join(s.Currencies(), ", "))

	return doc.String()
}

// ListingMarkdown renders the manifests ranked by requested funding, split at the
// funding threshold.
func ListingMarkdown(r *fmstats.Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	threshold := fmt.Sprintf("%sk %s", r.Threshold.Div(decimal.NewFromInt(1000)).Floor(), r.Reference)

	doc.H2("Manifests above funding threshold " + threshold)
	doc.Table(listingTable(r, r.Ranking.Above(), 0))

	doc.H2("Manifests below funding threshold " + threshold)
	doc.Table(listingTable(r, r.Ranking.Below(), len(r.Ranking.Above())))

	return doc.String()
}

func listingTable(r *fmstats.Report, manifests []*fmstats.Manifest, offset int) md.TableSet {
	table := md.TableSet{
		Header: []string{"#", "Manifest", "Entity Type", "Max Requested", "Income", "Expenses", "Taxes", "Created", "Updated"},
	}
	for i, m := range manifests {
		money := func(d decimal.Decimal) string { return fmstats.M(d, r.Reference).String() }
		updated := ""
		if m.Updated() {
			updated = fmt.Sprintf("%s (%s)", m.UpdatedAt.Format(fmstats.TimestampFormat), FormatDelta(m.UpdatedAt.Sub(m.CreatedAt)))
		}
		totals := m.Financials.Totals
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(offset + i + 1),
			cell(m.URL),
			label(m.Entity.Type),
			money(m.MaxRequested),
			money(totals.Income),
			money(totals.Expenses),
			money(totals.Taxes),
			m.CreatedAt.Format(fmstats.TimestampFormat),
			updated,
		})
	}
	return table
}

// totalsTable renders one row of financial totals per label.
func totalsTable(header, reference string, labels []string, totals []fmstats.Totals) md.TableSet {
	table := md.TableSet{Header: []string{header, "Income", "Expenses", "Taxes"}}
	for i, t := range totals {
		row := []string{labels[i]}
		for _, f := range fmstats.Fields {
			row = append(row, fmstats.M(t.Get(f), reference).String())
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

// label makes empty category names visible, and escapes them for a table cell.
func label(s string) string {
	if s == "" {
		return `""`
	}
	return cell(s)
}

// cell escapes the column separator of markdown tables.
func cell(s string) string { return strings.ReplaceAll(s, "|", `\|`) }
