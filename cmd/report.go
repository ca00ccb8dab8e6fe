package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fmstats"
	"github.com/etnz/fmstats/renderer"
	"github.com/google/subcommands"
)

type reportCmd struct {
	jsonFile string
	htmlFile string
	xlsxFile string
	lenient  bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "report statistics and ranking of a funding manifest ledger" }
func (*reportCmd) Usage() string {
	return `fmstats report [-json <file>] [-html <file>] [-xlsx <file>] [-lenient] <ledger.csv>

  Computes the statistics of all active manifests in the ledger, and lists them
  ranked by requested funding, above and below the funding threshold.

Usage Examples:
$ fmstats report funding-manifest.csv
$ fmstats report -json report.json funding-manifest.csv

`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.jsonFile, "json", "", "Also write the report as JSON into this file")
	f.StringVar(&c.htmlFile, "html", "", "Also write the report as HTML into this file")
	f.StringVar(&c.xlsxFile, "xlsx", "", "Also write the report as a spreadsheet into this file")
	f.BoolVar(&c.lenient, "lenient", false, "Skip history entries in unknown currencies instead of failing")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name, err := ledgerArg(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	opts, err := loadOptions(c.lenient)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid configuration: %v\n", err)
		return subcommands.ExitUsageError
	}
	defer opts.Logger.Sync()

	records, err := DecodeLedger(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	report, err := fmstats.Process(records, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error processing ledger %q: %v\n", name, err)
		return subcommands.ExitFailure
	}

	md := renderer.ReportMarkdown(report)
	printMarkdown(md)

	if c.jsonFile != "" {
		if err := writeJSON(c.jsonFile, report); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	if c.htmlFile != "" {
		html, err := renderer.HTML(md)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering html: %v\n", err)
			return subcommands.ExitFailure
		}
		if err := os.WriteFile(c.htmlFile, []byte(html), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", c.htmlFile, err)
			return subcommands.ExitFailure
		}
	}
	if c.xlsxFile != "" {
		if err := writeXLSX(c.xlsxFile, report); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}

func writeXLSX(name string, report *fmstats.Report) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("could not create %q: %w", name, err)
	}
	if err := renderer.XLSX(f, report); err != nil {
		f.Close()
		return fmt.Errorf("could not write %q: %w", name, err)
	}
	return f.Close()
}

func writeJSON(name string, report *fmstats.Report) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("could not create %q: %w", name, err)
	}
	if err := fmstats.EncodeReport(f, report); err != nil {
		f.Close()
		return fmt.Errorf("could not write %q: %w", name, err)
	}
	return f.Close()
}
