package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fmstats"
	"github.com/google/subcommands"
	md "github.com/nao1215/markdown"
)

type currenciesCmd struct{}

func (*currenciesCmd) Name() string { return "currencies" }
func (*currenciesCmd) Synopsis() string {
	return "list the currencies used in the financial histories of a ledger"
}
func (*currenciesCmd) Usage() string {
	return `fmstats currencies <ledger.csv>

  Lists the currencies found in the financial histories of active manifests, and
  their conversion ratio into the reference currency. Unknown currencies are
  listed instead of failing.
`
}

func (c *currenciesCmd) SetFlags(f *flag.FlagSet) {}

func (c *currenciesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name, err := ledgerArg(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	opts, err := loadOptions(true)
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

	rows := [][]string{}
	for _, info := range report.Currencies() {
		ratio := "unknown"
		if info.Known {
			ratio = info.Ratio.StringFixed(4)
		}
		rows = append(rows, []string{info.Code, ratio})
	}
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H2("Currencies")
	doc.Table(md.TableSet{Header: []string{"Currency", "Ratio to " + report.Reference}, Rows: rows})
	printMarkdown(doc.String())
	return subcommands.ExitSuccess
}
