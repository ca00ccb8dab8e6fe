package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fmstats"
	"github.com/google/subcommands"
)

type queryCmd struct {
	raw bool
}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "evaluate a JSONPath expression on every active manifest" }
func (*queryCmd) Usage() string {
	return `fmstats query [-raw] <ledger.csv> <jsonpath>

  Prints, for every active manifest where the expression resolves, the row id
  and the value found.

Usage Examples:
$ fmstats query funding-manifest.csv '$.entity.type'

`
}

func (c *queryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "Print one JSON value per line, without the row id")
}

func (c *queryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintf(os.Stderr, "Error: expected a ledger file and a JSONPath expression\n")
		return subcommands.ExitUsageError
	}
	records, err := DecodeLedger(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	results, err := fmstats.Query(ctx, records, f.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	for _, r := range results {
		value, err := json.Marshal(r.Value)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding value of row %s: %v\n", r.RowID, err)
			return subcommands.ExitFailure
		}
		if c.raw {
			fmt.Println(string(value))
			continue
		}
		fmt.Printf("%s\t%s\n", r.RowID, value)
	}
	return subcommands.ExitSuccess
}
