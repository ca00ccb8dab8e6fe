// Package cmd implements the CLI application to extract statistics from a funding manifest ledger.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fmstats"
	"github.com/google/subcommands"
)

// Commands is the list of all subcommands, in the order they are shown in the help.
var Commands = []subcommands.Command{
	&reportCmd{},
	&queryCmd{},
	&currenciesCmd{},
	&topicCmd{},
	&assistCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "fmstats.yaml", "Path to the configuration file (YAML). Ignored if it does not exist.")
var verbose = flag.Bool("v", false, "Log debug information on stderr")

// DecodeLedger reads the records of the ledger file 'name'.
func DecodeLedger(name string) ([]fmstats.RawRecord, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("could not open ledger %q: %w", name, err)
	}
	defer f.Close()

	records, err := fmstats.DecodeRecords(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode ledger %q: %w", name, err)
	}
	return records, nil
}

// ledgerArg returns the single ledger file argument of a command.
func ledgerArg(f *flag.FlagSet) (string, error) {
	if f.NArg() < 1 {
		return "", fmt.Errorf("missing ledger file argument")
	}
	return f.Arg(0), nil
}
