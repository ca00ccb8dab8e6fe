package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/fmstats"
	"github.com/etnz/fmstats/agent"
	"github.com/etnz/fmstats/renderer"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

type assistCmd struct {
	model string
}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "chat with an AI reviewer about a ledger report" }
func (*assistCmd) Usage() string {
	return `fmstats assist [-model <name>] <ledger.csv> [<prompt>...]

  Starts an interactive session with an AI reviewer that knows the report of the
  ledger and can query its manifests. Type "bye" to exit.
  Requires a Gemini API key in GOOGLE_API_KEY.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.model, "model", agent.DefaultModel, "Gemini model to use")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name, err := ledgerArg(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	var prompts []string
	if f.NArg() > 1 {
		prompts = append(prompts, strings.Join(f.Args()[1:], " "))
	}

	opts, err := loadOptions(false)
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

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	reviewer := agent.NewReviewer(renderer.StatsMarkdown(report), records)
	reviewer.ModelName = c.model
	if err := reviewer.Start(ctx, client); err != nil {
		fmt.Fprintln(os.Stderr, "Error starting the reviewer:", err)
		return subcommands.ExitFailure
	}

	if err := agent.New(os.Stdout, os.Stdin, reviewer).Run(ctx, prompts...); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
