package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/fmstats/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	name := path.Base(os.Args[0])
	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	completion := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: map[string]complete.Predictor{"config": predict.Files("*.yaml"), "v": predict.Nothing},
	}
	for _, c := range cmd.Commands {
		commander.Register(c, "")
		completion.Sub[c.Name()] = cmd.Completion(c)
	}
	completion.Complete(name)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
