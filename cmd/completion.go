package cmd

import (
	"flag"

	"github.com/etnz/fmstats/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion of a subcommand, derived from its flags.
func Completion(c subcommands.Command) *complete.Command {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(fs)

	comp := &complete.Command{Flags: map[string]complete.Predictor{}}
	fs.VisitAll(func(f *flag.Flag) {
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			comp.Flags[f.Name] = predict.Nothing
			return
		}
		switch f.Name {
		case "json":
			comp.Flags[f.Name] = predict.Files("*.json")
		case "html":
			comp.Flags[f.Name] = predict.Files("*.html")
		case "xlsx":
			comp.Flags[f.Name] = predict.Files("*.xlsx")
		default:
			comp.Flags[f.Name] = predict.Something
		}
	})

	switch c.Name() {
	case "topic":
		topics, _ := docs.GetAllTopics()
		comp.Args = predict.Set(topics)
	default:
		comp.Args = predict.Files("*.csv")
	}
	return comp
}
