package cmd

import (
	"flag"

	"github.com/etnz/bank/store"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// currencies offered by completion. Any currency known to the ledger is
// accepted.
var currencies = predict.Set{"USD", "EUR", "UAN", "GBP", "CHF", "JPY", "PLN"}

// Completion builds the shell completion of the commands registered on c,
// flags included.
func Completion(c *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub: map[string]*complete.Command{},
		Flags: map[string]complete.Predictor{
			"config":    predict.Files("*.yaml"),
			"data-file": predict.Files("*"),
			"store":     predict.Set{store.KindJSON, store.KindSQLite},
		},
	}
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
		cmd.SetFlags(fs)
		sub := &complete.Command{Flags: map[string]complete.Predictor{}}
		fs.VisitAll(func(f *flag.Flag) {
			sub.Flags[f.Name] = predictFlag(f)
		})
		root.Sub[cmd.Name()] = sub
	})
	return root
}

// predictFlag returns the predictor of a command flag. Boolean flags take
// no value.
func predictFlag(f *flag.Flag) complete.Predictor {
	if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return nil
	}
	if f.Name == "currency" {
		return currencies
	}
	return predict.Something
}
