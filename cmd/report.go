package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/bank/renderer"
	"github.com/google/subcommands"
)

type reportCmd struct {
	user int
	raw  bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display a user report" }
func (*reportCmd) Usage() string {
	return `bk report -user <id> [-raw]

  Displays the balances of a user, per currency and per account, with every
  transaction.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.user, "user", 0, "User id.")
	f.BoolVar(&c.raw, "raw", false, "Print a plain text report instead of rendered markdown.")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	u, err := s.roster.User(c.user)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.raw {
		fmt.Print(renderer.UserDetail(u))
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.UserMarkdown(u))
	return subcommands.ExitSuccess
}

type ratesCmd struct{}

func (*ratesCmd) Name() string     { return "rates" }
func (*ratesCmd) Synopsis() string { return "display the exchange rates" }
func (*ratesCmd) Usage() string {
	return `bk rates

  Displays the exchange table used by transfers. Rates are directional:
  a missing pair is never inferred from its inverse.
`
}

func (*ratesCmd) SetFlags(f *flag.FlagSet) {}

func (*ratesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RatesMarkdown(cfg.Rates))
	return subcommands.ExitSuccess
}

type checkCmd struct{}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "verify every account against its log" }
func (*checkCmd) Usage() string {
	return `bk check

  Verifies that every account balance matches its transaction log and that
  logs are numbered without gaps.
`
}

func (*checkCmd) SetFlags(f *flag.FlagSet) {}

func (*checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	if err := s.roster.Check(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%d users checked, no issue found\n", len(s.roster))
	return subcommands.ExitSuccess
}
