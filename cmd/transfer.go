package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/bank"
	"github.com/google/subcommands"
)

type transferCmd struct {
	user   int
	toUser int
	from   int
	to     int
	amount string
}

func (*transferCmd) Name() string     { return "transfer" }
func (*transferCmd) Synopsis() string { return "transfer money between accounts" }
func (*transferCmd) Usage() string {
	return `bk transfer -user <id> -from <account> -to <account> -amount <amount> [-to-user <id>]

  Moves the amount, in the source account currency, to the target account.
  The amount is converted into the target currency with the configured
  exchange rates and rounded to 2 decimal places.
`
}

func (c *transferCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.user, "user", 0, "Id of the user owning the source account.")
	f.IntVar(&c.toUser, "to-user", 0, "Id of the user owning the target account. Defaults to -user.")
	f.IntVar(&c.from, "from", 0, "Source account id.")
	f.IntVar(&c.to, "to", 0, "Target account id.")
	f.StringVar(&c.amount, "amount", "", "Amount to transfer, in the source account currency.")
}

func (c *transferCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	value, err := bank.ParseAmount(c.amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount: %v\n", err)
		return subcommands.ExitUsageError
	}
	toUser := c.toUser
	if toUser == 0 {
		toUser = c.user
	}

	s, err := openSession()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	from, err := s.roster.Account(c.user, c.from)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	to, err := s.roster.Account(toUser, c.to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	conv, err := from.Transfer(to, bank.M(value, from.Currency()), s.Rates)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := s.Save(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Transferred %s from account %d to account %d\n", conv, from.ID(), to.ID())
	return subcommands.ExitSuccess
}
