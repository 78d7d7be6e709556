package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/bank"
	"github.com/google/subcommands"
)

type createAccountCmd struct {
	user     int
	account  int
	currency string
	balance  string
}

func (*createAccountCmd) Name() string     { return "create-account" }
func (*createAccountCmd) Synopsis() string { return "open an account for a user" }
func (*createAccountCmd) Usage() string {
	return `bk create-account -user <id> -account <id> [-currency <code>] [-balance <amount>]

  Opens an account with an opening balance and an empty transaction log.
  Account ids must be unique for the user.
`
}

func (c *createAccountCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.user, "user", 0, "User id.")
	f.IntVar(&c.account, "account", 0, "Account id.")
	f.StringVar(&c.currency, "currency", "USD", "Account currency, fixed for the life of the account.")
	f.StringVar(&c.balance, "balance", "0", "Opening balance.")
}

func (c *createAccountCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -account must be a positive id.")
		return subcommands.ExitUsageError
	}
	balance, err := bank.ParseAmount(c.balance)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing balance: %v\n", err)
		return subcommands.ExitUsageError
	}

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
	a, err := u.OpenAccount(c.account, balance, strings.ToUpper(c.currency))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating account: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := s.Save(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Created account %d (%s) for %s\n", a.ID(), a.Balance().Plain(), u.FullName())
	return subcommands.ExitSuccess
}
