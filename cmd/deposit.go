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

// accountOperation holds the flags shared by deposit and withdraw.
type accountOperation struct {
	user     int
	account  int
	amount   string
	currency string
}

func (c *accountOperation) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.user, "user", 0, "User id.")
	f.IntVar(&c.account, "account", 0, "Account id.")
	f.StringVar(&c.amount, "amount", "", "Amount, e.g. 12.50.")
	f.StringVar(&c.currency, "currency", "", "Currency of the amount. Defaults to the account currency.")
}

// run loads the account, applies op and saves the result.
func (c *accountOperation) run(op func(a *bank.Account, amount bank.Money) (bank.Transaction, error)) subcommands.ExitStatus {
	value, err := bank.ParseAmount(c.amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount: %v\n", err)
		return subcommands.ExitUsageError
	}

	s, err := openSession()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	a, err := s.roster.Account(c.user, c.account)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	currency := strings.ToUpper(c.currency)
	if currency == "" {
		currency = a.Currency()
	}

	tx, err := op(a, bank.M(value, currency))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := s.Save(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Println(tx.Detail())
	fmt.Printf("Account %d balance: %s\n", a.ID(), a.Balance())
	return subcommands.ExitSuccess
}

type depositCmd struct {
	accountOperation
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "deposit money into an account" }
func (*depositCmd) Usage() string {
	return `bk deposit -user <id> -account <id> -amount <amount> [-currency <code>]

  Adds the amount to the account balance and records a deposit.
`
}

func (c *depositCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.run((*bank.Account).Deposit)
}

type withdrawCmd struct {
	accountOperation
}

func (*withdrawCmd) Name() string     { return "withdraw" }
func (*withdrawCmd) Synopsis() string { return "withdraw money from an account" }
func (*withdrawCmd) Usage() string {
	return `bk withdraw -user <id> -account <id> -amount <amount> [-currency <code>]

  Removes the amount from the account balance and records a withdrawal.
  The balance cannot go below zero.
`
}

func (c *withdrawCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.run((*bank.Account).Withdraw)
}
