package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/bank/renderer"
	"github.com/google/subcommands"
)

type registerCmd struct {
	username string
	surname  string
}

func (*registerCmd) Name() string     { return "register" }
func (*registerCmd) Synopsis() string { return "register a new user" }
func (*registerCmd) Usage() string {
	return `bk register -username <name> -surname <surname>

  Registers a new user. The user gets the next free id.
`
}

func (c *registerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.username, "username", "", "User name.")
	f.StringVar(&c.surname, "surname", "", "User surname.")
}

func (c *registerCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.username == "" || c.surname == "" {
		fmt.Fprintln(os.Stderr, "Error: -username and -surname are required.")
		return subcommands.ExitUsageError
	}

	s, err := openSession()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	u, err := s.roster.Register(c.username, c.surname)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error registering user: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := s.Save(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("New user registered: %s, ID: %d\n", u.FullName(), u.ID())
	return subcommands.ExitSuccess
}

type loginCmd struct {
	user int
}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "greet a registered user" }
func (*loginCmd) Usage() string {
	return `bk login -user <id>

  Checks that the user exists and greets them.
`
}

func (c *loginCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.user, "user", 0, "User id.")
}

func (c *loginCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	fmt.Printf("Hi, %s!\n", u.FullName())
	return subcommands.ExitSuccess
}

type usersCmd struct{}

func (*usersCmd) Name() string     { return "users" }
func (*usersCmd) Synopsis() string { return "list registered users" }
func (*usersCmd) Usage() string {
	return `bk users

  Lists every registered user with their balances.
`
}

func (*usersCmd) SetFlags(f *flag.FlagSet) {}

func (*usersCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	printMarkdown(renderer.UsersMarkdown(s.roster))
	return subcommands.ExitSuccess
}
