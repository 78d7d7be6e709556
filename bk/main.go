// Command bk manages bank accounts, their balances and transactions.
package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"os"

	"github.com/etnz/bank/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

func main() {
	log.SetPrefix("bk: ")
	log.SetFlags(0)

	// BANK_* variables can live in a .env file next to the data.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, could not read .env:", err)
	}

	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	cmd.Register(subcommands.DefaultCommander)

	// Answers shell completion requests and exits, does nothing otherwise.
	cmd.Completion(subcommands.DefaultCommander).Complete("bk")

	flag.Parse()

	if name := flag.Arg(0); name != "" && !isRegistered(name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}

	os.Exit(int(subcommands.Execute(context.Background())))
}

// isRegistered reports whether name is a built-in command.
func isRegistered(name string) bool {
	found := false
	subcommands.DefaultCommander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		if c.Name() == name {
			found = true
		}
	})
	return found
}
