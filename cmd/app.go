// Package cmd implements the bk command line application.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"log"

	"github.com/etnz/bank"
	"github.com/etnz/bank/store"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&registerCmd{}, "users")
	c.Register(&loginCmd{}, "users")
	c.Register(&usersCmd{}, "users")

	c.Register(&createAccountCmd{}, "accounts")
	c.Register(&depositCmd{}, "accounts")
	c.Register(&withdrawCmd{}, "accounts")
	c.Register(&transferCmd{}, "accounts")

	c.Register(&reportCmd{}, "reports")
	c.Register(&ratesCmd{}, "reports")
	c.Register(&checkCmd{}, "reports")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to the configuration file. Defaults to bank.yaml in the current directory or in $HOME/.config/bank")
var dataFile = flag.String("data-file", "", "Path to the data file, or to the database with -store=sqlite. Overrides the configuration")
var storeKind = flag.String("store", "", "Storage backend, json or sqlite. Overrides the configuration")

// session is what a command works on: the configuration and the roster
// loaded from the configured gateway.
type session struct {
	*Config
	gateway store.Gateway
	roster  bank.Roster
}

// openSession loads the configuration and every user.
func openSession() (*session, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	gw, err := cfg.Gateway()
	if err != nil {
		return nil, err
	}
	r, err := gw.LoadAllUsers()
	if err != nil {
		closeGateway(gw)
		return nil, fmt.Errorf("could not load users from %q: %w", cfg.Path(), err)
	}
	return &session{Config: cfg, gateway: gw, roster: r}, nil
}

// Save writes every user back.
func (s *session) Save() error {
	if err := s.gateway.SaveAllUsers(s.roster); err != nil {
		return fmt.Errorf("could not save users to %q: %w", s.Path(), err)
	}
	return nil
}

// Close releases the gateway.
func (s *session) Close() { closeGateway(s.gateway) }

func closeGateway(gw store.Gateway) {
	c, ok := gw.(io.Closer)
	if !ok {
		return
	}
	if err := c.Close(); err != nil {
		log.Println("warning, could not close the store:", err)
	}
}
