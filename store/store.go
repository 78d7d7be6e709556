// Package store persists the bank roster.
//
// A Gateway loads and saves the whole roster at once: commands load every
// user, apply one operation and save everything back.
package store

import (
	"fmt"

	"github.com/etnz/bank"
)

// Gateway is a persistence backend for the roster.
type Gateway interface {
	// LoadAllUsers returns every persisted user. A backend that does not
	// exist yet holds zero users.
	LoadAllUsers() (bank.Roster, error)
	// SaveAllUsers replaces the persisted users with r.
	SaveAllUsers(r bank.Roster) error
}

// Backend kinds accepted by Open.
const (
	KindJSON   = "json"
	KindSQLite = "sqlite"
)

// Open returns the gateway of the given kind backed by path.
// Gateways that hold resources implement io.Closer.
func Open(kind, path string) (Gateway, error) {
	switch kind {
	case KindJSON, "":
		return &JSONFile{Path: path}, nil
	case KindSQLite:
		return NewSQLite(path)
	default:
		return nil, fmt.Errorf("unknown store %q, want %q or %q", kind, KindJSON, KindSQLite)
	}
}
