package bank

import (
	"fmt"
	"strings"
)

// Roster is the ordered list of users persisted together.
type Roster []*User

// User returns the user with this id.
func (r Roster) User(id int) (*User, error) {
	for _, u := range r {
		if u != nil && u.id == id {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
}

// Account returns the account of a user. A missing user or account is
// reported as ErrNotFound.
func (r Roster) Account(userID, accountID int) (*Account, error) {
	u, err := r.User(userID)
	if err != nil {
		return nil, err
	}
	return u.Account(accountID)
}

// NextID returns the id the next registered user gets.
func (r Roster) NextID() int {
	last := 0
	for _, u := range r {
		if u != nil && u.id > last {
			last = u.id
		}
	}
	return last + 1
}

// Register appends a new user with the next free id.
func (r *Roster) Register(username, surname string) (*User, error) {
	username, surname = strings.TrimSpace(username), strings.TrimSpace(surname)
	if username == "" || surname == "" {
		return nil, fmt.Errorf("cannot register a user without username and surname")
	}
	u := NewUser(r.NextID(), username, surname)
	*r = append(*r, u)
	return u, nil
}

// Check verifies the invariants of every account in the roster.
func (r Roster) Check() error {
	var errs []string
	for _, u := range r {
		if u == nil {
			continue
		}
		for _, a := range u.Accounts() {
			if a == nil {
				continue
			}
			if err := a.Check(); err != nil {
				errs = append(errs, fmt.Sprintf("user %d: %v", u.id, err))
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("ledger check failed:\n%s", strings.Join(errs, "\n"))
	}
	return nil
}
