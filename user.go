package bank

import (
	"fmt"
	"slices"
	"sync"

	"github.com/shopspring/decimal"
)

// User owns a list of accounts. Accounts are kept in the order they were
// added, which is also the display order.
type User struct {
	mu       sync.RWMutex
	id       int
	username string
	surname  string
	accounts []*Account
}

// NewUser creates a user without accounts.
func NewUser(id int, username, surname string) *User {
	return &User{id: id, username: username, surname: surname}
}

func (u *User) ID() int          { return u.id }
func (u *User) Username() string { return u.username }
func (u *User) Surname() string  { return u.surname }
func (u *User) FullName() string { return u.username + " " + u.surname }
func (u *User) String() string   { return fmt.Sprintf("%s (ID %d)", u.FullName(), u.id) }

// Accounts returns a copy of the user's account list.
func (u *User) Accounts() []*Account {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return slices.Clone(u.accounts)
}

// AddAccount appends an account to the user. Account ids must be unique
// within a user.
func (u *User) AddAccount(a *Account) error {
	if a == nil {
		return fmt.Errorf("cannot add a nil account to user %d", u.id)
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, existing := range u.accounts {
		if existing != nil && existing.id == a.id {
			return fmt.Errorf("user %d already has account %d: %w", u.id, a.id, ErrDuplicateAccount)
		}
	}
	u.accounts = append(u.accounts, a)
	return nil
}

// OpenAccount creates a new account and adds it to the user.
func (u *User) OpenAccount(id int, balance decimal.Decimal, currency string) (*Account, error) {
	a, err := NewAccount(id, balance, currency)
	if err != nil {
		return nil, err
	}
	if err := u.AddAccount(a); err != nil {
		return nil, err
	}
	return a, nil
}

// Account returns the user's account with this id.
func (u *User) Account(id int) (*Account, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	for _, a := range u.accounts {
		if a == nil {
			continue
		}
		if a.id == id {
			return a, nil
		}
	}
	return nil, fmt.Errorf("account %d of user %d: %w", id, u.id, ErrNotFound)
}

// TotalBalance adds up the balances of all accounts as plain numbers,
// whatever their currency. Use BalancesByCurrency for a meaningful breakdown.
func (u *User) TotalBalance() decimal.Decimal {
	total := decimal.Zero
	for _, a := range u.Accounts() {
		if a == nil {
			continue
		}
		total = total.Add(a.Balance().value)
	}
	return total
}

// BalancesByCurrency sums balances per currency, in the order currencies
// first appear among the accounts.
func (u *User) BalancesByCurrency() []Money {
	var out []Money
	for _, a := range u.Accounts() {
		if a == nil {
			continue
		}
		b := a.Balance()
		i := slices.IndexFunc(out, func(m Money) bool { return m.cur == b.cur })
		if i < 0 {
			out = append(out, b)
			continue
		}
		out[i].value = out[i].value.Add(b.value)
	}
	return out
}
