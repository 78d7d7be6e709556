package bank

import (
	"testing"
	"time"
)

// EUR is a helper for test to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// UAN is a helper for test to create hryvnia money from const
func UAN(v float64) Money { return M(v, "UAN") }

// fixedClock makes the ledger clock tick one second per transaction,
// starting at start.
func fixedClock(t *testing.T, start time.Time) {
	t.Helper()
	prev := now
	tick := start
	now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}
	t.Cleanup(func() { now = prev })
}

// mustAccount opens an account or fails the test.
func mustAccount(t *testing.T, id int, balance float64, currency string) *Account {
	t.Helper()
	a, err := NewAccount(id, newDecimal(balance), currency)
	if err != nil {
		t.Fatalf("NewAccount(%d, %v, %q) unexpected error: %v", id, balance, currency, err)
	}
	return a
}

// checkInvariant fails the test if a's balance does not match its opening
// balance plus its log.
func checkInvariant(t *testing.T, a *Account, opening Money) {
	t.Helper()
	if err := a.Check(); err != nil {
		t.Errorf("account %d Check() = %v", a.ID(), err)
	}
	if got := a.Opening(); !got.Equal(opening) {
		t.Errorf("account %d Opening() = %s, want %s", a.ID(), got.Plain(), opening.Plain())
	}
}
