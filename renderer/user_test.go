package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/bank"
	"github.com/shopspring/decimal"
)

func sampleUser(t *testing.T) *bank.User {
	t.Helper()
	u := bank.NewUser(3, "Ada", "Lovelace")
	usd, err := u.OpenAccount(1, decimal.NewFromInt(500), "USD")
	if err != nil {
		t.Fatalf("OpenAccount() unexpected error: %v", err)
	}
	eur, err := u.OpenAccount(2, decimal.Zero, "EUR")
	if err != nil {
		t.Fatalf("OpenAccount() unexpected error: %v", err)
	}
	if _, err := u.OpenAccount(4, decimal.NewFromInt(10), "UAN"); err != nil {
		t.Fatalf("OpenAccount() unexpected error: %v", err)
	}
	if _, err := usd.Transfer(eur, bank.M(99, "USD"), bank.DefaultRates()); err != nil {
		t.Fatalf("Transfer() unexpected error: %v", err)
	}
	return u
}

func TestUserMarkdown(t *testing.T) {
	got := UserMarkdown(sampleUser(t))
	for _, want := range []string{
		"# User report for Ada Lovelace",
		"## Balance by currencies",
		"$401.00",
		"€91.08",
		"### Account 1 (USD)",
		"Transfer to account 2",
		"Transfer from account 1",
		"### Account 4 (UAN)",
		NoTransactions,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("UserMarkdown() does not contain %q:\n%s", want, got)
		}
	}
}

func TestUserDetail(t *testing.T) {
	got := UserDetail(sampleUser(t))
	for _, want := range []string{
		"Name: Ada Lovelace\n",
		"User ID: 3\n",
		"General balance: 502.08\n",
		"  USD: 401\n",
		"account ID: 2, balance: 91.08 EUR\n",
		"Transaction type: transfer_to:2",
		"account ID: 4, balance: 10 UAN\nTransactions:\n" + NoTransactions + "\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("UserDetail() does not contain %q:\n%s", want, got)
		}
	}
}

func TestRatesMarkdown(t *testing.T) {
	got := RatesMarkdown(bank.DefaultRates())
	if !strings.Contains(got, "# Exchange Rates") {
		t.Errorf("RatesMarkdown() has no title:\n%s", got)
	}
	// Pairs are sorted, EUR first.
	if i, j := strings.Index(got, "EUR"), strings.Index(got, "39.5"); i < 0 || j < 0 || j < i {
		t.Errorf("RatesMarkdown() is not sorted:\n%s", got)
	}
	var rows int
	for _, line := range strings.Split(got, "\n") {
		if strings.HasPrefix(line, "|") && strings.Contains(line, "UAN") {
			rows++
		}
	}
	if rows != 4 {
		t.Errorf("RatesMarkdown() has %d table rows with UAN, want 4:\n%s", rows, got)
	}
}

func TestUsersMarkdown(t *testing.T) {
	if got := UsersMarkdown(nil); !strings.Contains(got, "(No users)") {
		t.Errorf("UsersMarkdown(nil) = %q, want the empty placeholder", got)
	}
	got := UsersMarkdown(bank.Roster{sampleUser(t)})
	for _, want := range []string{"Ada Lovelace", "$401.00, €91.08"} {
		if !strings.Contains(got, want) {
			t.Errorf("UsersMarkdown() does not contain %q:\n%s", want, got)
		}
	}
}
