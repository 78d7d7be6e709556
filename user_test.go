package bank

import (
	"errors"
	"testing"
)

func TestUser_Accounts(t *testing.T) {
	u := NewUser(1, "Ada", "Lovelace")
	if _, err := u.OpenAccount(1, newDecimal(100), "USD"); err != nil {
		t.Fatalf("OpenAccount() unexpected error: %v", err)
	}
	if _, err := u.OpenAccount(2, newDecimal(50), "EUR"); err != nil {
		t.Fatalf("OpenAccount() unexpected error: %v", err)
	}
	if _, err := u.OpenAccount(3, newDecimal(20), "USD"); err != nil {
		t.Fatalf("OpenAccount() unexpected error: %v", err)
	}

	if _, err := u.OpenAccount(1, newDecimal(1), "EUR"); !errors.Is(err, ErrDuplicateAccount) {
		t.Errorf("OpenAccount(duplicate) error = %v, want %v", err, ErrDuplicateAccount)
	}
	if err := u.AddAccount(nil); err == nil {
		t.Error("AddAccount(nil) = nil, want an error")
	}

	a, err := u.Account(2)
	if err != nil {
		t.Fatalf("Account(2) unexpected error: %v", err)
	}
	if a.Currency() != "EUR" {
		t.Errorf("Account(2).Currency() = %q, want EUR", a.Currency())
	}
	if _, err := u.Account(9); !errors.Is(err, ErrNotFound) {
		t.Errorf("Account(9) error = %v, want %v", err, ErrNotFound)
	}

	if got, want := u.TotalBalance(), newDecimal(170); !got.Equal(want) {
		t.Errorf("TotalBalance() = %s, want %s", got, want)
	}
	got := u.BalancesByCurrency()
	want := []Money{USD(120), EUR(50)}
	if len(got) != len(want) {
		t.Fatalf("BalancesByCurrency() = %v, want %v", got, want)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("BalancesByCurrency()[%d] = %s, want %s", i, got[i].Plain(), want[i].Plain())
		}
	}
}

func TestUser_AccountSkipsNil(t *testing.T) {
	u := NewUser(1, "Ada", "Lovelace")
	u.accounts = []*Account{nil, mustAccount(t, 4, 0, "USD")}
	if _, err := u.Account(4); err != nil {
		t.Errorf("Account(4) unexpected error: %v", err)
	}
	if got := u.TotalBalance(); !got.IsZero() {
		t.Errorf("TotalBalance() = %s, want 0", got)
	}
}

func TestUser_String(t *testing.T) {
	u := NewUser(7, "Alan", "Turing")
	if got, want := u.String(), "Alan Turing (ID 7)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
