package bank

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
)

// now is the ledger clock.
var now = time.Now

// accountSeq orders accounts that share an id when they must be locked together.
var accountSeq atomic.Uint64

// Account is a balance in a single currency together with the append-only
// log of the transactions that produced it.
//
// An Account is safe for concurrent use.
type Account struct {
	mu           sync.Mutex
	seq          uint64
	id           int
	balance      decimal.Decimal
	currency     string
	transactions []Transaction
}

// NewAccount opens an account with an opening balance and an empty log.
func NewAccount(id int, balance decimal.Decimal, currency string) (*Account, error) {
	if balance.IsNegative() {
		return nil, fmt.Errorf("%w: opening balance %s is negative", ErrInvalidAmount, balance)
	}
	if err := ValidateCurrency(currency); err != nil {
		return nil, fmt.Errorf("cannot open account %d: %w", id, err)
	}
	return newAccount(id, balance, currency, nil), nil
}

func newAccount(id int, balance decimal.Decimal, currency string, txs []Transaction) *Account {
	return &Account{
		seq:          accountSeq.Add(1),
		id:           id,
		balance:      balance,
		currency:     currency,
		transactions: txs,
	}
}

// ID returns the account id.
func (a *Account) ID() int { return a.id }

// Currency returns the account currency, fixed at creation.
func (a *Account) Currency() string { return a.currency }

// Balance returns the current balance.
func (a *Account) Balance() Money {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Money{value: a.balance, cur: a.currency}
}

// Transactions returns a copy of the log in chronological order.
func (a *Account) Transactions() []Transaction {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.transactions)
}

// Opening returns the balance the account had before its first transaction.
func (a *Account) Opening() Money {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Money{value: a.opening(), cur: a.currency}
}

func (a *Account) opening() decimal.Decimal {
	opening := a.balance
	for _, tx := range a.transactions {
		opening = opening.Sub(tx.Delta().value)
	}
	return opening
}

// Check verifies the account invariants: a known currency, a non-negative
// balance, a log numbered 1..N, entries in the account currency and a
// non-negative opening balance.
func (a *Account) Check() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	var errs error
	if err := ValidateCurrency(a.currency); err != nil {
		errs = errors.Join(errs, fmt.Errorf("account %d: %w", a.id, err))
	}
	if a.balance.IsNegative() {
		errs = errors.Join(errs, fmt.Errorf("account %d: negative balance %s", a.id, a.balance))
	}
	for i, tx := range a.transactions {
		if tx.id != i+1 {
			errs = errors.Join(errs, fmt.Errorf("account %d: transaction #%d has id %d", a.id, i+1, tx.id))
		}
		if tx.Currency() != a.currency {
			errs = errors.Join(errs, fmt.Errorf("account %d: transaction %d in %s, account is in %s", a.id, tx.id, tx.Currency(), a.currency))
		}
		if tx.amount.IsNegative() {
			errs = errors.Join(errs, fmt.Errorf("account %d: transaction %d has a negative amount", a.id, tx.id))
		}
	}
	if opening := a.opening(); opening.IsNegative() {
		errs = errors.Join(errs, fmt.Errorf("account %d: log implies a negative opening balance %s", a.id, opening))
	}
	return errs
}

// record appends a transaction for the current time. a.mu must be held.
func (a *Account) record(amount Money, kind Kind) Transaction {
	tx := Transaction{id: len(a.transactions) + 1, amount: amount, kind: kind, time: now()}
	a.transactions = append(a.transactions, tx)
	return tx
}

// Deposit adds amount to the account.
func (a *Account) Deposit(amount Money) (Transaction, error) {
	if amount.IsNegative() {
		return Transaction{}, fmt.Errorf("cannot deposit %s: %w, amount cannot be negative", amount.Plain(), ErrInvalidAmount)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if amount.Currency() != a.currency {
		return Transaction{}, fmt.Errorf("cannot deposit %s into a %s account: %w", amount.Plain(), a.currency, ErrCurrencyMismatch)
	}
	a.balance = a.balance.Add(amount.value)
	return a.record(amount, KindDeposit), nil
}

// Withdraw removes amount from the account. The balance never goes below zero.
func (a *Account) Withdraw(amount Money) (Transaction, error) {
	if amount.IsNegative() {
		return Transaction{}, fmt.Errorf("cannot withdraw %s: %w, amount cannot be negative", amount.Plain(), ErrInvalidAmount)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if amount.Currency() != a.currency {
		return Transaction{}, fmt.Errorf("cannot withdraw %s from a %s account: %w", amount.Plain(), a.currency, ErrCurrencyMismatch)
	}
	if amount.value.GreaterThan(a.balance) {
		return Transaction{}, fmt.Errorf("cannot withdraw %s, balance is %s: %w", amount.Plain(), a.balance, ErrInsufficientFunds)
	}
	a.balance = a.balance.Sub(amount.value)
	return a.record(amount, KindWithdraw), nil
}

// Conversion summarizes a transfer: what left the source account and what
// reached the target account.
type Conversion struct {
	From Money
	To   Money
}

// String renders the conversion as "100 USD → 92 EUR".
func (c Conversion) String() string {
	return c.From.Plain() + " → " + c.To.Plain()
}

// Transfer moves amount from a to the target account, converting it into the
// target currency with rates. The converted amount is rounded to 2 decimal
// places.
//
// Both accounts are locked for the whole operation, always in the same
// order, and every check runs before either account is modified: the
// transfer is recorded on both sides or on none.
func (a *Account) Transfer(to *Account, amount Money, rates Rates) (Conversion, error) {
	if !amount.IsPositive() {
		return Conversion{}, fmt.Errorf("cannot transfer %s: %w, amount must be greater than 0", amount.Plain(), ErrInvalidAmount)
	}
	if to == nil {
		return Conversion{}, fmt.Errorf("cannot transfer without a target account: %w", ErrNotFound)
	}
	if to == a {
		return Conversion{}, fmt.Errorf("cannot transfer from account %d: %w", a.id, ErrSameAccount)
	}
	if rates == nil {
		rates = ExchangeRates(nil)
	}

	unlock := lockPair(a, to)
	defer unlock()

	if amount.Currency() != a.currency {
		return Conversion{}, fmt.Errorf("cannot transfer %s from a %s account: %w", amount.Plain(), a.currency, ErrCurrencyMismatch)
	}
	if amount.value.GreaterThan(a.balance) {
		return Conversion{}, fmt.Errorf("cannot transfer %s, balance is %s: %w", amount.Plain(), a.balance, ErrInsufficientFunds)
	}
	rate, ok := rates.Rate(a.currency, to.currency)
	if !ok {
		return Conversion{}, fmt.Errorf("cannot transfer from %s to %s: %w", a.currency, to.currency, ErrNoExchangeRate)
	}
	converted := Money{value: amount.value.Mul(rate).Round(2), cur: to.currency}

	// Restore both sides if anything below panics.
	fromBalance, fromLen := a.balance, len(a.transactions)
	toBalance, toLen := to.balance, len(to.transactions)
	defer func() {
		if r := recover(); r != nil {
			a.balance, a.transactions = fromBalance, a.transactions[:fromLen]
			to.balance, to.transactions = toBalance, to.transactions[:toLen]
			panic(r)
		}
	}()

	a.balance = a.balance.Sub(amount.value)
	a.record(amount, TransferTo(to.id))
	to.balance = to.balance.Add(converted.value)
	to.record(converted, TransferFrom(a.id))

	return Conversion{From: amount, To: converted}, nil
}

// lockPair locks both accounts by ascending id, then creation order, and
// returns the matching unlock.
func lockPair(a, b *Account) (unlock func()) {
	first, second := a, b
	if b.id < a.id || (b.id == a.id && b.seq < a.seq) {
		first, second = b, a
	}
	first.mu.Lock()
	second.mu.Lock()
	return func() {
		second.mu.Unlock()
		first.mu.Unlock()
	}
}
