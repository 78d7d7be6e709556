package bank

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind identifies what a Transaction did to its account.
type Kind string

// Kinds without a counterparty. Transfers use TransferTo and TransferFrom.
const (
	KindDeposit  Kind = "deposit"
	KindWithdraw Kind = "withdraw"
)

const (
	transferToPrefix   = "transfer_to:"
	transferFromPrefix = "transfer_from:"
)

// TransferTo is the kind recorded on the source account of a transfer.
func TransferTo(accountID int) Kind { return Kind(transferToPrefix + strconv.Itoa(accountID)) }

// TransferFrom is the kind recorded on the target account of a transfer.
func TransferFrom(accountID int) Kind { return Kind(transferFromPrefix + strconv.Itoa(accountID)) }

// ParseKind parses a kind as found in persisted records.
//
// The underscore form "transfer_to_12" is accepted and normalized to
// "transfer_to:12".
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindDeposit, KindWithdraw:
		return Kind(s), nil
	}
	for _, prefix := range []string{transferToPrefix, transferFromPrefix} {
		base := strings.TrimSuffix(prefix, ":")
		var rest string
		switch {
		case strings.HasPrefix(s, prefix):
			rest = s[len(prefix):]
		case strings.HasPrefix(s, base+"_"):
			rest = s[len(base)+1:]
		default:
			continue
		}
		id, err := strconv.Atoi(rest)
		if err != nil {
			return "", fmt.Errorf("invalid counterparty in transaction kind %q", s)
		}
		return Kind(prefix + strconv.Itoa(id)), nil
	}
	return "", fmt.Errorf("unknown transaction kind %q", s)
}

// Counterparty returns the other account of a transfer.
func (k Kind) Counterparty() (accountID int, ok bool) {
	s := string(k)
	for _, prefix := range []string{transferToPrefix, transferFromPrefix} {
		if strings.HasPrefix(s, prefix) {
			id, err := strconv.Atoi(s[len(prefix):])
			return id, err == nil
		}
	}
	return 0, false
}

// IsTransferTo reports whether k is an outgoing transfer.
func (k Kind) IsTransferTo() bool { return strings.HasPrefix(string(k), transferToPrefix) }

// IsTransferFrom reports whether k is an incoming transfer.
func (k Kind) IsTransferFrom() bool { return strings.HasPrefix(string(k), transferFromPrefix) }

// Credit reports whether a transaction of this kind adds to the balance.
func (k Kind) Credit() bool { return k == KindDeposit || k.IsTransferFrom() }

// Transaction is an immutable record of one balance change.
type Transaction struct {
	id     int
	amount Money
	kind   Kind
	time   time.Time
}

// NewTransaction creates a transaction record. Accounts create their own
// transactions, this is for decoders and tests.
func NewTransaction(id int, amount Money, kind Kind, at time.Time) Transaction {
	return Transaction{id: id, amount: amount, kind: kind, time: at}
}

func (t Transaction) ID() int          { return t.id }
func (t Transaction) Amount() Money    { return t.amount }
func (t Transaction) Currency() string { return t.amount.Currency() }
func (t Transaction) Kind() Kind       { return t.kind }
func (t Transaction) Time() time.Time  { return t.time }

// Delta is the signed change the transaction applied to its account balance.
func (t Transaction) Delta() Money {
	if t.kind.Credit() {
		return t.amount
	}
	return Money{value: t.amount.value.Neg(), cur: t.amount.cur}
}

// Equal reports whether t and o hold the same observable fields.
func (t Transaction) Equal(o Transaction) bool {
	return t.id == o.id && t.amount.Equal(o.amount) && t.kind == o.kind && t.time.Equal(o.time)
}

// Detail returns a one line human description of the transaction.
func (t Transaction) Detail() string {
	return fmt.Sprintf("Amount: %s %s, Transaction type: %s, Time: %s",
		t.amount.Amount(), t.amount.Currency(), t.kind, t.time.Format(time.DateTime))
}
