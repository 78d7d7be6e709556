package bank

import (
	"errors"
	"fmt"
)

// Ledger errors. Operations return them wrapped with context, use errors.Is
// to match.
var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrCurrencyMismatch  = errors.New("currency mismatch")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNoExchangeRate    = errors.New("no exchange rate")
	ErrSameAccount       = errors.New("source and target are the same account")
	ErrNotFound          = errors.New("not found")
	ErrDuplicateAccount  = errors.New("duplicate account id")
	ErrUnknownCurrency   = errors.New("unknown currency")

	ErrMissingField   = errors.New("missing field")
	ErrMalformedField = errors.New("malformed field")
)

// MissingFieldError reports a required key absent from a decoded record.
type MissingFieldError struct {
	Key string
}

func (e *MissingFieldError) Error() string { return fmt.Sprintf("missing field %q", e.Key) }

func (e *MissingFieldError) Is(target error) bool { return target == ErrMissingField }

// MalformedFieldError reports a key whose value cannot be decoded.
type MalformedFieldError struct {
	Key string
	Err error
}

func (e *MalformedFieldError) Error() string {
	return fmt.Sprintf("malformed field %q: %v", e.Key, e.Err)
}

func (e *MalformedFieldError) Is(target error) bool { return target == ErrMalformedField }

func (e *MalformedFieldError) Unwrap() error { return e.Err }
