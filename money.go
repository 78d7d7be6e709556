package bank

import (
	"fmt"
	"math"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
	// Existing ledgers record the hryvnia as "UAN".
	money.AddCurrency("UAN", "₴", "1 $", ".", ",", 2)
}

// Money represents a monetary value in a given currency.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M is a convenient factory for Money.
func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// ParseAmount parses a decimal amount as typed by a user.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, s)
	}
	return d, nil
}

// amountFromFloat rejects the float values that have no decimal counterpart.
func amountFromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, fmt.Errorf("%w: %v is not a real number", ErrInvalidAmount, f)
	}
	return decimal.NewFromFloat(f), nil
}

// ValidateCurrency checks that code is a currency known to the ledger.
func ValidateCurrency(code string) error {
	if code == "" {
		return fmt.Errorf("%w: empty currency code", ErrUnknownCurrency)
	}
	if money.GetCurrency(code) == nil {
		return fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
	}
	return nil
}

func (m Money) Amount() decimal.Decimal { return m.value }
func (m Money) Currency() string        { return m.cur }
func (m Money) IsZero() bool            { return m.value.IsZero() }
func (m Money) IsPositive() bool        { return m.value.IsPositive() }
func (m Money) IsNegative() bool        { return m.value.IsNegative() }
func (m Money) Equal(n Money) bool      { return m.value.Equal(n.value) && m.cur == n.cur }

// Round returns m rounded to places decimal digits.
func (m Money) Round(places int32) Money { return Money{value: m.value.Round(places), cur: m.cur} }

// Plain returns the amount and the currency code, with trailing zeros
// dropped: "100 USD", "91.08 EUR".
func (m Money) Plain() string {
	return m.value.String() + " " + m.cur
}

// String returns the money formatted for its currency, e.g. "$1,000.50".
// Currencies unknown to the ledger fall back to Plain.
func (m Money) String() string {
	cur := money.GetCurrency(m.cur)
	if cur == nil {
		return m.Plain()
	}
	dec := m.value.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}
