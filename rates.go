package bank

import (
	"cmp"
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Rates converts between currencies.
type Rates interface {
	// Rate returns how many units of 'to' one unit of 'from' buys.
	Rate(from, to string) (decimal.Decimal, bool)
}

// Pair is an ordered pair of currency codes.
type Pair struct {
	From, To string
}

func (p Pair) String() string { return p.From + "/" + p.To }

// ParsePair parses "USD/EUR".
func ParsePair(s string) (Pair, error) {
	from, to, ok := strings.Cut(s, "/")
	if !ok || from == "" || to == "" {
		return Pair{}, fmt.Errorf("invalid currency pair %q, want FROM/TO", s)
	}
	return Pair{From: strings.ToUpper(from), To: strings.ToUpper(to)}, nil
}

// ExchangeRates is a static, directional table of conversion factors.
//
// A rate for (a, b) says nothing about (b, a): missing pairs are not
// inferred from their inverse.
type ExchangeRates map[Pair]decimal.Decimal

// Rate implements Rates. Identical currencies always convert at 1, whether
// or not the table lists them.
func (r ExchangeRates) Rate(from, to string) (decimal.Decimal, bool) {
	if from == to {
		return decimal.NewFromInt(1), true
	}
	rate, ok := r[Pair{From: from, To: to}]
	return rate, ok
}

// Pairs iterates over the table in a stable order.
func (r ExchangeRates) Pairs() iter.Seq2[Pair, decimal.Decimal] {
	keys := slices.SortedFunc(maps.Keys(r), func(a, b Pair) int {
		return cmp.Or(cmp.Compare(a.From, b.From), cmp.Compare(a.To, b.To))
	})
	return func(yield func(Pair, decimal.Decimal) bool) {
		for _, k := range keys {
			if !yield(k, r[k]) {
				return
			}
		}
	}
}

// DefaultRates returns the built-in exchange table.
func DefaultRates() ExchangeRates {
	one := decimal.NewFromInt(1)
	uanPerUSD := decimal.RequireFromString("39.5")
	eurPerUSD := decimal.RequireFromString("0.92")
	return ExchangeRates{
		{"USD", "UAN"}: uanPerUSD,
		{"UAN", "USD"}: one.Div(uanPerUSD),
		{"USD", "EUR"}: eurPerUSD,
		{"EUR", "USD"}: one.Div(eurPerUSD),
		{"UAN", "EUR"}: one.Div(uanPerUSD).Mul(eurPerUSD),
		{"EUR", "UAN"}: one.Div(eurPerUSD).Mul(uanPerUSD),
	}
}
