package renderer

import (
	"bytes"

	"github.com/etnz/bank"
	md "github.com/nao1215/markdown"
)

// RatesMarkdown renders an exchange table.
func RatesMarkdown(rates bank.ExchangeRates) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Exchange Rates")
	table := md.TableSet{
		Header: []string{"From", "To", "Rate"},
		Rows:   [][]string{},
	}
	for p, rate := range rates.Pairs() {
		table.Rows = append(table.Rows, []string{p.From, p.To, rate.Round(6).String()})
	}
	doc.Table(table)
	return doc.String()
}
