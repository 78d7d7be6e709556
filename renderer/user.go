package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/etnz/bank"
	md "github.com/nao1215/markdown"
)

// NoTransactions is printed in place of an empty transaction table.
const NoTransactions = "(No transactions)"

// UserMarkdown renders the report of a user: balances, then every account
// with its transactions.
func UserMarkdown(u *bank.User) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("User report for %s", u.FullName()))
	doc.Table(md.TableSet{
		Header: []string{"User ID", md.Bold(fmt.Sprint(u.ID()))},
		Rows: [][]string{
			{"General balance", u.TotalBalance().String()},
		},
	})

	doc.H2("Balance by currencies")
	balances := md.TableSet{
		Header: []string{"Currency", "Balance"},
		Rows:   [][]string{},
	}
	for _, m := range u.BalancesByCurrency() {
		balances.Rows = append(balances.Rows, []string{m.Currency(), m.String()})
	}
	doc.Table(balances)

	doc.H2("Accounts")
	for _, a := range u.Accounts() {
		doc.H3(fmt.Sprintf("Account %d (%s)", a.ID(), a.Currency()))
		doc.PlainText(fmt.Sprintf("Balance: %s", a.Balance()))

		txs := a.Transactions()
		if len(txs) == 0 {
			doc.PlainText(NoTransactions)
			continue
		}
		table := md.TableSet{
			Header: []string{"#", "Time", "Type", "Amount"},
			Rows:   [][]string{},
		}
		for _, tx := range txs {
			table.Rows = append(table.Rows, []string{
				fmt.Sprint(tx.ID()),
				tx.Time().Format(time.DateTime),
				kindLabel(tx.Kind()),
				tx.Delta().String(),
			})
		}
		doc.Table(table)
	}

	return doc.String()
}

// kindLabel spells out a transaction kind.
func kindLabel(k bank.Kind) string {
	id, ok := k.Counterparty()
	switch {
	case ok && k.IsTransferTo():
		return fmt.Sprintf("Transfer to account %d", id)
	case ok && k.IsTransferFrom():
		return fmt.Sprintf("Transfer from account %d", id)
	case k == bank.KindDeposit:
		return "Deposit"
	case k == bank.KindWithdraw:
		return "Withdraw"
	}
	return string(k)
}

// UserDetail renders the report of a user as plain text, one line per
// transaction.
func UserDetail(u *bank.User) string {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "=== User report ===")
	fmt.Fprintf(&buf, "Name: %s\n", u.FullName())
	fmt.Fprintf(&buf, "User ID: %d\n", u.ID())
	fmt.Fprintf(&buf, "General balance: %s\n", u.TotalBalance())
	fmt.Fprintln(&buf, "Balance by currencies:")
	for _, m := range u.BalancesByCurrency() {
		fmt.Fprintf(&buf, "  %s: %s\n", m.Currency(), m.Amount())
	}
	fmt.Fprintln(&buf, "\n--- Accounts ---")
	for _, a := range u.Accounts() {
		fmt.Fprintf(&buf, "account ID: %d, balance: %s\n", a.ID(), a.Balance().Plain())
		fmt.Fprintln(&buf, "Transactions:")
		txs := a.Transactions()
		if len(txs) == 0 {
			fmt.Fprintln(&buf, NoTransactions)
		}
		for _, tx := range txs {
			fmt.Fprintf(&buf, "    %s\n", tx.Detail())
		}
		fmt.Fprintln(&buf, "------------------------------")
	}
	return buf.String()
}
