package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/bank"
	md "github.com/nao1215/markdown"
)

// UsersMarkdown lists every user of the roster with their accounts count and
// balances.
func UsersMarkdown(r bank.Roster) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Users")
	if len(r) == 0 {
		doc.PlainText("(No users)")
		return doc.String()
	}
	table := md.TableSet{
		Header: []string{"ID", "Name", "Accounts", "Balances"},
		Rows:   [][]string{},
	}
	for _, u := range r {
		var balances string
		for i, m := range u.BalancesByCurrency() {
			if i > 0 {
				balances += ", "
			}
			balances += m.String()
		}
		table.Rows = append(table.Rows, []string{
			fmt.Sprint(u.ID()),
			u.FullName(),
			fmt.Sprint(len(u.Accounts())),
			balances,
		})
	}
	doc.Table(table)
	return doc.String()
}
