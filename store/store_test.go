package store

import (
	"testing"

	"github.com/etnz/bank"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleRoster returns two users, one of them with a transfer history.
func sampleRoster(t *testing.T) bank.Roster {
	t.Helper()
	var r bank.Roster
	ada, err := r.Register("Ada", "Lovelace")
	require.NoError(t, err)
	_, err = r.Register("Alan", "Turing")
	require.NoError(t, err)

	usd, err := ada.OpenAccount(1, decimal.NewFromInt(500), "USD")
	require.NoError(t, err)
	eur, err := ada.OpenAccount(2, decimal.Zero, "EUR")
	require.NoError(t, err)

	_, err = usd.Deposit(bank.M(200, "USD"))
	require.NoError(t, err)
	_, err = usd.Transfer(eur, bank.M(99, "USD"), bank.DefaultRates())
	require.NoError(t, err)
	return r
}

// requireSameRoster compares every observable field of two rosters.
func requireSameRoster(t *testing.T, want, got bank.Roster) {
	t.Helper()
	require.Len(t, got, len(want))
	for i, wu := range want {
		gu := got[i]
		assert.Equal(t, wu.ID(), gu.ID())
		assert.Equal(t, wu.Username(), gu.Username())
		assert.Equal(t, wu.Surname(), gu.Surname())

		wantAccounts, gotAccounts := wu.Accounts(), gu.Accounts()
		require.Len(t, gotAccounts, len(wantAccounts))
		for j, wa := range wantAccounts {
			ga := gotAccounts[j]
			assert.Equal(t, wa.ID(), ga.ID())
			assert.True(t, wa.Balance().Equal(ga.Balance()), "balance %s, want %s", ga.Balance().Plain(), wa.Balance().Plain())

			wantTxs, gotTxs := wa.Transactions(), ga.Transactions()
			require.Len(t, gotTxs, len(wantTxs))
			for k := range wantTxs {
				assert.True(t, wantTxs[k].Equal(gotTxs[k]), "transaction %s, want %s", gotTxs[k].Detail(), wantTxs[k].Detail())
			}
		}
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	g, err := Open(KindJSON, dir+"/users.json")
	require.NoError(t, err)
	assert.IsType(t, &JSONFile{}, g)

	g, err = Open(KindSQLite, dir+"/bank.db")
	require.NoError(t, err)
	require.IsType(t, &SQLite{}, g)
	assert.NoError(t, g.(*SQLite).Close())

	_, err = Open("paper", dir+"/ledger.txt")
	assert.Error(t, err)
}
