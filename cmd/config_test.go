package cmd

import (
	"testing"

	"github.com/etnz/bank/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	setup(t, "", "")
	*dataFile = ""

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, store.KindJSON, cfg.Store)
	assert.Equal(t, defaultDataFile, cfg.DataFile)
	assert.Equal(t, defaultDataFile, cfg.Path())
	rate, ok := cfg.Rates.Rate("USD", "UAN")
	require.True(t, ok)
	assert.Equal(t, "39.5", rate.String())
}

func TestLoadConfig_File(t *testing.T) {
	setup(t, "", `
store: sqlite
database: /var/lib/bank/bank.db
rates:
  USD/EUR: 0.9
  eur/usd: "1.1"
`)
	*dataFile = ""

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, store.KindSQLite, cfg.Store)
	assert.Equal(t, "/var/lib/bank/bank.db", cfg.Path())
	require.Len(t, cfg.Rates, 2)
	rate, ok := cfg.Rates.Rate("EUR", "USD")
	require.True(t, ok)
	assert.True(t, rate.Equal(decimal.RequireFromString("1.1")))
	_, ok = cfg.Rates.Rate("USD", "UAN")
	assert.False(t, ok)
}

func TestLoadConfig_Overrides(t *testing.T) {
	setup(t, "", "store: sqlite\ndatabase: from-file.db\n")
	*dataFile = ""

	// Environment beats the file.
	t.Setenv(EnvDatabase, "from-env.db")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-env.db", cfg.Path())

	// Flags beat the environment.
	*dataFile = "from-flag.db"
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-flag.db", cfg.Path())

	*storeKind = store.KindJSON
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-flag.db", cfg.Path())
	assert.Equal(t, "from-env.db", cfg.Database)
}

func TestLoadConfig_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		config string
	}{
		{"bad pair", "rates:\n  USDEUR: 0.9\n"},
		{"bad rate", "rates:\n  USD/EUR: lots\n"},
		{"negative rate", "rates:\n  USD/EUR: -1\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			setup(t, "", tc.config)
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}

	t.Run("missing explicit file", func(t *testing.T) {
		setup(t, "", "")
		*configFile = "/does/not/exist/bank.yaml"
		_, err := LoadConfig()
		assert.Error(t, err)
	})
}
