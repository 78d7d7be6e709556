package cmd

import (
	"errors"
	"fmt"

	"github.com/etnz/bank"
	"github.com/etnz/bank/store"
	"github.com/spf13/viper"
)

// Configuration keys, also readable from BANK_<KEY> environment variables.
const (
	keyStore    = "store"
	keyDataFile = "data_file"
	keyDatabase = "database"
	keyRates    = "rates"
)

const (
	defaultDataFile = "data/users.json"
	defaultDatabase = "data/bank.db"
)

// Config is the resolved configuration of a bk invocation.
type Config struct {
	Store    string
	DataFile string
	Database string
	Rates    bank.ExchangeRates
}

// LoadConfig reads the configuration file, then the environment, then the
// global flags, each overriding the previous one.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetDefault(keyStore, store.KindJSON)
	v.SetDefault(keyDataFile, defaultDataFile)
	v.SetDefault(keyDatabase, defaultDatabase)

	v.SetEnvPrefix("BANK")
	v.AutomaticEnv()
	v.BindEnv(keyStore, EnvStore)
	v.BindEnv(keyDataFile, EnvDataFile)
	v.BindEnv(keyDatabase, EnvDatabase)

	if *configFile != "" {
		v.SetConfigFile(*configFile)
	} else {
		v.SetConfigName("bank")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/bank")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if *configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("could not read configuration: %w", err)
		}
	}

	cfg := &Config{
		Store:    v.GetString(keyStore),
		DataFile: v.GetString(keyDataFile),
		Database: v.GetString(keyDatabase),
		Rates:    bank.DefaultRates(),
	}
	if *storeKind != "" {
		cfg.Store = *storeKind
	}
	if *dataFile != "" {
		if cfg.Store == store.KindSQLite {
			cfg.Database = *dataFile
		} else {
			cfg.DataFile = *dataFile
		}
	}

	if v.IsSet(keyRates) {
		rates, err := parseRates(v.GetStringMap(keyRates))
		if err != nil {
			return nil, err
		}
		cfg.Rates = rates
	}
	return cfg, nil
}

// parseRates reads a "FROM/TO: rate" table.
func parseRates(m map[string]any) (bank.ExchangeRates, error) {
	rates := make(bank.ExchangeRates, len(m))
	for k, v := range m {
		p, err := bank.ParsePair(k)
		if err != nil {
			return nil, fmt.Errorf("invalid rate %q: %w", k, err)
		}
		rate, err := bank.ParseAmount(fmt.Sprint(v))
		if err != nil {
			return nil, fmt.Errorf("invalid rate for %s: %w", p, err)
		}
		if !rate.IsPositive() {
			return nil, fmt.Errorf("invalid rate for %s: %s is not positive", p, rate)
		}
		rates[p] = rate
	}
	return rates, nil
}

// Path returns the location of the configured store.
func (c *Config) Path() string {
	if c.Store == store.KindSQLite {
		return c.Database
	}
	return c.DataFile
}

// Gateway opens the configured store.
func (c *Config) Gateway() (store.Gateway, error) {
	return store.Open(c.Store, c.Path())
}
