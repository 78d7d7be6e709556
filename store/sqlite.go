package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/etnz/bank"

	// Import sqlite driver
	_ "modernc.org/sqlite"
)

// SQLite stores the roster in a SQLite database.
type SQLite struct {
	conn *sql.DB
}

// NewSQLite opens the database at path, creating it when needed, and runs
// migrations.
func NewSQLite(path string) (*SQLite, error) {
	if path != ":memory:" && !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("could not create data directory: %w", err)
		}
	}
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A single connection keeps ":memory:" databases consistent.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, err
	}

	s := &SQLite{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.conn.Close()
}

func (s *SQLite) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY,
			username TEXT NOT NULL,
			surname TEXT NOT NULL,
			position INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS accounts (
			user_id INTEGER NOT NULL REFERENCES users(id),
			id INTEGER NOT NULL,
			balance TEXT NOT NULL,
			currency TEXT NOT NULL,
			position INTEGER NOT NULL,
			PRIMARY KEY (user_id, id)
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			user_id INTEGER NOT NULL,
			account_id INTEGER NOT NULL,
			id INTEGER NOT NULL,
			amount TEXT NOT NULL,
			currency TEXT NOT NULL,
			kind TEXT NOT NULL,
			time_stamp TEXT NOT NULL,
			PRIMARY KEY (user_id, account_id, id)
		)`,
	}
	for _, m := range migrations {
		if _, err := s.conn.Exec(m); err != nil {
			return fmt.Errorf("could not migrate database: %w", err)
		}
	}
	return nil
}

// accountKey identifies an account across users.
type accountKey struct {
	user, account int64
}

// LoadAllUsers implements Gateway. Rows are rebuilt into user records and
// decoded with the same validation as any other record.
func (s *SQLite) LoadAllUsers() (bank.Roster, error) {
	var records []map[string]any
	users := make(map[int64]map[string]any)
	accounts := make(map[accountKey]map[string]any)

	rows, err := s.conn.Query("SELECT id, username, surname FROM users ORDER BY position")
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var id int64
		var username, surname string
		if err := rows.Scan(&id, &username, &surname); err != nil {
			rows.Close()
			return nil, err
		}
		rec := map[string]any{
			"user_id":  id,
			"username": username,
			"surname":  surname,
			"accounts": []any{},
		}
		records = append(records, rec)
		users[id] = rec
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	rows, err = s.conn.Query("SELECT user_id, id, balance, currency FROM accounts ORDER BY user_id, position")
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var k accountKey
		var balance, currency string
		if err := rows.Scan(&k.user, &k.account, &balance, &currency); err != nil {
			rows.Close()
			return nil, err
		}
		u, ok := users[k.user]
		if !ok {
			rows.Close()
			return nil, fmt.Errorf("account %d belongs to unknown user %d", k.account, k.user)
		}
		rec := map[string]any{
			"account_id":   k.account,
			"balance":      balance,
			"currency":     currency,
			"transactions": []any{},
		}
		u["accounts"] = append(u["accounts"].([]any), rec)
		accounts[k] = rec
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	rows, err = s.conn.Query("SELECT user_id, account_id, id, amount, currency, kind, time_stamp FROM transactions ORDER BY user_id, account_id, id")
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var k accountKey
		var id int64
		var amount, currency, kind, stamp string
		if err := rows.Scan(&k.user, &k.account, &id, &amount, &currency, &kind, &stamp); err != nil {
			rows.Close()
			return nil, err
		}
		a, ok := accounts[k]
		if !ok {
			rows.Close()
			return nil, fmt.Errorf("transaction %d belongs to unknown account %d of user %d", id, k.account, k.user)
		}
		a["transactions"] = append(a["transactions"].([]any), map[string]any{
			"transaction_id":   id,
			"amount":           amount,
			"currency":         currency,
			"transaction_type": kind,
			"time_stamp":       stamp,
		})
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	return bank.RosterFromMaps(records)
}

func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	return rows.Close()
}

// SaveAllUsers implements Gateway. The previous content is replaced in a
// single database transaction.
func (s *SQLite) SaveAllUsers(r bank.Roster) (err error) {
	tx, err := s.conn.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	for _, table := range []string{"transactions", "accounts", "users"} {
		if _, err = tx.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}

	for i, u := range r {
		if u == nil {
			continue
		}
		if _, err = tx.Exec(
			"INSERT INTO users (id, username, surname, position) VALUES (?, ?, ?, ?)",
			u.ID(), u.Username(), u.Surname(), i,
		); err != nil {
			return fmt.Errorf("could not save user %d: %w", u.ID(), err)
		}
		for j, a := range u.Accounts() {
			if a == nil {
				continue
			}
			if _, err = tx.Exec(
				"INSERT INTO accounts (user_id, id, balance, currency, position) VALUES (?, ?, ?, ?, ?)",
				u.ID(), a.ID(), a.Balance().Amount().String(), a.Currency(), j,
			); err != nil {
				return fmt.Errorf("could not save account %d of user %d: %w", a.ID(), u.ID(), err)
			}
			for _, t := range a.Transactions() {
				if _, err = tx.Exec(
					"INSERT INTO transactions (user_id, account_id, id, amount, currency, kind, time_stamp) VALUES (?, ?, ?, ?, ?, ?, ?)",
					u.ID(), a.ID(), t.ID(), t.Amount().Amount().String(), t.Currency(), string(t.Kind()), t.Time().Format(time.RFC3339Nano),
				); err != nil {
					return fmt.Errorf("could not save transaction %d of account %d: %w", t.ID(), a.ID(), err)
				}
			}
		}
	}
	return tx.Commit()
}
