package bank

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Record keys, shared with the data files written by earlier versions of the
// ledger.
const (
	keyTransactionID = "transaction_id"
	keyAmount        = "amount"
	keyCurrency      = "currency"
	keyKind          = "transaction_type"
	keyTimestamp     = "time_stamp"

	keyAccountID    = "account_id"
	keyBalance      = "balance"
	keyTransactions = "transactions"

	keyUserID   = "user_id"
	keyUsername = "username"
	keySurname  = "surname"
	keyAccounts = "accounts"
)

// legacyTimestamp is the layout of timestamps written without a zone. They
// are read in local time.
const legacyTimestamp = "2006-01-02T15:04:05.999999999"

// Typed records are validated once all keys have been extracted.
type transactionRecord struct {
	ID       int             `map:"transaction_id" validate:"gte=1"`
	Amount   decimal.Decimal `map:"amount" validate:"gte=0"`
	Currency string          `map:"currency" validate:"required"`
}

type accountRecord struct {
	ID       int             `map:"account_id" validate:"gte=1"`
	Balance  decimal.Decimal `map:"balance" validate:"gte=0"`
	Currency string          `map:"currency" validate:"required"`
}

type userRecord struct {
	ID       int    `map:"user_id" validate:"gte=1"`
	Username string `map:"username" validate:"required"`
	Surname  string `map:"surname" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report failures under the record key rather than the Go field name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string { return f.Tag.Get("map") })
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// validateRecord turns the first validation failure into a MalformedFieldError.
func validateRecord(rec any) error {
	err := validate.Struct(rec)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	cause := fmt.Errorf("value %v does not satisfy %q", fe.Value(), fe.Tag())
	if fe.Field() == keyAmount || fe.Field() == keyBalance {
		cause = fmt.Errorf("%w: %v is negative", ErrInvalidAmount, fe.Value())
	}
	return &MalformedFieldError{Key: fe.Field(), Err: cause}
}

// fields reads typed values out of a decoded record.
type fields map[string]any

func (f fields) get(key string) (any, error) {
	v, ok := f[key]
	if !ok || v == nil {
		return nil, &MissingFieldError{Key: key}
	}
	return v, nil
}

func (f fields) int(key string) (int, error) {
	v, err := f.get(key)
	if err != nil {
		return 0, err
	}
	switch v := v.(type) {
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, &MalformedFieldError{Key: key, Err: fmt.Errorf("%v is not an integer", v)}
		}
		return int(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, &MalformedFieldError{Key: key, Err: err}
		}
		return int(n), nil
	}
	return 0, &MalformedFieldError{Key: key, Err: fmt.Errorf("unexpected type %T", v)}
}

func (f fields) string(key string) (string, error) {
	v, err := f.get(key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", &MalformedFieldError{Key: key, Err: fmt.Errorf("unexpected type %T", v)}
	}
	return s, nil
}

func (f fields) amount(key string) (decimal.Decimal, error) {
	v, err := f.get(key)
	if err != nil {
		return decimal.Zero, err
	}
	var d decimal.Decimal
	switch v := v.(type) {
	case decimal.Decimal:
		d = v
	case json.Number:
		d, err = ParseAmount(v.String())
	case string:
		d, err = ParseAmount(v)
	case float64:
		d, err = amountFromFloat(v)
	case float32:
		d, err = amountFromFloat(float64(v))
	case int:
		d = decimal.NewFromInt(int64(v))
	case int64:
		d = decimal.NewFromInt(v)
	default:
		err = fmt.Errorf("%w: unexpected type %T", ErrInvalidAmount, v)
	}
	if err != nil {
		return decimal.Zero, &MalformedFieldError{Key: key, Err: err}
	}
	return d, nil
}

func (f fields) time(key string) (time.Time, error) {
	s, err := f.string(key)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err == nil {
		return t, nil
	}
	if t, lerr := time.ParseInLocation(legacyTimestamp, s, time.Local); lerr == nil {
		return t, nil
	}
	return time.Time{}, &MalformedFieldError{Key: key, Err: err}
}

// list returns the records under key. An absent or null key is an empty list.
func (f fields) list(key string) ([]map[string]any, error) {
	v, ok := f[key]
	if !ok || v == nil {
		return nil, nil
	}
	switch v := v.(type) {
	case []map[string]any:
		return v, nil
	case []any:
		out := make([]map[string]any, 0, len(v))
		for i, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, &MalformedFieldError{Key: fmt.Sprintf("%s[%d]", key, i), Err: fmt.Errorf("unexpected type %T", item)}
			}
			out = append(out, m)
		}
		return out, nil
	}
	return nil, &MalformedFieldError{Key: key, Err: fmt.Errorf("unexpected type %T", v)}
}

// ToMap returns the transaction as a record.
func (t Transaction) ToMap() map[string]any {
	return map[string]any{
		keyTransactionID: t.id,
		keyAmount:        t.amount.value,
		keyCurrency:      t.amount.cur,
		keyKind:          string(t.kind),
		keyTimestamp:     t.time.Format(time.RFC3339Nano),
	}
}

// MarshalJSON writes the same record as ToMap, in a fixed key order.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append(keyTransactionID, t.id)
	w.Append(keyAmount, t.amount.value)
	w.Append(keyCurrency, t.amount.cur)
	w.Append(keyKind, string(t.kind))
	w.Append(keyTimestamp, t.time.Format(time.RFC3339Nano))
	return w.MarshalJSON()
}

// TransactionFromMap decodes a record produced by Transaction.ToMap.
func TransactionFromMap(m map[string]any) (Transaction, error) {
	f := fields(m)
	var rec transactionRecord
	var err error
	if rec.ID, err = f.int(keyTransactionID); err != nil {
		return Transaction{}, err
	}
	if rec.Amount, err = f.amount(keyAmount); err != nil {
		return Transaction{}, err
	}
	if rec.Currency, err = f.string(keyCurrency); err != nil {
		return Transaction{}, err
	}
	rawKind, err := f.string(keyKind)
	if err != nil {
		return Transaction{}, err
	}
	at, err := f.time(keyTimestamp)
	if err != nil {
		return Transaction{}, err
	}
	if err := validateRecord(&rec); err != nil {
		return Transaction{}, err
	}
	kind, err := ParseKind(rawKind)
	if err != nil {
		return Transaction{}, &MalformedFieldError{Key: keyKind, Err: err}
	}
	return NewTransaction(rec.ID, Money{value: rec.Amount, cur: rec.Currency}, kind, at), nil
}

// ToMap returns the account and its whole log as a record.
func (a *Account) ToMap() map[string]any {
	a.mu.Lock()
	defer a.mu.Unlock()
	txs := make([]map[string]any, 0, len(a.transactions))
	for _, tx := range a.transactions {
		txs = append(txs, tx.ToMap())
	}
	return map[string]any{
		keyAccountID:    a.id,
		keyBalance:      a.balance,
		keyCurrency:     a.currency,
		keyTransactions: txs,
	}
}

// MarshalJSON writes the same record as ToMap, in a fixed key order.
func (a *Account) MarshalJSON() ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	txs := a.transactions
	if txs == nil {
		txs = []Transaction{}
	}
	var w jsonObjectWriter
	w.Append(keyAccountID, a.id)
	w.Append(keyBalance, a.balance)
	w.Append(keyCurrency, a.currency)
	w.Append(keyTransactions, txs)
	return w.MarshalJSON()
}

// AccountFromMap decodes a record produced by Account.ToMap.
//
// A record that cannot be decoded yields no account at all: the returned
// account is nil whenever the error is not.
func AccountFromMap(m map[string]any) (*Account, error) {
	f := fields(m)
	var rec accountRecord
	var err error
	if rec.ID, err = f.int(keyAccountID); err != nil {
		return nil, err
	}
	if rec.Balance, err = f.amount(keyBalance); err != nil {
		return nil, err
	}
	if rec.Currency, err = f.string(keyCurrency); err != nil {
		return nil, err
	}
	if err := validateRecord(&rec); err != nil {
		return nil, err
	}
	records, err := f.list(keyTransactions)
	if err != nil {
		return nil, err
	}
	var txs []Transaction
	for i, r := range records {
		tx, err := TransactionFromMap(r)
		if err != nil {
			return nil, fmt.Errorf("account %d, transaction #%d: %w", rec.ID, i+1, err)
		}
		txs = append(txs, tx)
	}
	return newAccount(rec.ID, rec.Balance, rec.Currency, txs), nil
}

// ToMap returns the user and all its accounts as a record.
func (u *User) ToMap() map[string]any {
	accounts := u.Accounts()
	records := make([]map[string]any, 0, len(accounts))
	for _, a := range accounts {
		if a == nil {
			continue
		}
		records = append(records, a.ToMap())
	}
	return map[string]any{
		keyUserID:   u.id,
		keyUsername: u.username,
		keySurname:  u.surname,
		keyAccounts: records,
	}
}

// MarshalJSON writes the same record as ToMap, in a fixed key order.
func (u *User) MarshalJSON() ([]byte, error) {
	accounts := make([]*Account, 0)
	for _, a := range u.Accounts() {
		if a != nil {
			accounts = append(accounts, a)
		}
	}
	var w jsonObjectWriter
	w.Append(keyUserID, u.id)
	w.Append(keyUsername, u.username)
	w.Append(keySurname, u.surname)
	w.Append(keyAccounts, accounts)
	return w.MarshalJSON()
}

// UserFromMap decodes a record produced by User.ToMap. Any account that
// fails to decode fails the whole user.
func UserFromMap(m map[string]any) (*User, error) {
	f := fields(m)
	var rec userRecord
	var err error
	if rec.ID, err = f.int(keyUserID); err != nil {
		return nil, err
	}
	if rec.Username, err = f.string(keyUsername); err != nil {
		return nil, err
	}
	if rec.Surname, err = f.string(keySurname); err != nil {
		return nil, err
	}
	if err := validateRecord(&rec); err != nil {
		return nil, err
	}
	records, err := f.list(keyAccounts)
	if err != nil {
		return nil, err
	}
	u := NewUser(rec.ID, rec.Username, rec.Surname)
	for i, r := range records {
		a, err := AccountFromMap(r)
		if err != nil {
			return nil, fmt.Errorf("user %d, account #%d: %w", rec.ID, i+1, err)
		}
		if err := u.AddAccount(a); err != nil {
			return nil, err
		}
	}
	return u, nil
}

// ToMaps returns every user as a record, in roster order.
func (r Roster) ToMaps() []map[string]any {
	out := make([]map[string]any, 0, len(r))
	for _, u := range r {
		if u != nil {
			out = append(out, u.ToMap())
		}
	}
	return out
}

// RosterFromMaps decodes the records produced by Roster.ToMaps.
func RosterFromMaps(records []map[string]any) (Roster, error) {
	r := make(Roster, 0, len(records))
	for i, rec := range records {
		u, err := UserFromMap(rec)
		if err != nil {
			return nil, fmt.Errorf("user #%d: %w", i+1, err)
		}
		if _, err := r.User(u.id); err == nil {
			return nil, &MalformedFieldError{Key: keyUserID, Err: fmt.Errorf("user %d is listed twice", u.id)}
		}
		r = append(r, u)
	}
	return r, nil
}

// EncodeRoster writes the roster as an indented JSON array of user records.
func EncodeRoster(w io.Writer, r Roster) error {
	users := make([]*User, 0, len(r))
	for _, u := range r {
		if u != nil {
			users = append(users, u)
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(users); err != nil {
		return fmt.Errorf("could not encode users: %w", err)
	}
	return nil
}

// DecodeRoster reads a JSON array of user records. Numbers are decoded
// exactly, without going through float64.
func DecodeRoster(r io.Reader) (Roster, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var records []map[string]any
	if err := dec.Decode(&records); err != nil {
		if errors.Is(err, io.EOF) {
			return Roster{}, nil
		}
		return nil, fmt.Errorf("could not decode users: %w", err)
	}
	return RosterFromMaps(records)
}
