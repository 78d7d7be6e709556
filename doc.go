// Package bank implements a small multi-currency account ledger.
//
// Users own accounts, each denominated in a single currency. Every balance
// change goes through one of three operations and leaves an immutable
// Transaction in the account's log:
//   - Deposit: adds money in the account currency.
//   - Withdraw: removes money, never below zero.
//   - Transfer: moves money to another account, converting it with an
//     ExchangeRates table when the currencies differ.
//
// The ledger state round-trips through plain maps (see ToMap and the
// *FromMap functions) which is the record shape used by the persistence
// gateways in package store.
//
// This package serves as the foundational logic for the `bk` command-line
// tool.
package bank
