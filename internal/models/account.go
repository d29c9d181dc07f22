package models

import "github.com/shopspring/decimal"

// Account is a single ledger account. Balance is never negative once an
// operation has completed.
type Account struct {
	ID      string          `json:"accountId"`
	Balance decimal.Decimal `json:"balance"`
}
