package models

import "github.com/shopspring/decimal"

// TransferResult holds the balances of both accounts right after a transfer
// was applied.
type TransferResult struct {
	TransferID  string
	FromAccount string
	ToAccount   string
	Amount      decimal.Decimal
	FromBalance decimal.Decimal
	ToBalance   decimal.Decimal
}
