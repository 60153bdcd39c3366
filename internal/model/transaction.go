package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one canonical MoneyForward export row.
// Date is nil and Amount invalid when the source field could not be parsed;
// such rows are never matched but still pass through reconciliation.
type Transaction struct {
	ID          string
	Date        *time.Time
	Amount      decimal.NullDecimal // negative = expense, positive = refund/income
	Description string
	Include     bool

	// Passthrough fields, preserved verbatim.
	Institution  string
	CategoryMain string
	CategorySub  string
	Memo         string
	Transfer     string
}

// IsExpense reports whether the row is an included negative-amount transaction.
func (t Transaction) IsExpense() bool {
	return t.Include && t.Amount.Valid && t.Amount.Decimal.IsNegative()
}

// IsRefund reports whether the row is an included positive-amount transaction.
func (t Transaction) IsRefund() bool {
	return t.Include && t.Amount.Valid && t.Amount.Decimal.IsPositive()
}

// AbsAmount returns |amount|, or zero when the amount is invalid.
func (t Transaction) AbsAmount() decimal.Decimal {
	if !t.Amount.Valid {
		return decimal.Zero
	}
	return t.Amount.Decimal.Abs()
}
