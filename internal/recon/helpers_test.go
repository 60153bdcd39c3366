package recon

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/yqhr/mfrecon/internal/model"
)

func date(y, m, d int) *time.Time {
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	return &t
}

func amt(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

func txn(id string, d *time.Time, amount, desc string) model.Transaction {
	t := model.Transaction{
		ID:          id,
		Date:        d,
		Description: desc,
		Include:     true,
	}
	if amount != "" {
		t.Amount = amt(amount)
	}
	return t
}
