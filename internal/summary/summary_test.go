package summary

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yqhr/mfrecon/internal/model"
)

func expense(id string, y, m, d int, amount, category string) model.Transaction {
	date := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	return model.Transaction{
		ID:           id,
		Date:         &date,
		Amount:       decimal.NullDecimal{Decimal: decimal.RequireFromString(amount), Valid: true},
		Include:      true,
		CategoryMain: category,
	}
}

func TestMonthly(t *testing.T) {
	expenses := []model.Transaction{
		expense("E1", 2024, 1, 5, "-3000", "食費"),
		expense("E2", 2024, 1, 20, "-1000", "食費"),
		expense("E3", 2024, 1, 25, "-6000", "交通費"),
		expense("E4", 2024, 2, 2, "-500", "食費"),
	}

	rows := Monthly(expenses)
	require.Len(t, rows, 3)

	// January: 交通費 6000 (60%) before 食費 4000 (40%).
	assert.Equal(t, "2024-01", rows[0].Period)
	assert.Equal(t, "交通費", rows[0].Category)
	assert.True(t, rows[0].Total.Equal(decimal.NewFromInt(6000)))
	assert.InDelta(t, 60.0, rows[0].Share, 1e-9)

	assert.Equal(t, "食費", rows[1].Category)
	assert.InDelta(t, 40.0, rows[1].Share, 1e-9)

	// February: a single category takes the whole month.
	assert.Equal(t, "2024-02", rows[2].Period)
	assert.InDelta(t, 100.0, rows[2].Share, 1e-9)
}

func TestYearly(t *testing.T) {
	expenses := []model.Transaction{
		expense("E1", 2023, 12, 31, "-1000", "食費"),
		expense("E2", 2024, 1, 1, "-2000", "食費"),
	}

	rows := Yearly(expenses)
	require.Len(t, rows, 2)
	assert.Equal(t, "2023", rows[0].Period)
	assert.Equal(t, "2024", rows[1].Period)
	assert.InDelta(t, 100.0, rows[0].Share, 1e-9)
}

func TestAggregate_SkipsNullFieldsAndLabelsUncategorized(t *testing.T) {
	noDate := expense("E1", 2024, 1, 5, "-3000", "食費")
	noDate.Date = nil

	noAmount := expense("E2", 2024, 1, 5, "-3000", "食費")
	noAmount.Amount = decimal.NullDecimal{}

	blank := expense("E3", 2024, 1, 5, "-100", "")

	rows := Monthly([]model.Transaction{noDate, noAmount, blank})
	require.Len(t, rows, 1)
	assert.Equal(t, "未分類", rows[0].Category)
	assert.InDelta(t, 100.0, rows[0].Share, 1e-9)
}

func TestMonthly_Empty(t *testing.T) {
	assert.Empty(t, Monthly(nil))
}
