// Package summary aggregates cleaned expenses for the dashboard layer:
// spend per period and per top-level category, with each category's share
// of the period total.
package summary

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/yqhr/mfrecon/internal/model"
)

// uncategorized is the bucket for rows with an empty category_main.
const uncategorized = "未分類"

// Row is one period/category aggregate.
type Row struct {
	Period   string // "2006-01" for monthly, "2006" for yearly
	Category string
	Total    decimal.Decimal // positive spend
	Share    float64         // percent of the period total
}

// Monthly aggregates expenses per calendar month and category_main.
// Rows with a nil date are skipped. Result is sorted by period, then
// descending total, then category.
func Monthly(expenses []model.Transaction) []Row {
	return aggregate(expenses, "2006-01")
}

// Yearly aggregates expenses per calendar year and category_main.
func Yearly(expenses []model.Transaction) []Row {
	return aggregate(expenses, "2006")
}

func aggregate(expenses []model.Transaction, periodFormat string) []Row {
	type key struct{ period, category string }

	totals := make(map[key]decimal.Decimal)
	periodTotals := make(map[string]decimal.Decimal)

	for _, t := range expenses {
		if t.Date == nil || !t.Amount.Valid {
			continue
		}
		period := t.Date.Format(periodFormat)
		category := t.CategoryMain
		if category == "" {
			category = uncategorized
		}
		amount := t.AbsAmount()

		k := key{period, category}
		totals[k] = totals[k].Add(amount)
		periodTotals[period] = periodTotals[period].Add(amount)
	}

	hundred := decimal.NewFromInt(100)
	rows := make([]Row, 0, len(totals))
	for k, total := range totals {
		share := 0.0
		if pt := periodTotals[k.period]; pt.IsPositive() {
			share = total.Div(pt).Mul(hundred).InexactFloat64()
		}
		rows = append(rows, Row{
			Period:   k.period,
			Category: k.category,
			Total:    total,
			Share:    share,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Period != rows[j].Period {
			return rows[i].Period < rows[j].Period
		}
		if !rows[i].Total.Equal(rows[j].Total) {
			return rows[i].Total.GreaterThan(rows[j].Total)
		}
		return rows[i].Category < rows[j].Category
	})
	return rows
}
