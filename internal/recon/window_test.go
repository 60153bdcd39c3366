package recon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yqhr/mfrecon/internal/model"
)

func TestGenerateCandidates_DateWindowBoundary(t *testing.T) {
	expense := txn("E1", date(2024, 1, 1), "-3000", "Coffee Shop")

	cases := []struct {
		name   string
		refund model.Transaction
		want   bool
	}{
		{"same day", txn("R1", date(2024, 1, 1), "3000", "Coffee Shop"), true},
		{"14 days after", txn("R1", date(2024, 1, 15), "3000", "Coffee Shop"), true},
		{"14 days before", txn("R1", date(2023, 12, 18), "3000", "Coffee Shop"), true},
		{"15 days after", txn("R1", date(2024, 1, 16), "3000", "Coffee Shop"), false},
		{"15 days before", txn("R1", date(2023, 12, 17), "3000", "Coffee Shop"), false},
		{"31 days after", txn("R1", date(2024, 2, 1), "3000", "Coffee Shop"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := GenerateCandidates(
				[]model.Transaction{expense},
				[]model.Transaction{tc.refund},
				DefaultOptions(),
			)
			if tc.want {
				assert.Len(t, got, 1)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func TestGenerateCandidates_AmountToleranceOR(t *testing.T) {
	day := date(2024, 1, 10)

	cases := []struct {
		name    string
		expense string
		refund  string
		want    bool
	}{
		{"exact amount", "-3000", "3000", true},
		{"absolute boundary 100", "-3000", "3100", true},
		{"absolute just over, relative just over", "-1000", "1150", false},
		{"absolute passes at 95", "-1000", "1095", true},
		{"relative only: 4% of 10000", "-10000", "10400", true},
		{"relative boundary 5%", "-10000", "10500", true},
		{"fails both: 15% of 10000", "-10000", "11500", false},
		{"small amounts inside absolute band", "-50", "120", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := GenerateCandidates(
				[]model.Transaction{txn("E1", day, tc.expense, "Coffee Shop")},
				[]model.Transaction{txn("R1", day, tc.refund, "Coffee Shop")},
				DefaultOptions(),
			)
			if tc.want {
				assert.Len(t, got, 1)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func TestGenerateCandidates_NilDateOrAmountExcluded(t *testing.T) {
	day := date(2024, 1, 10)
	opts := DefaultOptions()

	expense := txn("E1", day, "-3000", "Coffee Shop")
	refund := txn("R1", day, "3000", "Coffee Shop")

	noDate := refund
	noDate.Date = nil
	assert.Empty(t, GenerateCandidates(
		[]model.Transaction{expense}, []model.Transaction{noDate}, opts))

	noAmount := refund
	noAmount.Amount.Valid = false
	assert.Empty(t, GenerateCandidates(
		[]model.Transaction{expense}, []model.Transaction{noAmount}, opts))

	expenseNoDate := expense
	expenseNoDate.Date = nil
	assert.Empty(t, GenerateCandidates(
		[]model.Transaction{expenseNoDate}, []model.Transaction{refund}, opts))
}

func TestGenerateCandidates_CanonicalOrder(t *testing.T) {
	day := date(2024, 1, 10)
	expenses := []model.Transaction{
		txn("E2", day, "-3000", "Coffee Shop"),
		txn("E1", day, "-3000", "Coffee Shop"),
	}
	refunds := []model.Transaction{
		txn("R2", day, "3000", "Coffee Shop"),
		txn("R1", day, "2950", "Coffee Shop"),
	}

	got := GenerateCandidates(expenses, refunds, DefaultOptions())
	require.Len(t, got, 4)

	var order [][2]string
	for _, c := range got {
		order = append(order, [2]string{c.Expense.ID, c.Refund.ID})
	}
	assert.Equal(t, [][2]string{
		{"E1", "R1"}, {"E1", "R2"},
		{"E2", "R1"}, {"E2", "R2"},
	}, order)
}

func TestGenerateCandidates_EmptyInputs(t *testing.T) {
	day := date(2024, 1, 10)
	refunds := []model.Transaction{txn("R1", day, "3000", "Coffee Shop")}

	assert.Empty(t, GenerateCandidates(nil, refunds, DefaultOptions()))
	assert.Empty(t, GenerateCandidates(refunds, nil, DefaultOptions()))
	assert.Empty(t, GenerateCandidates(nil, nil, DefaultOptions()))
}
