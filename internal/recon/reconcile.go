package recon

import "github.com/yqhr/mfrecon/internal/model"

// Split partitions included transactions into expenses (amount < 0) and
// refunds (amount > 0). Excluded rows, zero amounts, and rows with an
// invalid amount join neither set. Input order is preserved.
func Split(txns []model.Transaction) (expenses, refunds []model.Transaction) {
	for _, t := range txns {
		switch {
		case t.IsExpense():
			expenses = append(expenses, t)
		case t.IsRefund():
			refunds = append(refunds, t)
		}
	}
	return expenses, refunds
}

// Reconcile removes matched expense/refund pairs from both sets and returns
// the survivors plus the match result. A single synchronous batch
// computation: all matching state is local to the call.
func Reconcile(expenses, refunds []model.Transaction, opts Options) (validExpenses, validRefunds []model.Transaction, result MatchResult) {
	candidates := GenerateCandidates(expenses, refunds, opts)
	result = Resolve(candidates, opts)
	validExpenses = filterOut(expenses, result.CanceledExpenses)
	validRefunds = filterOut(refunds, result.MatchedRefunds)
	return validExpenses, validRefunds, result
}

// filterOut returns txns minus the rows whose id is in drop, preserving
// order. Surviving records are returned as-is, never mutated.
func filterOut(txns []model.Transaction, drop map[string]bool) []model.Transaction {
	var kept []model.Transaction
	for _, t := range txns {
		if drop[t.ID] {
			continue
		}
		kept = append(kept, t)
	}
	return kept
}
