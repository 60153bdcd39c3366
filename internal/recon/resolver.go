package recon

// Match records one accepted expense/refund pairing.
type Match struct {
	ExpenseID string
	RefundID  string
	Score     float64
}

// MatchResult holds the ids consumed by one resolution pass.
type MatchResult struct {
	MatchedRefunds   map[string]bool
	CanceledExpenses map[string]bool
	Matches          []Match
}

// Resolve runs the greedy first-acceptable-match policy over candidates,
// which must already be in canonical order. Each refund is consumed at most
// once; once consumed it is never released, even if a better-scoring
// candidate appears later. Unless opts.AllowMultiRefundPerExpense is set,
// an expense stops consuming after its first accepted refund.
func Resolve(candidates []Candidate, opts Options) MatchResult {
	result := MatchResult{
		MatchedRefunds:   make(map[string]bool),
		CanceledExpenses: make(map[string]bool),
	}

	for _, c := range candidates {
		if result.MatchedRefunds[c.Refund.ID] {
			continue
		}
		if !opts.AllowMultiRefundPerExpense && result.CanceledExpenses[c.Expense.ID] {
			continue
		}

		a := Normalize(c.Expense.Description)
		b := Normalize(c.Refund.Description)
		if !scoreable(a, b) {
			continue
		}

		score := opts.Scorer.Score(a, b)
		if score < opts.Threshold {
			continue
		}

		result.MatchedRefunds[c.Refund.ID] = true
		result.CanceledExpenses[c.Expense.ID] = true
		result.Matches = append(result.Matches, Match{
			ExpenseID: c.Expense.ID,
			RefundID:  c.Refund.ID,
			Score:     score,
		})
	}

	return result
}
