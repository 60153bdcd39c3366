package recon

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/yqhr/mfrecon/internal/model"
)

// Candidate pairs an expense with a refund that falls inside the date and
// amount window. Transient: it exists only within one reconciliation run.
type Candidate struct {
	Expense model.Transaction
	Refund  model.Transaction
}

// GenerateCandidates returns every (expense, refund) pair within the date
// and amount window, in canonical order: expense id, then refund id.
// Rows with a nil date or invalid amount are never candidates.
//
// Refunds are indexed by absolute amount so each expense scans only the
// slice of refunds inside its amount window instead of the full cross
// product.
func GenerateCandidates(expenses, refunds []model.Transaction, opts Options) []Candidate {
	index := make([]model.Transaction, 0, len(refunds))
	for _, r := range refunds {
		if r.Date == nil || !r.Amount.Valid {
			continue
		}
		index = append(index, r)
	}
	sort.Slice(index, func(i, j int) bool {
		return index[i].AbsAmount().LessThan(index[j].AbsAmount())
	})

	one := decimal.NewFromInt(1)
	relLo := one.Sub(opts.RelativeTolerance)
	relHi := one.Add(opts.RelativeTolerance)

	var candidates []Candidate
	for _, e := range expenses {
		if e.Date == nil || !e.Amount.Valid {
			continue
		}
		absE := e.AbsAmount()

		// Hull of the two tolerance intervals; both contain absE, so
		// membership in the hull is exactly the OR of the tolerances
		// when amounts are non-negative. The per-pair check below
		// keeps the contract explicit anyway.
		lo := decimal.Min(absE.Sub(opts.AmountTolerance), absE.Mul(relLo))
		hi := decimal.Max(absE.Add(opts.AmountTolerance), absE.Mul(relHi))

		start := sort.Search(len(index), func(i int) bool {
			return index[i].AbsAmount().GreaterThanOrEqual(lo)
		})
		for i := start; i < len(index); i++ {
			r := index[i]
			if r.AbsAmount().GreaterThan(hi) {
				break
			}
			if !withinDateWindow(e, r, opts.WindowDays) {
				continue
			}
			if !withinAmountWindow(absE, r.AbsAmount(), opts) {
				continue
			}
			candidates = append(candidates, Candidate{Expense: e, Refund: r})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Expense.ID != candidates[j].Expense.ID {
			return candidates[i].Expense.ID < candidates[j].Expense.ID
		}
		return candidates[i].Refund.ID < candidates[j].Refund.ID
	})
	return candidates
}

// withinDateWindow reports whether the two dates are at most windowDays
// calendar days apart, inclusive.
func withinDateWindow(e, r model.Transaction, windowDays int) bool {
	diff := r.Date.Sub(*e.Date).Hours() / 24
	if diff < 0 {
		diff = -diff
	}
	return diff <= float64(windowDays)
}

// withinAmountWindow reports whether absR is within the absolute tolerance
// of absE, or within the relative tolerance band around it. The two rules
// combine with OR.
func withinAmountWindow(absE, absR decimal.Decimal, opts Options) bool {
	if absR.Sub(absE).Abs().LessThanOrEqual(opts.AmountTolerance) {
		return true
	}
	one := decimal.NewFromInt(1)
	lo := absE.Mul(one.Sub(opts.RelativeTolerance))
	hi := absE.Mul(one.Add(opts.RelativeTolerance))
	return absR.GreaterThanOrEqual(lo) && absR.LessThanOrEqual(hi)
}
