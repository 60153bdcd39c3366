package recon

import "github.com/shopspring/decimal"

// Options control one reconciliation run.
type Options struct {
	// WindowDays is the maximum calendar-day distance between an expense
	// and a refund, inclusive on both ends.
	WindowDays int
	// AmountTolerance is the absolute tolerance on |amount| difference,
	// in minor-unit scale.
	AmountTolerance decimal.Decimal
	// RelativeTolerance is the fractional tolerance on |amount|
	// (0.05 = refund within ±5% of the expense). Combined with
	// AmountTolerance by OR.
	RelativeTolerance decimal.Decimal
	// Threshold is the minimum similarity score for a textual match,
	// inclusive.
	Threshold float64
	// Scorer computes the similarity between normalized descriptions.
	Scorer TextSimilarity
	// AllowMultiRefundPerExpense lets one expense cancel several refunds.
	// When false, an expense stops consuming after its first accepted
	// refund.
	AllowMultiRefundPerExpense bool
}

// DefaultOptions returns the standard matching parameters.
func DefaultOptions() Options {
	return Options{
		WindowDays:        14,
		AmountTolerance:   decimal.NewFromInt(100),
		RelativeTolerance: decimal.NewFromFloat(0.05),
		Threshold:         0.8,
		Scorer:            TokenSetRatio{},
	}
}
