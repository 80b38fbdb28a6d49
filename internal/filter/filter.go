// Package filter implements the optional region/amount filter stage.
package filter

import (
	"github.com/shopspring/decimal"

	"github.com/salespipe-dev/salespipe/internal/model"
)

// Options parameterizes the filter. Zero values disable each criterion.
type Options struct {
	Region    string
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
}

// Enabled reports whether any criterion is set.
func (o Options) Enabled() bool {
	return o.Region != "" || o.MinAmount != nil || o.MaxAmount != nil
}

// Summary reports what the filter did.
type Summary struct {
	TotalInput       int
	Invalid          int
	FilteredByRegion int
	FilteredByAmount int
	FinalCount       int
}

// Apply drops invalid transactions (non-positive quantity or price) and
// applies the optional region and inclusive amount-range criteria.
// The input slice is not modified.
func Apply(txns []model.Transaction, opts Options) ([]model.Transaction, Summary) {
	sum := Summary{TotalInput: len(txns)}

	var kept []model.Transaction
	for _, txn := range txns {
		if txn.Quantity <= 0 || txn.UnitPrice.Sign() <= 0 {
			sum.Invalid++
			continue
		}
		amount := txn.Amount()

		if opts.Region != "" && opts.Region != txn.Region {
			sum.FilteredByRegion++
			continue
		}
		if opts.MinAmount != nil && amount.LessThan(*opts.MinAmount) {
			sum.FilteredByAmount++
			continue
		}
		if opts.MaxAmount != nil && amount.GreaterThan(*opts.MaxAmount) {
			sum.FilteredByAmount++
			continue
		}
		kept = append(kept, txn)
	}

	sum.FinalCount = len(kept)
	return kept, sum
}
