// Package split computes per-person shares for an evenly split bill.
package split

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// EvenShare returns the amount each participant owes when total is split
// evenly among n participants, rounded half-up to the nearest currency
// unit. Amounts are integer currency units throughout; the rounded share
// is derived on demand and never treated as ground truth, so sums of
// shares may differ from total by at most n/2 units.
func EvenShare(total int64, n int) (int64, error) {
	if n <= 0 {
		return 0, fmt.Errorf("must have at least one participant")
	}
	if total < 0 {
		return 0, fmt.Errorf("total cannot be negative")
	}

	share := decimal.NewFromInt(total).DivRound(decimal.NewFromInt(int64(n)), 0)
	return share.IntPart(), nil
}
