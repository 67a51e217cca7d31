// Package finance implements the accounting computations shared by the
// purchase, sale, payment, due-invoice and report modules: line pricing,
// weighted-average costing, document aggregation, payment settlement and
// receivable/payable aging. Everything here is pure and operates on
// already-fetched data; persistence stays in the callers.
package finance

import "math"

// Round2 rounds a monetary value to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ApplyDiscount reduces an amount by a percentage discount. The result is
// not rounded; callers decide when rounding happens (see RoundingPolicy).
func ApplyDiscount(amount, discountPercent float64) float64 {
	return amount - amount*discountPercent/100
}
