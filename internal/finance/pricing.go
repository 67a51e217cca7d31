package finance

import "errors"

// Validation errors returned before any aggregation runs.
var (
	ErrInvalidMRP      = errors.New("finance: mrp must not be negative")
	ErrInvalidDiscount = errors.New("finance: discount must be between 0 and 100")
	ErrInvalidQuantity = errors.New("finance: quantity must be positive")
	ErrNoLines         = errors.New("finance: at least one line item is required")
)

// RoundingPolicy controls when 2dp rounding is applied while pricing a line.
type RoundingPolicy int

const (
	// RoundPerUnit rounds the unit price first and computes the line total
	// from the rounded unit price. This is the default: it matches the
	// unit price shown on the invoice, at the cost of small per-line
	// differences versus full-precision arithmetic.
	RoundPerUnit RoundingPolicy = iota
	// RoundAtEnd keeps full precision through the discount and quantity
	// multiplication and rounds only the final total.
	RoundAtEnd
)

// PriceLine computes the discounted unit price and line total for a line
// item. For purchases the unit price is the cost price, for sales the
// selling price. Discounts above 100 are a caller error, not reclamped.
func PriceLine(mrp, discountPercent, quantity float64, policy RoundingPolicy) (unitPrice, total float64, err error) {
	if mrp < 0 {
		return 0, 0, ErrInvalidMRP
	}
	if discountPercent < 0 || discountPercent > 100 {
		return 0, 0, ErrInvalidDiscount
	}
	if quantity <= 0 {
		return 0, 0, ErrInvalidQuantity
	}

	switch policy {
	case RoundAtEnd:
		raw := ApplyDiscount(mrp, discountPercent)
		return Round2(raw), Round2(raw * quantity), nil
	default:
		unitPrice = Round2(ApplyDiscount(mrp, discountPercent))
		return unitPrice, Round2(unitPrice * quantity), nil
	}
}

// LineProfit computes the profit captured on a sale line given the resolved
// cost basis for the product.
func LineProfit(sellingPrice, costPrice, quantity float64) float64 {
	return Round2((sellingPrice - costPrice) * quantity)
}
