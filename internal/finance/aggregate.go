package finance

// DocumentTotals is the document-level aggregation of priced line items.
// TotalCost and TotalProfit are populated for sales only.
type DocumentTotals struct {
	Subtotal        float64
	DiscountPercent float64
	DiscountAmount  float64
	TotalAmount     float64
	TotalCost       float64
	TotalProfit     float64
	Settlement
}

// Aggregate folds priced line totals into document totals and derives the
// settlement state. For a create, paidAmount comes from the caller; for an
// update, the caller must pass the paid amount of the existing record so
// prior payments survive a line-item edit.
func Aggregate(lineTotals []float64, discountPercent, paidAmount float64) (DocumentTotals, error) {
	if len(lineTotals) == 0 {
		return DocumentTotals{}, ErrNoLines
	}
	if discountPercent < 0 || discountPercent > 100 {
		return DocumentTotals{}, ErrInvalidDiscount
	}

	var subtotal float64
	for _, t := range lineTotals {
		subtotal += t
	}
	subtotal = Round2(subtotal)
	discountAmount := Round2(subtotal * discountPercent / 100)
	totalAmount := Round2(subtotal - discountAmount)

	return DocumentTotals{
		Subtotal:        subtotal,
		DiscountPercent: discountPercent,
		DiscountAmount:  discountAmount,
		TotalAmount:     totalAmount,
		Settlement:      Settle(totalAmount, paidAmount),
	}, nil
}

// SaleLineCost carries the cost side of a priced sale line.
type SaleLineCost struct {
	Total     float64
	CostPrice float64
	Quantity  float64
}

// AggregateSale aggregates sale lines including the cost basis fold:
// total cost is the sum of cost price times quantity across lines, and
// total profit is the discounted document total minus total cost.
func AggregateSale(lines []SaleLineCost, discountPercent, paidAmount float64) (DocumentTotals, error) {
	lineTotals := make([]float64, 0, len(lines))
	var totalCost float64
	for _, l := range lines {
		lineTotals = append(lineTotals, l.Total)
		totalCost += l.CostPrice * l.Quantity
	}
	totals, err := Aggregate(lineTotals, discountPercent, paidAmount)
	if err != nil {
		return DocumentTotals{}, err
	}
	totals.TotalCost = Round2(totalCost)
	totals.TotalProfit = Round2(totals.TotalAmount - totals.TotalCost)
	return totals, nil
}
