package finance

// DefaultCostingWindow is the number of most recent purchase lines used to
// derive a product's cost basis when no window is configured.
const DefaultCostingWindow = 10

// CostingConfig tunes weighted-average cost resolution.
type CostingConfig struct {
	// Window is the number of most recent purchase lines considered.
	Window int
}

// WindowOrDefault returns the configured window, falling back to
// DefaultCostingWindow.
func (c CostingConfig) WindowOrDefault() int {
	if c.Window > 0 {
		return c.Window
	}
	return DefaultCostingWindow
}

// PurchaseSample is one purchase line contributing to a cost average.
type PurchaseSample struct {
	CostPrice float64
	Quantity  float64
}

// WeightedAverageCost derives a product's per-unit cost basis from recent
// purchase history: sum(cost*qty)/sum(qty) over the supplied window.
// Purchases outside the window are fully excluded, not decayed.
//
// A product with no purchase history, or zero total quantity, resolves to 0.
// That understates cost and inflates profit for new products; it is a known
// approximation, not an error.
func WeightedAverageCost(samples []PurchaseSample) float64 {
	var totalCost, totalQty float64
	for _, s := range samples {
		totalCost += s.CostPrice * s.Quantity
		totalQty += s.Quantity
	}
	if totalQty <= 0 {
		return 0
	}
	return totalCost / totalQty
}
