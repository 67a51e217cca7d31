package finance

// DocumentFigures is the slice of a persisted document that report folds
// consume. TotalProfit is zero for purchases.
type DocumentFigures struct {
	TotalAmount   float64
	PaidAmount    float64
	BalanceAmount float64
	TotalProfit   float64
}

// SalesSummary aggregates a list of sales for a reporting period.
type SalesSummary struct {
	Count        int     `json:"total_sales"`
	TotalRevenue float64 `json:"total_revenue"`
	TotalPaid    float64 `json:"total_paid"`
	TotalDue     float64 `json:"total_due"`
	TotalProfit  float64 `json:"total_profit"`
	AverageValue float64 `json:"avg_sale_value"`
}

// SummarizeSales folds sales into a summary. Averages over an empty input
// are defined as 0.
func SummarizeSales(docs []DocumentFigures) SalesSummary {
	var s SalesSummary
	for _, d := range docs {
		s.TotalRevenue += d.TotalAmount
		s.TotalPaid += d.PaidAmount
		s.TotalDue += d.BalanceAmount
		s.TotalProfit += d.TotalProfit
	}
	s.Count = len(docs)
	s.TotalRevenue = Round2(s.TotalRevenue)
	s.TotalPaid = Round2(s.TotalPaid)
	s.TotalDue = Round2(s.TotalDue)
	s.TotalProfit = Round2(s.TotalProfit)
	if s.Count > 0 {
		s.AverageValue = Round2(s.TotalRevenue / float64(s.Count))
	}
	return s
}

// PurchaseSummary aggregates a list of purchases for a reporting period.
type PurchaseSummary struct {
	Count        int     `json:"total_purchases"`
	TotalAmount  float64 `json:"total_amount"`
	TotalPaid    float64 `json:"total_paid"`
	TotalDue     float64 `json:"total_due"`
	AverageValue float64 `json:"avg_purchase_value"`
}

// SummarizePurchases folds purchases into a summary.
func SummarizePurchases(docs []DocumentFigures) PurchaseSummary {
	var s PurchaseSummary
	for _, d := range docs {
		s.TotalAmount += d.TotalAmount
		s.TotalPaid += d.PaidAmount
		s.TotalDue += d.BalanceAmount
	}
	s.Count = len(docs)
	s.TotalAmount = Round2(s.TotalAmount)
	s.TotalPaid = Round2(s.TotalPaid)
	s.TotalDue = Round2(s.TotalDue)
	if s.Count > 0 {
		s.AverageValue = Round2(s.TotalAmount / float64(s.Count))
	}
	return s
}

// ProfitLossSummary combines the sales and purchase sides of a period.
type ProfitLossSummary struct {
	TotalRevenue float64 `json:"total_revenue"`
	TotalCost    float64 `json:"total_cost"`
	GrossProfit  float64 `json:"gross_profit"`
	NetProfit    float64 `json:"net_profit"`
	ProfitMargin float64 `json:"profit_margin"`
}

// ProfitAndLoss derives the P&L summary for a period. Gross profit is the
// margin captured on sold goods (sum of sale profits); net profit offsets
// revenue against everything purchased in the period.
func ProfitAndLoss(sales SalesSummary, purchases PurchaseSummary) ProfitLossSummary {
	return ProfitLossSummary{
		TotalRevenue: sales.TotalRevenue,
		TotalCost:    purchases.TotalAmount,
		GrossProfit:  sales.TotalProfit,
		NetProfit:    Round2(sales.TotalRevenue - purchases.TotalAmount),
		ProfitMargin: ProfitMargin(sales.TotalProfit, sales.TotalRevenue),
	}
}

// ProfitMargin returns profit as a percentage of revenue, defined as 0 when
// revenue is 0.
func ProfitMargin(profit, revenue float64) float64 {
	if revenue == 0 {
		return 0
	}
	return Round2(profit / revenue * 100)
}

// StockFigures is the product slice consumed by the stock report.
type StockFigures struct {
	CurrentStock  float64
	MinStockLevel float64
	MRP           float64
}

// StockSummary aggregates active products for the stock report.
type StockSummary struct {
	Products   int     `json:"total_products"`
	StockValue float64 `json:"total_stock_value"`
	LowStock   int     `json:"low_stock_items"`
	OutOfStock int     `json:"out_of_stock"`
}

// SummarizeStock folds product stock levels into a summary. Stock value is
// priced at MRP, matching how the original valued inventory on hand.
func SummarizeStock(items []StockFigures) StockSummary {
	var s StockSummary
	for _, it := range items {
		s.StockValue += it.CurrentStock * it.MRP
		if it.CurrentStock <= it.MinStockLevel {
			s.LowStock++
		}
		if it.CurrentStock == 0 {
			s.OutOfStock++
		}
	}
	s.Products = len(items)
	s.StockValue = Round2(s.StockValue)
	return s
}
