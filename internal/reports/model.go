package reports

import (
	"time"

	"github.com/tradebook-app/tradebook/internal/finance"
)

// DateRange is an inclusive reporting period over document dates.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

type SalesRow struct {
	ID            int64                 `json:"id"`
	InvoiceNumber string                `json:"invoice_number"`
	CustomerName  string                `json:"customer_name"`
	SaleDate      time.Time             `json:"sale_date"`
	TotalAmount   float64               `json:"total_amount"`
	PaidAmount    float64               `json:"paid_amount"`
	BalanceAmount float64               `json:"balance_amount"`
	TotalProfit   float64               `json:"total_profit"`
	PaymentStatus finance.PaymentStatus `json:"payment_status"`
}

type SalesReport struct {
	Period  DateRange            `json:"period"`
	Summary finance.SalesSummary `json:"summary"`
	Rows    []SalesRow           `json:"rows"`
}

type PurchaseRow struct {
	ID             int64                 `json:"id"`
	PurchaseNumber string                `json:"purchase_number"`
	SupplierName   string                `json:"supplier_name"`
	PurchaseDate   time.Time             `json:"purchase_date"`
	TotalAmount    float64               `json:"total_amount"`
	PaidAmount     float64               `json:"paid_amount"`
	BalanceAmount  float64               `json:"balance_amount"`
	PaymentStatus  finance.PaymentStatus `json:"payment_status"`
}

type PurchasesReport struct {
	Period  DateRange               `json:"period"`
	Summary finance.PurchaseSummary `json:"summary"`
	Rows    []PurchaseRow           `json:"rows"`
}

type ProfitLossReport struct {
	Period    DateRange                 `json:"period"`
	Summary   finance.ProfitLossSummary `json:"summary"`
	Sales     finance.SalesSummary      `json:"sales"`
	Purchases finance.PurchaseSummary   `json:"purchases"`
}

type StockRow struct {
	ID            int64   `json:"id"`
	SKU           string  `json:"sku"`
	Name          string  `json:"name"`
	Category      *string `json:"category,omitempty"`
	Unit          string  `json:"unit"`
	CurrentStock  float64 `json:"current_stock"`
	MinStockLevel float64 `json:"min_stock_level"`
	MRP           float64 `json:"mrp"`
	StockValue    float64 `json:"stock_value"`
	LowStock      bool    `json:"low_stock"`
}

type StockReport struct {
	Summary finance.StockSummary `json:"summary"`
	Rows    []StockRow           `json:"rows"`
}

type CustomerRow struct {
	CustomerID  int64   `json:"customer_id"`
	Name        string  `json:"name"`
	SaleCount   int     `json:"sale_count"`
	TotalAmount float64 `json:"total_amount"`
	PaidAmount  float64 `json:"paid_amount"`
	BalanceDue  float64 `json:"balance_due"`
}

type CustomerReport struct {
	Period DateRange     `json:"period"`
	Rows   []CustomerRow `json:"rows"`
}
