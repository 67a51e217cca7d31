package sales

import (
	"errors"
	"time"

	"github.com/tradebook-app/tradebook/internal/finance"
)

var (
	ErrNotFound  = errors.New("sale not found")
	ErrInvalidID = errors.New("invalid sale ID")
)

type SaleItem struct {
	ID              int64   `json:"id"`
	SaleID          int64   `json:"sale_id"`
	ProductID       int64   `json:"product_id"`
	ProductName     string  `json:"product_name,omitempty"`
	Quantity        float64 `json:"quantity"`
	MRP             float64 `json:"mrp"`
	DiscountPercent float64 `json:"discount_percent"`
	UnitPrice       float64 `json:"unit_price"`
	Total           float64 `json:"total"`
	CostPrice       float64 `json:"cost_price"`
	Profit          float64 `json:"profit"`
}

type Sale struct {
	ID                 int64                 `json:"id"`
	InvoiceNumber      string                `json:"invoice_number"`
	CustomerID         *int64                `json:"customer_id,omitempty"`
	CustomerName       *string               `json:"customer_name,omitempty"`
	SaleDate           time.Time             `json:"sale_date"`
	Subtotal           float64               `json:"subtotal"`
	DiscountPercentage float64               `json:"discount_percentage"`
	DiscountAmount     float64               `json:"discount_amount"`
	TotalAmount        float64               `json:"total_amount"`
	TotalCost          float64               `json:"total_cost"`
	TotalProfit        float64               `json:"total_profit"`
	PaidAmount         float64               `json:"paid_amount"`
	BalanceAmount      float64               `json:"balance_amount"`
	PaymentStatus      finance.PaymentStatus `json:"payment_status"`
	Notes              string                `json:"notes,omitempty"`
	Items              []SaleItem            `json:"items,omitempty"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
}
