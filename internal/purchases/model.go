package purchases

import (
	"errors"
	"time"

	"github.com/tradebook-app/tradebook/internal/finance"
)

var (
	ErrNotFound  = errors.New("purchase not found")
	ErrInvalidID = errors.New("invalid purchase ID")
)

type PurchaseItem struct {
	ID              int64   `json:"id"`
	PurchaseID      int64   `json:"purchase_id"`
	ProductID       int64   `json:"product_id"`
	ProductName     string  `json:"product_name,omitempty"`
	Quantity        float64 `json:"quantity"`
	MRP             float64 `json:"mrp"`
	DiscountPercent float64 `json:"discount_percent"`
	CostPrice       float64 `json:"cost_price"`
	Total           float64 `json:"total"`
}

type Purchase struct {
	ID                    int64                 `json:"id"`
	PurchaseNumber        string                `json:"purchase_number"`
	SupplierID            int64                 `json:"supplier_id"`
	SupplierName          string                `json:"supplier_name,omitempty"`
	PurchaseDate          time.Time             `json:"purchase_date"`
	SupplierInvoiceNumber string                `json:"supplier_invoice_number,omitempty"`
	Subtotal              float64               `json:"subtotal"`
	DiscountPercentage    float64               `json:"discount_percentage"`
	DiscountAmount        float64               `json:"discount_amount"`
	TotalAmount           float64               `json:"total_amount"`
	PaidAmount            float64               `json:"paid_amount"`
	BalanceAmount         float64               `json:"balance_amount"`
	PaymentStatus         finance.PaymentStatus `json:"payment_status"`
	Notes                 string                `json:"notes,omitempty"`
	Items                 []PurchaseItem        `json:"items,omitempty"`
	CreatedAt             time.Time             `json:"created_at"`
	UpdatedAt             time.Time             `json:"updated_at"`
}
