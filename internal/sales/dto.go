package sales

import "time"

type SaleItemRequest struct {
	ProductID       int64   `json:"product_id" validate:"required,gt=0"`
	Quantity        float64 `json:"quantity" validate:"required,gt=0"`
	MRP             float64 `json:"mrp" validate:"gte=0"`
	DiscountPercent float64 `json:"discount_percent" validate:"gte=0,lte=100"`
}

type CreateSaleRequest struct {
	CustomerID         *int64            `json:"customer_id,omitempty" validate:"omitempty,gt=0"`
	SaleDate           time.Time         `json:"sale_date" validate:"required"`
	DiscountPercentage float64           `json:"discount_percentage" validate:"gte=0,lte=100"`
	PaidAmount         float64           `json:"paid_amount" validate:"gte=0"`
	Notes              *string           `json:"notes,omitempty" validate:"omitempty,max=1000"`
	Items              []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateSaleRequest replaces lines and header fields. The stored paid
// amount is carried forward; see UpdatePurchaseRequest for the rationale.
type UpdateSaleRequest struct {
	CustomerID         *int64            `json:"customer_id,omitempty" validate:"omitempty,gt=0"`
	SaleDate           time.Time         `json:"sale_date" validate:"required"`
	DiscountPercentage float64           `json:"discount_percentage" validate:"gte=0,lte=100"`
	Notes              *string           `json:"notes,omitempty" validate:"omitempty,max=1000"`
	Items              []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

type ListSalesRequest struct {
	Search        string
	CustomerID    *int64
	PaymentStatus string
	DateFrom      *time.Time
	DateTo        *time.Time
	Page          int
	Limit         int
}
