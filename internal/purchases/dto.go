package purchases

import "time"

// PurchaseItemRequest carries the supplier's list price and the negotiated
// discount; the effective cost price per unit is derived, never supplied.
type PurchaseItemRequest struct {
	ProductID       int64   `json:"product_id" validate:"required,gt=0"`
	Quantity        float64 `json:"quantity" validate:"required,gt=0"`
	MRP             float64 `json:"mrp" validate:"gte=0"`
	DiscountPercent float64 `json:"discount_percent" validate:"gte=0,lte=100"`
}

type CreatePurchaseRequest struct {
	SupplierID            int64                 `json:"supplier_id" validate:"required,gt=0"`
	PurchaseDate          time.Time             `json:"purchase_date" validate:"required"`
	SupplierInvoiceNumber *string               `json:"supplier_invoice_number,omitempty" validate:"omitempty,max=64"`
	DiscountPercentage    float64               `json:"discount_percentage" validate:"gte=0,lte=100"`
	PaidAmount            float64               `json:"paid_amount" validate:"gte=0"`
	Notes                 *string               `json:"notes,omitempty" validate:"omitempty,max=1000"`
	Items                 []PurchaseItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdatePurchaseRequest replaces the document's lines and header fields.
// PaidAmount is absent on purpose: payments recorded against the document
// must survive an edit, so the stored paid amount is carried forward and
// the balance re-derived from the new total.
type UpdatePurchaseRequest struct {
	SupplierID            int64                 `json:"supplier_id" validate:"required,gt=0"`
	PurchaseDate          time.Time             `json:"purchase_date" validate:"required"`
	SupplierInvoiceNumber *string               `json:"supplier_invoice_number,omitempty" validate:"omitempty,max=64"`
	DiscountPercentage    float64               `json:"discount_percentage" validate:"gte=0,lte=100"`
	Notes                 *string               `json:"notes,omitempty" validate:"omitempty,max=1000"`
	Items                 []PurchaseItemRequest `json:"items" validate:"required,min=1,dive"`
}

type ListPurchasesRequest struct {
	Search        string
	SupplierID    *int64
	PaymentStatus string
	DateFrom      *time.Time
	DateTo        *time.Time
	Page          int
	Limit         int
}
