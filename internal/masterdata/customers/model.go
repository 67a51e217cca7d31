package customers

import "time"

// CustomerType distinguishes pricing and credit treatment.
type CustomerType string

const (
	TypeRetail    CustomerType = "retail"
	TypeWholesale CustomerType = "wholesale"
)

type Customer struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	BusinessName *string      `json:"business_name,omitempty"`
	Phone        *string      `json:"phone,omitempty"`
	Email        *string      `json:"email,omitempty"`
	Address      *string      `json:"address,omitempty"`
	City         *string      `json:"city,omitempty"`
	CustomerType CustomerType `json:"customer_type"`
	IsActive     bool         `json:"is_active"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Stats summarizes a customer's trading history.
type Stats struct {
	CustomerID  int64   `json:"customer_id"`
	SaleCount   int     `json:"sale_count"`
	TotalAmount float64 `json:"total_amount"`
	PaidAmount  float64 `json:"paid_amount"`
	BalanceDue  float64 `json:"balance_due"`
}
