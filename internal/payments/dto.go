package payments

import "time"

type CreatePaymentRequest struct {
	PaymentType   string    `json:"payment_type" validate:"required,oneof=sale_payment purchase_payment"`
	ReferenceID   int64     `json:"reference_id" validate:"required,gt=0"`
	Amount        float64   `json:"amount" validate:"required,gt=0"`
	PaymentDate   time.Time `json:"payment_date" validate:"required"`
	PaymentMethod string    `json:"payment_method" validate:"required,oneof=cash upi bank_transfer cheque card"`
	Notes         *string   `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type ListPaymentsRequest struct {
	PaymentType   string
	PaymentMethod string
	ReferenceID   *int64
	DateFrom      *time.Time
	DateTo        *time.Time
	Page          int
	Limit         int
}
