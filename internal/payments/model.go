package payments

import (
	"errors"
	"time"
)

var (
	ErrNotFound    = errors.New("payment not found")
	ErrInvalidID   = errors.New("invalid payment ID")
	ErrInvalidType = errors.New("payment type must be sale_payment or purchase_payment")
)

// PaymentType says which side of the ledger a payment settles.
type PaymentType string

const (
	TypeSalePayment     PaymentType = "sale_payment"
	TypePurchasePayment PaymentType = "purchase_payment"
)

func (t PaymentType) Valid() bool {
	return t == TypeSalePayment || t == TypePurchasePayment
}

type Payment struct {
	ID              int64       `json:"id"`
	PaymentNumber   string      `json:"payment_number"`
	PaymentType     PaymentType `json:"payment_type"`
	ReferenceID     int64       `json:"reference_id"`
	ReferenceNumber string      `json:"reference_number,omitempty"`
	PartyName       string      `json:"party_name,omitempty"`
	Amount          float64     `json:"amount"`
	PaymentDate     time.Time   `json:"payment_date"`
	PaymentMethod   string      `json:"payment_method"`
	Notes           string      `json:"notes,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
}

// PendingDocument is a sale or purchase with an outstanding balance,
// shaped for a payment entry form.
type PendingDocument struct {
	ID             int64     `json:"id"`
	DocumentNumber string    `json:"document_number"`
	PartyName      string    `json:"party_name"`
	DocumentDate   time.Time `json:"document_date"`
	TotalAmount    float64   `json:"total_amount"`
	PaidAmount     float64   `json:"paid_amount"`
	BalanceAmount  float64   `json:"balance_amount"`
}
