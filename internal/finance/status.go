package finance

import "errors"

// PaymentStatus enumerates document payment states.
type PaymentStatus string

const (
	StatusPending PaymentStatus = "pending"
	StatusPartial PaymentStatus = "partial"
	StatusPaid    PaymentStatus = "paid"
)

// Settlement is the derived payment state of a document. Balance and Status
// are pure functions of (total, paid) and must never be stored
// independently of them.
type Settlement struct {
	PaidAmount    float64
	BalanceAmount float64
	Status        PaymentStatus
	// Overpaid marks a negative balance: money owed back to the party.
	// The balance is kept negative, not clamped.
	Overpaid bool
}

// Settle derives the settlement state for a document.
//
//	paid >= total      -> paid (covers exact and over-payment)
//	0 < paid < total   -> partial
//	paid <= 0          -> pending
func Settle(totalAmount, paidAmount float64) Settlement {
	s := Settlement{
		PaidAmount:    paidAmount,
		BalanceAmount: Round2(totalAmount - paidAmount),
	}
	switch {
	case paidAmount >= totalAmount:
		s.Status = StatusPaid
		s.Overpaid = paidAmount > totalAmount
	case paidAmount > 0:
		s.Status = StatusPartial
	default:
		s.Status = StatusPending
	}
	return s
}

// Payment application errors.
var (
	ErrNonPositivePayment = errors.New("finance: payment amount must be positive")
	ErrExceedsBalance     = errors.New("finance: payment amount exceeds outstanding balance")
)

// ApplyPayment computes the expected settlement after recording a payment
// against a document. The original system delegated this to a database
// trigger; here it is explicit so the post-payment state is computed and
// written in the same transaction as the payment row.
func ApplyPayment(totalAmount, alreadyPaid, amount float64) (Settlement, error) {
	if amount <= 0 {
		return Settlement{}, ErrNonPositivePayment
	}
	outstanding := Round2(totalAmount - alreadyPaid)
	if amount > outstanding {
		return Settlement{}, ErrExceedsBalance
	}
	return Settle(totalAmount, Round2(alreadyPaid+amount)), nil
}

// ReversePayment computes the settlement after a recorded payment is
// deleted.
func ReversePayment(totalAmount, alreadyPaid, amount float64) Settlement {
	return Settle(totalAmount, Round2(alreadyPaid-amount))
}
