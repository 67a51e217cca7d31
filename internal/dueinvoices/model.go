package dueinvoices

import (
	"time"

	"github.com/tradebook-app/tradebook/internal/finance"
)

// InvoiceType says which side of the ledger a due document sits on.
type InvoiceType string

const (
	TypeReceivable InvoiceType = "receivable"
	TypePayable    InvoiceType = "payable"
)

// DueInvoice is a read-only projection of a sale or purchase with an
// outstanding balance.
type DueInvoice struct {
	ID             int64                 `json:"id"`
	InvoiceType    InvoiceType           `json:"invoice_type"`
	DocumentNumber string                `json:"document_number"`
	PartyID        int64                 `json:"party_id"`
	PartyName      string                `json:"party_name"`
	DocumentDate   time.Time             `json:"document_date"`
	TotalAmount    float64               `json:"total_amount"`
	PaidAmount     float64               `json:"paid_amount"`
	BalanceAmount  float64               `json:"balance_amount"`
	DaysOverdue    int                   `json:"days_overdue"`
	AgingCategory  finance.AgingCategory `json:"aging_category"`
}

// SideStats is the aging breakdown for one ledger side.
type SideStats struct {
	Total        int                               `json:"total"`
	TotalBalance float64                           `json:"total_balance"`
	Overdue      int                               `json:"overdue"`
	Counts       map[finance.AgingCategory]int     `json:"counts"`
	Balances     map[finance.AgingCategory]float64 `json:"balances"`
}

// Stats combines receivable and payable aging.
type Stats struct {
	AsOf        time.Time `json:"as_of"`
	Receivables SideStats `json:"receivables"`
	Payables    SideStats `json:"payables"`
}

// PartyBalance is an aggregated outstanding balance per customer or
// supplier, for top-debtor and top-creditor listings. Walk-in sales carry
// no customer id and aggregate under id 0.
type PartyBalance struct {
	PartyID      int64   `json:"party_id"`
	PartyName    string  `json:"party_name"`
	InvoiceCount int     `json:"invoice_count"`
	Balance      float64 `json:"balance"`
}

type ListRequest struct {
	Type          InvoiceType
	AgingCategory finance.AgingCategory
	AsOf          time.Time
	Limit         int
}
