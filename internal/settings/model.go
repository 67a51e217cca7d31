package settings

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("setting not found")

type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	Category  string    `json:"category"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Defaults are served read-through when a key has never been written.
var Defaults = map[string]Setting{
	"business_name":   {Key: "business_name", Value: "My Business", Category: "business"},
	"business_phone":  {Key: "business_phone", Value: "", Category: "business"},
	"business_email":  {Key: "business_email", Value: "", Category: "business"},
	"invoice_prefix":  {Key: "invoice_prefix", Value: "INV-", Category: "numbering"},
	"purchase_prefix": {Key: "purchase_prefix", Value: "PO-", Category: "numbering"},
	"payment_prefix":  {Key: "payment_prefix", Value: "PAY-", Category: "numbering"},
	"currency_symbol": {Key: "currency_symbol", Value: "₹", Category: "business"},
}
