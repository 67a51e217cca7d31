package products

import "time"

// Product represents a stocked item. CurrentStock is mutated by purchase
// and sale postings and by explicit stock adjustments, never by a plain
// product update.
type Product struct {
	ID            int64     `json:"id"`
	SKU           string    `json:"sku"`
	Name          string    `json:"name"`
	Description   *string   `json:"description,omitempty"`
	Category      *string   `json:"category,omitempty"`
	Unit          string    `json:"unit"`
	MRP           float64   `json:"mrp"`
	CurrentStock  float64   `json:"current_stock"`
	MinStockLevel float64   `json:"min_stock_level"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// LowOnStock reports whether the product is at or below its reorder level.
func (p Product) LowOnStock() bool {
	return p.CurrentStock <= p.MinStockLevel
}
