package products

// CreateProductRequest is the payload for creating a product.
type CreateProductRequest struct {
	SKU           string  `json:"sku" validate:"required,max=64"`
	Name          string  `json:"name" validate:"required,max=255"`
	Description   *string `json:"description,omitempty"`
	Category      *string `json:"category,omitempty"`
	Unit          string  `json:"unit" validate:"required,max=20"`
	MRP           float64 `json:"mrp" validate:"gte=0"`
	CurrentStock  float64 `json:"current_stock" validate:"gte=0"`
	MinStockLevel float64 `json:"min_stock_level" validate:"gte=0"`
}

// UpdateProductRequest is the payload for updating a product. Stock is
// deliberately absent: once a product has transaction history its stock
// moves only through documents or an explicit adjustment.
type UpdateProductRequest struct {
	Name          *string  `json:"name,omitempty" validate:"omitempty,max=255"`
	Description   *string  `json:"description,omitempty"`
	Category      *string  `json:"category,omitempty"`
	Unit          *string  `json:"unit,omitempty" validate:"omitempty,max=20"`
	MRP           *float64 `json:"mrp,omitempty" validate:"omitempty,gte=0"`
	MinStockLevel *float64 `json:"min_stock_level,omitempty" validate:"omitempty,gte=0"`
	IsActive      *bool    `json:"is_active,omitempty"`
}

// AdjustStockRequest is a manual stock correction.
type AdjustStockRequest struct {
	NewStock float64 `json:"new_stock" validate:"gte=0"`
	Notes    string  `json:"notes,omitempty" validate:"max=500"`
}
