package products

import (
	"fmt"
	"strings"

	"github.com/tradebook-app/tradebook/internal/masterdata/shared"
)

func validateProduct(p Product) error {
	if strings.TrimSpace(p.SKU) == "" {
		return fmt.Errorf("%w: sku", shared.ErrRequiredField)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name", shared.ErrRequiredField)
	}
	if strings.TrimSpace(p.Unit) == "" {
		return fmt.Errorf("%w: unit", shared.ErrRequiredField)
	}
	if p.MRP < 0 {
		return fmt.Errorf("%w: mrp must not be negative", shared.ErrRequiredField)
	}
	if p.CurrentStock < 0 || p.MinStockLevel < 0 {
		return fmt.Errorf("%w: stock levels must not be negative", shared.ErrRequiredField)
	}
	return nil
}
