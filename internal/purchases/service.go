package purchases

import (
	"context"
	"log/slog"

	"github.com/tradebook-app/tradebook/internal/finance"
)

// PrefixSource resolves configurable document number prefixes.
type PrefixSource interface {
	DocumentPrefix(ctx context.Context, key string) string
}

const prefixKey = "purchase_prefix"

type Service struct {
	repo     Repository
	prefixes PrefixSource
	policy   finance.RoundingPolicy
	logger   *slog.Logger
}

func NewService(repo Repository, prefixes PrefixSource, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		prefixes: prefixes,
		policy:   finance.RoundPerUnit,
		logger:   logger,
	}
}

func (s *Service) List(ctx context.Context, req ListPurchasesRequest) ([]Purchase, int, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 200 {
		req.Limit = 50
	}
	return s.repo.List(ctx, req)
}

func (s *Service) Get(ctx context.Context, id int64) (*Purchase, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	return s.repo.Get(ctx, id)
}

// priceItems derives the effective cost price of each line from the
// supplier list price and line discount, and returns the built items
// together with their totals for aggregation.
func (s *Service) priceItems(reqItems []PurchaseItemRequest) ([]PurchaseItem, []float64, error) {
	items := make([]PurchaseItem, 0, len(reqItems))
	totals := make([]float64, 0, len(reqItems))
	for _, it := range reqItems {
		unit, total, err := finance.PriceLine(it.MRP, it.DiscountPercent, it.Quantity, s.policy)
		if err != nil {
			return nil, nil, err
		}
		items = append(items, PurchaseItem{
			ProductID:       it.ProductID,
			Quantity:        it.Quantity,
			MRP:             it.MRP,
			DiscountPercent: it.DiscountPercent,
			CostPrice:       unit,
			Total:           total,
		})
		totals = append(totals, total)
	}
	return items, totals, nil
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (s *Service) Create(ctx context.Context, req CreatePurchaseRequest) (*Purchase, error) {
	items, lineTotals, err := s.priceItems(req.Items)
	if err != nil {
		return nil, err
	}
	totals, err := finance.Aggregate(lineTotals, req.DiscountPercentage, req.PaidAmount)
	if err != nil {
		return nil, err
	}

	var purchaseID int64
	err = s.repo.WithTx(ctx, func(ctx context.Context, tx Repository) error {
		number, err := tx.GenerateNumber(ctx, s.prefixes.DocumentPrefix(ctx, prefixKey), req.PurchaseDate)
		if err != nil {
			return err
		}
		p := Purchase{
			PurchaseNumber:        number,
			SupplierID:            req.SupplierID,
			PurchaseDate:          req.PurchaseDate,
			SupplierInvoiceNumber: strVal(req.SupplierInvoiceNumber),
			Subtotal:              totals.Subtotal,
			DiscountPercentage:    totals.DiscountPercent,
			DiscountAmount:        totals.DiscountAmount,
			TotalAmount:           totals.TotalAmount,
			PaidAmount:            totals.PaidAmount,
			BalanceAmount:         totals.BalanceAmount,
			PaymentStatus:         totals.Status,
			Notes:                 strVal(req.Notes),
		}
		purchaseID, err = tx.Create(ctx, p)
		if err != nil {
			return err
		}
		for _, it := range items {
			it.PurchaseID = purchaseID
			if _, err := tx.InsertItem(ctx, it); err != nil {
				return err
			}
			if err := tx.AdjustStock(ctx, it.ProductID, it.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("purchase created",
		slog.Int64("purchase_id", purchaseID),
		slog.Float64("total", totals.TotalAmount),
		slog.String("status", string(totals.Status)),
	)
	return s.repo.Get(ctx, purchaseID)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdatePurchaseRequest) (*Purchase, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	items, lineTotals, err := s.priceItems(req.Items)
	if err != nil {
		return nil, err
	}
	// Recorded payments survive the edit: totals are settled against the
	// paid amount already on the document, not a caller-supplied one.
	totals, err := finance.Aggregate(lineTotals, req.DiscountPercentage, existing.PaidAmount)
	if err != nil {
		return nil, err
	}
	if totals.Overpaid {
		s.logger.Warn("purchase edit leaves document over-paid",
			slog.Int64("purchase_id", id),
			slog.Float64("total", totals.TotalAmount),
			slog.Float64("paid", existing.PaidAmount),
		)
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, tx Repository) error {
		for _, old := range existing.Items {
			if err := tx.AdjustStock(ctx, old.ProductID, -old.Quantity); err != nil {
				return err
			}
		}
		if err := tx.DeleteItems(ctx, id); err != nil {
			return err
		}

		p := Purchase{
			SupplierID:            req.SupplierID,
			PurchaseDate:          req.PurchaseDate,
			SupplierInvoiceNumber: strVal(req.SupplierInvoiceNumber),
			Subtotal:              totals.Subtotal,
			DiscountPercentage:    totals.DiscountPercent,
			DiscountAmount:        totals.DiscountAmount,
			TotalAmount:           totals.TotalAmount,
			PaidAmount:            totals.PaidAmount,
			BalanceAmount:         totals.BalanceAmount,
			PaymentStatus:         totals.Status,
			Notes:                 strVal(req.Notes),
		}
		if err := tx.UpdateHeader(ctx, id, p); err != nil {
			return err
		}
		for _, it := range items {
			it.PurchaseID = id
			if _, err := tx.InsertItem(ctx, it); err != nil {
				return err
			}
			if err := tx.AdjustStock(ctx, it.ProductID, it.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.WithTx(ctx, func(ctx context.Context, tx Repository) error {
		for _, it := range existing.Items {
			if err := tx.AdjustStock(ctx, it.ProductID, -it.Quantity); err != nil {
				return err
			}
		}
		if err := tx.DeleteItems(ctx, id); err != nil {
			return err
		}
		return tx.Delete(ctx, id)
	})
}
