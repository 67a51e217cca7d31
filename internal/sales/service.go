package sales

import (
	"context"
	"log/slog"

	"github.com/tradebook-app/tradebook/internal/finance"
)

// PrefixSource resolves configurable document number prefixes.
type PrefixSource interface {
	DocumentPrefix(ctx context.Context, key string) string
}

const prefixKey = "invoice_prefix"

type Service struct {
	repo     Repository
	prefixes PrefixSource
	costing  finance.CostingConfig
	policy   finance.RoundingPolicy
	logger   *slog.Logger
}

func NewService(repo Repository, prefixes PrefixSource, costing finance.CostingConfig, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		prefixes: prefixes,
		costing:  costing,
		policy:   finance.RoundPerUnit,
		logger:   logger,
	}
}

func (s *Service) List(ctx context.Context, req ListSalesRequest) ([]Sale, int, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 200 {
		req.Limit = 50
	}
	return s.repo.List(ctx, req)
}

func (s *Service) Get(ctx context.Context, id int64) (*Sale, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	return s.repo.Get(ctx, id)
}

// priceItems prices each line and resolves the cost basis per product from
// recent purchase history. A product with no purchase history costs zero,
// which makes the whole line total read as profit.
func (s *Service) priceItems(ctx context.Context, reqItems []SaleItemRequest) ([]SaleItem, []finance.SaleLineCost, error) {
	ids := make([]int64, 0, len(reqItems))
	seen := map[int64]bool{}
	for _, it := range reqItems {
		if !seen[it.ProductID] {
			seen[it.ProductID] = true
			ids = append(ids, it.ProductID)
		}
	}
	samples, err := s.repo.RecentPurchaseSamples(ctx, ids, s.costing.WindowOrDefault())
	if err != nil {
		return nil, nil, err
	}

	items := make([]SaleItem, 0, len(reqItems))
	lines := make([]finance.SaleLineCost, 0, len(reqItems))
	for _, it := range reqItems {
		unit, total, err := finance.PriceLine(it.MRP, it.DiscountPercent, it.Quantity, s.policy)
		if err != nil {
			return nil, nil, err
		}
		cost := finance.WeightedAverageCost(samples[it.ProductID])
		items = append(items, SaleItem{
			ProductID:       it.ProductID,
			Quantity:        it.Quantity,
			MRP:             it.MRP,
			DiscountPercent: it.DiscountPercent,
			UnitPrice:       unit,
			Total:           total,
			CostPrice:       cost,
			Profit:          finance.LineProfit(unit, cost, it.Quantity),
		})
		lines = append(lines, finance.SaleLineCost{
			Total:     total,
			CostPrice: cost,
			Quantity:  it.Quantity,
		})
	}
	return items, lines, nil
}

func (s *Service) insertItems(ctx context.Context, tx Repository, saleID int64, items []SaleItem) error {
	for _, it := range items {
		it.SaleID = saleID
		if _, err := tx.InsertItem(ctx, it); err != nil {
			return err
		}
		newStock, err := tx.AdjustStock(ctx, it.ProductID, -it.Quantity)
		if err != nil {
			return err
		}
		// Selling into negative stock is allowed but worth noticing.
		if newStock < 0 {
			s.logger.Warn("sale drove stock negative",
				slog.Int64("product_id", it.ProductID),
				slog.Float64("stock", newStock),
			)
		}
	}
	return nil
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (s *Service) Create(ctx context.Context, req CreateSaleRequest) (*Sale, error) {
	items, lines, err := s.priceItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	totals, err := finance.AggregateSale(lines, req.DiscountPercentage, req.PaidAmount)
	if err != nil {
		return nil, err
	}

	var saleID int64
	err = s.repo.WithTx(ctx, func(ctx context.Context, tx Repository) error {
		number, err := tx.GenerateNumber(ctx, s.prefixes.DocumentPrefix(ctx, prefixKey), req.SaleDate)
		if err != nil {
			return err
		}
		sale := Sale{
			InvoiceNumber:      number,
			CustomerID:         req.CustomerID,
			SaleDate:           req.SaleDate,
			Subtotal:           totals.Subtotal,
			DiscountPercentage: totals.DiscountPercent,
			DiscountAmount:     totals.DiscountAmount,
			TotalAmount:        totals.TotalAmount,
			TotalCost:          totals.TotalCost,
			TotalProfit:        totals.TotalProfit,
			PaidAmount:         totals.PaidAmount,
			BalanceAmount:      totals.BalanceAmount,
			PaymentStatus:      totals.Status,
			Notes:              strVal(req.Notes),
		}
		saleID, err = tx.Create(ctx, sale)
		if err != nil {
			return err
		}
		return s.insertItems(ctx, tx, saleID, items)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("sale created",
		slog.Int64("sale_id", saleID),
		slog.Float64("total", totals.TotalAmount),
		slog.Float64("profit", totals.TotalProfit),
		slog.String("status", string(totals.Status)),
	)
	return s.repo.Get(ctx, saleID)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateSaleRequest) (*Sale, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	items, lines, err := s.priceItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	totals, err := finance.AggregateSale(lines, req.DiscountPercentage, existing.PaidAmount)
	if err != nil {
		return nil, err
	}
	if totals.Overpaid {
		s.logger.Warn("sale edit leaves invoice over-paid",
			slog.Int64("sale_id", id),
			slog.Float64("total", totals.TotalAmount),
			slog.Float64("paid", existing.PaidAmount),
		)
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, tx Repository) error {
		for _, old := range existing.Items {
			if _, err := tx.AdjustStock(ctx, old.ProductID, old.Quantity); err != nil {
				return err
			}
		}
		if err := tx.DeleteItems(ctx, id); err != nil {
			return err
		}

		sale := Sale{
			CustomerID:         req.CustomerID,
			SaleDate:           req.SaleDate,
			Subtotal:           totals.Subtotal,
			DiscountPercentage: totals.DiscountPercent,
			DiscountAmount:     totals.DiscountAmount,
			TotalAmount:        totals.TotalAmount,
			TotalCost:          totals.TotalCost,
			TotalProfit:        totals.TotalProfit,
			PaidAmount:         totals.PaidAmount,
			BalanceAmount:      totals.BalanceAmount,
			PaymentStatus:      totals.Status,
			Notes:              strVal(req.Notes),
		}
		if err := tx.UpdateHeader(ctx, id, sale); err != nil {
			return err
		}
		return s.insertItems(ctx, tx, id, items)
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
			if _, err := tx.AdjustStock(ctx, it.ProductID, it.Quantity); err != nil {
				return err
			}
		}
		if err := tx.DeleteItems(ctx, id); err != nil {
			return err
		}
		return tx.Delete(ctx, id)
	})
}
