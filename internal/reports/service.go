package reports

import (
	"context"
	"log/slog"

	"github.com/tradebook-app/tradebook/internal/finance"
	"github.com/tradebook-app/tradebook/internal/platform/cache"
)

const dateKeyFormat = "2006-01-02"

type Service struct {
	repo   Repository
	cache  *cache.JSONCache
	logger *slog.Logger
}

func NewService(repo Repository, jsonCache *cache.JSONCache, logger *slog.Logger) *Service {
	return &Service{repo: repo, cache: jsonCache, logger: logger}
}

func (s *Service) cached(ctx context.Context, dest any, loader func(context.Context) (any, error), parts ...string) error {
	key, err := s.cache.Key(ctx, parts...)
	if err != nil {
		return err
	}
	return s.cache.Fetch(ctx, key, dest, loader)
}

func (s *Service) Sales(ctx context.Context, period DateRange) (*SalesReport, error) {
	var report SalesReport
	err := s.cached(ctx, &report, func(ctx context.Context) (any, error) {
		rows, err := s.repo.SalesRows(ctx, period.From, period.To)
		if err != nil {
			return nil, err
		}
		figures := make([]finance.DocumentFigures, len(rows))
		for i, r := range rows {
			figures[i] = finance.DocumentFigures{
				TotalAmount:   r.TotalAmount,
				PaidAmount:    r.PaidAmount,
				BalanceAmount: r.BalanceAmount,
				TotalProfit:   r.TotalProfit,
			}
		}
		return &SalesReport{
			Period:  period,
			Summary: finance.SummarizeSales(figures),
			Rows:    rows,
		}, nil
	}, "sales", period.From.Format(dateKeyFormat), period.To.Format(dateKeyFormat))
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *Service) Purchases(ctx context.Context, period DateRange) (*PurchasesReport, error) {
	var report PurchasesReport
	err := s.cached(ctx, &report, func(ctx context.Context) (any, error) {
		rows, err := s.repo.PurchaseRows(ctx, period.From, period.To)
		if err != nil {
			return nil, err
		}
		figures := make([]finance.DocumentFigures, len(rows))
		for i, r := range rows {
			figures[i] = finance.DocumentFigures{
				TotalAmount:   r.TotalAmount,
				PaidAmount:    r.PaidAmount,
				BalanceAmount: r.BalanceAmount,
			}
		}
		return &PurchasesReport{
			Period:  period,
			Summary: finance.SummarizePurchases(figures),
			Rows:    rows,
		}, nil
	}, "purchases", period.From.Format(dateKeyFormat), period.To.Format(dateKeyFormat))
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *Service) ProfitLoss(ctx context.Context, period DateRange) (*ProfitLossReport, error) {
	var report ProfitLossReport
	err := s.cached(ctx, &report, func(ctx context.Context) (any, error) {
		salesReport, err := s.Sales(ctx, period)
		if err != nil {
			return nil, err
		}
		purchasesReport, err := s.Purchases(ctx, period)
		if err != nil {
			return nil, err
		}
		return &ProfitLossReport{
			Period:    period,
			Summary:   finance.ProfitAndLoss(salesReport.Summary, purchasesReport.Summary),
			Sales:     salesReport.Summary,
			Purchases: purchasesReport.Summary,
		}, nil
	}, "profit-loss", period.From.Format(dateKeyFormat), period.To.Format(dateKeyFormat))
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *Service) Stock(ctx context.Context) (*StockReport, error) {
	var report StockReport
	err := s.cached(ctx, &report, func(ctx context.Context) (any, error) {
		rows, err := s.repo.StockRows(ctx)
		if err != nil {
			return nil, err
		}
		figures := make([]finance.StockFigures, len(rows))
		for i := range rows {
			rows[i].StockValue = finance.Round2(rows[i].CurrentStock * rows[i].MRP)
			rows[i].LowStock = rows[i].CurrentStock <= rows[i].MinStockLevel
			figures[i] = finance.StockFigures{
				CurrentStock:  rows[i].CurrentStock,
				MinStockLevel: rows[i].MinStockLevel,
				MRP:           rows[i].MRP,
			}
		}
		return &StockReport{
			Summary: finance.SummarizeStock(figures),
			Rows:    rows,
		}, nil
	}, "stock")
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *Service) Customers(ctx context.Context, period DateRange) (*CustomerReport, error) {
	var report CustomerReport
	err := s.cached(ctx, &report, func(ctx context.Context) (any, error) {
		rows, err := s.repo.CustomerRows(ctx, period.From, period.To)
		if err != nil {
			return nil, err
		}
		return &CustomerReport{Period: period, Rows: rows}, nil
	}, "customers", period.From.Format(dateKeyFormat), period.To.Format(dateKeyFormat))
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// Invalidate orphans every cached report, forcing fresh folds on the next
// read. Called by the worker after document-heavy jobs.
func (s *Service) Invalidate(ctx context.Context) error {
	return s.cache.Invalidate(ctx)
}
