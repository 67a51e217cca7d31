package products

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tradebook-app/tradebook/internal/masterdata/shared"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Product, int, error) {
	filters.Normalize()
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Product, error) {
	if id <= 0 {
		return Product{}, shared.ErrInvalidID
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateProductRequest) (Product, error) {
	p := Product{
		SKU:           req.SKU,
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Unit:          req.Unit,
		MRP:           req.MRP,
		CurrentStock:  req.CurrentStock,
		MinStockLevel: req.MinStockLevel,
		IsActive:      true,
	}
	if err := validateProduct(p); err != nil {
		return Product{}, err
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateProductRequest) (Product, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return Product{}, err
	}
	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Description != nil {
		existing.Description = req.Description
	}
	if req.Category != nil {
		existing.Category = req.Category
	}
	if req.Unit != nil {
		existing.Unit = *req.Unit
	}
	if req.MRP != nil {
		existing.MRP = *req.MRP
	}
	if req.MinStockLevel != nil {
		existing.MinStockLevel = *req.MinStockLevel
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}
	if err := validateProduct(existing); err != nil {
		return Product{}, err
	}
	if err := s.repo.Update(ctx, id, existing); err != nil {
		return Product{}, err
	}
	return s.repo.Get(ctx, id)
}

// AdjustStock performs a manual stock correction outside the document flow.
func (s *Service) AdjustStock(ctx context.Context, id int64, req AdjustStockRequest) (Product, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return Product{}, err
	}
	if req.NewStock < 0 {
		return Product{}, fmt.Errorf("%w: stock must not be negative", shared.ErrRequiredField)
	}
	if err := s.repo.SetStock(ctx, id, req.NewStock); err != nil {
		return Product{}, err
	}
	s.logger.Info("stock adjusted",
		slog.Int64("product_id", id),
		slog.Float64("from", existing.CurrentStock),
		slog.Float64("to", req.NewStock),
		slog.String("notes", req.Notes),
	)
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrInvalidID
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

func (s *Service) ListLowStock(ctx context.Context) ([]Product, error) {
	return s.repo.ListLowStock(ctx)
}
