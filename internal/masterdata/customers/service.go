package customers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tradebook-app/tradebook/internal/masterdata/shared"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Customer, int, error) {
	filters.Normalize()
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Customer, error) {
	if id <= 0 {
		return Customer{}, shared.ErrInvalidID
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateCustomerRequest) (Customer, error) {
	if strings.TrimSpace(req.Name) == "" {
		return Customer{}, fmt.Errorf("%w: name", shared.ErrRequiredField)
	}
	ctype := CustomerType(req.CustomerType)
	if ctype == "" {
		ctype = TypeRetail
	}
	c := Customer{
		Name:         req.Name,
		BusinessName: req.BusinessName,
		Phone:        req.Phone,
		Email:        req.Email,
		Address:      req.Address,
		City:         req.City,
		CustomerType: ctype,
		IsActive:     true,
	}
	return s.repo.Create(ctx, c)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateCustomerRequest) (Customer, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return Customer{}, err
	}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return Customer{}, fmt.Errorf("%w: name", shared.ErrRequiredField)
		}
		existing.Name = *req.Name
	}
	if req.BusinessName != nil {
		existing.BusinessName = req.BusinessName
	}
	if req.Phone != nil {
		existing.Phone = req.Phone
	}
	if req.Email != nil {
		existing.Email = req.Email
	}
	if req.Address != nil {
		existing.Address = req.Address
	}
	if req.City != nil {
		existing.City = req.City
	}
	if req.CustomerType != nil {
		existing.CustomerType = CustomerType(*req.CustomerType)
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}
	if err := s.repo.Update(ctx, id, existing); err != nil {
		return Customer{}, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrInvalidID
	}
	stats, err := s.repo.Stats(ctx, id)
	if err != nil {
		return err
	}
	if stats.SaleCount > 0 {
		return fmt.Errorf("%w: customer has %d sales on record", shared.ErrHasTransactions, stats.SaleCount)
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) Cities(ctx context.Context) ([]string, error) {
	return s.repo.Cities(ctx)
}

func (s *Service) Stats(ctx context.Context, id int64) (Stats, error) {
	if id <= 0 {
		return Stats{}, shared.ErrInvalidID
	}
	if _, err := s.repo.Get(ctx, id); err != nil {
		return Stats{}, err
	}
	return s.repo.Stats(ctx, id)
}
