package suppliers

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

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Supplier, int, error) {
	filters.Normalize()
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Supplier, error) {
	if id <= 0 {
		return Supplier{}, shared.ErrInvalidID
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateSupplierRequest) (Supplier, error) {
	if strings.TrimSpace(req.Name) == "" {
		return Supplier{}, fmt.Errorf("%w: name", shared.ErrRequiredField)
	}
	sup := Supplier{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		City:          req.City,
		GSTNumber:     req.GSTNumber,
		IsActive:      true,
	}
	return s.repo.Create(ctx, sup)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateSupplierRequest) (Supplier, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return Supplier{}, err
	}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return Supplier{}, fmt.Errorf("%w: name", shared.ErrRequiredField)
		}
		existing.Name = *req.Name
	}
	if req.ContactPerson != nil {
		existing.ContactPerson = req.ContactPerson
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
	if req.GSTNumber != nil {
		existing.GSTNumber = req.GSTNumber
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}
	if err := s.repo.Update(ctx, id, existing); err != nil {
		return Supplier{}, err
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
	if stats.PurchaseCount > 0 {
		return fmt.Errorf("%w: supplier has %d purchases on record", shared.ErrHasTransactions, stats.PurchaseCount)
	}
	return s.repo.Delete(ctx, id)
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
