package payments

import (
	"context"
	"log/slog"

	"github.com/tradebook-app/tradebook/internal/finance"
)

// PrefixSource resolves configurable document number prefixes.
type PrefixSource interface {
	DocumentPrefix(ctx context.Context, key string) string
}

const prefixKey = "payment_prefix"

type Service struct {
	repo     Repository
	prefixes PrefixSource
	logger   *slog.Logger
}

func NewService(repo Repository, prefixes PrefixSource, logger *slog.Logger) *Service {
	return &Service{repo: repo, prefixes: prefixes, logger: logger}
}

func (s *Service) List(ctx context.Context, req ListPaymentsRequest) ([]Payment, int, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 200 {
		req.Limit = 50
	}
	return s.repo.List(ctx, req)
}

func (s *Service) Get(ctx context.Context, id int64) (*Payment, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	return s.repo.Get(ctx, id)
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Create records a payment and settles it against the referenced document
// in one transaction. The document row is locked first so concurrent
// payments against the same invoice serialize instead of both passing the
// balance check.
func (s *Service) Create(ctx context.Context, req CreatePaymentRequest) (*Payment, error) {
	ptype := PaymentType(req.PaymentType)
	if !ptype.Valid() {
		return nil, ErrInvalidType
	}

	var paymentID int64
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx Repository) error {
		doc, err := tx.LockDocument(ctx, ptype, req.ReferenceID)
		if err != nil {
			return err
		}
		settlement, err := finance.ApplyPayment(doc.TotalAmount, doc.PaidAmount, req.Amount)
		if err != nil {
			return err
		}

		number, err := tx.GenerateNumber(ctx, s.prefixes.DocumentPrefix(ctx, prefixKey), req.PaymentDate)
		if err != nil {
			return err
		}
		paymentID, err = tx.Create(ctx, Payment{
			PaymentNumber: number,
			PaymentType:   ptype,
			ReferenceID:   req.ReferenceID,
			Amount:        req.Amount,
			PaymentDate:   req.PaymentDate,
			PaymentMethod: req.PaymentMethod,
			Notes:         strVal(req.Notes),
		})
		if err != nil {
			return err
		}
		return tx.UpdateDocumentSettlement(ctx, ptype, req.ReferenceID, settlement)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment recorded",
		slog.Int64("payment_id", paymentID),
		slog.String("type", req.PaymentType),
		slog.Int64("reference_id", req.ReferenceID),
		slog.Float64("amount", req.Amount),
	)
	return s.repo.Get(ctx, paymentID)
}

// Delete removes a payment and rolls its amount back out of the referenced
// document's settlement state.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidID
	}
	return s.repo.WithTx(ctx, func(ctx context.Context, tx Repository) error {
		p, err := tx.Get(ctx, id)
		if err != nil {
			return err
		}
		doc, err := tx.LockDocument(ctx, p.PaymentType, p.ReferenceID)
		if err != nil {
			return err
		}
		settlement := finance.ReversePayment(doc.TotalAmount, doc.PaidAmount, p.Amount)
		if err := tx.Delete(ctx, id); err != nil {
			return err
		}
		return tx.UpdateDocumentSettlement(ctx, p.PaymentType, p.ReferenceID, settlement)
	})
}

func (s *Service) PendingSales(ctx context.Context) ([]PendingDocument, error) {
	return s.repo.PendingSales(ctx)
}

func (s *Service) PendingPurchases(ctx context.Context) ([]PendingDocument, error) {
	return s.repo.PendingPurchases(ctx)
}
