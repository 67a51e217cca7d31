package dueinvoices

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tradebook-app/tradebook/internal/finance"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// fetch pulls the requested ledger sides, both concurrently when neither
// is filtered out.
func (s *Service) fetch(ctx context.Context, t InvoiceType) ([]DueInvoice, error) {
	switch t {
	case TypeReceivable:
		return s.repo.OutstandingSales(ctx)
	case TypePayable:
		return s.repo.OutstandingPurchases(ctx)
	}

	var receivables, payables []DueInvoice
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		receivables, err = s.repo.OutstandingSales(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		payables, err = s.repo.OutstandingPurchases(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return append(receivables, payables...), nil
}

func (s *Service) asOf(req time.Time) time.Time {
	if !req.IsZero() {
		return req
	}
	return s.now()
}

// List returns due invoices annotated with age, oldest debt first.
func (s *Service) List(ctx context.Context, req ListRequest) ([]DueInvoice, error) {
	invoices, err := s.fetch(ctx, req.Type)
	if err != nil {
		return nil, err
	}
	today := s.asOf(req.AsOf)

	out := make([]DueInvoice, 0, len(invoices))
	for _, inv := range invoices {
		inv.DaysOverdue = finance.DaysOutstanding(today, inv.DocumentDate)
		inv.AgingCategory = finance.ClassifyAge(inv.DaysOverdue)
		if req.AgingCategory != "" && inv.AgingCategory != req.AgingCategory {
			continue
		}
		out = append(out, inv)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DaysOverdue > out[j].DaysOverdue })
	if req.Limit > 0 && len(out) > req.Limit {
		out = out[:req.Limit]
	}
	return out, nil
}

// Stats computes the aging breakdown for both ledger sides.
func (s *Service) Stats(ctx context.Context, asOf time.Time) (*Stats, error) {
	today := s.asOf(asOf)

	var receivables, payables []DueInvoice
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		receivables, err = s.repo.OutstandingSales(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		payables, err = s.repo.OutstandingPurchases(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Stats{
		AsOf:        today,
		Receivables: tally(receivables, today),
		Payables:    tally(payables, today),
	}, nil
}

func tally(invoices []DueInvoice, today time.Time) SideStats {
	t := finance.NewAgeTally()
	for _, inv := range invoices {
		t.Add(finance.DaysOutstanding(today, inv.DocumentDate), inv.BalanceAmount)
	}
	return SideStats{
		Total:        t.Total,
		TotalBalance: t.TotalBalance,
		Overdue:      t.Overdue,
		Counts:       t.Counts,
		Balances:     t.Balances,
	}
}

// TopDebtors lists customers owing the most, largest balance first.
func (s *Service) TopDebtors(ctx context.Context, limit int) ([]PartyBalance, error) {
	invoices, err := s.repo.OutstandingSales(ctx)
	if err != nil {
		return nil, err
	}
	return topParties(invoices, limit), nil
}

// TopCreditors lists suppliers owed the most, largest balance first.
func (s *Service) TopCreditors(ctx context.Context, limit int) ([]PartyBalance, error) {
	invoices, err := s.repo.OutstandingPurchases(ctx)
	if err != nil {
		return nil, err
	}
	return topParties(invoices, limit), nil
}

// topParties groups by party id, not name, so two customers who happen to
// share a name stay separate lines.
func topParties(invoices []DueInvoice, limit int) []PartyBalance {
	byParty := map[int64]*PartyBalance{}
	for _, inv := range invoices {
		pb, ok := byParty[inv.PartyID]
		if !ok {
			pb = &PartyBalance{PartyID: inv.PartyID, PartyName: inv.PartyName}
			byParty[inv.PartyID] = pb
		}
		pb.InvoiceCount++
		pb.Balance = finance.Round2(pb.Balance + inv.BalanceAmount)
	}

	out := make([]PartyBalance, 0, len(byParty))
	for _, pb := range byParty {
		out = append(out, *pb)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Balance != out[j].Balance {
			return out[i].Balance > out[j].Balance
		}
		return out[i].PartyName < out[j].PartyName
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
