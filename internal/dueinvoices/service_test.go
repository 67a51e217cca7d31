package dueinvoices

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tradebook-app/tradebook/internal/finance"
)

type fakeRepo struct {
	sales     []DueInvoice
	purchases []DueInvoice
}

func (f *fakeRepo) OutstandingSales(context.Context) ([]DueInvoice, error) {
	return append([]DueInvoice(nil), f.sales...), nil
}

func (f *fakeRepo) OutstandingPurchases(context.Context) ([]DueInvoice, error) {
	return append([]DueInvoice(nil), f.purchases...), nil
}

var today = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

func day(daysAgo int) time.Time {
	return today.AddDate(0, 0, -daysAgo)
}

func newTestService(repo Repository) *Service {
	svc := NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.now = func() time.Time { return today }
	return svc
}

func sampleRepo() *fakeRepo {
	return &fakeRepo{
		sales: []DueInvoice{
			{ID: 1, InvoiceType: TypeReceivable, DocumentNumber: "INV-1", PartyID: 1, PartyName: "Asha Stores", DocumentDate: day(5), BalanceAmount: 100},
			{ID: 2, InvoiceType: TypeReceivable, DocumentNumber: "INV-2", PartyID: 1, PartyName: "Asha Stores", DocumentDate: day(45), BalanceAmount: 400},
			{ID: 3, InvoiceType: TypeReceivable, DocumentNumber: "INV-3", PartyID: 2, PartyName: "Babu Mart", DocumentDate: day(95), BalanceAmount: 250},
		},
		purchases: []DueInvoice{
			{ID: 4, InvoiceType: TypePayable, DocumentNumber: "PO-1", PartyID: 1, PartyName: "Vel Distributors", DocumentDate: day(70), BalanceAmount: 900},
		},
	}
}

func TestListAnnotatesAndSorts(t *testing.T) {
	svc := newTestService(sampleRepo())

	invoices, err := svc.List(context.Background(), ListRequest{})
	require.NoError(t, err)
	require.Len(t, invoices, 4)

	// Oldest debt first.
	require.Equal(t, "INV-3", invoices[0].DocumentNumber)
	require.Equal(t, 95, invoices[0].DaysOverdue)
	require.Equal(t, finance.Aging90Plus, invoices[0].AgingCategory)

	require.Equal(t, "PO-1", invoices[1].DocumentNumber)
	require.Equal(t, finance.Aging60To90, invoices[1].AgingCategory)

	last := invoices[3]
	require.Equal(t, "INV-1", last.DocumentNumber)
	require.Equal(t, finance.Aging0To30, last.AgingCategory)
}

func TestListFiltersByTypeAndAging(t *testing.T) {
	svc := newTestService(sampleRepo())

	payables, err := svc.List(context.Background(), ListRequest{Type: TypePayable})
	require.NoError(t, err)
	require.Len(t, payables, 1)
	require.Equal(t, "PO-1", payables[0].DocumentNumber)

	aged, err := svc.List(context.Background(), ListRequest{AgingCategory: finance.Aging30To60})
	require.NoError(t, err)
	require.Len(t, aged, 1)
	require.Equal(t, "INV-2", aged[0].DocumentNumber)
}

func TestStats(t *testing.T) {
	svc := newTestService(sampleRepo())

	stats, err := svc.Stats(context.Background(), time.Time{})
	require.NoError(t, err)

	require.Equal(t, 3, stats.Receivables.Total)
	require.Equal(t, 750.0, stats.Receivables.TotalBalance)
	require.Equal(t, 2, stats.Receivables.Overdue)
	require.Equal(t, 1, stats.Receivables.Counts[finance.Aging0To30])
	require.Equal(t, 1, stats.Receivables.Counts[finance.Aging30To60])
	require.Equal(t, 1, stats.Receivables.Counts[finance.Aging90Plus])
	require.Equal(t, 250.0, stats.Receivables.Balances[finance.Aging90Plus])

	require.Equal(t, 1, stats.Payables.Total)
	require.Equal(t, 900.0, stats.Payables.TotalBalance)
	require.Equal(t, 1, stats.Payables.Overdue)
}

func TestTopDebtorsGroupsByParty(t *testing.T) {
	svc := newTestService(sampleRepo())

	debtors, err := svc.TopDebtors(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, debtors, 2)

	require.Equal(t, int64(1), debtors[0].PartyID)
	require.Equal(t, "Asha Stores", debtors[0].PartyName)
	require.Equal(t, 2, debtors[0].InvoiceCount)
	require.Equal(t, 500.0, debtors[0].Balance)
	require.Equal(t, "Babu Mart", debtors[1].PartyName)

	limited, err := svc.TopDebtors(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
}

func TestTopDebtorsKeepsNamesakesSeparate(t *testing.T) {
	repo := &fakeRepo{
		sales: []DueInvoice{
			{ID: 1, InvoiceType: TypeReceivable, DocumentNumber: "INV-1", PartyID: 1, PartyName: "Kumar", DocumentDate: day(10), BalanceAmount: 300},
			{ID: 2, InvoiceType: TypeReceivable, DocumentNumber: "INV-2", PartyID: 2, PartyName: "Kumar", DocumentDate: day(10), BalanceAmount: 200},
		},
	}
	svc := newTestService(repo)

	debtors, err := svc.TopDebtors(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, debtors, 2)
	require.Equal(t, int64(1), debtors[0].PartyID)
	require.Equal(t, 300.0, debtors[0].Balance)
	require.Equal(t, int64(2), debtors[1].PartyID)
	require.Equal(t, 200.0, debtors[1].Balance)
}

func TestTopCreditors(t *testing.T) {
	svc := newTestService(sampleRepo())

	creditors, err := svc.TopCreditors(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, creditors, 1)
	require.Equal(t, "Vel Distributors", creditors[0].PartyName)
	require.Equal(t, 900.0, creditors[0].Balance)
}
