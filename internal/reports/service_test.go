package reports

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/tradebook-app/tradebook/internal/platform/cache"
)

type fakeRepo struct {
	sales     []SalesRow
	purchases []PurchaseRow
	stock     []StockRow
	customers []CustomerRow

	salesCalls int
}

func (f *fakeRepo) SalesRows(context.Context, time.Time, time.Time) ([]SalesRow, error) {
	f.salesCalls++
	return append([]SalesRow(nil), f.sales...), nil
}

func (f *fakeRepo) PurchaseRows(context.Context, time.Time, time.Time) ([]PurchaseRow, error) {
	return append([]PurchaseRow(nil), f.purchases...), nil
}

func (f *fakeRepo) StockRows(context.Context) ([]StockRow, error) {
	return append([]StockRow(nil), f.stock...), nil
}

func (f *fakeRepo) CustomerRows(context.Context, time.Time, time.Time) ([]CustomerRow, error) {
	return append([]CustomerRow(nil), f.customers...), nil
}

func sampleRepo() *fakeRepo {
	date := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	return &fakeRepo{
		sales: []SalesRow{
			{ID: 1, InvoiceNumber: "INV-1", CustomerName: "Asha Stores", SaleDate: date, TotalAmount: 300, PaidAmount: 300, TotalProfit: 80, PaymentStatus: "paid"},
			{ID: 2, InvoiceNumber: "INV-2", CustomerName: "Babu Mart", SaleDate: date, TotalAmount: 200, PaidAmount: 50, BalanceAmount: 150, TotalProfit: 40, PaymentStatus: "partial"},
		},
		purchases: []PurchaseRow{
			{ID: 1, PurchaseNumber: "PO-1", SupplierName: "Vel Distributors", PurchaseDate: date, TotalAmount: 400, PaidAmount: 400, PaymentStatus: "paid"},
		},
		stock: []StockRow{
			{ID: 1, SKU: "A", Name: "Rice", Unit: "kg", CurrentStock: 10, MinStockLevel: 5, MRP: 50},
			{ID: 2, SKU: "B", Name: "Dal", Unit: "kg", CurrentStock: 0, MinStockLevel: 5, MRP: 120},
		},
		customers: []CustomerRow{
			{CustomerID: 1, Name: "Asha Stores", SaleCount: 1, TotalAmount: 300, PaidAmount: 300},
		},
	}
}

func newTestService(t *testing.T, repo Repository) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	jsonCache := cache.NewJSONCache(client, "reports", time.Minute)
	return NewService(repo, jsonCache, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

var period = DateRange{
	From: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	To:   time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
}

func TestSalesReportSummarizes(t *testing.T) {
	repo := sampleRepo()
	svc := newTestService(t, repo)

	report, err := svc.Sales(context.Background(), period)
	require.NoError(t, err)

	require.Equal(t, 2, report.Summary.Count)
	require.Equal(t, 500.0, report.Summary.TotalRevenue)
	require.Equal(t, 350.0, report.Summary.TotalPaid)
	require.Equal(t, 150.0, report.Summary.TotalDue)
	require.Equal(t, 120.0, report.Summary.TotalProfit)
	require.Equal(t, 250.0, report.Summary.AverageValue)
	require.Len(t, report.Rows, 2)
}

func TestSalesReportServedFromCache(t *testing.T) {
	repo := sampleRepo()
	svc := newTestService(t, repo)

	_, err := svc.Sales(context.Background(), period)
	require.NoError(t, err)
	cached, err := svc.Sales(context.Background(), period)
	require.NoError(t, err)

	require.Equal(t, 1, repo.salesCalls)
	require.Equal(t, 500.0, cached.Summary.TotalRevenue)
}

func TestInvalidateForcesRecompute(t *testing.T) {
	repo := sampleRepo()
	svc := newTestService(t, repo)

	_, err := svc.Sales(context.Background(), period)
	require.NoError(t, err)
	require.NoError(t, svc.Invalidate(context.Background()))
	_, err = svc.Sales(context.Background(), period)
	require.NoError(t, err)

	require.Equal(t, 2, repo.salesCalls)
}

func TestProfitLossReport(t *testing.T) {
	svc := newTestService(t, sampleRepo())

	report, err := svc.ProfitLoss(context.Background(), period)
	require.NoError(t, err)

	require.Equal(t, 500.0, report.Summary.TotalRevenue)
	require.Equal(t, 400.0, report.Summary.TotalCost)
	require.Equal(t, 120.0, report.Summary.GrossProfit)
	require.Equal(t, 100.0, report.Summary.NetProfit)
	require.Equal(t, 24.0, report.Summary.ProfitMargin)
}

func TestStockReport(t *testing.T) {
	svc := newTestService(t, sampleRepo())

	report, err := svc.Stock(context.Background())
	require.NoError(t, err)

	require.Equal(t, 2, report.Summary.Products)
	require.Equal(t, 500.0, report.Summary.StockValue)
	require.Equal(t, 1, report.Summary.LowStock)
	require.Equal(t, 1, report.Summary.OutOfStock)

	require.True(t, report.Rows[1].LowStock)
	require.Equal(t, 0.0, report.Rows[1].StockValue)
}

func TestWriteSalesCSV(t *testing.T) {
	svc := newTestService(t, sampleRepo())
	report, err := svc.Sales(context.Background(), period)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteSalesCSV(&buf, report))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	require.Contains(t, lines[0], "Invoice")
	require.Contains(t, lines[1], "INV-1")
	require.Contains(t, lines[3], "TOTAL")
	require.Contains(t, lines[3], "500.00")
}
