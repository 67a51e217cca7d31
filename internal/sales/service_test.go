package sales

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tradebook-app/tradebook/internal/finance"
)

type fakeRepo struct {
	nextID     int64
	nextItemID int64
	headers    map[int64]Sale
	items      map[int64][]SaleItem
	stock      map[int64]float64
	samples    map[int64][]finance.PurchaseSample

	sampleQueries int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		nextID:     1,
		nextItemID: 1,
		headers:    map[int64]Sale{},
		items:      map[int64][]SaleItem{},
		stock:      map[int64]float64{},
		samples:    map[int64][]finance.PurchaseSample{},
	}
}

func (f *fakeRepo) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return fn(ctx, f)
}

func (f *fakeRepo) Get(ctx context.Context, id int64) (*Sale, error) {
	s, ok := f.headers[id]
	if !ok {
		return nil, ErrNotFound
	}
	items, _ := f.Items(ctx, id)
	s.Items = items
	return &s, nil
}

func (f *fakeRepo) List(_ context.Context, req ListSalesRequest) ([]Sale, int, error) {
	var out []Sale
	for _, s := range f.headers {
		if req.PaymentStatus != "" && string(s.PaymentStatus) != req.PaymentStatus {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (f *fakeRepo) Create(_ context.Context, s Sale) (int64, error) {
	s.ID = f.nextID
	f.nextID++
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	f.headers[s.ID] = s
	return s.ID, nil
}

func (f *fakeRepo) UpdateHeader(_ context.Context, id int64, s Sale) error {
	existing, ok := f.headers[id]
	if !ok {
		return ErrNotFound
	}
	s.ID = id
	s.InvoiceNumber = existing.InvoiceNumber
	s.CreatedAt = existing.CreatedAt
	f.headers[id] = s
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.headers[id]; !ok {
		return ErrNotFound
	}
	delete(f.headers, id)
	return nil
}

func (f *fakeRepo) InsertItem(_ context.Context, item SaleItem) (int64, error) {
	item.ID = f.nextItemID
	f.nextItemID++
	f.items[item.SaleID] = append(f.items[item.SaleID], item)
	return item.ID, nil
}

func (f *fakeRepo) DeleteItems(_ context.Context, saleID int64) error {
	delete(f.items, saleID)
	return nil
}

func (f *fakeRepo) Items(_ context.Context, saleID int64) ([]SaleItem, error) {
	return f.items[saleID], nil
}

func (f *fakeRepo) AdjustStock(_ context.Context, productID int64, delta float64) (float64, error) {
	f.stock[productID] += delta
	return f.stock[productID], nil
}

func (f *fakeRepo) RecentPurchaseSamples(_ context.Context, productIDs []int64, window int) (map[int64][]finance.PurchaseSample, error) {
	f.sampleQueries++
	out := map[int64][]finance.PurchaseSample{}
	for _, id := range productIDs {
		samples := f.samples[id]
		if len(samples) > window {
			samples = samples[:window]
		}
		out[id] = samples
	}
	return out, nil
}

// Mirrors the SQL generator: continues from the highest suffix issued for
// the month rather than counting rows.
func (f *fakeRepo) GenerateNumber(_ context.Context, prefix string, date time.Time) (string, error) {
	seqPrefix := fmt.Sprintf("%s%s-", prefix, date.Format("0601"))
	max := 0
	for _, s := range f.headers {
		if rest, ok := strings.CutPrefix(s.InvoiceNumber, seqPrefix); ok {
			if n, err := strconv.Atoi(rest); err == nil && n > max {
				max = n
			}
		}
	}
	return fmt.Sprintf("%s%04d", seqPrefix, max+1), nil
}

type fakePrefixes struct{}

func (fakePrefixes) DocumentPrefix(context.Context, string) string { return "INV-" }

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	svc := NewService(repo, fakePrefixes{}, finance.CostingConfig{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return svc, repo
}

func createReq() CreateSaleRequest {
	return CreateSaleRequest{
		SaleDate:   time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		PaidAmount: 450,
		Items: []SaleItemRequest{
			{ProductID: 10, Quantity: 5, MRP: 100, DiscountPercent: 10},
		},
	}
}

func TestCreateSalePricesAndCostsLines(t *testing.T) {
	svc, repo := newTestService()
	repo.stock[10] = 20
	repo.samples[10] = []finance.PurchaseSample{
		{CostPrice: 60, Quantity: 10},
		{CostPrice: 70, Quantity: 10},
	}

	s, err := svc.Create(context.Background(), createReq())
	require.NoError(t, err)

	require.Equal(t, "INV-2608-0001", s.InvoiceNumber)
	require.Len(t, s.Items, 1)
	item := s.Items[0]
	require.Equal(t, 90.0, item.UnitPrice)
	require.Equal(t, 450.0, item.Total)
	require.Equal(t, 65.0, item.CostPrice)
	require.Equal(t, 125.0, item.Profit)

	require.Equal(t, 450.0, s.TotalAmount)
	require.Equal(t, 325.0, s.TotalCost)
	require.Equal(t, 125.0, s.TotalProfit)
	require.Equal(t, finance.StatusPaid, s.PaymentStatus)

	require.Equal(t, 15.0, repo.stock[10])
}

func TestCreateSaleWithoutPurchaseHistory(t *testing.T) {
	svc, repo := newTestService()
	repo.stock[10] = 20

	s, err := svc.Create(context.Background(), createReq())
	require.NoError(t, err)

	// No cost basis: the whole discounted total reads as profit.
	require.Equal(t, 0.0, s.TotalCost)
	require.Equal(t, 450.0, s.TotalProfit)
}

func TestCreateSaleBatchesCostLookup(t *testing.T) {
	svc, repo := newTestService()

	req := createReq()
	req.Items = []SaleItemRequest{
		{ProductID: 10, Quantity: 1, MRP: 100},
		{ProductID: 11, Quantity: 2, MRP: 50},
		{ProductID: 12, Quantity: 3, MRP: 30},
	}
	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, 1, repo.sampleQueries)
}

func TestCreateSaleAllowsNegativeStock(t *testing.T) {
	svc, repo := newTestService()
	repo.stock[10] = 2

	_, err := svc.Create(context.Background(), createReq())
	require.NoError(t, err)
	require.Equal(t, -3.0, repo.stock[10])
}

func TestCreateSaleRejectsBadLine(t *testing.T) {
	svc, _ := newTestService()

	req := createReq()
	req.Items[0].DiscountPercent = 150
	_, err := svc.Create(context.Background(), req)
	require.ErrorIs(t, err, finance.ErrInvalidDiscount)

	req = createReq()
	req.Items = nil
	_, err = svc.Create(context.Background(), req)
	require.ErrorIs(t, err, finance.ErrNoLines)
}

func TestCreateSaleOmittedNotesStoredEmpty(t *testing.T) {
	svc, repo := newTestService()

	created, err := svc.Create(context.Background(), createReq())
	require.NoError(t, err)
	require.Equal(t, "", repo.headers[created.ID].Notes)
}

func TestGeneratedInvoiceNumbersSkipDeletedSales(t *testing.T) {
	svc, _ := newTestService()

	first, err := svc.Create(context.Background(), createReq())
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), createReq())
	require.NoError(t, err)
	require.Equal(t, "INV-2608-0002", second.InvoiceNumber)

	require.NoError(t, svc.Delete(context.Background(), first.ID))

	third, err := svc.Create(context.Background(), createReq())
	require.NoError(t, err)
	require.Equal(t, "INV-2608-0003", third.InvoiceNumber)
}

func TestUpdateSalePreservesPaidAmount(t *testing.T) {
	svc, repo := newTestService()
	repo.stock[10] = 50

	created, err := svc.Create(context.Background(), createReq())
	require.NoError(t, err)
	require.Equal(t, 450.0, created.PaidAmount)
	require.Equal(t, 45.0, repo.stock[10])

	updated, err := svc.Update(context.Background(), created.ID, UpdateSaleRequest{
		SaleDate: created.SaleDate,
		Items: []SaleItemRequest{
			{ProductID: 10, Quantity: 10, MRP: 100, DiscountPercent: 0},
		},
	})
	require.NoError(t, err)

	require.Equal(t, 1000.0, updated.TotalAmount)
	require.Equal(t, 450.0, updated.PaidAmount)
	require.Equal(t, 550.0, updated.BalanceAmount)
	require.Equal(t, finance.StatusPartial, updated.PaymentStatus)

	// Old quantity restored, new quantity deducted.
	require.Equal(t, 40.0, repo.stock[10])
}

func TestDeleteSaleRestoresStock(t *testing.T) {
	svc, repo := newTestService()
	repo.stock[10] = 20

	created, err := svc.Create(context.Background(), createReq())
	require.NoError(t, err)
	require.Equal(t, 15.0, repo.stock[10])

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	require.Equal(t, 20.0, repo.stock[10])

	_, err = svc.Get(context.Background(), created.ID)
	require.ErrorIs(t, err, ErrNotFound)
}
