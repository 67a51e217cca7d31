package purchases

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
	headers    map[int64]Purchase
	items      map[int64][]PurchaseItem
	stock      map[int64]float64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		nextID:     1,
		nextItemID: 1,
		headers:    map[int64]Purchase{},
		items:      map[int64][]PurchaseItem{},
		stock:      map[int64]float64{},
	}
}

func (f *fakeRepo) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return fn(ctx, f)
}

func (f *fakeRepo) Get(ctx context.Context, id int64) (*Purchase, error) {
	p, ok := f.headers[id]
	if !ok {
		return nil, ErrNotFound
	}
	items, _ := f.Items(ctx, id)
	p.Items = items
	return &p, nil
}

func (f *fakeRepo) List(_ context.Context, req ListPurchasesRequest) ([]Purchase, int, error) {
	var out []Purchase
	for _, p := range f.headers {
		if req.PaymentStatus != "" && string(p.PaymentStatus) != req.PaymentStatus {
			continue
		}
		if req.SupplierID != nil && p.SupplierID != *req.SupplierID {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (f *fakeRepo) Create(_ context.Context, p Purchase) (int64, error) {
	p.ID = f.nextID
	f.nextID++
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	f.headers[p.ID] = p
	return p.ID, nil
}

func (f *fakeRepo) UpdateHeader(_ context.Context, id int64, p Purchase) error {
	existing, ok := f.headers[id]
	if !ok {
		return ErrNotFound
	}
	p.ID = id
	p.PurchaseNumber = existing.PurchaseNumber
	p.CreatedAt = existing.CreatedAt
	f.headers[id] = p
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.headers[id]; !ok {
		return ErrNotFound
	}
	delete(f.headers, id)
	return nil
}

func (f *fakeRepo) InsertItem(_ context.Context, item PurchaseItem) (int64, error) {
	item.ID = f.nextItemID
	f.nextItemID++
	f.items[item.PurchaseID] = append(f.items[item.PurchaseID], item)
	return item.ID, nil
}

func (f *fakeRepo) DeleteItems(_ context.Context, purchaseID int64) error {
	delete(f.items, purchaseID)
	return nil
}

func (f *fakeRepo) Items(_ context.Context, purchaseID int64) ([]PurchaseItem, error) {
	return f.items[purchaseID], nil
}

func (f *fakeRepo) AdjustStock(_ context.Context, productID int64, delta float64) error {
	f.stock[productID] += delta
	return nil
}

// Mirrors the SQL generator: continues from the highest suffix issued for
// the month rather than counting rows.
func (f *fakeRepo) GenerateNumber(_ context.Context, prefix string, date time.Time) (string, error) {
	seqPrefix := fmt.Sprintf("%s%s-", prefix, date.Format("0601"))
	max := 0
	for _, p := range f.headers {
		if rest, ok := strings.CutPrefix(p.PurchaseNumber, seqPrefix); ok {
			if n, err := strconv.Atoi(rest); err == nil && n > max {
				max = n
			}
		}
	}
	return fmt.Sprintf("%s%04d", seqPrefix, max+1), nil
}

type fakePrefixes struct{}

func (fakePrefixes) DocumentPrefix(context.Context, string) string { return "PO-" }

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	svc := NewService(repo, fakePrefixes{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return svc, repo
}

func createReq() CreatePurchaseRequest {
	return CreatePurchaseRequest{
		SupplierID:   1,
		PurchaseDate: time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
		PaidAmount:   500,
		Items: []PurchaseItemRequest{
			{ProductID: 10, Quantity: 10, MRP: 50},
			{ProductID: 11, Quantity: 5, MRP: 100},
		},
	}
}

func TestCreatePurchase(t *testing.T) {
	svc, repo := newTestService()

	p, err := svc.Create(context.Background(), createReq())
	require.NoError(t, err)

	require.Equal(t, "PO-2608-0001", p.PurchaseNumber)
	require.Equal(t, 1000.0, p.Subtotal)
	require.Equal(t, 1000.0, p.TotalAmount)
	require.Equal(t, 500.0, p.PaidAmount)
	require.Equal(t, 500.0, p.BalanceAmount)
	require.Equal(t, finance.StatusPartial, p.PaymentStatus)
	require.Len(t, p.Items, 2)

	// Stock moved in with the goods.
	require.Equal(t, 10.0, repo.stock[10])
	require.Equal(t, 5.0, repo.stock[11])
}

func TestCreatePurchaseWithDiscount(t *testing.T) {
	svc, _ := newTestService()

	req := createReq()
	req.DiscountPercentage = 10
	req.PaidAmount = 900

	p, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, 100.0, p.DiscountAmount)
	require.Equal(t, 900.0, p.TotalAmount)
	require.Equal(t, finance.StatusPaid, p.PaymentStatus)
	require.Equal(t, 0.0, p.BalanceAmount)
}

func TestCreatePurchaseDerivesCostFromListPrice(t *testing.T) {
	svc, _ := newTestService()

	req := createReq()
	req.PaidAmount = 0
	req.Items = []PurchaseItemRequest{
		{ProductID: 10, Quantity: 10, MRP: 400, DiscountPercent: 5},
	}

	p, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, p.Items, 1)
	require.Equal(t, 400.0, p.Items[0].MRP)
	require.Equal(t, 5.0, p.Items[0].DiscountPercent)
	require.Equal(t, 380.0, p.Items[0].CostPrice)
	require.Equal(t, 3800.0, p.Items[0].Total)
	require.Equal(t, 3800.0, p.Subtotal)
}

func TestCreatePurchaseOmittedNotesStoredEmpty(t *testing.T) {
	svc, repo := newTestService()

	req := createReq() // Notes and SupplierInvoiceNumber left nil
	p, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	stored := repo.headers[p.ID]
	require.Equal(t, "", stored.Notes)
	require.Equal(t, "", stored.SupplierInvoiceNumber)

	notes := "paid by cheque"
	req.Notes = &notes
	p2, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, notes, repo.headers[p2.ID].Notes)
}

func TestGeneratedNumbersSkipDeletedDocuments(t *testing.T) {
	svc, _ := newTestService()

	first, err := svc.Create(context.Background(), createReq())
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), createReq())
	require.NoError(t, err)
	require.Equal(t, "PO-2608-0002", second.PurchaseNumber)

	require.NoError(t, svc.Delete(context.Background(), first.ID))

	third, err := svc.Create(context.Background(), createReq())
	require.NoError(t, err)
	require.Equal(t, "PO-2608-0003", third.PurchaseNumber)
	require.NotEqual(t, second.PurchaseNumber, third.PurchaseNumber)
}

func TestCreatePurchaseRejectsEmptyItems(t *testing.T) {
	svc, _ := newTestService()

	req := createReq()
	req.Items = nil
	_, err := svc.Create(context.Background(), req)
	require.ErrorIs(t, err, finance.ErrNoLines)
}

func TestCreatePurchaseRejectsBadDiscount(t *testing.T) {
	svc, _ := newTestService()

	req := createReq()
	req.DiscountPercentage = 120
	_, err := svc.Create(context.Background(), req)
	require.ErrorIs(t, err, finance.ErrInvalidDiscount)
}

func TestUpdatePurchasePreservesPaidAmount(t *testing.T) {
	svc, repo := newTestService()

	created, err := svc.Create(context.Background(), createReq())
	require.NoError(t, err)
	require.Equal(t, 500.0, created.PaidAmount)

	updated, err := svc.Update(context.Background(), created.ID, UpdatePurchaseRequest{
		SupplierID:   1,
		PurchaseDate: created.PurchaseDate,
		Items: []PurchaseItemRequest{
			{ProductID: 10, Quantity: 20, MRP: 40},
		},
	})
	require.NoError(t, err)

	require.Equal(t, 800.0, updated.TotalAmount)
	require.Equal(t, 500.0, updated.PaidAmount)
	require.Equal(t, 300.0, updated.BalanceAmount)
	require.Equal(t, finance.StatusPartial, updated.PaymentStatus)

	// Old lines reversed, new lines applied.
	require.Equal(t, 20.0, repo.stock[10])
	require.Equal(t, 0.0, repo.stock[11])
}

func TestUpdatePurchaseCanGoOverpaid(t *testing.T) {
	svc, _ := newTestService()

	req := createReq()
	req.PaidAmount = 1000
	created, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, finance.StatusPaid, created.PaymentStatus)

	// Shrinking the document below what was already paid keeps the excess
	// visible as a negative balance.
	updated, err := svc.Update(context.Background(), created.ID, UpdatePurchaseRequest{
		SupplierID:   1,
		PurchaseDate: created.PurchaseDate,
		Items: []PurchaseItemRequest{
			{ProductID: 10, Quantity: 1, MRP: 600},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 600.0, updated.TotalAmount)
	require.Equal(t, 1000.0, updated.PaidAmount)
	require.Equal(t, -400.0, updated.BalanceAmount)
	require.Equal(t, finance.StatusPaid, updated.PaymentStatus)
}

func TestDeletePurchaseReversesStock(t *testing.T) {
	svc, repo := newTestService()

	created, err := svc.Create(context.Background(), createReq())
	require.NoError(t, err)
	require.Equal(t, 10.0, repo.stock[10])

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	require.Equal(t, 0.0, repo.stock[10])
	require.Equal(t, 0.0, repo.stock[11])

	_, err = svc.Get(context.Background(), created.ID)
	require.ErrorIs(t, err, ErrNotFound)
}
