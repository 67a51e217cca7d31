package payments

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tradebook-app/tradebook/internal/finance"
)

type fakeDoc struct {
	total float64
	paid  float64
}

type fakeRepo struct {
	nextID    int64
	payments  map[int64]Payment
	sales     map[int64]*fakeDoc
	purchases map[int64]*fakeDoc
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		nextID:    1,
		payments:  map[int64]Payment{},
		sales:     map[int64]*fakeDoc{},
		purchases: map[int64]*fakeDoc{},
	}
}

func (f *fakeRepo) docs(t PaymentType) map[int64]*fakeDoc {
	if t == TypeSalePayment {
		return f.sales
	}
	return f.purchases
}

func (f *fakeRepo) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return fn(ctx, f)
}

func (f *fakeRepo) Get(_ context.Context, id int64) (*Payment, error) {
	p, ok := f.payments[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (f *fakeRepo) List(_ context.Context, req ListPaymentsRequest) ([]Payment, int, error) {
	var out []Payment
	for _, p := range f.payments {
		if req.PaymentType != "" && string(p.PaymentType) != req.PaymentType {
			continue
		}
		out = append(out, p)
	}
	return out, len(out), nil
}

func (f *fakeRepo) Create(_ context.Context, p Payment) (int64, error) {
	p.ID = f.nextID
	f.nextID++
	p.CreatedAt = time.Now()
	f.payments[p.ID] = p
	return p.ID, nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.payments[id]; !ok {
		return ErrNotFound
	}
	delete(f.payments, id)
	return nil
}

func (f *fakeRepo) LockDocument(_ context.Context, t PaymentType, referenceID int64) (DocumentState, error) {
	if !t.Valid() {
		return DocumentState{}, ErrInvalidType
	}
	doc, ok := f.docs(t)[referenceID]
	if !ok {
		return DocumentState{}, ErrNotFound
	}
	return DocumentState{TotalAmount: doc.total, PaidAmount: doc.paid}, nil
}

func (f *fakeRepo) UpdateDocumentSettlement(_ context.Context, t PaymentType, referenceID int64, s finance.Settlement) error {
	doc, ok := f.docs(t)[referenceID]
	if !ok {
		return ErrNotFound
	}
	doc.paid = s.PaidAmount
	return nil
}

func (f *fakeRepo) PendingSales(_ context.Context) ([]PendingDocument, error) {
	var out []PendingDocument
	for id, d := range f.sales {
		if d.total-d.paid > 0 {
			out = append(out, PendingDocument{ID: id, TotalAmount: d.total, PaidAmount: d.paid, BalanceAmount: d.total - d.paid})
		}
	}
	return out, nil
}

func (f *fakeRepo) PendingPurchases(_ context.Context) ([]PendingDocument, error) {
	var out []PendingDocument
	for id, d := range f.purchases {
		if d.total-d.paid > 0 {
			out = append(out, PendingDocument{ID: id, TotalAmount: d.total, PaidAmount: d.paid, BalanceAmount: d.total - d.paid})
		}
	}
	return out, nil
}

// Mirrors the SQL generator: continues from the highest suffix issued for
// the month rather than counting rows.
func (f *fakeRepo) GenerateNumber(_ context.Context, prefix string, date time.Time) (string, error) {
	seqPrefix := fmt.Sprintf("%s%s-", prefix, date.Format("0601"))
	max := 0
	for _, p := range f.payments {
		if rest, ok := strings.CutPrefix(p.PaymentNumber, seqPrefix); ok {
			if n, err := strconv.Atoi(rest); err == nil && n > max {
				max = n
			}
		}
	}
	return fmt.Sprintf("%s%04d", seqPrefix, max+1), nil
}

type fakePrefixes struct{}

func (fakePrefixes) DocumentPrefix(context.Context, string) string { return "PAY-" }

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo, fakePrefixes{}, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

func createReq(amount float64) CreatePaymentRequest {
	return CreatePaymentRequest{
		PaymentType:   "sale_payment",
		ReferenceID:   1,
		Amount:        amount,
		PaymentDate:   time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC),
		PaymentMethod: "upi",
	}
}

func TestCreatePaymentSettlesDocument(t *testing.T) {
	svc, repo := newTestService()
	repo.sales[1] = &fakeDoc{total: 1000, paid: 200}

	p, err := svc.Create(context.Background(), createReq(300))
	require.NoError(t, err)
	require.Equal(t, "PAY-2608-0001", p.PaymentNumber)
	require.Equal(t, 500.0, repo.sales[1].paid)
}

func TestCreatePaymentFullSettlement(t *testing.T) {
	svc, repo := newTestService()
	repo.sales[1] = &fakeDoc{total: 1000, paid: 200}

	_, err := svc.Create(context.Background(), createReq(800))
	require.NoError(t, err)
	require.Equal(t, 1000.0, repo.sales[1].paid)
}

func TestCreatePaymentOmittedNotesStoredEmpty(t *testing.T) {
	svc, repo := newTestService()
	repo.sales[1] = &fakeDoc{total: 1000, paid: 0}

	p, err := svc.Create(context.Background(), createReq(100))
	require.NoError(t, err)
	require.Equal(t, "", repo.payments[p.ID].Notes)
}

func TestPaymentNumbersSkipDeletedPayments(t *testing.T) {
	svc, repo := newTestService()
	repo.sales[1] = &fakeDoc{total: 1000, paid: 0}

	first, err := svc.Create(context.Background(), createReq(100))
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), createReq(100))
	require.NoError(t, err)
	require.Equal(t, "PAY-2608-0002", second.PaymentNumber)

	require.NoError(t, svc.Delete(context.Background(), first.ID))

	third, err := svc.Create(context.Background(), createReq(100))
	require.NoError(t, err)
	require.Equal(t, "PAY-2608-0003", third.PaymentNumber)
}

func TestCreatePaymentRejectsOverpayment(t *testing.T) {
	svc, repo := newTestService()
	repo.sales[1] = &fakeDoc{total: 1000, paid: 900}

	_, err := svc.Create(context.Background(), createReq(200))
	require.ErrorIs(t, err, finance.ErrExceedsBalance)
	require.Equal(t, 900.0, repo.sales[1].paid)
	require.Empty(t, repo.payments)
}

func TestCreatePaymentUnknownDocument(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), createReq(100))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreatePurchasePayment(t *testing.T) {
	svc, repo := newTestService()
	repo.purchases[7] = &fakeDoc{total: 5000, paid: 0}

	req := createReq(5000)
	req.PaymentType = "purchase_payment"
	req.ReferenceID = 7

	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, 5000.0, repo.purchases[7].paid)
}

func TestDeletePaymentReversesSettlement(t *testing.T) {
	svc, repo := newTestService()
	repo.sales[1] = &fakeDoc{total: 1000, paid: 200}

	p, err := svc.Create(context.Background(), createReq(300))
	require.NoError(t, err)
	require.Equal(t, 500.0, repo.sales[1].paid)

	require.NoError(t, svc.Delete(context.Background(), p.ID))
	require.Equal(t, 200.0, repo.sales[1].paid)
	require.Empty(t, repo.payments)
}

func TestPendingDocuments(t *testing.T) {
	svc, repo := newTestService()
	repo.sales[1] = &fakeDoc{total: 1000, paid: 1000}
	repo.sales[2] = &fakeDoc{total: 500, paid: 100}
	repo.purchases[3] = &fakeDoc{total: 700, paid: 0}

	pendingSales, err := svc.PendingSales(context.Background())
	require.NoError(t, err)
	require.Len(t, pendingSales, 1)
	require.Equal(t, int64(2), pendingSales[0].ID)

	pendingPurchases, err := svc.PendingPurchases(context.Background())
	require.NoError(t, err)
	require.Len(t, pendingPurchases, 1)
	require.Equal(t, 700.0, pendingPurchases[0].BalanceAmount)
}
