package products

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tradebook-app/tradebook/internal/masterdata/shared"
)

type fakeRepo struct {
	nextID int64
	items  map[int64]Product
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, items: map[int64]Product{}}
}

func (f *fakeRepo) List(_ context.Context, filters shared.ListFilters) ([]Product, int, error) {
	var out []Product
	for _, p := range f.items {
		if filters.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filters.Search)) {
			continue
		}
		if filters.Category != "" && (p.Category == nil || *p.Category != filters.Category) {
			continue
		}
		if filters.IsActive != nil && p.IsActive != *filters.IsActive {
			continue
		}
		if filters.LowStock && !p.LowOnStock() {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (f *fakeRepo) Get(_ context.Context, id int64) (Product, error) {
	p, ok := f.items[id]
	if !ok {
		return Product{}, shared.ErrNotFound
	}
	return p, nil
}

func (f *fakeRepo) Create(_ context.Context, p Product) (Product, error) {
	for _, existing := range f.items {
		if existing.SKU == p.SKU {
			return Product{}, shared.ErrDuplicate
		}
	}
	p.ID = f.nextID
	f.nextID++
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	f.items[p.ID] = p
	return p, nil
}

func (f *fakeRepo) Update(_ context.Context, id int64, p Product) error {
	existing, ok := f.items[id]
	if !ok {
		return shared.ErrNotFound
	}
	p.ID = id
	p.SKU = existing.SKU
	p.CurrentStock = existing.CurrentStock
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now()
	f.items[id] = p
	return nil
}

func (f *fakeRepo) SetStock(_ context.Context, id int64, newStock float64) error {
	p, ok := f.items[id]
	if !ok {
		return shared.ErrNotFound
	}
	p.CurrentStock = newStock
	f.items[id] = p
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return shared.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeRepo) Categories(_ context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, p := range f.items {
		if p.Category != nil && !seen[*p.Category] {
			seen[*p.Category] = true
			out = append(out, *p.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (f *fakeRepo) ListLowStock(_ context.Context) ([]Product, error) {
	var out []Product
	for _, p := range f.items {
		if p.IsActive && p.LowOnStock() {
			out = append(out, p)
		}
	}
	return out, nil
}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

func TestCreateProduct(t *testing.T) {
	svc, _ := newTestService()

	p, err := svc.Create(context.Background(), CreateProductRequest{
		SKU:           "SKU-001",
		Name:          "Basmati Rice 5kg",
		Unit:          "bag",
		MRP:           550,
		CurrentStock:  20,
		MinStockLevel: 5,
	})
	require.NoError(t, err)
	require.NotZero(t, p.ID)
	require.True(t, p.IsActive)
	require.Equal(t, 550.0, p.MRP)
}

func TestCreateProductRejectsBlankSKU(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), CreateProductRequest{Name: "No SKU", Unit: "pc"})
	require.ErrorIs(t, err, shared.ErrRequiredField)
}

func TestCreateProductDuplicateSKU(t *testing.T) {
	svc, _ := newTestService()

	req := CreateProductRequest{SKU: "SKU-001", Name: "First", Unit: "pc"}
	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	req.Name = "Second"
	_, err = svc.Create(context.Background(), req)
	require.ErrorIs(t, err, shared.ErrDuplicate)
}

func TestUpdateProductMergesFields(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), CreateProductRequest{
		SKU: "SKU-001", Name: "Old Name", Unit: "pc", MRP: 100, CurrentStock: 7,
	})
	require.NoError(t, err)

	newName := "New Name"
	newMRP := 120.0
	updated, err := svc.Update(context.Background(), created.ID, UpdateProductRequest{
		Name: &newName,
		MRP:  &newMRP,
	})
	require.NoError(t, err)
	require.Equal(t, "New Name", updated.Name)
	require.Equal(t, 120.0, updated.MRP)
	require.Equal(t, "pc", updated.Unit)

	// Updates never touch stock.
	require.Equal(t, 7.0, updated.CurrentStock)
}

func TestUpdateProductNotFound(t *testing.T) {
	svc, _ := newTestService()

	name := "Ghost"
	_, err := svc.Update(context.Background(), 42, UpdateProductRequest{Name: &name})
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestAdjustStock(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), CreateProductRequest{
		SKU: "SKU-001", Name: "Widget", Unit: "pc", CurrentStock: 10,
	})
	require.NoError(t, err)

	adjusted, err := svc.AdjustStock(context.Background(), created.ID, AdjustStockRequest{NewStock: 3, Notes: "cycle count"})
	require.NoError(t, err)
	require.Equal(t, 3.0, adjusted.CurrentStock)

	_, err = svc.AdjustStock(context.Background(), created.ID, AdjustStockRequest{NewStock: -1})
	require.ErrorIs(t, err, shared.ErrRequiredField)
}

func TestListLowStockFilter(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), CreateProductRequest{
		SKU: "LOW-1", Name: "Low item", Unit: "pc", CurrentStock: 2, MinStockLevel: 5,
	})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateProductRequest{
		SKU: "OK-1", Name: "Stocked item", Unit: "pc", CurrentStock: 50, MinStockLevel: 5,
	})
	require.NoError(t, err)

	low, err := svc.ListLowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, low, 1)
	require.Equal(t, "LOW-1", low[0].SKU)

	items, total, err := svc.List(context.Background(), shared.ListFilters{LowStock: true})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, items, 1)
}

func TestDeleteProduct(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), CreateProductRequest{SKU: "SKU-001", Name: "Widget", Unit: "pc"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	_, err = svc.Get(context.Background(), created.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCategories(t *testing.T) {
	svc, _ := newTestService()

	grocery := "Grocery"
	dairy := "Dairy"
	for _, req := range []CreateProductRequest{
		{SKU: "A", Name: "Rice", Unit: "kg", Category: &grocery},
		{SKU: "B", Name: "Milk", Unit: "ltr", Category: &dairy},
		{SKU: "C", Name: "Wheat", Unit: "kg", Category: &grocery},
	} {
		_, err := svc.Create(context.Background(), req)
		require.NoError(t, err)
	}

	cats, err := svc.Categories(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"Dairy", "Grocery"}, cats)
}
