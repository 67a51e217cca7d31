package reports

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	SalesRows(ctx context.Context, from, to time.Time) ([]SalesRow, error)
	PurchaseRows(ctx context.Context, from, to time.Time) ([]PurchaseRow, error)
	StockRows(ctx context.Context) ([]StockRow, error)
	CustomerRows(ctx context.Context, from, to time.Time) ([]CustomerRow, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) SalesRows(ctx context.Context, from, to time.Time) ([]SalesRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT s.id, s.invoice_number, COALESCE(c.name, 'Walk-in'), s.sale_date,
			s.total_amount, s.paid_amount, s.balance_amount, s.total_profit, s.payment_status
		FROM sales s
		LEFT JOIN customers c ON c.id = s.customer_id
		WHERE s.sale_date >= $1 AND s.sale_date <= $2
		ORDER BY s.sale_date, s.id`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SalesRow
	for rows.Next() {
		var row SalesRow
		var date pgtype.Date
		if err := rows.Scan(&row.ID, &row.InvoiceNumber, &row.CustomerName, &date,
			&row.TotalAmount, &row.PaidAmount, &row.BalanceAmount, &row.TotalProfit, &row.PaymentStatus); err != nil {
			return nil, err
		}
		row.SaleDate = date.Time
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *repository) PurchaseRows(ctx context.Context, from, to time.Time) ([]PurchaseRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT p.id, p.purchase_number, sup.name, p.purchase_date,
			p.total_amount, p.paid_amount, p.balance_amount, p.payment_status
		FROM purchases p
		JOIN suppliers sup ON sup.id = p.supplier_id
		WHERE p.purchase_date >= $1 AND p.purchase_date <= $2
		ORDER BY p.purchase_date, p.id`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PurchaseRow
	for rows.Next() {
		var row PurchaseRow
		var date pgtype.Date
		if err := rows.Scan(&row.ID, &row.PurchaseNumber, &row.SupplierName, &date,
			&row.TotalAmount, &row.PaidAmount, &row.BalanceAmount, &row.PaymentStatus); err != nil {
			return nil, err
		}
		row.PurchaseDate = date.Time
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *repository) StockRows(ctx context.Context) ([]StockRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, sku, name, category, unit, current_stock, min_stock_level, mrp
		FROM products
		WHERE is_active
		ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StockRow
	for rows.Next() {
		var row StockRow
		if err := rows.Scan(&row.ID, &row.SKU, &row.Name, &row.Category, &row.Unit,
			&row.CurrentStock, &row.MinStockLevel, &row.MRP); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// CustomerRows aggregates per-customer sale totals in one grouped query.
func (r *repository) CustomerRows(ctx context.Context, from, to time.Time) ([]CustomerRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.id, c.name, COUNT(s.id),
			COALESCE(SUM(s.total_amount), 0), COALESCE(SUM(s.paid_amount), 0), COALESCE(SUM(s.balance_amount), 0)
		FROM customers c
		JOIN sales s ON s.customer_id = c.id AND s.sale_date >= $1 AND s.sale_date <= $2
		GROUP BY c.id, c.name
		ORDER BY SUM(s.total_amount) DESC`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CustomerRow
	for rows.Next() {
		var row CustomerRow
		if err := rows.Scan(&row.CustomerID, &row.Name, &row.SaleCount,
			&row.TotalAmount, &row.PaidAmount, &row.BalanceDue); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
