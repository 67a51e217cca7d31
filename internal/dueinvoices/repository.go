package dueinvoices

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads outstanding documents. Days outstanding and aging
// buckets are computed in the service so the same clock is applied to both
// sides of the ledger.
type Repository interface {
	OutstandingSales(ctx context.Context) ([]DueInvoice, error)
	OutstandingPurchases(ctx context.Context) ([]DueInvoice, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) OutstandingSales(ctx context.Context) ([]DueInvoice, error) {
	rows, err := r.db.Query(ctx, `
		SELECT s.id, s.invoice_number, COALESCE(s.customer_id, 0), COALESCE(c.name, 'Walk-in'), s.sale_date, s.total_amount, s.paid_amount, s.balance_amount
		FROM sales s
		LEFT JOIN customers c ON c.id = s.customer_id
		WHERE s.balance_amount > 0
		ORDER BY s.sale_date`)
	if err != nil {
		return nil, err
	}
	return collectDue(rows, TypeReceivable)
}

func (r *repository) OutstandingPurchases(ctx context.Context) ([]DueInvoice, error) {
	rows, err := r.db.Query(ctx, `
		SELECT p.id, p.purchase_number, p.supplier_id, sup.name, p.purchase_date, p.total_amount, p.paid_amount, p.balance_amount
		FROM purchases p
		JOIN suppliers sup ON sup.id = p.supplier_id
		WHERE p.balance_amount > 0
		ORDER BY p.purchase_date`)
	if err != nil {
		return nil, err
	}
	return collectDue(rows, TypePayable)
}

func collectDue(rows pgx.Rows, t InvoiceType) ([]DueInvoice, error) {
	defer rows.Close()

	var out []DueInvoice
	for rows.Next() {
		var d DueInvoice
		var date pgtype.Date
		if err := rows.Scan(&d.ID, &d.DocumentNumber, &d.PartyID, &d.PartyName, &date, &d.TotalAmount, &d.PaidAmount, &d.BalanceAmount); err != nil {
			return nil, err
		}
		d.DocumentDate = date.Time
		d.InvoiceType = t
		out = append(out, d)
	}
	return out, rows.Err()
}
