package purchases

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tradebook-app/tradebook/internal/platform/db"
)

type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Get(ctx context.Context, id int64) (*Purchase, error)
	List(ctx context.Context, req ListPurchasesRequest) ([]Purchase, int, error)
	Create(ctx context.Context, p Purchase) (int64, error)
	UpdateHeader(ctx context.Context, id int64, p Purchase) error
	Delete(ctx context.Context, id int64) error
	InsertItem(ctx context.Context, item PurchaseItem) (int64, error)
	DeleteItems(ctx context.Context, purchaseID int64) error
	Items(ctx context.Context, purchaseID int64) ([]PurchaseItem, error)
	AdjustStock(ctx context.Context, productID int64, delta float64) error
	GenerateNumber(ctx context.Context, prefix string, date time.Time) (string, error)
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

const purchaseColumns = `p.id, p.purchase_number, p.supplier_id, s.name, p.purchase_date, p.supplier_invoice_number,
	p.subtotal, p.discount_percentage, p.discount_amount, p.total_amount, p.paid_amount, p.balance_amount,
	p.payment_status, p.notes, p.created_at, p.updated_at`

func (r *repository) Get(ctx context.Context, id int64) (*Purchase, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+purchaseColumns+`
		FROM purchases p
		JOIN suppliers s ON s.id = p.supplier_id
		WHERE p.id = $1`, id)
	p, err := scanPurchase(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	items, err := r.Items(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Items = items
	return &p, nil
}

func (r *repository) List(ctx context.Context, req ListPurchasesRequest) ([]Purchase, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if req.Search != "" {
		argCount++
		ph := `$` + strconv.Itoa(argCount)
		where += ` AND (p.purchase_number ILIKE ` + ph + ` OR s.name ILIKE ` + ph + ` OR p.supplier_invoice_number ILIKE ` + ph + `)`
		args = append(args, "%"+req.Search+"%")
	}
	if req.SupplierID != nil {
		argCount++
		where += ` AND p.supplier_id = $` + strconv.Itoa(argCount)
		args = append(args, *req.SupplierID)
	}
	if req.PaymentStatus != "" {
		argCount++
		where += ` AND p.payment_status = $` + strconv.Itoa(argCount)
		args = append(args, req.PaymentStatus)
	}
	if req.DateFrom != nil {
		argCount++
		where += ` AND p.purchase_date >= $` + strconv.Itoa(argCount)
		args = append(args, *req.DateFrom)
	}
	if req.DateTo != nil {
		argCount++
		where += ` AND p.purchase_date <= $` + strconv.Itoa(argCount)
		args = append(args, *req.DateTo)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM purchases p JOIN suppliers s ON s.id = p.supplier_id` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + purchaseColumns + ` FROM purchases p JOIN suppliers s ON s.id = p.supplier_id` + where +
		` ORDER BY p.purchase_date DESC, p.id DESC`
	if req.Limit > 0 {
		argCount++
		query += ` LIMIT $` + strconv.Itoa(argCount)
		args = append(args, req.Limit)
		argCount++
		query += ` OFFSET $` + strconv.Itoa(argCount)
		args = append(args, (req.Page-1)*req.Limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, p Purchase) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO purchases (purchase_number, supplier_id, purchase_date, supplier_invoice_number,
			subtotal, discount_percentage, discount_amount, total_amount, paid_amount, balance_amount,
			payment_status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING id`,
		p.PurchaseNumber, p.SupplierID, pgDate(p.PurchaseDate), p.SupplierInvoiceNumber,
		p.Subtotal, p.DiscountPercentage, p.DiscountAmount, p.TotalAmount, p.PaidAmount, p.BalanceAmount,
		p.PaymentStatus, p.Notes,
	).Scan(&id)
	return id, err
}

func (r *repository) UpdateHeader(ctx context.Context, id int64, p Purchase) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE purchases
		SET supplier_id = $1, purchase_date = $2, supplier_invoice_number = $3,
			subtotal = $4, discount_percentage = $5, discount_amount = $6, total_amount = $7,
			paid_amount = $8, balance_amount = $9, payment_status = $10, notes = $11, updated_at = NOW()
		WHERE id = $12`,
		p.SupplierID, pgDate(p.PurchaseDate), p.SupplierInvoiceNumber,
		p.Subtotal, p.DiscountPercentage, p.DiscountAmount, p.TotalAmount,
		p.PaidAmount, p.BalanceAmount, p.PaymentStatus, p.Notes, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM purchases WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) InsertItem(ctx context.Context, item PurchaseItem) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO purchase_items (purchase_id, product_id, quantity, mrp, discount_percent, cost_price, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		item.PurchaseID, item.ProductID, item.Quantity, item.MRP, item.DiscountPercent, item.CostPrice, item.Total,
	).Scan(&id)
	return id, err
}

func (r *repository) DeleteItems(ctx context.Context, purchaseID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM purchase_items WHERE purchase_id = $1`, purchaseID)
	return err
}

func (r *repository) Items(ctx context.Context, purchaseID int64) ([]PurchaseItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT pi.id, pi.purchase_id, pi.product_id, pr.name, pi.quantity, pi.mrp, pi.discount_percent, pi.cost_price, pi.total
		FROM purchase_items pi
		JOIN products pr ON pr.id = pi.product_id
		WHERE pi.purchase_id = $1
		ORDER BY pi.id`, purchaseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PurchaseItem
	for rows.Next() {
		var it PurchaseItem
		if err := rows.Scan(&it.ID, &it.PurchaseID, &it.ProductID, &it.ProductName, &it.Quantity, &it.MRP, &it.DiscountPercent, &it.CostPrice, &it.Total); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *repository) AdjustStock(ctx context.Context, productID int64, delta float64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE products SET current_stock = current_stock + $1, updated_at = NOW() WHERE id = $2`,
		delta, productID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %d not found", productID)
	}
	return nil
}

// GenerateNumber produces {PREFIX}{YYMM}-{SEQ}. The sequence continues from
// the highest suffix already issued for the month, so deleted documents
// never free a number, and an advisory lock on the month key serializes
// concurrent generators. Must run inside WithTx.
func (r *repository) GenerateNumber(ctx context.Context, prefix string, date time.Time) (string, error) {
	seqPrefix := fmt.Sprintf("%s%s-", prefix, date.Format("0601"))
	if _, err := r.db.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, seqPrefix); err != nil {
		return "", err
	}
	var next int
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(MAX(substring(purchase_number FROM '[0-9]+$')::int), 0) + 1
		FROM purchases
		WHERE purchase_number LIKE $1 || '%'`, seqPrefix).Scan(&next)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%04d", seqPrefix, next), nil
}

func scanPurchase(row pgx.Row) (Purchase, error) {
	var p Purchase
	var date pgtype.Date
	err := row.Scan(&p.ID, &p.PurchaseNumber, &p.SupplierID, &p.SupplierName, &date, &p.SupplierInvoiceNumber,
		&p.Subtotal, &p.DiscountPercentage, &p.DiscountAmount, &p.TotalAmount, &p.PaidAmount, &p.BalanceAmount,
		&p.PaymentStatus, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	p.PurchaseDate = date.Time
	return p, err
}

func pgDate(t time.Time) pgtype.Date {
	return pgtype.Date{Time: t, Valid: true}
}
