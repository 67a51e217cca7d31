package sales

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

	"github.com/tradebook-app/tradebook/internal/finance"
	"github.com/tradebook-app/tradebook/internal/platform/db"
)

type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Get(ctx context.Context, id int64) (*Sale, error)
	List(ctx context.Context, req ListSalesRequest) ([]Sale, int, error)
	Create(ctx context.Context, s Sale) (int64, error)
	UpdateHeader(ctx context.Context, id int64, s Sale) error
	Delete(ctx context.Context, id int64) error
	InsertItem(ctx context.Context, item SaleItem) (int64, error)
	DeleteItems(ctx context.Context, saleID int64) error
	Items(ctx context.Context, saleID int64) ([]SaleItem, error)
	AdjustStock(ctx context.Context, productID int64, delta float64) (float64, error)
	RecentPurchaseSamples(ctx context.Context, productIDs []int64, window int) (map[int64][]finance.PurchaseSample, error)
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

const saleColumns = `s.id, s.invoice_number, s.customer_id, c.name, s.sale_date,
	s.subtotal, s.discount_percentage, s.discount_amount, s.total_amount, s.total_cost, s.total_profit,
	s.paid_amount, s.balance_amount, s.payment_status, s.notes, s.created_at, s.updated_at`

func (r *repository) Get(ctx context.Context, id int64) (*Sale, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+saleColumns+`
		FROM sales s
		LEFT JOIN customers c ON c.id = s.customer_id
		WHERE s.id = $1`, id)
	s, err := scanSale(row)
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
	s.Items = items
	return &s, nil
}

func (r *repository) List(ctx context.Context, req ListSalesRequest) ([]Sale, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if req.Search != "" {
		argCount++
		ph := `$` + strconv.Itoa(argCount)
		where += ` AND (s.invoice_number ILIKE ` + ph + ` OR c.name ILIKE ` + ph + `)`
		args = append(args, "%"+req.Search+"%")
	}
	if req.CustomerID != nil {
		argCount++
		where += ` AND s.customer_id = $` + strconv.Itoa(argCount)
		args = append(args, *req.CustomerID)
	}
	if req.PaymentStatus != "" {
		argCount++
		where += ` AND s.payment_status = $` + strconv.Itoa(argCount)
		args = append(args, req.PaymentStatus)
	}
	if req.DateFrom != nil {
		argCount++
		where += ` AND s.sale_date >= $` + strconv.Itoa(argCount)
		args = append(args, *req.DateFrom)
	}
	if req.DateTo != nil {
		argCount++
		where += ` AND s.sale_date <= $` + strconv.Itoa(argCount)
		args = append(args, *req.DateTo)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM sales s LEFT JOIN customers c ON c.id = s.customer_id` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + saleColumns + ` FROM sales s LEFT JOIN customers c ON c.id = s.customer_id` + where +
		` ORDER BY s.sale_date DESC, s.id DESC`
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

	var out []Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, s)
	}
	return out, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, s Sale) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO sales (invoice_number, customer_id, sale_date, subtotal, discount_percentage, discount_amount,
			total_amount, total_cost, total_profit, paid_amount, balance_amount, payment_status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		RETURNING id`,
		s.InvoiceNumber, s.CustomerID, pgDate(s.SaleDate), s.Subtotal, s.DiscountPercentage, s.DiscountAmount,
		s.TotalAmount, s.TotalCost, s.TotalProfit, s.PaidAmount, s.BalanceAmount, s.PaymentStatus, s.Notes,
	).Scan(&id)
	return id, err
}

func (r *repository) UpdateHeader(ctx context.Context, id int64, s Sale) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE sales
		SET customer_id = $1, sale_date = $2, subtotal = $3, discount_percentage = $4, discount_amount = $5,
			total_amount = $6, total_cost = $7, total_profit = $8, paid_amount = $9, balance_amount = $10,
			payment_status = $11, notes = $12, updated_at = NOW()
		WHERE id = $13`,
		s.CustomerID, pgDate(s.SaleDate), s.Subtotal, s.DiscountPercentage, s.DiscountAmount,
		s.TotalAmount, s.TotalCost, s.TotalProfit, s.PaidAmount, s.BalanceAmount,
		s.PaymentStatus, s.Notes, id,
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
	tag, err := r.db.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) InsertItem(ctx context.Context, item SaleItem) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO sale_items (sale_id, product_id, quantity, mrp, discount_percent, unit_price, total, cost_price, profit)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		item.SaleID, item.ProductID, item.Quantity, item.MRP, item.DiscountPercent,
		item.UnitPrice, item.Total, item.CostPrice, item.Profit,
	).Scan(&id)
	return id, err
}

func (r *repository) DeleteItems(ctx context.Context, saleID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM sale_items WHERE sale_id = $1`, saleID)
	return err
}

func (r *repository) Items(ctx context.Context, saleID int64) ([]SaleItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT si.id, si.sale_id, si.product_id, pr.name, si.quantity, si.mrp, si.discount_percent,
			si.unit_price, si.total, si.cost_price, si.profit
		FROM sale_items si
		JOIN products pr ON pr.id = si.product_id
		WHERE si.sale_id = $1
		ORDER BY si.id`, saleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SaleItem
	for rows.Next() {
		var it SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.ProductName, &it.Quantity, &it.MRP,
			&it.DiscountPercent, &it.UnitPrice, &it.Total, &it.CostPrice, &it.Profit); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *repository) AdjustStock(ctx context.Context, productID int64, delta float64) (float64, error) {
	var newStock float64
	err := r.db.QueryRow(ctx, `
		UPDATE products SET current_stock = current_stock + $1, updated_at = NOW()
		WHERE id = $2
		RETURNING current_stock`,
		delta, productID,
	).Scan(&newStock)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("product %d not found", productID)
	}
	return newStock, err
}

// RecentPurchaseSamples fetches the most recent purchase lines per product
// in one query. The window is applied per product with a ranked subselect
// so pricing a multi-line sale costs a single round trip.
func (r *repository) RecentPurchaseSamples(ctx context.Context, productIDs []int64, window int) (map[int64][]finance.PurchaseSample, error) {
	out := make(map[int64][]finance.PurchaseSample, len(productIDs))
	if len(productIDs) == 0 {
		return out, nil
	}
	rows, err := r.db.Query(ctx, `
		SELECT product_id, cost_price, quantity
		FROM (
			SELECT pi.product_id, pi.cost_price, pi.quantity,
				ROW_NUMBER() OVER (PARTITION BY pi.product_id ORDER BY pi.id DESC) AS rn
			FROM purchase_items pi
			WHERE pi.product_id = ANY($1)
		) ranked
		WHERE rn <= $2`,
		productIDs, window)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var productID int64
		var sample finance.PurchaseSample
		if err := rows.Scan(&productID, &sample.CostPrice, &sample.Quantity); err != nil {
			return nil, err
		}
		out[productID] = append(out[productID], sample)
	}
	return out, rows.Err()
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
		SELECT COALESCE(MAX(substring(invoice_number FROM '[0-9]+$')::int), 0) + 1
		FROM sales
		WHERE invoice_number LIKE $1 || '%'`, seqPrefix).Scan(&next)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%04d", seqPrefix, next), nil
}

func scanSale(row pgx.Row) (Sale, error) {
	var s Sale
	var date pgtype.Date
	err := row.Scan(&s.ID, &s.InvoiceNumber, &s.CustomerID, &s.CustomerName, &date,
		&s.Subtotal, &s.DiscountPercentage, &s.DiscountAmount, &s.TotalAmount, &s.TotalCost, &s.TotalProfit,
		&s.PaidAmount, &s.BalanceAmount, &s.PaymentStatus, &s.Notes, &s.CreatedAt, &s.UpdatedAt)
	s.SaleDate = date.Time
	return s, err
}

func pgDate(t time.Time) pgtype.Date {
	return pgtype.Date{Time: t, Valid: true}
}
