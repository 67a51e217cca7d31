package payments

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

// DocumentState is the settlement-relevant slice of a sale or purchase row,
// read under lock before a payment is applied or reversed.
type DocumentState struct {
	TotalAmount float64
	PaidAmount  float64
}

type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Get(ctx context.Context, id int64) (*Payment, error)
	List(ctx context.Context, req ListPaymentsRequest) ([]Payment, int, error)
	Create(ctx context.Context, p Payment) (int64, error)
	Delete(ctx context.Context, id int64) error
	LockDocument(ctx context.Context, paymentType PaymentType, referenceID int64) (DocumentState, error)
	UpdateDocumentSettlement(ctx context.Context, paymentType PaymentType, referenceID int64, s finance.Settlement) error
	PendingSales(ctx context.Context) ([]PendingDocument, error)
	PendingPurchases(ctx context.Context) ([]PendingDocument, error)
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

// paymentColumns joins the referenced document number and party per type.
const paymentColumns = `pm.id, pm.payment_number, pm.payment_type, pm.reference_id,
	COALESCE(s.invoice_number, pu.purchase_number, ''),
	COALESCE(c.name, sup.name, ''),
	pm.amount, pm.payment_date, pm.payment_method, pm.notes, pm.created_at`

const paymentJoins = `
	FROM payments pm
	LEFT JOIN sales s ON pm.payment_type = 'sale_payment' AND s.id = pm.reference_id
	LEFT JOIN customers c ON c.id = s.customer_id
	LEFT JOIN purchases pu ON pm.payment_type = 'purchase_payment' AND pu.id = pm.reference_id
	LEFT JOIN suppliers sup ON sup.id = pu.supplier_id`

func (r *repository) Get(ctx context.Context, id int64) (*Payment, error) {
	row := r.db.QueryRow(ctx, `SELECT `+paymentColumns+paymentJoins+` WHERE pm.id = $1`, id)
	p, err := scanPayment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context, req ListPaymentsRequest) ([]Payment, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if req.PaymentType != "" {
		argCount++
		where += ` AND pm.payment_type = $` + strconv.Itoa(argCount)
		args = append(args, req.PaymentType)
	}
	if req.PaymentMethod != "" {
		argCount++
		where += ` AND pm.payment_method = $` + strconv.Itoa(argCount)
		args = append(args, req.PaymentMethod)
	}
	if req.ReferenceID != nil {
		argCount++
		where += ` AND pm.reference_id = $` + strconv.Itoa(argCount)
		args = append(args, *req.ReferenceID)
	}
	if req.DateFrom != nil {
		argCount++
		where += ` AND pm.payment_date >= $` + strconv.Itoa(argCount)
		args = append(args, *req.DateFrom)
	}
	if req.DateTo != nil {
		argCount++
		where += ` AND pm.payment_date <= $` + strconv.Itoa(argCount)
		args = append(args, *req.DateTo)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM payments pm`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + paymentColumns + paymentJoins + where + ` ORDER BY pm.payment_date DESC, pm.id DESC`
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

	var out []Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, p Payment) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO payments (payment_number, payment_type, reference_id, amount, payment_date, payment_method, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id`,
		p.PaymentNumber, p.PaymentType, p.ReferenceID, p.Amount, pgDate(p.PaymentDate), p.PaymentMethod, p.Notes,
	).Scan(&id)
	return id, err
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) LockDocument(ctx context.Context, paymentType PaymentType, referenceID int64) (DocumentState, error) {
	var query string
	switch paymentType {
	case TypeSalePayment:
		query = `SELECT total_amount, paid_amount FROM sales WHERE id = $1 FOR UPDATE`
	case TypePurchasePayment:
		query = `SELECT total_amount, paid_amount FROM purchases WHERE id = $1 FOR UPDATE`
	default:
		return DocumentState{}, ErrInvalidType
	}
	var state DocumentState
	err := r.db.QueryRow(ctx, query, referenceID).Scan(&state.TotalAmount, &state.PaidAmount)
	if errors.Is(err, pgx.ErrNoRows) {
		return DocumentState{}, ErrNotFound
	}
	return state, err
}

func (r *repository) UpdateDocumentSettlement(ctx context.Context, paymentType PaymentType, referenceID int64, s finance.Settlement) error {
	var query string
	switch paymentType {
	case TypeSalePayment:
		query = `UPDATE sales SET paid_amount = $1, balance_amount = $2, payment_status = $3, updated_at = NOW() WHERE id = $4`
	case TypePurchasePayment:
		query = `UPDATE purchases SET paid_amount = $1, balance_amount = $2, payment_status = $3, updated_at = NOW() WHERE id = $4`
	default:
		return ErrInvalidType
	}
	tag, err := r.db.Exec(ctx, query, s.PaidAmount, s.BalanceAmount, s.Status, referenceID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) PendingSales(ctx context.Context) ([]PendingDocument, error) {
	return r.pendingDocs(ctx, `
		SELECT s.id, s.invoice_number, COALESCE(c.name, 'Walk-in'), s.sale_date, s.total_amount, s.paid_amount, s.balance_amount
		FROM sales s
		LEFT JOIN customers c ON c.id = s.customer_id
		WHERE s.balance_amount > 0
		ORDER BY s.sale_date`)
}

func (r *repository) PendingPurchases(ctx context.Context) ([]PendingDocument, error) {
	return r.pendingDocs(ctx, `
		SELECT p.id, p.purchase_number, sup.name, p.purchase_date, p.total_amount, p.paid_amount, p.balance_amount
		FROM purchases p
		JOIN suppliers sup ON sup.id = p.supplier_id
		WHERE p.balance_amount > 0
		ORDER BY p.purchase_date`)
}

func (r *repository) pendingDocs(ctx context.Context, query string) ([]PendingDocument, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PendingDocument
	for rows.Next() {
		var d PendingDocument
		var date pgtype.Date
		if err := rows.Scan(&d.ID, &d.DocumentNumber, &d.PartyName, &date, &d.TotalAmount, &d.PaidAmount, &d.BalanceAmount); err != nil {
			return nil, err
		}
		d.DocumentDate = date.Time
		out = append(out, d)
	}
	return out, rows.Err()
}

// GenerateNumber produces {PREFIX}{YYMM}-{SEQ}. The sequence continues from
// the highest suffix already issued for the month, so deleted payments
// never free a number, and an advisory lock on the month key serializes
// concurrent generators. Must run inside WithTx.
func (r *repository) GenerateNumber(ctx context.Context, prefix string, date time.Time) (string, error) {
	seqPrefix := fmt.Sprintf("%s%s-", prefix, date.Format("0601"))
	if _, err := r.db.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, seqPrefix); err != nil {
		return "", err
	}
	var next int
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(MAX(substring(payment_number FROM '[0-9]+$')::int), 0) + 1
		FROM payments
		WHERE payment_number LIKE $1 || '%'`, seqPrefix).Scan(&next)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%04d", seqPrefix, next), nil
}

func scanPayment(row pgx.Row) (Payment, error) {
	var p Payment
	var date pgtype.Date
	err := row.Scan(&p.ID, &p.PaymentNumber, &p.PaymentType, &p.ReferenceID, &p.ReferenceNumber, &p.PartyName,
		&p.Amount, &date, &p.PaymentMethod, &p.Notes, &p.CreatedAt)
	p.PaymentDate = date.Time
	return p, err
}

func pgDate(t time.Time) pgtype.Date {
	return pgtype.Date{Time: t, Valid: true}
}
