package settings

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	All(ctx context.Context) ([]Setting, error)
	Get(ctx context.Context, key string) (Setting, error)
	Upsert(ctx context.Context, s Setting) (Setting, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) All(ctx context.Context) ([]Setting, error) {
	rows, err := r.db.Query(ctx, `SELECT key, value, category, updated_at FROM settings ORDER BY category, key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value, &s.Category, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *repository) Get(ctx context.Context, key string) (Setting, error) {
	var s Setting
	err := r.db.QueryRow(ctx, `SELECT key, value, category, updated_at FROM settings WHERE key = $1`, key).
		Scan(&s.Key, &s.Value, &s.Category, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Setting{}, ErrNotFound
	}
	return s, err
}

func (r *repository) Upsert(ctx context.Context, s Setting) (Setting, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO settings (key, value, category, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, category = EXCLUDED.category, updated_at = NOW()
		RETURNING updated_at`,
		s.Key, s.Value, s.Category,
	).Scan(&s.UpdatedAt)
	return s, err
}
