package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"libraryapi/internal/platform/textnorm"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// Create inserts p, or refreshes the stored name and visibility when the id
// is already taken.
func (r *PostgresRepo) Create(ctx context.Context, p *Profile) error {
	const query = `
	INSERT INTO users (id, full_name, normalized_full_name, visible)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (id) DO UPDATE
	SET full_name = EXCLUDED.full_name,
		normalized_full_name = EXCLUDED.normalized_full_name,
		visible = EXCLUDED.visible,
		updated_at = now()
	`
	p.NormalizedFullName = textnorm.Normalize(p.FullName)
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if _, err := r.db.Exec(timeoutCtx, query, p.ID, p.FullName, p.NormalizedFullName, p.Visible); err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (Profile, error) {
	const query = `SELECT id, full_name, normalized_full_name, visible FROM users WHERE id = $1`
	var p Profile
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, id).Scan(&p.ID, &p.FullName, &p.NormalizedFullName, &p.Visible)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	return p, nil
}

func (r *PostgresRepo) Search(ctx context.Context, callerID, term string) ([]Profile, error) {
	const query = `
	SELECT id, full_name, normalized_full_name, visible
	FROM users
	WHERE visible AND id <> $1 AND normalized_full_name LIKE $2
	ORDER BY normalized_full_name, id
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, callerID, textnorm.LikePattern(term))
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	defer rows.Close()

	out := []Profile{}
	for rows.Next() {
		var p Profile
		if err := rows.Scan(&p.ID, &p.FullName, &p.NormalizedFullName, &p.Visible); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) SetVisibility(ctx context.Context, id string, visible bool) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, `UPDATE users SET visible = $2, updated_at = now() WHERE id = $1`, id, visible)
	if err != nil {
		return fmt.Errorf("update visibility: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
