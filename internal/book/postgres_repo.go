package book

import (
	"context"
	"errors"
	"fmt"
	"time"

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

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (Book, error) {
	const query = `
		SELECT id, isbn, title, normalized_title, author, description, image_path, created_at
		FROM books
		WHERE id = $1
		LIMIT 1
	`
	var b Book
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, id).Scan(
		&b.ID, &b.ISBN, &b.Title, &b.NormalizedTitle, &b.Author, &b.Description, &b.ImagePath, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func (r *PostgresRepo) Insert(ctx context.Context, b *Book) error {
	const sql = `
		INSERT INTO books (id, isbn, title, normalized_title, author, description, image_path, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (id) DO NOTHING
		RETURNING created_at`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, sql,
		b.ID, b.ISBN, b.Title, b.NormalizedTitle, b.Author, b.Description, b.ImagePath,
	).Scan(&b.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// already stored by a concurrent request
		return nil
	}
	if err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}
