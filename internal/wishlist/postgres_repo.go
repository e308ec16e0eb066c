package wishlist

import (
	"context"
	"fmt"
	"time"

	"libraryapi/internal/listing"
	"libraryapi/internal/platform/textnorm"

	"github.com/jackc/pgx/v5/pgxpool"
)

var sortColumns = map[string]string{
	OrderTitle:  "w.normalized_title",
	OrderAuthor: "w.author",
}

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

func (r *PostgresRepo) Count(ctx context.Context, userID, search string) (int, error) {
	const query = `SELECT COUNT(*) FROM wishlist w WHERE w.user_id = $1 AND w.normalized_title LIKE $2`
	var total int
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, query, userID, textnorm.LikePattern(search)).Scan(&total); err != nil {
		return 0, fmt.Errorf("count wishlist: %w", err)
	}
	return total, nil
}

func (r *PostgresRepo) Find(ctx context.Context, userID string, q listing.Query) ([]Entry, error) {
	sortCol, ok := sortColumns[q.OrderBy]
	if !ok {
		sortCol = sortColumns[OrderTitle]
	}
	order := "DESC"
	if q.Ascending {
		order = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT w.user_id, w.book_id, w.title, w.normalized_title, w.author, w.isbn, w.image_path, w.created_at
		FROM wishlist w
		WHERE w.user_id = $1 AND w.normalized_title LIKE $2
		ORDER BY %s %s, w.book_id ASC
		LIMIT $3 OFFSET $4`, sortCol, order)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, userID, textnorm.LikePattern(q.Search), q.Limit, q.Offset())
	if err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.UserID, &e.BookID, &e.Title, &e.NormalizedTitle, &e.Author, &e.ISBN, &e.ImagePath, &e.AddedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Exists(ctx context.Context, userID, bookID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM wishlist WHERE user_id = $1 AND book_id = $2)`
	var ok bool
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, query, userID, bookID).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (r *PostgresRepo) Add(ctx context.Context, e Entry) error {
	const sql = `
		INSERT INTO wishlist (user_id, book_id, title, normalized_title, author, isbn, image_path, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, book_id) DO NOTHING`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, sql,
		e.UserID, e.BookID, e.Title, e.NormalizedTitle, e.Author, e.ISBN, e.ImagePath, e.AddedAt,
	)
	if err != nil {
		return fmt.Errorf("insert wishlist entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadyExists
	}
	return nil
}

func (r *PostgresRepo) Remove(ctx context.Context, userID, bookID string) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, `DELETE FROM wishlist WHERE user_id = $1 AND book_id = $2`, userID, bookID)
	if err != nil {
		return fmt.Errorf("delete wishlist entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
