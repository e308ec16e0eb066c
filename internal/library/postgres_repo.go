package library

import (
	"context"
	"errors"
	"fmt"
	"time"

	"libraryapi/internal/book"
	"libraryapi/internal/listing"
	"libraryapi/internal/platform/textnorm"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// sortColumns maps whitelisted sort keys to SQL expressions.
var sortColumns = map[string]string{
	OrderTitle:        "b.normalized_title",
	OrderRating:       "lb.rating",
	OrderTag:          "lb.tag",
	OrderReadingState: "lb.reading_state",
}

const itemColumns = `
	b.id, b.isbn, b.title, b.normalized_title, b.author, b.description, b.image_path,
	lb.rating, lb.tag, lb.reading_state, lb.initial_date, lb.final_date`

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
	const query = `
		SELECT COUNT(*)
		FROM library_books lb
		JOIN books b ON b.id = lb.book_id
		WHERE lb.user_id = $1 AND b.normalized_title LIKE $2
	`
	var total int
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, query, userID, textnorm.LikePattern(search)).Scan(&total); err != nil {
		return 0, fmt.Errorf("count library: %w", err)
	}
	return total, nil
}

func (r *PostgresRepo) Find(ctx context.Context, userID string, q listing.Query) ([]Item, error) {
	sortCol, ok := sortColumns[q.OrderBy]
	if !ok {
		sortCol = sortColumns[OrderTitle]
	}
	order := "DESC"
	if q.Ascending {
		order = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM library_books lb
		JOIN books b ON b.id = lb.book_id
		WHERE lb.user_id = $1 AND b.normalized_title LIKE $2
		ORDER BY %s %s, b.id ASC
		LIMIT $3 OFFSET $4`, itemColumns, sortCol, order)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, userID, textnorm.LikePattern(q.Search), q.Limit, q.Offset())
	if err != nil {
		return nil, fmt.Errorf("list library: %w", err)
	}
	defer rows.Close()

	out := []Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func scanItem(row pgx.Row) (Item, error) {
	var (
		b       book.Book
		e       Entry
		initial *time.Time
		final   *time.Time
	)
	err := row.Scan(
		&b.ID, &b.ISBN, &b.Title, &b.NormalizedTitle, &b.Author, &b.Description, &b.ImagePath,
		&e.Rating, &e.Tag, &e.ReadingState, &initial, &final,
	)
	if err != nil {
		return Item{}, err
	}
	e.BookID = b.ID
	e.InitialDate = derefDate(initial)
	e.FinalDate = derefDate(final)
	return NewItem(e, b), nil
}

func (r *PostgresRepo) GetItem(ctx context.Context, userID, bookID string) (Item, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM library_books lb
		JOIN books b ON b.id = lb.book_id
		WHERE lb.user_id = $1 AND lb.book_id = $2
	`, itemColumns)
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	item, err := scanItem(r.db.QueryRow(timeoutCtx, query, userID, bookID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, ErrNotFound
		}
		return Item{}, err
	}
	return item, nil
}

func (r *PostgresRepo) GetItemByISBN(ctx context.Context, userID, isbn string) (Item, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM library_books lb
		JOIN books b ON b.id = lb.book_id
		WHERE lb.user_id = $1 AND b.isbn = $2
		ORDER BY b.id
		LIMIT 1
	`, itemColumns)
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	item, err := scanItem(r.db.QueryRow(timeoutCtx, query, userID, isbn))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, ErrNotFound
		}
		return Item{}, err
	}
	return item, nil
}

func (r *PostgresRepo) Get(ctx context.Context, userID, bookID string) (Entry, error) {
	const query = `
		SELECT user_id, book_id, rating, tag, reading_state, initial_date, final_date
		FROM library_books
		WHERE user_id = $1 AND book_id = $2
	`
	var (
		e       Entry
		initial *time.Time
		final   *time.Time
	)
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, userID, bookID).Scan(
		&e.UserID, &e.BookID, &e.Rating, &e.Tag, &e.ReadingState, &initial, &final,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, err
	}
	e.InitialDate = derefDate(initial)
	e.FinalDate = derefDate(final)
	return e, nil
}

func (r *PostgresRepo) Exists(ctx context.Context, userID, bookID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM library_books WHERE user_id = $1 AND book_id = $2)`
	var ok bool
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, query, userID, bookID).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (r *PostgresRepo) Add(ctx context.Context, e Entry) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.Begin(timeoutCtx)
	if err != nil {
		return err
	}
	defer tx.Rollback(timeoutCtx)

	const insertSQL = `
		INSERT INTO library_books (user_id, book_id, rating, tag, reading_state, initial_date, final_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		ON CONFLICT (user_id, book_id) DO NOTHING`

	tag, err := tx.Exec(timeoutCtx, insertSQL,
		e.UserID, e.BookID, e.Rating, e.Tag, e.ReadingState, nullDate(e.InitialDate), nullDate(e.FinalDate),
	)
	if err != nil {
		return fmt.Errorf("insert library entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadyExists
	}

	if _, err := tx.Exec(timeoutCtx, `DELETE FROM wishlist WHERE user_id = $1 AND book_id = $2`, e.UserID, e.BookID); err != nil {
		return fmt.Errorf("clear wishlist entry: %w", err)
	}

	return tx.Commit(timeoutCtx)
}

func (r *PostgresRepo) Update(ctx context.Context, e Entry) error {
	const sql = `
		UPDATE library_books
		SET rating = $3, tag = $4, reading_state = $5, initial_date = $6, final_date = $7, updated_at = now()
		WHERE user_id = $1 AND book_id = $2`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, sql,
		e.UserID, e.BookID, e.Rating, e.Tag, e.ReadingState, nullDate(e.InitialDate), nullDate(e.FinalDate),
	)
	if err != nil {
		return fmt.Errorf("update library entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) Remove(ctx context.Context, userID, bookID string) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, `DELETE FROM library_books WHERE user_id = $1 AND book_id = $2`, userID, bookID)
	if err != nil {
		return fmt.Errorf("delete library entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func derefDate(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return Day(*t)
}

func nullDate(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
