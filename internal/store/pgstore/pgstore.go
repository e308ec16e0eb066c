// Package pgstore opens the PostgreSQL pool and loads datasets through the
// feature repositories.
package pgstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"libraryapi/internal/apperr"
	"libraryapi/internal/book"
	"libraryapi/internal/config"
	"libraryapi/internal/library"
	"libraryapi/internal/store/memstore"
	"libraryapi/internal/user"
	"libraryapi/internal/wishlist"

	"github.com/jackc/pgx/v5/pgxpool"
)

const pingTimeout = 2 * time.Second

// Open creates a pool for dsn and pings it.
func Open(ctx context.Context, dsn string, logger *slog.Logger) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create db pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database (%s): %w", config.RedactDSN(dsn), err)
	}
	logger.Info("database connection OK", "dsn", config.RedactDSN(dsn))
	return pool, nil
}

// Repos groups the PostgreSQL repositories of every feature.
type Repos struct {
	Books    *book.PostgresRepo
	Users    *user.PostgresRepo
	Library  *library.PostgresRepo
	Wishlist *wishlist.PostgresRepo
}

func NewRepos(pool *pgxpool.Pool, timeout time.Duration) Repos {
	return Repos{
		Books:    book.NewPostgresRepo(pool, timeout),
		Users:    user.NewPostgresRepo(pool, timeout),
		Library:  library.NewPostgresRepo(pool, timeout),
		Wishlist: wishlist.NewPostgresRepo(pool, timeout),
	}
}

// Stats counts the rows written by Load.
type Stats struct {
	Books, Users, Library, Wishlist int
}

// Load writes ds. Rows that already exist are left as they are, so loading
// the same dataset twice is harmless.
func (r Repos) Load(ctx context.Context, ds memstore.Dataset) (Stats, error) {
	var st Stats
	for _, b := range ds.Books {
		if err := r.Books.Insert(ctx, &b); err != nil {
			return st, err
		}
		st.Books++
	}
	for _, p := range ds.Users {
		if err := r.Users.Create(ctx, &p); err != nil {
			return st, err
		}
		st.Users++
	}
	for _, e := range ds.Library {
		err := r.Library.Add(ctx, e)
		if errors.Is(err, apperr.ErrAlreadyExists) {
			continue
		}
		if err != nil {
			return st, fmt.Errorf("library %s/%s: %w", e.UserID, e.BookID, err)
		}
		st.Library++
	}
	for _, e := range ds.Wishlist {
		err := r.Wishlist.Add(ctx, e)
		if errors.Is(err, apperr.ErrAlreadyExists) {
			continue
		}
		if err != nil {
			return st, fmt.Errorf("wishlist %s/%s: %w", e.UserID, e.BookID, err)
		}
		st.Wishlist++
	}
	return st, nil
}
