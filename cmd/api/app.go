package main

import (
	"context"
	"log/slog"

	"libraryapi/internal/book"
	"libraryapi/internal/config"
	"libraryapi/internal/library"
	"libraryapi/internal/store/memstore"
	"libraryapi/internal/store/pgstore"
	"libraryapi/internal/user"
	"libraryapi/internal/wishlist"

	"github.com/jackc/pgx/v5/pgxpool"
)

type repositories struct {
	books    book.Repository
	library  library.Repository
	wishlist wishlist.Repository
	users    user.Repository
}

func memoryRepositories(s *memstore.Store) repositories {
	return repositories{books: s.Books(), library: s.Library(), wishlist: s.Wishlist(), users: s.Users()}
}

func postgresRepositories(pool *pgxpool.Pool, cfg config.Config) repositories {
	r := pgstore.NewRepos(pool, cfg.DBTimeout)
	return repositories{books: r.Books, library: r.Library, wishlist: r.Wishlist, users: r.Users}
}

type handlers struct {
	library  *library.HTTPHandler
	wishlist *wishlist.HTTPHandler
	users    *user.HTTPHandler
}

func newHandlers(repos repositories, resolver book.Resolver, cfg config.Config) handlers {
	catalog := book.NewService(repos.books, resolver)
	users := user.NewService(repos.users, repos.library)
	wishlistService := wishlist.NewService(repos.wishlist, catalog, users)
	libraryService := library.NewService(repos.library, catalog, wishlistService, users)

	libraryOpts := library.DefaultOptions(cfg.LibraryPerPage, cfg.LibraryMaxPerPage)
	return handlers{
		library:  library.NewHTTPHandler(libraryService, libraryOpts),
		wishlist: wishlist.NewHTTPHandler(wishlistService, wishlist.DefaultOptions(cfg.LibraryPerPage, cfg.LibraryMaxPerPage)),
		users:    user.NewHTTPHandler(users, libraryOpts),
	}
}

// readiness reports whether the backing stores answer.
type readiness func(ctx context.Context) error

func alwaysReady(context.Context) error { return nil }

func logStartup(logger *slog.Logger, cfg config.Config) {
	logger.Info("starting server",
		"addr", cfg.Addr,
		"store", cfg.StoreDriver,
		"metadata_cache", cfg.RedisURL != "",
	)
}
